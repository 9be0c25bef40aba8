package avroplan

import (
	"reflect"
)

// buildDecimalSerializer handles a Decimal logical type layered over Bytes
// or Fixed, per spec.md §4.J. It declines for a schema without a decimal
// logical type so the case list falls through to the next case, and
// raises UnsupportedSchema for a decimal on any other node kind.
func buildDecimalSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	if logicalNameOf(schema) != "decimal" {
		return nil, skip("schema has no decimal logical type")
	}
	switch s := schema.(type) {
	case *BytesSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			encodeDecimalBytes(w, wire.(DecimalValue))
			return nil
		}, nil
	case *FixedSchema:
		size := s.Size
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			return encodeDecimalFixed(w, wire.(DecimalValue), size)
		}, nil
	}
	return nil, &UnsupportedSchema{Schema: schema, Message: "decimal logical type must be layered over bytes or fixed"}
}

// buildDurationSerializer handles a Duration logical type layered over
// Fixed(12), per spec.md §4.J.
func buildDurationSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	if logicalNameOf(schema) != "duration" {
		return nil, skip("schema has no duration logical type")
	}
	s, ok := schema.(*FixedSchema)
	if !ok {
		return nil, skip("duration logical type must be layered over fixed")
	}
	if s.Size != durationFixedSize {
		return nil, newUnsupportedType(schema, t.String(), "duration requires fixed(12)")
	}
	return func(v any, w *Writer) error {
		wire, err := bc.conversions.ToWire(schema, v)
		if err != nil {
			return err
		}
		encodeDuration(w, wire.(DurationValue))
		return nil
	}, nil
}

// buildDateSerializer handles a Date logical type layered over Int.
func buildDateSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	if logicalNameOf(schema) != "date" {
		return nil, skip("schema has no date logical type")
	}
	if _, ok := schema.(*IntSchema); !ok {
		return nil, skip("date logical type must be layered over int")
	}
	return func(v any, w *Writer) error {
		wire, err := bc.conversions.ToWire(schema, v)
		if err != nil {
			return err
		}
		encodeDate(w, wire.(int32))
		return nil
	}, nil
}

// buildTimeMillisSerializer handles a TimeMillis logical type layered over
// Int.
func buildTimeMillisSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	if logicalNameOf(schema) != "time-millis" {
		return nil, skip("schema has no time-millis logical type")
	}
	if _, ok := schema.(*IntSchema); !ok {
		return nil, skip("time-millis logical type must be layered over int")
	}
	return func(v any, w *Writer) error {
		wire, err := bc.conversions.ToWire(schema, v)
		if err != nil {
			return err
		}
		encodeTimeMillis(w, wire.(int32))
		return nil
	}, nil
}

// buildTimeMicrosSerializer handles a TimeMicros logical type layered over
// Long.
func buildTimeMicrosSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	if logicalNameOf(schema) != "time-micros" {
		return nil, skip("schema has no time-micros logical type")
	}
	if _, ok := schema.(*LongSchema); !ok {
		return nil, skip("time-micros logical type must be layered over long")
	}
	return func(v any, w *Writer) error {
		wire, err := bc.conversions.ToWire(schema, v)
		if err != nil {
			return err
		}
		encodeTimeMicros(w, wire.(int64))
		return nil
	}, nil
}

// buildTimestampSerializer returns a case builder for one of the three
// timestamp logical types (TimestampMillis/Micros/Nanos), all layered over
// Long and sharing the same plain-long wire framing.
func buildTimestampSerializer(name string) func(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	return func(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
		if logicalNameOf(schema) != name {
			return nil, skip("schema does not carry the " + name + " logical type")
		}
		if _, ok := schema.(*LongSchema); !ok {
			return nil, skip(name + " logical type must be layered over long")
		}
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			encodeTimestamp(w, wire.(int64))
			return nil
		}, nil
	}
}
