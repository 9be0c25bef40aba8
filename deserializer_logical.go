package avroplan

import "reflect"

// buildDecimalDeserializer mirrors buildDecimalSerializer. The schema's
// declared scale is stamped onto the decoded DecimalValue before the
// conversion builder runs, since decodeDecimalBytes/decodeDecimalFixed know
// only the raw unscaled magnitude.
func buildDecimalDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	if logicalNameOf(schema) != "decimal" {
		return nil, skip("schema has no decimal logical type")
	}
	scale := decimalScaleOf(schema)
	switch s := schema.(type) {
	case *BytesSchema:
		return func(r *Reader) (any, error) {
			dv, err := decodeDecimalBytes(r)
			if err != nil {
				return nil, err
			}
			dv.Scale = scale
			return bc.conversions.FromWire(schema, dv, t)
		}, nil
	case *FixedSchema:
		size := s.Size
		return func(r *Reader) (any, error) {
			dv, err := decodeDecimalFixed(r, size)
			if err != nil {
				return nil, err
			}
			dv.Scale = scale
			return bc.conversions.FromWire(schema, dv, t)
		}, nil
	}
	return nil, &UnsupportedSchema{Schema: schema, Message: "decimal logical type must be layered over bytes or fixed"}
}

func buildDurationDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
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
	return func(r *Reader) (any, error) {
		dv, err := decodeDuration(r)
		if err != nil {
			return nil, err
		}
		return bc.conversions.FromWire(schema, dv, t)
	}, nil
}

func buildDateDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	if logicalNameOf(schema) != "date" {
		return nil, skip("schema has no date logical type")
	}
	if _, ok := schema.(*IntSchema); !ok {
		return nil, skip("date logical type must be layered over int")
	}
	return func(r *Reader) (any, error) {
		days, err := decodeDate(r)
		if err != nil {
			return nil, err
		}
		return bc.conversions.FromWire(schema, days, t)
	}, nil
}

func buildTimeMillisDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	if logicalNameOf(schema) != "time-millis" {
		return nil, skip("schema has no time-millis logical type")
	}
	if _, ok := schema.(*IntSchema); !ok {
		return nil, skip("time-millis logical type must be layered over int")
	}
	return func(r *Reader) (any, error) {
		ms, err := decodeTimeMillis(r)
		if err != nil {
			return nil, err
		}
		return bc.conversions.FromWire(schema, ms, t)
	}, nil
}

func buildTimeMicrosDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	if logicalNameOf(schema) != "time-micros" {
		return nil, skip("schema has no time-micros logical type")
	}
	if _, ok := schema.(*LongSchema); !ok {
		return nil, skip("time-micros logical type must be layered over long")
	}
	return func(r *Reader) (any, error) {
		us, err := decodeTimeMicros(r)
		if err != nil {
			return nil, err
		}
		return bc.conversions.FromWire(schema, us, t)
	}, nil
}

// buildTimestampDeserializer mirrors buildTimestampSerializer.
func buildTimestampDeserializer(name string) func(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	return func(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
		if logicalNameOf(schema) != name {
			return nil, skip("schema does not carry the " + name + " logical type")
		}
		if _, ok := schema.(*LongSchema); !ok {
			return nil, skip(name + " logical type must be layered over long")
		}
		return func(r *Reader) (any, error) {
			offset, err := decodeTimestamp(r)
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, offset, t)
		}, nil
	}
}
