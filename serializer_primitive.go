package avroplan

import (
	"math"
	"reflect"

	"github.com/google/uuid"
)

// buildPrimitiveSerializer handles Null, Boolean, Int, Long, Float,
// Double, Bytes, String, and Fixed — the plain-primitive cases of
// spec.md §4.F, once any logical-type case ahead of it in the list has
// declined.
func buildPrimitiveSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	switch s := schema.(type) {
	case *NullSchema:
		return func(v any, w *Writer) error { return nil }, nil

	case *BooleanSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			w.WriteBoolean(wire.(bool))
			return nil
		}, nil

	case *IntSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			n := wire.(int64)
			if n < math.MinInt32 || n > math.MaxInt32 {
				return &OverflowError{Message: "value does not fit Avro int (32-bit)"}
			}
			w.WriteInt(int32(n))
			return nil
		}, nil

	case *LongSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			w.WriteLong(wire.(int64))
			return nil
		}, nil

	case *FloatSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			w.WriteFloat(wire.(float32))
			return nil
		}, nil

	case *DoubleSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			w.WriteDouble(wire.(float64))
			return nil
		}, nil

	case *BytesSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			w.WriteBytes(wire.([]byte))
			return nil
		}, nil

	case *StringSchema:
		return func(v any, w *Writer) error {
			wire, err := bc.conversions.ToWire(schema, v)
			if err != nil {
				return err
			}
			w.WriteString(wire.(string))
			return nil
		}, nil

	case *FixedSchema:
		size := s.Size
		isUUID := t == reflect.TypeOf(uuid.UUID{})
		return func(v any, w *Writer) error {
			var b []byte
			if isUUID {
				id, ok := v.(uuid.UUID)
				if !ok {
					return skip("expected uuid.UUID for fixed-backed UUID target")
				}
				b = uuidToFixed(id)
			} else {
				wire, err := bc.conversions.ToWire(schema, v)
				if err != nil {
					return err
				}
				bb, ok := wire.([]byte)
				if !ok {
					return &OverflowError{Message: "fixed target did not coerce to bytes"}
				}
				b = bb
			}
			if len(b) != size {
				return &OverflowError{Message: "fixed payload length does not equal declared size"}
			}
			w.WriteFixed(b)
			return nil
		}, nil

	default:
		return nil, skip("not a primitive or fixed schema")
	}
}
