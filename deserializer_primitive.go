package avroplan

import (
	"reflect"

	"github.com/google/uuid"
)

// buildPrimitiveDeserializer mirrors buildPrimitiveSerializer for the
// decode direction: Null, Boolean, Int, Long, Float, Double, Bytes,
// String, Fixed.
func buildPrimitiveDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	switch s := schema.(type) {
	case *NullSchema:
		return func(r *Reader) (any, error) { return nil, nil }, nil

	case *BooleanSchema:
		return func(r *Reader) (any, error) {
			v, err := r.ReadBoolean()
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, v, t)
		}, nil

	case *IntSchema:
		return func(r *Reader) (any, error) {
			v, err := r.ReadInt()
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, int64(v), t)
		}, nil

	case *LongSchema:
		return func(r *Reader) (any, error) {
			v, err := r.ReadLong()
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, v, t)
		}, nil

	case *FloatSchema:
		return func(r *Reader) (any, error) {
			v, err := r.ReadFloat()
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, v, t)
		}, nil

	case *DoubleSchema:
		return func(r *Reader) (any, error) {
			v, err := r.ReadDouble()
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, v, t)
		}, nil

	case *BytesSchema:
		return func(r *Reader) (any, error) {
			v, err := r.ReadBytes()
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, v, t)
		}, nil

	case *StringSchema:
		return func(r *Reader) (any, error) {
			v, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			return bc.conversions.FromWire(schema, v, t)
		}, nil

	case *FixedSchema:
		size := s.Size
		isUUID := t == reflect.TypeOf(uuid.UUID{})
		return func(r *Reader) (any, error) {
			b, err := r.ReadFixed(size)
			if err != nil {
				return nil, err
			}
			if isUUID {
				return fixedToUUID(b)
			}
			return bc.conversions.FromWire(schema, b, t)
		}, nil

	default:
		return nil, skip("not a primitive or fixed schema")
	}
}
