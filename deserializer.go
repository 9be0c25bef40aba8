package avroplan

import (
	"fmt"
	"reflect"
)

// defaultDeserializerCases returns the built-in case list, in the same
// case-family order as defaultSerializerCases.
func defaultDeserializerCases() []deserializerCase {
	return []deserializerCase{
		{"decimal", buildDecimalDeserializer},
		{"duration", buildDurationDeserializer},
		{"date", buildDateDeserializer},
		{"time-millis", buildTimeMillisDeserializer},
		{"time-micros", buildTimeMicrosDeserializer},
		{"timestamp-millis", buildTimestampDeserializer("timestamp-millis")},
		{"timestamp-micros", buildTimestampDeserializer("timestamp-micros")},
		{"timestamp-nanos", buildTimestampDeserializer("timestamp-nanos")},
		{"primitive", buildPrimitiveDeserializer},
		{"array", buildArrayDeserializer},
		{"map", buildMapDeserializer},
		{"enum", buildEnumDeserializer},
		{"record", buildRecordDeserializer},
		{"union", buildUnionDeserializer},
	}
}

// buildDeserializer mirrors buildSerializer: walks the case list for
// (schema, t), returning the first applicable plan.
func buildDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	var reasons []string
	for _, c := range bc.deserializerCases {
		plan, err := c.build(bc, schema, t)
		if err == nil {
			bc.logger.Debug("deserializer case matched", "case", c.label, "schema", schema.Kind())
			return plan, nil
		}
		if reason, ok := isInapplicable(err); ok {
			reasons = append(reasons, fmt.Sprintf("%s: %s", c.label, reason))
			continue
		}
		return nil, err
	}
	return nil, newUnsupportedType(schema, t.String(), reasons...)
}

// NewDeserializer builds a callable that reads values of type T per schema,
// per spec.md §6's build_deserializer<T>(schema) contract.
func NewDeserializer[T any](schema Schema, opts ...Option) (func(*Reader) (T, error), error) {
	bc := NewBuildContext(schema, opts...)
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	plan, err := buildDeserializer(bc, schema, t)
	if err != nil {
		return nil, err
	}
	return func(r *Reader) (T, error) {
		v, err := plan(r)
		if err != nil {
			var zero T
			return zero, err
		}
		out, ok := v.(T)
		if !ok {
			rv := reflect.ValueOf(v)
			target := reflect.New(t).Elem()
			if v == nil {
				return zero, nil
			}
			if !rv.Type().ConvertibleTo(t) {
				return zero, fmt.Errorf("deserializer plan produced %T, not assignable to %s", v, t)
			}
			target.Set(rv.Convert(t))
			return target.Interface().(T), nil
		}
		return out, nil
	}, nil
}

// Deserialize builds a one-shot deserializer targeting value's pointee type
// and reads into it, per spec.md §6's deserialize(schema, stream, target).
func Deserialize(schema Schema, r *Reader, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}
	t := rv.Elem().Type()
	bc := NewBuildContext(schema)
	plan, err := buildDeserializer(bc, schema, t)
	if err != nil {
		return err
	}
	v, err := plan(r)
	if err != nil {
		return err
	}
	if v == nil {
		rv.Elem().Set(reflect.Zero(t))
		return nil
	}
	vv := reflect.ValueOf(v)
	if vv.Type() != t && vv.Type().ConvertibleTo(t) {
		vv = vv.Convert(t)
	}
	rv.Elem().Set(vv)
	return nil
}
