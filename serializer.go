package avroplan

import (
	"fmt"
	"io"
	"reflect"
)

// defaultSerializerCases returns the built-in case list in the order
// spec.md §4.F mandates: logical-type cases first, then primitives, then
// collections, then enum, record, union.
func defaultSerializerCases() []serializerCase {
	return []serializerCase{
		{"decimal", buildDecimalSerializer},
		{"duration", buildDurationSerializer},
		{"date", buildDateSerializer},
		{"time-millis", buildTimeMillisSerializer},
		{"time-micros", buildTimeMicrosSerializer},
		{"timestamp-millis", buildTimestampSerializer("timestamp-millis")},
		{"timestamp-micros", buildTimestampSerializer("timestamp-micros")},
		{"timestamp-nanos", buildTimestampSerializer("timestamp-nanos")},
		{"primitive", buildPrimitiveSerializer},
		{"array", buildArraySerializer},
		{"map", buildMapSerializer},
		{"enum", buildEnumSerializer},
		{"record", buildRecordSerializer},
		{"union", buildUnionSerializer},
	}
}

// buildSerializer walks the case list for (schema, t), returning the first
// applicable plan. A *caseInapplicable from a case means "not my schema
// kind/logical name" and is tried against the next case; any other error
// is a definitive build failure.
func buildSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	var reasons []string
	for _, c := range bc.serializerCases {
		plan, err := c.build(bc, schema, t)
		if err == nil {
			bc.logger.Debug("serializer case matched", "case", c.label, "schema", schema.Kind())
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

// NewSerializer builds a callable that writes values of type T per schema,
// per spec.md §6's build_serializer<T>(schema) contract. Building is not
// required to be concurrency-safe; the returned function may be called
// concurrently once built.
func NewSerializer[T any](schema Schema, opts ...Option) (func(T, *Writer) error, error) {
	bc := NewBuildContext(schema, opts...)
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	plan, err := buildSerializer(bc, schema, t)
	if err != nil {
		return nil, err
	}
	return func(v T, w *Writer) error {
		return plan(v, w)
	}, nil
}

// Serialize builds a one-shot serializer for value's runtime type and
// writes it to w, per spec.md §6's serialize(schema, value, stream).
func Serialize(schema Schema, value any, w io.Writer) error {
	bc := NewBuildContext(schema)
	t := reflect.TypeOf(value)
	if t == nil {
		t = reflect.TypeOf((*any)(nil)).Elem()
	}
	plan, err := buildSerializer(bc, schema, t)
	if err != nil {
		return err
	}
	bw := NewWriter()
	if err := plan(value, bw); err != nil {
		return err
	}
	_, err = w.Write(bw.Bytes())
	return err
}
