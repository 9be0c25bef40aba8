package avroplan

import (
	"fmt"
	"reflect"
)

// buildArraySerializer handles Array schema nodes, per spec.md §4.F: a
// single block with a positive count equal to the collection's size,
// followed by each item, followed by the terminating zero-count block. The
// target type's size is queried exactly once via reflect.Value.Len.
func buildArraySerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	s, ok := schema.(*ArraySchema)
	if !ok {
		return nil, skip("not an array schema")
	}
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return nil, skip("target type is not a slice or array")
	}
	itemPlan, err := buildSerializer(bc, s.Items, t.Elem())
	if err != nil {
		return nil, err
	}
	return func(v any, w *Writer) error {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() {
			w.WriteBlockHeader(0)
			return nil
		}
		n := rv.Len()
		if n > 0 {
			w.WriteBlockHeader(int64(n))
			for i := 0; i < n; i++ {
				if err := itemPlan(rv.Index(i).Interface(), w); err != nil {
					return err
				}
			}
		}
		w.WriteBlockEnd()
		return nil
	}, nil
}

// buildMapSerializer handles Map schema nodes: identical block framing to
// Array but over (key, value) pairs, with the key always encoded as a
// string regardless of the host map's key type.
func buildMapSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	s, ok := schema.(*MapSchema)
	if !ok {
		return nil, skip("not a map schema")
	}
	if t.Kind() != reflect.Map {
		return nil, skip("target type is not a map")
	}
	valuePlan, err := buildSerializer(bc, s.Values, t.Elem())
	if err != nil {
		return nil, err
	}
	keyIsString := t.Key().Kind() == reflect.String
	return func(v any, w *Writer) error {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.Len() == 0 {
			w.WriteBlockHeader(0)
			return nil
		}
		n := rv.Len()
		w.WriteBlockHeader(int64(n))
		iter := rv.MapRange()
		for iter.Next() {
			var key string
			if keyIsString {
				key = iter.Key().String()
			} else {
				key = reflectToString(iter.Key())
			}
			w.WriteString(key)
			if err := valuePlan(iter.Value().Interface(), w); err != nil {
				return err
			}
		}
		w.WriteBlockEnd()
		return nil
	}, nil
}

// reflectToString renders a non-string map key as text, covering the
// integer/float/bool key types reflect.Value.MapKeys can produce.
func reflectToString(k reflect.Value) string {
	return fmt.Sprint(k.Interface())
}
