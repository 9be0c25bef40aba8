package avroplan

import (
	"fmt"
	"reflect"
)

// buildEnumDeserializer handles Enum schema nodes, per spec.md §4.G: read
// the varint index, range-check it, then map the symbol at that position to
// a host value. The schema's default symbol (EnumSchema.Default) has no
// reader here: this module's enum shapes are string/Stringer exact-text or
// bare integer index, neither of which has an "unmatched symbol" case for
// Default to resolve, and an out-of-range index is InvalidEncoding
// regardless of Default per §4.G.
func buildEnumDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	s, ok := schema.(*EnumSchema)
	if !ok {
		return nil, skip("not an enum schema")
	}

	switch {
	case t.Kind() == reflect.String || t.Kind() == reflect.Interface:
		return func(r *Reader) (any, error) {
			idx, err := r.ReadInt()
			if err != nil {
				return nil, err
			}
			if int(idx) < 0 || int(idx) >= len(s.Symbols) {
				return nil, r.invalid(fmt.Sprintf("enum index %d out of range for %s", idx, s.Name))
			}
			return s.Symbols[idx], nil
		}, nil

	case isIntegerKind(t.Kind()):
		return func(r *Reader) (any, error) {
			idx, err := r.ReadInt()
			if err != nil {
				return nil, err
			}
			if int(idx) < 0 || int(idx) >= len(s.Symbols) {
				return nil, r.invalid(fmt.Sprintf("enum index %d out of range for %s", idx, s.Name))
			}
			out := reflect.New(t).Elem()
			if out.CanInt() {
				out.SetInt(int64(idx))
			} else {
				out.SetUint(uint64(idx))
			}
			return out.Interface(), nil
		}, nil
	}

	return nil, newUnsupportedType(schema, t.String(), "target type is neither a string nor an integer enum")
}
