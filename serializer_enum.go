package avroplan

import (
	"fmt"
	"reflect"
)

// buildEnumSerializer handles Enum schema nodes, per spec.md §4.F. Go has no
// runtime enumeration of a defined type's declared constants, so unlike a
// language with true enum reflection this case recognizes two host shapes:
// a fmt.Stringer (or plain string) whose text canonical-matches a declared
// symbol, and a bare integer type whose value is used directly as the
// symbol index. Symbol resolution happens when the plan runs: text that
// matches no declared symbol, or an integer outside the symbol range,
// fails with InvalidValueError, and text that canonical-matches more than
// one symbol resolves to the first. UnsupportedType is raised at build
// time only for a target type that has none of these shapes.
func buildEnumSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	s, ok := schema.(*EnumSchema)
	if !ok {
		return nil, skip("not an enum schema")
	}

	symbolIndex := func(name string) (int, bool) {
		canon := CanonicalName(name)
		for i, sym := range s.Symbols {
			if CanonicalName(sym) == canon {
				return i, true
			}
		}
		return 0, false
	}

	switch {
	case t.Kind() == reflect.String:
		return func(v any, w *Writer) error {
			name := reflect.ValueOf(v).String()
			idx, ok := symbolIndex(name)
			if !ok {
				return &InvalidValueError{Message: fmt.Sprintf("%q is not a declared symbol of enum %s", name, s.Name)}
			}
			w.WriteInt(int32(idx))
			return nil
		}, nil

	case t.Implements(reflect.TypeOf((*fmt.Stringer)(nil)).Elem()):
		return func(v any, w *Writer) error {
			name := v.(fmt.Stringer).String()
			idx, ok := symbolIndex(name)
			if !ok {
				return &InvalidValueError{Message: fmt.Sprintf("%q is not a declared symbol of enum %s", name, s.Name)}
			}
			w.WriteInt(int32(idx))
			return nil
		}, nil

	case isIntegerKind(t.Kind()):
		n := len(s.Symbols)
		return func(v any, w *Writer) error {
			rv := reflect.ValueOf(v)
			var idx int
			if rv.CanInt() {
				idx = int(rv.Int())
			} else if u := rv.Uint(); u < uint64(n) {
				idx = int(u)
			} else {
				idx = n
			}
			if idx < 0 || idx >= n {
				return &InvalidValueError{Message: fmt.Sprintf("enum index %d out of range for %s", idx, s.Name)}
			}
			w.WriteInt(int32(idx))
			return nil
		}, nil
	}

	return nil, newUnsupportedType(schema, t.String(), "target type is neither a string, a fmt.Stringer, nor an integer enum")
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
