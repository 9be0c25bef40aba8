package avroplan

import (
	"errors"
	"reflect"
)

// serializerCase is one entry in the ordered case list component F walks:
// logical-type cases first, then primitive, then collection, then enum,
// record, union. A case declines by returning a *caseInapplicable error;
// any other error is a definitive build failure and is propagated as-is,
// since exactly one case structurally owns each (schema Kind, logical
// name) pair.
type serializerCase struct {
	label string
	build func(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error)
}

// deserializerCase mirrors serializerCase for component G.
type deserializerCase struct {
	label string
	build func(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error)
}

type caseInapplicable struct{ reason string }

func (e *caseInapplicable) Error() string { return e.reason }

func skip(reason string) error { return &caseInapplicable{reason: reason} }

func isInapplicable(err error) (string, bool) {
	var ci *caseInapplicable
	if errors.As(err, &ci) {
		return ci.reason, true
	}
	return "", false
}

// logicalNameOf returns the schema's logical type name, or "" if none.
func logicalNameOf(s Schema) string {
	if lt := s.Logical(); lt != nil {
		return lt.logicalTypeName()
	}
	return ""
}
