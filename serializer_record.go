package avroplan

import (
	"fmt"
	"reflect"
)

// buildRecordSerializer handles Record schema nodes, per spec.md §4.F: each
// declared field is matched to a host member via the TypeDescriptor's
// NameMatches policy, and fields are emitted in schema order regardless of
// host field declaration order. A record schema the Recursion Analyzer
// marked recursive is indirected through a named binding in the Build
// Context's memo, so a self-referential schema (a field typed as its own
// enclosing record, directly or through a union) terminates the build
// instead of recursing forever.
func buildRecordSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	s, ok := schema.(*RecordSchema)
	if !ok {
		return nil, skip("not a record schema")
	}

	structType := t
	for structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, skip("target type is not a struct")
	}

	key := MemoKey{Schema: schema, Type: t}
	if cell, found := bc.serializerMemo[key]; found {
		return func(v any, w *Writer) error {
			if cell.plan == nil {
				return fmt.Errorf("recursive binding %s referenced before its plan was resolved", cell.name)
			}
			return cell.plan(v, w)
		}, nil
	}

	var cell *serializerCell
	if bc.recursion.IsRecursive(schema) {
		cell = &serializerCell{name: bc.nextBindingName("record")}
		bc.serializerMemo[key] = cell
		bc.serializerOrder = append(bc.serializerOrder, cell.name)
	}

	desc := bc.descriptorFor(structType)
	members := desc.Members()

	type fieldBinding struct {
		plan SerializerPlan
		get  func(receiver any) any
	}
	bindings := make([]fieldBinding, len(s.Fields))
	for i, f := range s.Fields {
		var matched *Member
		for j := range members {
			if desc.NameMatches(f.Name, members[j].Name) {
				matched = &members[j]
				break
			}
		}
		if matched == nil {
			return nil, newUnsupportedType(schema, t.String(), fmt.Sprintf("no host member matches record field %q", f.Name))
		}
		fieldPlan, err := buildSerializer(bc, f.Type, matched.Type)
		if err != nil {
			return nil, err
		}
		bindings[i] = fieldBinding{plan: fieldPlan, get: matched.Get}
	}

	plan := func(v any, w *Writer) error {
		for _, b := range bindings {
			if err := b.plan(b.get(v), w); err != nil {
				return err
			}
		}
		return nil
	}

	if cell != nil {
		cell.plan = plan
	}
	return plan, nil
}
