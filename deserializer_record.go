package avroplan

import (
	"fmt"
	"reflect"
)

// buildRecordDeserializer mirrors buildRecordSerializer for the decode
// direction: each declared field is read in schema order. The host member
// for a field is located via one of two paths: (a) a constructor whose
// parameter names all match distinct schema fields, or (b) the default
// constructor plus member assignment by name. A field matching neither a
// constructor parameter nor a settable member is still decoded, to advance
// the reader, and its value discarded. Self-referential schemas are
// indirected through the same BuildContext.deserializerMemo mechanism the
// serializer side uses.
func buildRecordDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	s, ok := schema.(*RecordSchema)
	if !ok {
		return nil, skip("not a record schema")
	}

	if t.Kind() == reflect.Interface {
		return buildDynamicRecordDeserializer(bc, s)
	}

	isPtr := t.Kind() == reflect.Ptr
	structType := t
	for structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, skip("target type is not a struct")
	}

	key := MemoKey{Schema: schema, Type: t}
	if cell, found := bc.deserializerMemo[key]; found {
		return func(r *Reader) (any, error) {
			if cell.plan == nil {
				return nil, fmt.Errorf("recursive binding %s referenced before its plan was resolved", cell.name)
			}
			return cell.plan(r)
		}, nil
	}

	var cell *deserializerCell
	if bc.recursion.IsRecursive(schema) {
		cell = &deserializerCell{name: bc.nextBindingName("record")}
		bc.deserializerMemo[key] = cell
		bc.deserializerOrder = append(bc.deserializerOrder, cell.name)
	}

	desc := bc.descriptorFor(structType)
	members := desc.Members()

	// Path (a): prefer the first constructor (in declared preference order)
	// whose parameters all match distinct schema fields by canonical name.
	// A constructor with no parameters never qualifies for path (a) — it's
	// indistinguishable from the default-constructor fallback of path (b).
	var ctor *Constructor
	var ctorFieldParam map[int]int // schema field index -> constructor param index
	for _, c := range desc.Constructors() {
		if len(c.Params) == 0 {
			continue
		}
		if mapping, ok := matchConstructorParams(desc, c.Params, s.Fields); ok {
			chosen := c
			ctor = &chosen
			ctorFieldParam = mapping
			break
		}
	}

	type fieldBinding struct {
		plan       DeserializerPlan
		paramIndex int // -1 when this field isn't bound to a constructor param
		set        func(receiver any, value any)
	}
	bindings := make([]fieldBinding, len(s.Fields))
	for i, f := range s.Fields {
		if ctor != nil {
			if pi, ok := ctorFieldParam[i]; ok {
				fieldPlan, err := buildDeserializer(bc, f.Type, ctor.Params[pi].Type)
				if err != nil {
					return nil, err
				}
				bindings[i] = fieldBinding{plan: fieldPlan, paramIndex: pi}
				continue
			}
		}

		var matched *Member
		for j := range members {
			if desc.NameMatches(f.Name, members[j].Name) {
				matched = &members[j]
				break
			}
		}
		if matched == nil {
			// No constructor parameter and no settable member: the field
			// must still be decoded to advance the reader, then discarded.
			skipPlan, err := BuildSkipper(f.Type)
			if err != nil {
				return nil, err
			}
			bindings[i] = fieldBinding{
				plan:       func(r *Reader) (any, error) { return nil, skipPlan(r) },
				paramIndex: -1,
			}
			continue
		}
		fieldPlan, err := buildDeserializer(bc, f.Type, matched.Type)
		if err != nil {
			return nil, err
		}
		bindings[i] = fieldBinding{plan: fieldPlan, paramIndex: -1, set: matched.Set}
	}

	plan := func(r *Reader) (any, error) {
		values := make([]any, len(bindings))
		for i, b := range bindings {
			v, err := b.plan(r)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}

		var ptr reflect.Value
		if ctor != nil {
			args := make([]any, len(ctor.Params))
			for i, b := range bindings {
				if b.paramIndex >= 0 {
					args[b.paramIndex] = values[i]
				}
			}
			ptr = reflect.New(structType)
			ptr.Elem().Set(reflect.ValueOf(ctor.New(args)))
		} else {
			ptr = newZeroValuePtr(desc)
		}
		receiver := ptr.Interface()
		for i, b := range bindings {
			if b.set != nil {
				b.set(receiver, values[i])
			}
		}
		if isPtr {
			return receiver, nil
		}
		return ptr.Elem().Interface(), nil
	}

	if cell != nil {
		cell.plan = plan
	}
	return plan, nil
}

// matchConstructorParams attempts to map every constructor parameter to a
// distinct schema field by canonical name, per spec.md §4.G's path (a). It
// fails if any parameter has no matching field.
func matchConstructorParams(desc TypeDescriptor, params []ConstructorParam, fields []Field) (map[int]int, bool) {
	mapping := make(map[int]int, len(params))
	usedField := make(map[int]bool, len(params))
	for pi, p := range params {
		found := -1
		for fi, f := range fields {
			if usedField[fi] {
				continue
			}
			if desc.NameMatches(f.Name, p.Name) {
				found = fi
				break
			}
		}
		if found == -1 {
			return nil, false
		}
		usedField[found] = true
		mapping[found] = pi
	}
	return mapping, true
}

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// buildDynamicRecordDeserializer handles a record schema whose caller asked
// for `any` rather than a concrete struct: every field is decoded into a
// map[string]any keyed by its schema field name, recursively, so nested
// records/arrays/maps become nested map[string]any/[]any values rather than
// requiring a TypeDescriptor for every nested type. This is the fallback
// path spec.md's design notes anticipate for callers without a concrete Go
// type on hand; DecodeDynamicInto bridges the result into a concrete struct
// via mitchellh/mapstructure.
func buildDynamicRecordDeserializer(bc *BuildContext, s *RecordSchema) (DeserializerPlan, error) {
	key := MemoKey{Schema: Schema(s), Type: anyType}
	if cell, found := bc.deserializerMemo[key]; found {
		return func(r *Reader) (any, error) {
			if cell.plan == nil {
				return nil, fmt.Errorf("recursive binding %s referenced before its plan was resolved", cell.name)
			}
			return cell.plan(r)
		}, nil
	}

	var cell *deserializerCell
	if bc.recursion.IsRecursive(s) {
		cell = &deserializerCell{name: bc.nextBindingName("dynamicRecord")}
		bc.deserializerMemo[key] = cell
		bc.deserializerOrder = append(bc.deserializerOrder, cell.name)
	}

	type fieldBinding struct {
		name string
		plan DeserializerPlan
	}
	bindings := make([]fieldBinding, len(s.Fields))
	for i, f := range s.Fields {
		fieldPlan, err := buildDeserializer(bc, f.Type, anyType)
		if err != nil {
			return nil, err
		}
		bindings[i] = fieldBinding{name: f.Name, plan: fieldPlan}
	}

	plan := func(r *Reader) (any, error) {
		out := make(map[string]any, len(bindings))
		for _, b := range bindings {
			v, err := b.plan(r)
			if err != nil {
				return nil, err
			}
			out[b.name] = v
		}
		return out, nil
	}

	if cell != nil {
		cell.plan = plan
	}
	return plan, nil
}
