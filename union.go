// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avroplan

import (
	"fmt"
	"reflect"
)

// unionBranch pairs one union member schema with the Go type its plan was
// built against and the plan itself, mirroring the codecFromIndex /
// indexFromName lookup tables goavro's union codec keeps, but keyed on
// reflect.Type instead of a schema full-name string.
type unionBranch struct {
	schema Schema
	goType reflect.Type
	plan   SerializerPlan
}

// buildUnionSerializer handles Union schema nodes, per spec.md §4.F. Two
// host shapes are recognized:
//
//   - A pointer target against a two-branch {null, T} union: the classic
//     Go "nullable" idiom. A nil pointer selects the null branch; a non-nil
//     pointer is dereferenced and its pointee encoded via the other
//     branch's plan. This covers the common case, including
//     self-referential record schemas (value:int, next:union<null,self>)
//     whose host field is typically *Self.
//   - Any other target (typically `any`): each non-null branch is built
//     against its own natural Go type (looked up via the registered
//     TypeDescriptors for Record branches, or a fixed default for
//     primitive/collection/enum branches), and at runtime the first branch
//     whose natural type matches the value's runtime type wins. Branches
//     that resolve to a host type already claimed by an earlier branch are
//     skipped, per spec.md §4.F ("skip branches that duplicate a
//     previously mapped host type").
func buildUnionSerializer(bc *BuildContext, schema Schema, t reflect.Type) (SerializerPlan, error) {
	s, ok := schema.(*UnionSchema)
	if !ok {
		return nil, skip("not a union schema")
	}
	if len(s.Branches) == 0 {
		return nil, &UnsupportedSchema{Schema: schema, Message: "union has no branches"}
	}

	nullIndex := -1
	for i, b := range s.Branches {
		if b.Kind() == KindNull {
			nullIndex = i
			break
		}
	}

	if len(s.Branches) == 2 && nullIndex >= 0 && t.Kind() == reflect.Ptr {
		otherIdx := 1 - nullIndex
		elemPlan, err := buildSerializer(bc, s.Branches[otherIdx], t.Elem())
		if err != nil {
			return nil, err
		}
		nullIdx64 := int64(nullIndex)
		otherIdx64 := int64(otherIdx)
		return func(v any, w *Writer) error {
			rv := reflect.ValueOf(v)
			if !rv.IsValid() || rv.IsNil() {
				w.WriteLong(nullIdx64)
				return nil
			}
			w.WriteLong(otherIdx64)
			return elemPlan(rv.Elem().Interface(), w)
		}, nil
	}

	var branches []unionBranch
	seen := make(map[reflect.Type]bool)
	for i, b := range s.Branches {
		if i == nullIndex {
			continue
		}
		goType, ok := bc.naturalGoType(b)
		if !ok {
			return nil, newUnsupportedType(schema, t.String(), fmt.Sprintf("no host type could be determined for union branch %d (%s)", i, describeSchema(b)))
		}
		if seen[goType] {
			continue
		}
		seen[goType] = true
		plan, err := buildSerializer(bc, b, goType)
		if err != nil {
			return nil, err
		}
		branches = append(branches, unionBranch{schema: b, goType: goType, plan: plan})
	}

	indexOf := make(map[Schema]int, len(s.Branches))
	for i, b := range s.Branches {
		indexOf[b] = i
	}

	return func(v any, w *Writer) error {
		if v == nil {
			if nullIndex < 0 {
				return &InvalidValueError{Message: "cannot encode nil: union has no null branch"}
			}
			w.WriteLong(int64(nullIndex))
			return nil
		}
		rv := reflect.ValueOf(v)
		vt := rv.Type()
		for _, br := range branches {
			if vt != br.goType && !vt.AssignableTo(br.goType) {
				continue
			}
			w.WriteLong(int64(indexOf[br.schema]))
			return br.plan(v, w)
		}
		return &InvalidValueError{Message: fmt.Sprintf("no union branch matches value of type %s", vt)}
	}, nil
}

// naturalGoType returns the default Go type a union branch's schema maps
// to absent a custom case override, per spec.md §4.F's "ask the type
// descriptor which concrete host type that branch maps to". Record
// branches are resolved against the TypeDescriptors already registered on
// the Build Context (via WithTypeDescriptor or prior descriptorFor calls)
// by canonical name match; callers needing a different mapping should
// install a custom PrependSerializerCase, as spec.md §9 anticipates for
// polymorphic unions keyed on record names.
func (bc *BuildContext) naturalGoType(schema Schema) (reflect.Type, bool) {
	switch s := schema.(type) {
	case *BooleanSchema:
		return reflect.TypeOf(false), true
	case *IntSchema:
		return reflect.TypeOf(int32(0)), true
	case *LongSchema:
		return reflect.TypeOf(int64(0)), true
	case *FloatSchema:
		return reflect.TypeOf(float32(0)), true
	case *DoubleSchema:
		return reflect.TypeOf(float64(0)), true
	case *BytesSchema:
		return reflect.TypeOf([]byte(nil)), true
	case *StringSchema:
		return reflect.TypeOf(""), true
	case *FixedSchema:
		return reflect.TypeOf([]byte(nil)), true
	case *EnumSchema:
		return reflect.TypeOf(""), true
	case *ArraySchema:
		item, ok := bc.naturalGoType(s.Items)
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(item), true
	case *MapSchema:
		val, ok := bc.naturalGoType(s.Values)
		if !ok {
			return nil, false
		}
		return reflect.MapOf(reflect.TypeOf(""), val), true
	case *RecordSchema:
		canon := CanonicalName(s.FullName)
		for rt := range bc.descriptors {
			if CanonicalName(rt.Name()) == canon {
				return rt, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

// unionDecodeBranch pairs one non-null union member schema with the
// deserializer plan built for it, in declared branch order so the index
// read off the wire indexes directly into this slice.
type unionDecodeBranch struct {
	plan   DeserializerPlan
	goType reflect.Type
}

// buildUnionDeserializer mirrors buildUnionSerializer for the decode
// direction, per spec.md §4.G: read the varint branch index, range-check
// it, and dispatch to that branch's plan. The nullable-pointer shorthand is
// recognized the same way the serializer side recognizes it.
func buildUnionDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	s, ok := schema.(*UnionSchema)
	if !ok {
		return nil, skip("not a union schema")
	}
	if len(s.Branches) == 0 {
		return nil, &UnsupportedSchema{Schema: schema, Message: "union has no branches"}
	}

	nullIndex := -1
	for i, b := range s.Branches {
		if b.Kind() == KindNull {
			nullIndex = i
			break
		}
	}

	if len(s.Branches) == 2 && nullIndex >= 0 && t.Kind() == reflect.Ptr {
		otherIdx := 1 - nullIndex
		elemPlan, err := buildDeserializer(bc, s.Branches[otherIdx], t.Elem())
		if err != nil {
			return nil, err
		}
		otherIdx64 := int64(otherIdx)
		return func(r *Reader) (any, error) {
			idx, err := r.ReadLong()
			if err != nil {
				return nil, err
			}
			if idx < 0 || int(idx) >= len(s.Branches) {
				return nil, r.invalid(fmt.Sprintf("union index %d out of range", idx))
			}
			if idx != otherIdx64 {
				return reflect.Zero(t).Interface(), nil
			}
			v, err := elemPlan(r)
			if err != nil {
				return nil, err
			}
			out := reflect.New(t.Elem())
			if v != nil {
				out.Elem().Set(reflect.ValueOf(v).Convert(t.Elem()))
			}
			return out.Interface(), nil
		}, nil
	}

	branches := make([]*unionDecodeBranch, len(s.Branches))
	for i, b := range s.Branches {
		if i == nullIndex {
			continue
		}
		var goType reflect.Type
		if t.Kind() == reflect.Interface {
			// Dynamic decode: the branch plan is built directly against
			// the caller's interface target rather than a type inferred
			// from the schema, since no concrete host type is on offer.
			goType = t
		} else {
			var ok bool
			goType, ok = bc.naturalGoType(b)
			if !ok {
				return nil, newUnsupportedType(schema, t.String(), fmt.Sprintf("no host type could be determined for union branch %d (%s)", i, describeSchema(b)))
			}
		}
		plan, err := buildDeserializer(bc, b, goType)
		if err != nil {
			return nil, err
		}
		branches[i] = &unionDecodeBranch{plan: plan, goType: goType}
	}

	return func(r *Reader) (any, error) {
		idx, err := r.ReadLong()
		if err != nil {
			return nil, err
		}
		if idx < 0 || int(idx) >= len(s.Branches) {
			return nil, r.invalid(fmt.Sprintf("union index %d out of range", idx))
		}
		if int(idx) == nullIndex {
			return nil, nil
		}
		br := branches[idx]
		if br == nil {
			return nil, r.invalid(fmt.Sprintf("union index %d has no decodable branch", idx))
		}
		return br.plan(r)
	}, nil
}
