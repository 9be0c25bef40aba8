package avroplan

import "reflect"

// buildArrayDeserializer handles Array schema nodes, per spec.md §4.G:
// loop reading block headers (Reader.ReadBlockHeader already normalizes a
// negative count's byte-length follow-up into its absolute value), ending
// at a zero-count block, appending each decoded item into an
// append-only slice builder.
func buildArrayDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	s, ok := schema.(*ArraySchema)
	if !ok {
		return nil, skip("not an array schema")
	}
	if t.Kind() == reflect.Interface {
		return buildDynamicArrayDeserializer(bc, s)
	}
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return nil, skip("target type is not a slice or array")
	}
	elemType := t.Elem()
	itemPlan, err := buildDeserializer(bc, s.Items, elemType)
	if err != nil {
		return nil, err
	}
	sliceType := reflect.SliceOf(elemType)
	return func(r *Reader) (any, error) {
		out := reflect.MakeSlice(sliceType, 0, 0)
		for {
			count, err := r.ReadBlockHeader()
			if err != nil {
				return nil, err
			}
			if count == 0 {
				break
			}
			for i := int64(0); i < count; i++ {
				item, err := itemPlan(r)
				if err != nil {
					return nil, err
				}
				ev := reflect.New(elemType).Elem()
				if item != nil {
					ev.Set(reflect.ValueOf(item).Convert(elemType))
				}
				out = reflect.Append(out, ev)
			}
		}
		return out.Interface(), nil
	}, nil
}

// buildMapDeserializer handles Map schema nodes: identical block-framed
// loop to Array but over (key, value) pairs, keys always decoded as
// strings, inserted into an intermediate map[string]V builder.
func buildMapDeserializer(bc *BuildContext, schema Schema, t reflect.Type) (DeserializerPlan, error) {
	s, ok := schema.(*MapSchema)
	if !ok {
		return nil, skip("not a map schema")
	}
	if t.Kind() == reflect.Interface {
		return buildDynamicMapDeserializer(bc, s)
	}
	if t.Kind() != reflect.Map {
		return nil, skip("target type is not a map")
	}
	valueType := t.Elem()
	valuePlan, err := buildDeserializer(bc, s.Values, valueType)
	if err != nil {
		return nil, err
	}
	mapType := reflect.MapOf(reflect.TypeOf(""), valueType)
	return func(r *Reader) (any, error) {
		out := reflect.MakeMap(mapType)
		for {
			count, err := r.ReadBlockHeader()
			if err != nil {
				return nil, err
			}
			if count == 0 {
				break
			}
			for i := int64(0); i < count; i++ {
				key, err := r.ReadString()
				if err != nil {
					return nil, err
				}
				value, err := valuePlan(r)
				if err != nil {
					return nil, err
				}
				vv := reflect.New(valueType).Elem()
				if value != nil {
					vv.Set(reflect.ValueOf(value).Convert(valueType))
				}
				out.SetMapIndex(reflect.ValueOf(key), vv)
			}
		}
		return out.Interface(), nil
	}, nil
}

// buildDynamicArrayDeserializer decodes an array schema into []any when no
// concrete slice type is available, per the dynamic fallback path
// buildDynamicRecordDeserializer documents.
func buildDynamicArrayDeserializer(bc *BuildContext, s *ArraySchema) (DeserializerPlan, error) {
	itemPlan, err := buildDeserializer(bc, s.Items, anyType)
	if err != nil {
		return nil, err
	}
	return func(r *Reader) (any, error) {
		out := make([]any, 0)
		for {
			count, err := r.ReadBlockHeader()
			if err != nil {
				return nil, err
			}
			if count == 0 {
				break
			}
			for i := int64(0); i < count; i++ {
				item, err := itemPlan(r)
				if err != nil {
					return nil, err
				}
				out = append(out, item)
			}
		}
		return out, nil
	}, nil
}

// buildDynamicMapDeserializer is the map-schema analogue of
// buildDynamicArrayDeserializer.
func buildDynamicMapDeserializer(bc *BuildContext, s *MapSchema) (DeserializerPlan, error) {
	valuePlan, err := buildDeserializer(bc, s.Values, anyType)
	if err != nil {
		return nil, err
	}
	return func(r *Reader) (any, error) {
		out := make(map[string]any)
		for {
			count, err := r.ReadBlockHeader()
			if err != nil {
				return nil, err
			}
			if count == 0 {
				break
			}
			for i := int64(0); i < count; i++ {
				key, err := r.ReadString()
				if err != nil {
					return nil, err
				}
				value, err := valuePlan(r)
				if err != nil {
					return nil, err
				}
				out[key] = value
			}
		}
		return out, nil
	}, nil
}
