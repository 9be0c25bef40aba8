package avroplan

import (
	"github.com/mitchellh/mapstructure"
)

// DecodeDynamic decodes one value of schema into the caller-agnostic shape
// records, arrays, and maps fall back to when no concrete Go type is known
// at build time: map[string]any for records, []any for arrays, map[string]any
// for maps, and the usual host scalar types for everything else. Callers
// that do have a concrete type on hand should use NewDeserializer[T]
// instead; this path exists for schema-driven tooling that only learns the
// target shape at runtime.
func DecodeDynamic(schema Schema, r *Reader) (any, error) {
	deser, err := NewDeserializer[any](schema)
	if err != nil {
		return nil, err
	}
	return deser(r)
}

// DecodeDynamicInto decodes one value of schema dynamically (as
// DecodeDynamic does) and then bridges the result into target, a pointer to
// a concrete struct, via mitchellh/mapstructure's tag-aware field matching.
// This is the mapstructure-backed half of the dynamic value fallback: it
// lets a caller hold a schema-typed record (decoded to map[string]any) and
// rehydrate it into a known struct without hand-writing a TypeDescriptor.
func DecodeDynamicInto(schema Schema, r *Reader, target any) error {
	v, err := DecodeDynamic(schema, r)
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "avro",
	})
	if err != nil {
		return err
	}
	return dec.Decode(v)
}
