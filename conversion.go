package avroplan

import (
	"fmt"
	"reflect"
)

// TypeConversionFuncs is one registerable coercion rule: given the Avro
// Kind (and, optionally, the LogicalType name) it handles, it converts a
// host value to the wire-natural intermediate type on encode, and the
// wire-natural value back to a host value on decode. Modeled directly on
// hamba/avro's avro.TypeConversionFuncs registration shape.
type TypeConversionFuncs struct {
	Kind    Kind
	Logical string // logicalTypeName(), or "" to match schemas with no logical type

	// ToWire converts a host value into the wire-natural type listed in
	// spec.md §4.D for this Kind. schema is passed through so logical-type
	// rules can read schema-specific parameters (e.g. a Decimal's scale).
	// The plan builders call it only at run time, and an error it returns
	// is surfaced as-is by the plan.
	ToWire func(schema Schema, host any) (any, error)
	// FromWire converts a wire-natural decoded value into a host value
	// matching the target Go type.
	FromWire func(schema Schema, wire any, target reflect.Type) (any, error)
}

// ConversionBuilder holds the ordered list of registered coercion rules
// consulted by the serializer/deserializer plan builders (component D in
// spec.md §4). Built-ins are registered by NewConversionBuilder; callers
// extend the list via Register, mirroring
// hamba/avro's package-level RegisterTypeConverters.
type ConversionBuilder struct {
	rules []TypeConversionFuncs
}

// NewConversionBuilder returns a ConversionBuilder preloaded with the
// built-in conversions described in spec.md §4.D.
func NewConversionBuilder() *ConversionBuilder {
	cb := &ConversionBuilder{}
	registerNumericConversions(cb)
	registerLogicalConversions(cb)
	return cb
}

// Register prepends a custom conversion rule so it is tried before any
// built-in rule for the same (Kind, Logical) pair.
func (cb *ConversionBuilder) Register(fn TypeConversionFuncs) {
	cb.rules = append([]TypeConversionFuncs{fn}, cb.rules...)
}

func (cb *ConversionBuilder) find(kind Kind, logical string) (TypeConversionFuncs, bool) {
	for _, r := range cb.rules {
		if r.Kind == kind && r.Logical == logical {
			return r, true
		}
	}
	return TypeConversionFuncs{}, false
}

// ToWire coerces a host value to schema's wire-natural type. Returns an
// error if no registered rule matches the schema's (Kind, Logical) pair.
// The function is pure and side-effect free so tests can call it directly.
func (cb *ConversionBuilder) ToWire(schema Schema, host any) (any, error) {
	logical := ""
	if lt := schema.Logical(); lt != nil {
		logical = lt.logicalTypeName()
	}
	rule, ok := cb.find(schema.Kind(), logical)
	if !ok {
		return nil, fmt.Errorf("no conversion registered for %s/%s", schema.Kind(), logical)
	}
	return rule.ToWire(schema, host)
}

// FromWire coerces a wire-natural decoded value to target.
func (cb *ConversionBuilder) FromWire(schema Schema, wire any, target reflect.Type) (any, error) {
	logical := ""
	if lt := schema.Logical(); lt != nil {
		logical = lt.logicalTypeName()
	}
	rule, ok := cb.find(schema.Kind(), logical)
	if !ok {
		return nil, fmt.Errorf("no conversion registered for %s/%s", schema.Kind(), logical)
	}
	return rule.FromWire(schema, wire, target)
}
