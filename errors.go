package avroplan

import (
	"errors"
	"fmt"
)

// UnsupportedSchema is raised at build time when a case cannot handle the
// shape of the schema it was given (decimal on a non-bytes/non-fixed node,
// an empty union, and so on).
type UnsupportedSchema struct {
	Schema  Schema
	Message string
}

func (e *UnsupportedSchema) Error() string {
	return fmt.Sprintf("unsupported schema %s: %s", describeSchema(e.Schema), e.Message)
}

// UnsupportedType is raised at build time when a case cannot map the host
// type to the schema. Cause aggregates every case's rejection reason so
// the caller sees why every attempted case failed, not just the last one.
type UnsupportedType struct {
	Schema  Schema
	Type    string
	Reasons []string
	Cause   error
}

func (e *UnsupportedType) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unsupported type %s for schema %s: %s", e.Type, describeSchema(e.Schema), e.Cause)
	}
	return fmt.Sprintf("unsupported type %s for schema %s", e.Type, describeSchema(e.Schema))
}

func (e *UnsupportedType) Unwrap() error { return e.Cause }

func newUnsupportedType(schema Schema, targetType string, reasons ...string) *UnsupportedType {
	errs := make([]error, 0, len(reasons))
	for _, r := range reasons {
		errs = append(errs, errors.New(r))
	}
	return &UnsupportedType{
		Schema:  schema,
		Type:    targetType,
		Reasons: reasons,
		Cause:   errors.Join(errs...),
	}
}

// InvalidEncoding is raised at run time when the wire bytes are malformed:
// a varint that never terminates, an out-of-range union or enum index, a
// negative block count with no following byte-length, or a truncated
// buffer.
type InvalidEncoding struct {
	Position int
	Message  string
}

func (e *InvalidEncoding) Error() string {
	return fmt.Sprintf("invalid encoding at position %d: %s", e.Position, e.Message)
}

// OverflowError is raised at run time when a numeric coercion or a
// fixed-size boundary would lose information.
type OverflowError struct {
	Message string
}

func (e *OverflowError) Error() string { return fmt.Sprintf("overflow: %s", e.Message) }

// InvalidValueError is raised at run time when no union branch matches the
// value being serialized, or an enum value lies outside the declared set.
type InvalidValueError struct {
	Message string
}

func (e *InvalidValueError) Error() string { return fmt.Sprintf("invalid value: %s", e.Message) }

func describeSchema(s Schema) string {
	if s == nil {
		return "<nil>"
	}
	return string(s.Kind())
}
