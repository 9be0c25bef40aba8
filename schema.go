package avroplan

// Kind identifies the tagged variant of a Schema node.
type Kind string

const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindInt     Kind = "int"
	KindLong    Kind = "long"
	KindFloat   Kind = "float"
	KindDouble  Kind = "double"
	KindBytes   Kind = "bytes"
	KindString  Kind = "string"
	KindFixed   Kind = "fixed"
	KindEnum    Kind = "enum"
	KindArray   Kind = "array"
	KindMap     Kind = "map"
	KindRecord  Kind = "record"
	KindUnion   Kind = "union"
)

// Schema is a tagged-variant node of an already-built Avro schema tree.
// Schema nodes are constructed once and treated as immutable; Record and
// Union nodes may form cycles, which is why recursion detection throughout
// this package is done by pointer identity rather than by value.
//
// Building schema trees out of JSON declarations, resolving names, and
// canonicalizing full names are out of scope for this package: callers
// (or a higher-level schema-model package) hand the core an already-built
// tree via the constructors below.
type Schema interface {
	Kind() Kind
	// Logical returns the optional logical-type annotation carried by this
	// node, or nil.
	Logical() LogicalType
}

// LogicalType is a semantic overlay on a primitive schema node.
type LogicalType interface {
	logicalTypeName() string
}

type baseSchema struct {
	kind    Kind
	logical LogicalType
}

func (b *baseSchema) Kind() Kind           { return b.kind }
func (b *baseSchema) Logical() LogicalType { return b.logical }

// NullSchema represents the Avro "null" type.
type NullSchema struct{ baseSchema }

// BooleanSchema represents the Avro "boolean" type.
type BooleanSchema struct{ baseSchema }

// IntSchema represents the Avro "int" type.
type IntSchema struct{ baseSchema }

// LongSchema represents the Avro "long" type.
type LongSchema struct{ baseSchema }

// FloatSchema represents the Avro "float" type.
type FloatSchema struct{ baseSchema }

// DoubleSchema represents the Avro "double" type.
type DoubleSchema struct{ baseSchema }

// BytesSchema represents the Avro "bytes" type.
type BytesSchema struct{ baseSchema }

// StringSchema represents the Avro "string" type.
type StringSchema struct{ baseSchema }

// FixedSchema represents the Avro "fixed" type of a declared byte Size.
type FixedSchema struct {
	baseSchema
	Name string
	Size int
}

// EnumSchema represents the Avro "enum" type with an ordered symbol list
// and an optional default symbol. Default is stored on the schema only; the
// enum deserializer does not read it.
type EnumSchema struct {
	baseSchema
	Name    string
	Symbols []string
	Default string // empty means "no default declared"
}

// ArraySchema represents the Avro "array" type.
type ArraySchema struct {
	baseSchema
	Items Schema
}

// MapSchema represents the Avro "map" type; keys are always strings on the
// wire.
type MapSchema struct {
	baseSchema
	Values Schema
}

// Field is one member of a RecordSchema, in schema declaration order.
type Field struct {
	Name string
	Type Schema
}

// RecordSchema represents the Avro "record" type. Fields may reference the
// enclosing *RecordSchema to form a self-referential (recursive) schema;
// recursion is detected by comparing the *RecordSchema pointer, not by
// value, per the package's identity-equality invariant.
type RecordSchema struct {
	baseSchema
	FullName string
	Fields   []Field
}

// UnionSchema represents the Avro "union" type: a varint branch index
// followed by the selected branch's encoding.
type UnionSchema struct {
	baseSchema
	Branches []Schema
}

// Constructors. These are intentionally thin: they assemble a tree, they do
// not parse, validate names, or resolve references — that belongs to an
// external schema-model package per spec's scope boundary.

func Null() *NullSchema       { return &NullSchema{baseSchema{kind: KindNull}} }
func Boolean() *BooleanSchema { return &BooleanSchema{baseSchema{kind: KindBoolean}} }
func Int() *IntSchema         { return &IntSchema{baseSchema{kind: KindInt}} }
func Long() *LongSchema       { return &LongSchema{baseSchema{kind: KindLong}} }
func Float() *FloatSchema     { return &FloatSchema{baseSchema{kind: KindFloat}} }
func Double() *DoubleSchema   { return &DoubleSchema{baseSchema{kind: KindDouble}} }
func Bytes() *BytesSchema     { return &BytesSchema{baseSchema{kind: KindBytes}} }
func String() *StringSchema   { return &StringSchema{baseSchema{kind: KindString}} }

func Fixed(name string, size int) *FixedSchema {
	return &FixedSchema{baseSchema: baseSchema{kind: KindFixed}, Name: name, Size: size}
}

func Enum(name string, symbols []string, defaultSymbol string) *EnumSchema {
	return &EnumSchema{baseSchema: baseSchema{kind: KindEnum}, Name: name, Symbols: symbols, Default: defaultSymbol}
}

func Array(items Schema) *ArraySchema {
	return &ArraySchema{baseSchema: baseSchema{kind: KindArray}, Items: items}
}

func MapOf(values Schema) *MapSchema {
	return &MapSchema{baseSchema: baseSchema{kind: KindMap}, Values: values}
}

// Record constructs an empty record; fields are attached afterward via
// SetFields so a record can reference itself (directly, or nested inside
// an array/map/union) before its own field list is complete.
func Record(fullName string) *RecordSchema {
	return &RecordSchema{baseSchema: baseSchema{kind: KindRecord}, FullName: fullName}
}

// SetFields attaches the field list to a record, returning the record for
// chaining. Call this after constructing any self-reference so the cycle
// can be wired up: r := Record("list"); r.SetFields(Field{"next", Union(Null(), r)}).
func (r *RecordSchema) SetFields(fields ...Field) *RecordSchema {
	r.Fields = fields
	return r
}

func Union(branches ...Schema) *UnionSchema {
	return &UnionSchema{baseSchema: baseSchema{kind: KindUnion}, Branches: branches}
}

// WithLogical attaches a logical-type annotation to a schema node and
// returns it for chaining. Only Int, Long, Bytes and Fixed nodes take an
// annotation; any other node is returned unchanged. The (schema, logical
// type) pair is not validated here. A decimal annotation on a node other
// than Bytes or Fixed is rejected with UnsupportedSchema when a plan is
// built; for the other logical types, a node of the wrong kind is handled
// by the plain primitive case, whose conversion fails at run time because
// no rule is registered for that pair.
func WithLogical[S Schema](schema S, logical LogicalType) S {
	switch v := any(schema).(type) {
	case *IntSchema:
		v.logical = logical
	case *LongSchema:
		v.logical = logical
	case *BytesSchema:
		v.logical = logical
	case *FixedSchema:
		v.logical = logical
	}
	return schema
}
