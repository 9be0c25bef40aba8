package avroplan

import (
	"fmt"
	"log/slog"
	"reflect"
)

// SerializerPlan is a pre-compiled callable specialized to one
// (schema, host-type) pair: it writes value to w.
type SerializerPlan func(value any, w *Writer) error

// DeserializerPlan is a pre-compiled callable specialized to one
// (schema, host-type) pair: it reads and returns one value from r.
type DeserializerPlan func(r *Reader) (any, error)

// MemoKey identifies one (schema-identity, target-type) pair in the Build
// Context's memo table. Schema identity is pointer (interface value)
// equality, matching the package-wide recursion invariant.
type MemoKey struct {
	Schema Schema
	Type   reflect.Type
}

type serializerCell struct {
	name string
	plan SerializerPlan // nil until the recursive build reaches back here
}

type deserializerCell struct {
	name string
	plan DeserializerPlan
}

// BuildContext carries all per-top-level-build state: the ordered list of
// top-level named bindings, the recursion-breaking memo, the recursion
// marking table, and the case lists the plan builders consult. One
// BuildContext belongs to exactly one construction pass; concurrent
// builds must each create their own via NewBuildContext.
type BuildContext struct {
	logger      *slog.Logger
	conversions *ConversionBuilder
	descriptors map[reflect.Type]TypeDescriptor

	recursion *RecursionAnalyzer

	serializerMemo     map[MemoKey]*serializerCell
	serializerOrder    []string
	deserializerMemo   map[MemoKey]*deserializerCell
	deserializerOrder  []string

	serializerCases   []serializerCase
	deserializerCases []deserializerCase

	bindingSeq int
}

// Option configures a BuildContext at construction time.
type Option func(*BuildContext)

// WithLogger injects a structured logger the builders use for build-time
// diagnostics (which case matched each schema node). Without this option,
// or with a nil logger, all output is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(bc *BuildContext) {
		if l != nil {
			bc.logger = l
		}
	}
}

// WithConversionBuilder overrides the default Conversion Builder (component
// D), e.g. to register additional coercions ahead of time.
func WithConversionBuilder(cb *ConversionBuilder) Option {
	return func(bc *BuildContext) { bc.conversions = cb }
}

// WithTypeDescriptor registers an explicit TypeDescriptor for a Go type,
// overriding the default reflect-based adapter the plan builders would
// otherwise construct on demand.
func WithTypeDescriptor(t reflect.Type, d TypeDescriptor) Option {
	return func(bc *BuildContext) { bc.descriptors[t] = d }
}

// PrependSerializerCase installs a custom case that is tried before every
// built-in serializer case, letting a caller intercept specific
// (schema, type) pairs — for example, polymorphic unions keyed on record
// names, per spec.md §6.
func PrependSerializerCase(c serializerCase) Option {
	return func(bc *BuildContext) {
		bc.serializerCases = append([]serializerCase{c}, bc.serializerCases...)
	}
}

// PrependDeserializerCase is the deserializer-side analogue of
// PrependSerializerCase.
func PrependDeserializerCase(c deserializerCase) Option {
	return func(bc *BuildContext) {
		bc.deserializerCases = append([]deserializerCase{c}, bc.deserializerCases...)
	}
}

// NewBuildContext constructs a fresh per-build context for root, running
// the Recursion Analyzer once up front so every plan builder case can
// cheaply consult IsRecursive.
func NewBuildContext(root Schema, opts ...Option) *BuildContext {
	bc := &BuildContext{
		logger:           slog.New(slog.NewTextHandler(discardWriter{}, nil)),
		conversions:      NewConversionBuilder(),
		descriptors:      make(map[reflect.Type]TypeDescriptor),
		recursion:        AnalyzeRecursion(root),
		serializerMemo:   make(map[MemoKey]*serializerCell),
		deserializerMemo: make(map[MemoKey]*deserializerCell),
	}
	bc.serializerCases = defaultSerializerCases()
	bc.deserializerCases = defaultDeserializerCases()
	for _, opt := range opts {
		opt(bc)
	}
	return bc
}

// Bindings returns the names of every top-level recursive binding emitted
// during the serializer build, in the order they were created, for
// diagnostics and caching per spec.md §6.
func (bc *BuildContext) Bindings() []string { return append([]string(nil), bc.serializerOrder...) }

// DeserializerBindings is the deserializer-side analogue of Bindings.
func (bc *BuildContext) DeserializerBindings() []string {
	return append([]string(nil), bc.deserializerOrder...)
}

func (bc *BuildContext) descriptorFor(t reflect.Type) TypeDescriptor {
	if d, ok := bc.descriptors[t]; ok {
		return d
	}
	d := NewReflectTypeDescriptor(reflect.New(t).Elem().Interface())
	bc.descriptors[t] = d
	return d
}

func (bc *BuildContext) nextBindingName(prefix string) string {
	bc.bindingSeq++
	return fmt.Sprintf("%s%d", prefix, bc.bindingSeq)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
