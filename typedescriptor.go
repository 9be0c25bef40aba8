package avroplan

import (
	"reflect"
	"unsafe"

	"github.com/ettle/strcase"
	"github.com/modern-go/reflect2"
)

// MemberKind classifies what a host member (struct field, accessor pair)
// looks like to the plan builders.
type MemberKind int

const (
	MemberField MemberKind = iota
)

// Member describes one public field/property on a host type: its
// declared Go type and read/write accessors.
type Member struct {
	Name string
	Type reflect.Type
	Get  func(receiver any) any
	Set  func(receiver any, value any)
}

// ConstructorParam describes one parameter of a candidate constructor.
type ConstructorParam struct {
	Name         string
	Type         reflect.Type
	HasDefault   bool
	DefaultValue any
}

// Constructor describes one candidate constructor for a record target
// type: an ordered parameter list and a function that builds the value
// given arguments matched positionally to Params.
type Constructor struct {
	Params []ConstructorParam
	New    func(args []any) any
}

// TypeDescriptor describes a host-language type targeted by serialization
// or deserialization: its Go type, its public members, its constructors, and
// an equivalence predicate for matching a schema name or symbol to a
// member name. This is, per spec.md §1, a consumed abstraction — the core
// never performs attribute-driven reflection discovery itself beyond the
// default adapter this file provides for a module that must otherwise be
// handed a TypeDescriptor.
type TypeDescriptor interface {
	// GoType returns the underlying reflect.Type this descriptor describes.
	GoType() reflect.Type
	// Members enumerates the public fields/properties available for
	// record field matching.
	Members() []Member
	// Constructors enumerates candidate constructors in preference order
	// (the first whose parameters can all be satisfied wins).
	Constructors() []Constructor
	// NameMatches reports whether a schema-side name (a field name or enum
	// symbol) canonically matches a host-side member/parameter name: both
	// sides are stripped of non-alphanumeric characters and compared
	// case-insensitively, unless the descriptor overrides this with an
	// attribute-driven policy the core never inspects directly.
	NameMatches(schemaName, hostName string) bool
}

// CanonicalName strips all non-alphanumeric characters from s and
// lower-cases it, implementing the canonical name-matching policy spec.md
// §9 describes. github.com/ettle/strcase is used for the ASCII case-fold;
// the non-alphanumeric strip is a simple byte filter since strcase itself
// has no "strip punctuation" primitive.
func CanonicalName(s string) string {
	filtered := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			filtered = append(filtered, c)
		}
	}
	return strcase.ToCase(string(filtered), strcase.LowerCase, '\x00')
}

// reflectTypeDescriptor is the default TypeDescriptor adapter, built on a
// struct's exported fields via modern-go/reflect2. It gives the module a
// working end-to-end path without requiring every caller to hand-write a
// TypeDescriptor, the way hamba/avro ships its own reflection encoder
// rather than deferring to a separate package.
type reflectTypeDescriptor struct {
	rt      reflect.Type
	r2      reflect2.Type
	members []Member
}

// NewReflectTypeDescriptor builds the default TypeDescriptor for a Go
// struct type (or pointer-to-struct) using field reflection. Unexported
// fields are not members.
func NewReflectTypeDescriptor(sample any) TypeDescriptor {
	rt := reflect.TypeOf(sample)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	r2 := reflect2.Type2(rt)

	d := &reflectTypeDescriptor{rt: rt, r2: r2}
	if rt.Kind() != reflect.Struct {
		return d
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		idx := i
		d.members = append(d.members, Member{
			Name: f.Name,
			Type: f.Type,
			Get: func(receiver any) any {
				v := reflect.ValueOf(receiver)
				for v.Kind() == reflect.Ptr {
					v = v.Elem()
				}
				return v.Field(idx).Interface()
			},
			Set: func(receiver any, value any) {
				v := reflect.ValueOf(receiver)
				for v.Kind() == reflect.Ptr {
					v = v.Elem()
				}
				fv := v.Field(idx)
				if value == nil {
					fv.Set(reflect.Zero(fv.Type()))
					return
				}
				fv.Set(reflect.ValueOf(value).Convert(fv.Type()))
			},
		})
	}
	return d
}

func (d *reflectTypeDescriptor) GoType() reflect.Type { return d.rt }
func (d *reflectTypeDescriptor) Members() []Member     { return d.members }

// Constructors returns a single default-constructor candidate: allocate a
// zero value via reflect2's unsafe fast path and assign every matched
// field by name. Structs exposing a richer constructor set (for
// immutable/record-style types) should supply their own TypeDescriptor.
func (d *reflectTypeDescriptor) Constructors() []Constructor {
	if d.rt.Kind() != reflect.Struct {
		return nil
	}
	r2 := d.r2
	return []Constructor{{
		Params: nil,
		New: func(_ []any) any {
			ptr := r2.UnsafeNew()
			return r2.UnsafeIndirect(ptr)
		},
	}}
}

func (d *reflectTypeDescriptor) NameMatches(schemaName, hostName string) bool {
	return CanonicalName(schemaName) == CanonicalName(hostName)
}

// newZeroValuePtr allocates a new *T (T = descriptor's Go type) and
// returns it as a reflect.Value pointing at the zero value, using
// reflect2's unsafe allocation path for the fast case the design notes
// call for.
func newZeroValuePtr(d TypeDescriptor) reflect.Value {
	rt := d.GoType()
	ptr := reflect2.Type2(rt).UnsafeNew()
	return reflect.NewAt(rt, unsafe.Pointer(ptr))
}
