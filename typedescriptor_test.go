package avroplan

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalNameStripsPunctuationAndFolds(t *testing.T) {
	require.Equal(t, CanonicalName("order_id"), CanonicalName("OrderID"))
	require.Equal(t, CanonicalName("first-name"), CanonicalName("FirstName"))
	require.NotEqual(t, CanonicalName("a"), CanonicalName("b"))
}

type descriptorHost struct {
	OrderID string
	Total   int32
	hidden  bool
}

func TestReflectTypeDescriptorEnumeratesExportedFieldsOnly(t *testing.T) {
	d := NewReflectTypeDescriptor(descriptorHost{})
	require.Equal(t, reflect.TypeOf(descriptorHost{}), d.GoType())

	names := make(map[string]bool)
	for _, m := range d.Members() {
		names[m.Name] = true
	}
	require.True(t, names["OrderID"])
	require.True(t, names["Total"])
	require.False(t, names["hidden"])
}

func TestReflectTypeDescriptorGetSet(t *testing.T) {
	d := NewReflectTypeDescriptor(descriptorHost{})
	host := &descriptorHost{OrderID: "x", Total: 1}

	var totalMember Member
	for _, m := range d.Members() {
		if m.Name == "Total" {
			totalMember = m
		}
	}
	require.Equal(t, int32(1), totalMember.Get(host))

	totalMember.Set(host, int32(5))
	require.Equal(t, int32(5), host.Total)
}

func TestReflectTypeDescriptorNameMatchesIsCanonical(t *testing.T) {
	d := NewReflectTypeDescriptor(descriptorHost{})
	require.True(t, d.NameMatches("order_id", "OrderID"))
	require.False(t, d.NameMatches("total", "OrderID"))
}

func TestReflectTypeDescriptorConstructorAllocatesZeroValue(t *testing.T) {
	d := NewReflectTypeDescriptor(descriptorHost{})
	ctors := d.Constructors()
	require.Len(t, ctors, 1)

	v := ctors[0].New(nil)
	host, ok := v.(descriptorHost)
	require.True(t, ok)
	require.Equal(t, descriptorHost{}, host)
}

func TestReflectTypeDescriptorNonStructHasNoMembersOrConstructors(t *testing.T) {
	d := NewReflectTypeDescriptor(int32(0))
	require.Equal(t, reflect.TypeOf(int32(0)), d.GoType())
	require.Empty(t, d.Members())
	require.Empty(t, d.Constructors())
}

func TestNewZeroValuePtrProducesAddressableZero(t *testing.T) {
	d := NewReflectTypeDescriptor(descriptorHost{})
	v := newZeroValuePtr(d)
	require.Equal(t, reflect.Ptr, v.Kind())
	require.Equal(t, descriptorHost{}, v.Elem().Interface())
}
