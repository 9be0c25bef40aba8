package avroplan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDynamicRecordProducesMap(t *testing.T) {
	schema := Record("scenarioRecord")
	schema.SetFields(Field{"a", Int()}, Field{"b", String()})

	ser, err := NewSerializer[scenarioRecord](schema)
	require.NoError(t, err)
	w := NewWriter()
	require.NoError(t, ser(scenarioRecord{A: 9, B: "nine"}, w))

	v, err := DecodeDynamic(schema, NewReader(w.Bytes()))
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	// Int/Long both decode to the wire-natural int64 in dynamic mode, since
	// there is no concrete host integer width to narrow to.
	require.Equal(t, int64(9), m["a"])
	require.Equal(t, "nine", m["b"])
}

func TestDecodeDynamicArrayProducesSliceOfAny(t *testing.T) {
	schema := Array(Int())
	ser, err := NewSerializer[[]int32](schema)
	require.NoError(t, err)
	w := NewWriter()
	require.NoError(t, ser([]int32{1, 2, 3}, w))

	v, err := DecodeDynamic(schema, NewReader(w.Bytes()))
	require.NoError(t, err)
	items, ok := v.([]any)
	require.True(t, ok)
	require.Equal(t, []any{int64(1), int64(2), int64(3)}, items)
}

func TestDecodeDynamicMapProducesMapOfAny(t *testing.T) {
	schema := MapOf(String())
	ser, err := NewSerializer[map[string]string](schema)
	require.NoError(t, err)
	w := NewWriter()
	require.NoError(t, ser(map[string]string{"k": "v"}, w))

	v, err := DecodeDynamic(schema, NewReader(w.Bytes()))
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "v", m["k"])
}

type dynamicTarget struct {
	A int32
	B string
}

func TestDecodeDynamicIntoBridgesToConcreteStruct(t *testing.T) {
	schema := Record("scenarioRecord")
	schema.SetFields(Field{"A", Int()}, Field{"B", String()})

	ser, err := NewSerializer[scenarioRecord](schema)
	require.NoError(t, err)
	w := NewWriter()
	require.NoError(t, ser(scenarioRecord{A: 3, B: "three"}, w))

	var got dynamicTarget
	require.NoError(t, DecodeDynamicInto(schema, NewReader(w.Bytes()), &got))
	require.Equal(t, dynamicTarget{A: 3, B: "three"}, got)
}

func TestDecodeDynamicSelfReferentialRecordTerminates(t *testing.T) {
	list := Record("linkedNode")
	list.SetFields(Field{"Value", Int()}, Field{"Next", Union(Null(), list)})

	ser, err := NewSerializer[*linkedNode](list)
	require.NoError(t, err)
	w := NewWriter()
	chain := &linkedNode{Value: 1, Next: &linkedNode{Value: 2}}
	require.NoError(t, ser(chain, w))

	v, err := DecodeDynamic(list, NewReader(w.Bytes()))
	require.NoError(t, err)
	top, ok := v.(map[string]any)
	require.True(t, ok)
	require.Equal(t, int64(1), top["Value"])
	next, ok := top["Next"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, int64(2), next["Value"])
	require.Nil(t, next["Next"])
}
