package avroplan

import (
	"math/big"
	"testing"

	"github.com/mohae/deepcopy"
	"github.com/stretchr/testify/require"
)

// Scenario 1/2/3: long zigzag varint wire bytes.
func TestScenarioLongZigzagWireBytes(t *testing.T) {
	ser, err := NewSerializer[int64](Long())
	require.NoError(t, err)
	deser, err := NewDeserializer[int64](Long())
	require.NoError(t, err)

	cases := []struct {
		value int64
		wire  []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x01}},
		{64, []byte{0x80, 0x01}},
	}
	for _, c := range cases {
		w := NewWriter()
		require.NoError(t, ser(c.value, w))
		require.Equal(t, c.wire, w.Bytes())

		got, err := deser(NewReader(c.wire))
		require.NoError(t, err)
		require.Equal(t, c.value, got)
	}
}

// Scenario 4: string length-prefixed wire bytes.
func TestScenarioStringWireBytes(t *testing.T) {
	ser, err := NewSerializer[string](String())
	require.NoError(t, err)
	deser, err := NewDeserializer[string](String())
	require.NoError(t, err)

	w := NewWriter()
	require.NoError(t, ser("foo", w))
	require.Equal(t, []byte{0x06, 0x66, 0x6f, 0x6f}, w.Bytes())

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "foo", got)
}

// Scenario 5: array<int> single block framing.
func TestScenarioArrayIntWireBytes(t *testing.T) {
	schema := Array(Int())
	ser, err := NewSerializer[[]int32](schema)
	require.NoError(t, err)
	deser, err := NewDeserializer[[]int32](schema)
	require.NoError(t, err)

	w := NewWriter()
	require.NoError(t, ser([]int32{1, 2, 3}, w))
	require.Equal(t, []byte{0x06, 0x02, 0x04, 0x06, 0x00}, w.Bytes())

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, got)
}

// Scenario 6: union<null,string> non-null branch.
func TestScenarioUnionNullStringWireBytes(t *testing.T) {
	schema := Union(Null(), String())
	ser, err := NewSerializer[*string](schema)
	require.NoError(t, err)
	deser, err := NewDeserializer[*string](schema)
	require.NoError(t, err)

	x := "x"
	w := NewWriter()
	require.NoError(t, ser(&x, w))
	require.Equal(t, []byte{0x02, 0x02, 0x78}, w.Bytes())

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "x", *got)
}

// Scenario 7: record{a:int,b:string} field order.
type scenarioRecord struct {
	A int32
	B string
}

func TestScenarioRecordFieldOrderWireBytes(t *testing.T) {
	schema := Record("scenarioRecord")
	schema.SetFields(Field{"a", Int()}, Field{"b", String()})

	ser, err := NewSerializer[scenarioRecord](schema)
	require.NoError(t, err)
	deser, err := NewDeserializer[scenarioRecord](schema)
	require.NoError(t, err)

	w := NewWriter()
	require.NoError(t, ser(scenarioRecord{A: 1, B: "h"}, w))
	require.Equal(t, []byte{0x02, 0x02, 0x68}, w.Bytes())

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, scenarioRecord{A: 1, B: "h"}, got)
}

// Scenario 8: decimal(precision=5,scale=2) over bytes, value 123.45.
func TestScenarioDecimalBytesWireBytes(t *testing.T) {
	schema := WithLogical(Bytes(), &DecimalLogicalType{Precision: 5, Scale: 2})
	ser, err := NewSerializer[*big.Rat](schema)
	require.NoError(t, err)
	deser, err := NewDeserializer[DecimalValue](schema)
	require.NoError(t, err)

	value := new(big.Rat).SetFrac64(12345, 100) // 123.45
	w := NewWriter()
	require.NoError(t, ser(value, w))
	require.Equal(t, []byte{0x04, 0x30, 0x39}, w.Bytes())

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 0, big.NewInt(12345).Cmp(got.Unscaled))
	require.Equal(t, 2, got.Scale)
}

// Property: nested containers round-trip to depth 3.
func TestRoundTripNestedContainersDepthThree(t *testing.T) {
	schema := Array(MapOf(Array(Int())))
	ser, err := NewSerializer[[]map[string][]int32](schema)
	require.NoError(t, err)
	deser, err := NewDeserializer[[]map[string][]int32](schema)
	require.NoError(t, err)

	value := []map[string][]int32{
		{"a": {1, 2}, "b": {3}},
		{},
	}
	w := NewWriter()
	require.NoError(t, ser(value, w))

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)

	// Deep-copy the expected value before comparing, the way the teacher's
	// own binary_test.go guards its datum comparisons: got and value must
	// not merely alias the same backing arrays for this to be a real
	// round-trip check rather than an identity check.
	expected := deepcopy.Copy(value).([]map[string][]int32)
	require.Equal(t, expected, got)
}

// Property: block framing yields the same items whether encoded as one
// positive block or (for decode) a negative-count block followed by a
// byte length, exercised directly against Reader/Writer in
// TestReaderBlockHeaderNegativeCountConsumesByteLength.
func TestRoundTripArrayOfRecords(t *testing.T) {
	item := Record("scenarioRecord")
	item.SetFields(Field{"a", Int()}, Field{"b", String()})
	schema := Array(item)

	ser, err := NewSerializer[[]scenarioRecord](schema)
	require.NoError(t, err)
	deser, err := NewDeserializer[[]scenarioRecord](schema)
	require.NoError(t, err)

	value := []scenarioRecord{{A: 1, B: "one"}, {A: 2, B: "two"}}
	w := NewWriter()
	require.NoError(t, ser(value, w))

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, value, got)
}

// Property: skip equivalence — a skip plan advances the reader exactly as
// far as the full deserializer does, for a record with mixed field kinds.
func TestSkipEquivalenceMatchesDeserializerByteCount(t *testing.T) {
	schema := Record("scenarioRecord")
	schema.SetFields(Field{"a", Int()}, Field{"b", String()})

	ser, err := NewSerializer[scenarioRecord](schema)
	require.NoError(t, err)
	deser, err := NewDeserializer[scenarioRecord](schema)
	require.NoError(t, err)
	skip, err := BuildSkipper(schema)
	require.NoError(t, err)

	w := NewWriter()
	require.NoError(t, ser(scenarioRecord{A: 7, B: "seven"}, w))

	r1 := NewReader(w.Bytes())
	_, err = deser(r1)
	require.NoError(t, err)

	r2 := NewReader(w.Bytes())
	require.NoError(t, skip(r2))

	require.Equal(t, r1.Pos(), r2.Pos())
}

// Property: self-referential record round-trips and terminates.
func TestRoundTripSelfReferentialLinkedList(t *testing.T) {
	list := Record("linkedNode")
	list.SetFields(Field{"Value", Int()}, Field{"Next", Union(Null(), list)})

	ser, err := NewSerializer[*linkedNode](list)
	require.NoError(t, err)
	deser, err := NewDeserializer[*linkedNode](list)
	require.NoError(t, err)

	chain := &linkedNode{Value: 10, Next: &linkedNode{Value: 20}}
	w := NewWriter()
	require.NoError(t, ser(chain, w))

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, chain.Value, got.Value)
	require.Equal(t, chain.Next.Value, got.Next.Value)
	require.Nil(t, got.Next.Next)
}
