// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avroplan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnionNullablePointerNull(t *testing.T) {
	schema := Union(Null(), Int())
	ser, err := NewSerializer[*int32](schema)
	require.NoError(t, err)

	w := NewWriter()
	require.NoError(t, ser(nil, w))
	require.Equal(t, []byte{0x00}, w.Bytes())

	deser, err := NewDeserializer[*int32](schema)
	require.NoError(t, err)
	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUnionNullablePointerValue(t *testing.T) {
	schema := Union(Null(), Int())
	ser, err := NewSerializer[*int32](schema)
	require.NoError(t, err)

	three := int32(3)
	w := NewWriter()
	require.NoError(t, ser(&three, w))
	require.Equal(t, []byte{0x02, 0x06}, w.Bytes())

	deser, err := NewDeserializer[*int32](schema)
	require.NoError(t, err)
	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, three, *got)
}

func TestUnionGeneralDispatchByRuntimeType(t *testing.T) {
	schema := Union(Null(), Int(), String())
	ser, err := NewSerializer[any](schema)
	require.NoError(t, err)

	w := NewWriter()
	require.NoError(t, ser("hello", w))

	deser, err := NewDeserializer[any](schema)
	require.NoError(t, err)
	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestUnionGeneralDispatchNull(t *testing.T) {
	schema := Union(Null(), Int(), String())
	ser, err := NewSerializer[any](schema)
	require.NoError(t, err)

	w := NewWriter()
	require.NoError(t, ser(nil, w))
	require.Equal(t, []byte{0x00}, w.Bytes())
}

func TestUnionRejectsValueWithNoMatchingBranch(t *testing.T) {
	schema := Union(Null(), Int(), String())
	ser, err := NewSerializer[any](schema)
	require.NoError(t, err)

	w := NewWriter()
	err = ser(3.5, w)
	require.Error(t, err)
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
}

func TestUnionDeserializeRejectsOutOfRangeIndex(t *testing.T) {
	schema := Union(Null(), Int())
	deser, err := NewDeserializer[*int32](schema)
	require.NoError(t, err)

	r := NewReader([]byte{0x08}) // branch index 4, only 2 branches declared
	_, err = deser(r)
	require.Error(t, err)
	var invalid *InvalidEncoding
	require.ErrorAs(t, err, &invalid)
}

func TestUnionEmptyBranchesRejected(t *testing.T) {
	schema := Union()
	_, err := NewSerializer[any](schema)
	require.Error(t, err)
	var unsupported *UnsupportedSchema
	require.ErrorAs(t, err, &unsupported)
}

type linkedNode struct {
	Value int32
	Next  *linkedNode
}

func TestUnionRecursiveRecordViaNullableSelf(t *testing.T) {
	list := Record("linkedNode")
	list.SetFields(
		Field{"Value", Int()},
		Field{"Next", Union(Null(), list)},
	)

	ser, err := NewSerializer[*linkedNode](list)
	require.NoError(t, err)
	deser, err := NewDeserializer[*linkedNode](list)
	require.NoError(t, err)

	chain := &linkedNode{Value: 1, Next: &linkedNode{Value: 2, Next: &linkedNode{Value: 3}}}

	w := NewWriter()
	require.NoError(t, ser(chain, w))

	got, err := deser(NewReader(w.Bytes()))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int32(1), got.Value)
	require.NotNil(t, got.Next)
	require.Equal(t, int32(2), got.Next.Value)
	require.NotNil(t, got.Next.Next)
	require.Equal(t, int32(3), got.Next.Next.Value)
	require.Nil(t, got.Next.Next.Next)
}

func TestUnionSkipRecognizesEveryBranch(t *testing.T) {
	schema := Union(Null(), Int(), String())
	skip, err := BuildSkipper(schema)
	require.NoError(t, err)

	w := NewWriter()
	w.WriteLong(2) // string branch
	w.WriteString("discard me")

	r := NewReader(w.Bytes())
	require.NoError(t, skip(r))
	require.Equal(t, len(w.Bytes()), r.Pos())
}
