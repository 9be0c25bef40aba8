package avroplan

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimalBytesRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 12345, -12345, 1 << 40, -(1 << 40)} {
		w := NewWriter()
		encodeDecimalBytes(w, DecimalValue{Unscaled: big.NewInt(n)})
		r := NewReader(w.Bytes())
		got, err := decodeDecimalBytes(r)
		require.NoError(t, err)
		require.Equal(t, 0, big.NewInt(n).Cmp(got.Unscaled))
	}
}

func TestDecimalFixedRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, encodeDecimalFixed(w, DecimalValue{Unscaled: big.NewInt(-12345)}, 8))
	require.Len(t, w.Bytes(), 8)

	r := NewReader(w.Bytes())
	got, err := decodeDecimalFixed(r, 8)
	require.NoError(t, err)
	require.Equal(t, 0, big.NewInt(-12345).Cmp(got.Unscaled))
}

func TestDecimalFixedOverflowRejected(t *testing.T) {
	w := NewWriter()
	huge := new(big.Int).Exp(big.NewInt(2), big.NewInt(64), nil)
	err := encodeDecimalFixed(w, DecimalValue{Unscaled: huge}, 4)
	require.Error(t, err)
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestDecimalScaleOfReadsAnnotation(t *testing.T) {
	schema := WithLogical(Bytes(), &DecimalLogicalType{Precision: 9, Scale: 3})
	require.Equal(t, 3, decimalScaleOf(schema))
	require.Equal(t, 0, decimalScaleOf(Bytes()))
}

func TestDurationRoundTrip(t *testing.T) {
	dv := DurationValue{Months: 2, Days: 10, Millis: 3600000}
	w := NewWriter()
	encodeDuration(w, dv)
	require.Len(t, w.Bytes(), durationFixedSize)

	r := NewReader(w.Bytes())
	got, err := decodeDuration(r)
	require.NoError(t, err)
	require.Equal(t, dv, got)
}

func TestDateTimeTimestampPlainFraming(t *testing.T) {
	w := NewWriter()
	encodeDate(w, 19000)
	encodeTimeMillis(w, 43200000)
	encodeTimeMicros(w, 43200000000)
	encodeTimestamp(w, 1785000000000)

	r := NewReader(w.Bytes())
	days, err := decodeDate(r)
	require.NoError(t, err)
	require.Equal(t, int32(19000), days)

	millis, err := decodeTimeMillis(r)
	require.NoError(t, err)
	require.Equal(t, int32(43200000), millis)

	micros, err := decodeTimeMicros(r)
	require.NoError(t, err)
	require.Equal(t, int64(43200000000), micros)

	ts, err := decodeTimestamp(r)
	require.NoError(t, err)
	require.Equal(t, int64(1785000000000), ts)
}

func TestTwosComplementRoundTripBoundaries(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 127, -128, 128, -129, math.MinInt64 / 2} {
		b := bigIntToTwosComplement(big.NewInt(n), 0)
		got := twosComplementToBigInt(b)
		require.Equal(t, 0, big.NewInt(n).Cmp(got))
	}
}
