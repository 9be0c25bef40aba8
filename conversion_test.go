package avroplan

import (
	"math"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConversionBuilderIntegerWidenNarrow(t *testing.T) {
	cb := NewConversionBuilder()

	wire, err := cb.ToWire(Long(), int32(42))
	require.NoError(t, err)
	require.Equal(t, int64(42), wire)

	host, err := cb.FromWire(Long(), int64(42), reflect.TypeOf(int8(0)))
	require.NoError(t, err)
	require.Equal(t, int8(42), host)

	_, err = cb.FromWire(Long(), int64(1000), reflect.TypeOf(int8(0)))
	require.Error(t, err)
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestConversionBuilderUnsignedOverflowRejected(t *testing.T) {
	cb := NewConversionBuilder()
	_, err := cb.ToWire(Long(), uint64(math.MaxUint64))
	require.Error(t, err)
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestConversionBuilderFloatDoubleWiden(t *testing.T) {
	cb := NewConversionBuilder()

	wire, err := cb.ToWire(Double(), float32(3.5))
	require.NoError(t, err)
	require.Equal(t, float64(3.5), wire)

	host, err := cb.FromWire(Float(), float32(1.5), reflect.TypeOf(float64(0)))
	require.NoError(t, err)
	require.Equal(t, float64(1.5), host)
}

func TestConversionBuilderStringUUIDRoundTrip(t *testing.T) {
	cb := NewConversionBuilder()
	id := uuid.New()

	wire, err := cb.ToWire(String(), id)
	require.NoError(t, err)
	require.Equal(t, id.String(), wire)

	host, err := cb.FromWire(String(), id.String(), reflect.TypeOf(uuid.UUID{}))
	require.NoError(t, err)
	require.Equal(t, id, host)
}

func TestConversionBuilderStringTimeRoundTrip(t *testing.T) {
	cb := NewConversionBuilder()
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	wire, err := cb.ToWire(String(), now)
	require.NoError(t, err)

	host, err := cb.FromWire(String(), wire, reflect.TypeOf(time.Time{}))
	require.NoError(t, err)
	require.True(t, now.Equal(host.(time.Time)))
}

func TestConversionBuilderStringURLRoundTrip(t *testing.T) {
	cb := NewConversionBuilder()
	u, err := url.Parse("https://example.com/path?q=1")
	require.NoError(t, err)

	wire, err := cb.ToWire(String(), u)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/path?q=1", wire)

	host, err := cb.FromWire(String(), wire, reflect.TypeOf((*url.URL)(nil)))
	require.NoError(t, err)
	require.Equal(t, u.String(), host.(*url.URL).String())
}

func TestConversionBuilderBytesStringInterop(t *testing.T) {
	cb := NewConversionBuilder()

	wire, err := cb.ToWire(Bytes(), "payload")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), wire)

	host, err := cb.FromWire(Bytes(), []byte("payload"), reflect.TypeOf(""))
	require.NoError(t, err)
	require.Equal(t, "payload", host)
}

func TestConversionBuilderUnregisteredRuleErrors(t *testing.T) {
	cb := &ConversionBuilder{}
	_, err := cb.ToWire(Int(), int32(1))
	require.Error(t, err)
}

func TestConversionBuilderRegisterOverridesBuiltin(t *testing.T) {
	cb := NewConversionBuilder()
	cb.Register(TypeConversionFuncs{
		Kind: KindInt,
		ToWire: func(schema Schema, host any) (any, error) {
			return int64(999), nil
		},
		FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
			return int32(999), nil
		},
	})

	wire, err := cb.ToWire(Int(), int32(1))
	require.NoError(t, err)
	require.Equal(t, int64(999), wire)
}
