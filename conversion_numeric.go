package avroplan

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// widenToInt64 coerces any reflect-visible signed/unsigned integer host
// value to the wire-natural int64, checking that an unsigned value fits in
// signed 64-bit capacity per spec.md §4.D ("unsigned<->signed within
// capacity").
func widenToInt64(host any) (int64, error) {
	v := reflect.ValueOf(host)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(1<<63-1) {
			return 0, &OverflowError{Message: "uint would overflow int64"}
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if float64(int64(f)) != f {
			return 0, &OverflowError{Message: fmt.Sprintf("%v is not an integer", f)}
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("cannot convert %T to integer", host)
}

// widenSigned narrows/widens a decoded wire-natural int64 to the signed
// integer type T, checked for overflow by round-tripping through T.
func widenSigned[T constraints.Signed](v int64) (T, error) {
	out := T(v)
	if int64(out) != v {
		var zero T
		return zero, &OverflowError{Message: "value does not fit target integer type"}
	}
	return out, nil
}

// widenUnsigned narrows/widens a decoded wire-natural int64 to the
// unsigned integer type T, rejecting negative values and overflow.
func widenUnsigned[T constraints.Unsigned](v int64) (T, error) {
	if v < 0 {
		var zero T
		return zero, &OverflowError{Message: "negative value does not fit unsigned target"}
	}
	out := T(v)
	if int64(out) != v {
		var zero T
		return zero, &OverflowError{Message: "value does not fit target integer type"}
	}
	return out, nil
}

// intFromWire converts a decoded int64 to whatever concrete integer (or
// float, widened) type target names, using the generic widenSigned /
// widenUnsigned helpers for the overflow-checked narrowing conversions
// spec.md §4.D calls for.
func intFromWire(wire any, target reflect.Type) (any, error) {
	v, ok := wire.(int64)
	if !ok {
		return nil, fmt.Errorf("expected int64 wire value, got %T", wire)
	}
	switch target.Kind() {
	case reflect.Int:
		n, err := widenSigned[int](v)
		return n, err
	case reflect.Int8:
		n, err := widenSigned[int8](v)
		return n, err
	case reflect.Int16:
		n, err := widenSigned[int16](v)
		return n, err
	case reflect.Int32:
		n, err := widenSigned[int32](v)
		return n, err
	case reflect.Int64:
		return v, nil
	case reflect.Uint:
		n, err := widenUnsigned[uint](v)
		return n, err
	case reflect.Uint8:
		n, err := widenUnsigned[uint8](v)
		return n, err
	case reflect.Uint16:
		n, err := widenUnsigned[uint16](v)
		return n, err
	case reflect.Uint32:
		n, err := widenUnsigned[uint32](v)
		return n, err
	case reflect.Uint64:
		n, err := widenUnsigned[uint64](v)
		return n, err
	case reflect.Float32, reflect.Float64:
		out := reflect.New(target).Elem()
		out.SetFloat(float64(v))
		return out.Interface(), nil
	case reflect.Interface:
		return v, nil
	}
	return nil, fmt.Errorf("cannot convert wire int64 to %s", target)
}

func floatFromWire(bits int, wire any, target reflect.Type) (any, error) {
	var f float64
	switch v := wire.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return nil, fmt.Errorf("expected float wire value, got %T", wire)
	}
	switch target.Kind() {
	case reflect.Float32, reflect.Float64:
		out := reflect.New(target).Elem()
		out.SetFloat(f)
		return out.Interface(), nil
	case reflect.Interface:
		return f, nil
	}
	return nil, fmt.Errorf("cannot convert wire float to %s", target)
}

func registerNumericConversions(cb *ConversionBuilder) {
	cb.rules = append(cb.rules,
		TypeConversionFuncs{
			Kind: KindBoolean,
			ToWire: func(schema Schema, host any) (any, error) {
				b, ok := host.(bool)
				if !ok {
					return nil, fmt.Errorf("expected bool, got %T", host)
				}
				return b, nil
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				b, ok := wire.(bool)
				if !ok {
					return nil, fmt.Errorf("expected bool wire value, got %T", wire)
				}
				return b, nil
			},
		},
		TypeConversionFuncs{
			Kind:     KindInt,
			ToWire:   func(schema Schema, host any) (any, error) { return widenToInt64(host) },
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) { return intFromWire(wire, target) },
		},
		TypeConversionFuncs{
			Kind:     KindLong,
			ToWire:   func(schema Schema, host any) (any, error) { return widenToInt64(host) },
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) { return intFromWire(wire, target) },
		},
		TypeConversionFuncs{
			Kind: KindFloat,
			ToWire: func(schema Schema, host any) (any, error) {
				v := reflect.ValueOf(host)
				switch v.Kind() {
				case reflect.Float32, reflect.Float64:
					return float32(v.Float()), nil
				case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
					return float32(v.Int()), nil
				}
				return nil, fmt.Errorf("cannot convert %T to float32", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) { return floatFromWire(32, wire, target) },
		},
		TypeConversionFuncs{
			Kind: KindDouble,
			ToWire: func(schema Schema, host any) (any, error) {
				v := reflect.ValueOf(host)
				switch v.Kind() {
				case reflect.Float32, reflect.Float64:
					return v.Float(), nil
				case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
					return float64(v.Int()), nil
				}
				return nil, fmt.Errorf("cannot convert %T to float64", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) { return floatFromWire(64, wire, target) },
		},
		TypeConversionFuncs{
			Kind: KindBytes,
			ToWire: func(schema Schema, host any) (any, error) {
				switch v := host.(type) {
				case []byte:
					return v, nil
				case string:
					return []byte(v), nil
				}
				return nil, fmt.Errorf("cannot convert %T to bytes", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				b, ok := wire.([]byte)
				if !ok {
					return nil, fmt.Errorf("expected []byte wire value, got %T", wire)
				}
				if target.Kind() == reflect.String {
					return string(b), nil
				}
				return b, nil
			},
		},
		TypeConversionFuncs{
			Kind: KindFixed,
			ToWire: func(schema Schema, host any) (any, error) {
				switch v := host.(type) {
				case []byte:
					return v, nil
				case string:
					return []byte(v), nil
				}
				return nil, fmt.Errorf("cannot convert %T to fixed bytes", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				b, ok := wire.([]byte)
				if !ok {
					return nil, fmt.Errorf("expected []byte wire value, got %T", wire)
				}
				if target.Kind() == reflect.String {
					return string(b), nil
				}
				return b, nil
			},
		},
		TypeConversionFuncs{
			Kind: KindString,
			ToWire: func(schema Schema, host any) (any, error) {
				switch v := host.(type) {
				case string:
					return v, nil
				case uuid.UUID:
					return v.String(), nil
				case time.Time:
					return v.Format(time.RFC3339Nano), nil
				case *url.URL:
					return v.String(), nil
				case fmt.Stringer:
					return v.String(), nil
				}
				return nil, fmt.Errorf("cannot convert %T to string", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				s, ok := wire.(string)
				if !ok {
					return nil, fmt.Errorf("expected string wire value, got %T", wire)
				}
				switch target {
				case reflect.TypeOf(uuid.UUID{}):
					id, err := uuid.Parse(s)
					if err != nil {
						return nil, &InvalidValueError{Message: fmt.Sprintf("invalid UUID text: %s", err)}
					}
					return id, nil
				case reflect.TypeOf(time.Time{}):
					t, err := time.Parse(time.RFC3339Nano, s)
					if err != nil {
						return nil, &InvalidValueError{Message: fmt.Sprintf("invalid RFC3339 time text: %s", err)}
					}
					return t, nil
				case reflect.TypeOf((*url.URL)(nil)):
					u, err := url.Parse(s)
					if err != nil {
						return nil, &InvalidValueError{Message: fmt.Sprintf("invalid URI text: %s", err)}
					}
					return u, nil
				}
				if target.Kind() == reflect.String {
					out := reflect.New(target).Elem()
					out.SetString(s)
					return out.Interface(), nil
				}
				return s, nil
			},
		},
	)
}

// fixedToUUID converts 16 big-endian bytes to a uuid.UUID, used by the
// serializer/deserializer fixed case when the target type is uuid.UUID,
// per spec.md §4.D ("string<->UUID (16 bytes big-endian for fixed...)").
func fixedToUUID(b []byte) (uuid.UUID, error) {
	if len(b) != 16 {
		return uuid.UUID{}, &OverflowError{Message: "UUID fixed payload must be 16 bytes"}
	}
	var id uuid.UUID
	copy(id[:], b)
	return id, nil
}

func uuidToFixed(id uuid.UUID) []byte {
	out := make([]byte, 16)
	copy(out, id[:])
	return out
}
