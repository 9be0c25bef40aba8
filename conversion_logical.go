package avroplan

import (
	"fmt"
	"math/big"
	"reflect"
	"time"
)

var (
	typeOfTime     = reflect.TypeOf(time.Time{})
	typeOfDuration = reflect.TypeOf(time.Duration(0))
	typeOfBigRat   = reflect.TypeOf(&big.Rat{})
	typeOfDecimal  = reflect.TypeOf(DecimalValue{})
	typeOfDurVal   = reflect.TypeOf(DurationValue{})
)

// registerLogicalConversions wires host<->wire-natural-intermediate
// coercions for every logical type spec.md §4.J names. The intermediate
// values these produce (DecimalValue, DurationValue, or a plain
// int32/int64 offset) are then framed onto the wire by the logical_*.go
// encoders (component J), which is a separate concern from this host-side
// coercion (component D).
func registerLogicalConversions(cb *ConversionBuilder) {
	cb.rules = append(cb.rules,
		decimalConversion(KindBytes),
		decimalConversion(KindFixed),
		TypeConversionFuncs{
			Kind:    KindFixed,
			Logical: "duration",
			ToWire: func(schema Schema, host any) (any, error) {
				switch v := host.(type) {
				case DurationValue:
					return v, nil
				case time.Duration:
					total := int64(v / time.Millisecond)
					days := total / (24 * 3600 * 1000)
					millis := total - days*24*3600*1000
					return DurationValue{Months: 0, Days: uint32(days), Millis: uint32(millis)}, nil
				}
				return nil, fmt.Errorf("cannot convert %T to duration", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				dv, ok := wire.(DurationValue)
				if !ok {
					return nil, fmt.Errorf("expected DurationValue wire value, got %T", wire)
				}
				if target == typeOfDurVal {
					return dv, nil
				}
				if target == typeOfDuration {
					if dv.Months != 0 {
						return nil, &OverflowError{Message: "duration months cannot be represented as a fixed time.Duration"}
					}
					d := time.Duration(dv.Days)*24*time.Hour + time.Duration(dv.Millis)*time.Millisecond
					return d, nil
				}
				return dv, nil
			},
		},
		TypeConversionFuncs{
			Kind:    KindInt,
			Logical: "date",
			ToWire: func(schema Schema, host any) (any, error) {
				switch v := host.(type) {
				case time.Time:
					days := v.UTC().Unix() / int64(24*3600)
					return int32(days), nil
				case int32:
					return v, nil
				case int:
					return int32(v), nil
				}
				return nil, fmt.Errorf("cannot convert %T to date", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				days, ok := wire.(int32)
				if !ok {
					return nil, fmt.Errorf("expected int32 wire value, got %T", wire)
				}
				if target == typeOfTime {
					return time.Unix(int64(days)*24*3600, 0).UTC(), nil
				}
				return intFromWire(int64(days), target)
			},
		},
		TypeConversionFuncs{
			Kind:    KindInt,
			Logical: "time-millis",
			ToWire: func(schema Schema, host any) (any, error) {
				switch v := host.(type) {
				case time.Duration:
					return int32(v / time.Millisecond), nil
				case int32:
					return v, nil
				}
				return nil, fmt.Errorf("cannot convert %T to time-millis", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				ms, ok := wire.(int32)
				if !ok {
					return nil, fmt.Errorf("expected int32 wire value, got %T", wire)
				}
				if target == typeOfDuration {
					return time.Duration(ms) * time.Millisecond, nil
				}
				return intFromWire(int64(ms), target)
			},
		},
		TypeConversionFuncs{
			Kind:    KindLong,
			Logical: "time-micros",
			ToWire: func(schema Schema, host any) (any, error) {
				switch v := host.(type) {
				case time.Duration:
					return int64(v / time.Microsecond), nil
				case int64:
					return v, nil
				}
				return nil, fmt.Errorf("cannot convert %T to time-micros", host)
			},
			FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
				us, ok := wire.(int64)
				if !ok {
					return nil, fmt.Errorf("expected int64 wire value, got %T", wire)
				}
				if target == typeOfDuration {
					return time.Duration(us) * time.Microsecond, nil
				}
				return intFromWire(us, target)
			},
		},
		timestampConversion("timestamp-millis", time.Millisecond),
		timestampConversion("timestamp-micros", time.Microsecond),
		timestampConversion("timestamp-nanos", time.Nanosecond),
	)
}

// decimalScaleOf reads the scale declared on schema's decimal logical type,
// defaulting to 0 if schema carries none (callers always pass a decimal
// schema, but a defensive default keeps this total).
func decimalScaleOf(schema Schema) int {
	if dt, ok := schema.Logical().(*DecimalLogicalType); ok {
		return dt.Scale
	}
	return 0
}

func decimalConversion(kind Kind) TypeConversionFuncs {
	return TypeConversionFuncs{
		Kind:    kind,
		Logical: "decimal",
		ToWire: func(schema Schema, host any) (any, error) {
			scale := decimalScaleOf(schema)
			switch v := host.(type) {
			case DecimalValue:
				return v, nil
			case *big.Rat:
				denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
				unscaled := new(big.Int).Mul(v.Num(), denom)
				unscaled.Div(unscaled, v.Denom())
				return DecimalValue{Unscaled: unscaled, Scale: scale}, nil
			case string:
				f, ok := new(big.Float).SetString(v)
				if !ok {
					return nil, fmt.Errorf("cannot parse %q as decimal", v)
				}
				return DecimalValue{Unscaled: bigFloatUnscaled(f, scale), Scale: scale}, nil
			}
			return nil, fmt.Errorf("cannot convert %T to decimal", host)
		},
		FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
			dv, ok := wire.(DecimalValue)
			if !ok {
				return nil, fmt.Errorf("expected DecimalValue wire value, got %T", wire)
			}
			if target == typeOfDecimal {
				return dv, nil
			}
			if target == typeOfBigRat {
				denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(dv.Scale)), nil)
				return new(big.Rat).SetFrac(dv.Unscaled, denom), nil
			}
			return dv, nil
		},
	}
}

// bigFloatUnscaled multiplies f by 10^scale and truncates to the nearest
// integer, converting a free-form decimal string host value to its
// unscaled representation at the schema's declared scale.
func bigFloatUnscaled(f *big.Float, scale int) *big.Int {
	scaled := new(big.Float).Mul(f, new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)))
	out, _ := scaled.Int(nil)
	return out
}

func timestampConversion(logical string, unit time.Duration) TypeConversionFuncs {
	return TypeConversionFuncs{
		Kind:    KindLong,
		Logical: logical,
		ToWire: func(schema Schema, host any) (any, error) {
			switch v := host.(type) {
			case time.Time:
				return v.UnixNano() / int64(unit), nil
			case int64:
				return v, nil
			}
			return nil, fmt.Errorf("cannot convert %T to %s", host, logical)
		},
		FromWire: func(schema Schema, wire any, target reflect.Type) (any, error) {
			offset, ok := wire.(int64)
			if !ok {
				return nil, fmt.Errorf("expected int64 wire value, got %T", wire)
			}
			if target == typeOfTime {
				return time.Unix(0, offset*int64(unit)).UTC(), nil
			}
			return intFromWire(offset, target)
		},
	}
}
