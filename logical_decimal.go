package avroplan

import "math/big"

// encodeDecimalBytes writes dv as a two's-complement big-endian integer,
// varint-length-prefixed, for a Decimal logical type layered over a plain
// Bytes schema node. Length is free on Bytes, per spec.md §4.J.
func encodeDecimalBytes(w *Writer, dv DecimalValue) {
	w.WriteBytes(bigIntToTwosComplement(dv.Unscaled, 0))
}

func decodeDecimalBytes(r *Reader) (DecimalValue, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return DecimalValue{}, err
	}
	return DecimalValue{Unscaled: twosComplementToBigInt(b)}, nil
}

// encodeDecimalFixed writes dv as exactly size raw two's-complement bytes.
// If the magnitude does not fit in size bytes, Overflow is raised, per
// spec.md §4.J ("On Fixed, byte length must equal size or raise Overflow
// at runtime").
func encodeDecimalFixed(w *Writer, dv DecimalValue, size int) error {
	raw := bigIntToTwosComplement(dv.Unscaled, size)
	if len(raw) > size {
		return &OverflowError{Message: "decimal value does not fit declared fixed size"}
	}
	padded := signExtend(raw, size)
	w.WriteFixed(padded)
	return nil
}

func decodeDecimalFixed(r *Reader, size int) (DecimalValue, error) {
	b, err := r.ReadFixed(size)
	if err != nil {
		return DecimalValue{}, err
	}
	return DecimalValue{Unscaled: twosComplementToBigInt(b)}, nil
}

// bigIntToTwosComplement renders v as the shortest two's-complement
// big-endian byte run that round-trips; minSize is not used, and the fixed
// path pads the result to its declared size itself.
func bigIntToTwosComplement(v *big.Int, minSize int) []byte {
	if v.Sign() == 0 {
		return []byte{0x00}
	}
	if v.Sign() > 0 {
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}
	// Negative: two's complement is (2^(8*n) + v) for the smallest n whose
	// representation has its sign bit set.
	// -2^(8n-1) <= v holds exactly when n*8 > bitlen(-v-1).
	mag := new(big.Int).Neg(v)
	mag.Sub(mag, big.NewInt(1))
	nBytes := (mag.BitLen() / 8) + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	twos := new(big.Int).Add(mod, v)
	b := twos.Bytes()
	for len(b) < nBytes {
		b = append([]byte{0x00}, b...)
	}
	if b[0]&0x80 == 0 {
		b = append([]byte{0xff}, b...)
	}
	return b
}

// signExtend left-pads raw with 0x00 (positive) or 0xff (negative) bytes
// until it is exactly size long.
func signExtend(raw []byte, size int) []byte {
	if len(raw) >= size {
		return raw[len(raw)-size:]
	}
	pad := byte(0x00)
	if raw[0]&0x80 != 0 {
		pad = 0xff
	}
	out := make([]byte, size-len(raw))
	for i := range out {
		out[i] = pad
	}
	return append(out, raw...)
}

// twosComplementToBigInt parses a two's-complement big-endian byte run
// back into a signed big.Int.
func twosComplementToBigInt(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	if b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b)
	}
	inverted := make([]byte, len(b))
	for i, c := range b {
		inverted[i] = ^c
	}
	v := new(big.Int).SetBytes(inverted)
	v.Add(v, big.NewInt(1))
	v.Neg(v)
	return v
}
