package avroplan

// durationFixedSize is the Fixed size an Avro Duration logical type must
// be layered over: three little-endian uint32 fields.
const durationFixedSize = 12

// encodeDuration writes dv as three little-endian uint32 fields (months,
// days, milliseconds), per spec.md §4.J.
func encodeDuration(w *Writer, dv DurationValue) {
	var buf [durationFixedSize]byte
	putUint32LE(buf[0:4], dv.Months)
	putUint32LE(buf[4:8], dv.Days)
	putUint32LE(buf[8:12], dv.Millis)
	w.WriteFixed(buf[:])
}

func decodeDuration(r *Reader) (DurationValue, error) {
	b, err := r.ReadFixed(durationFixedSize)
	if err != nil {
		return DurationValue{}, err
	}
	return DurationValue{
		Months: getUint32LE(b[0:4]),
		Days:   getUint32LE(b[4:8]),
		Millis: getUint32LE(b[8:12]),
	}, nil
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
