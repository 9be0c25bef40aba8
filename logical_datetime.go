package avroplan

// Date, Time, and Timestamp logical types have no byte-level framing of
// their own beyond the primitive int/long encoding they're layered on —
// unlike Decimal and Duration, there's no extra envelope to write here.
// This file exists as the named home for that fact and for the small
// helpers the conversion layer (conversion_logical.go) shares.

// encodeDate writes a day-offset-from-epoch as a plain Avro int.
func encodeDate(w *Writer, days int32) { w.WriteInt(days) }

func decodeDate(r *Reader) (int32, error) { return r.ReadInt() }

// encodeTimeMillis writes a sub-day millisecond tick count as a plain int.
func encodeTimeMillis(w *Writer, millis int32) { w.WriteInt(millis) }

func decodeTimeMillis(r *Reader) (int32, error) { return r.ReadInt() }

// encodeTimeMicros writes a sub-day microsecond tick count as a plain long.
func encodeTimeMicros(w *Writer, micros int64) { w.WriteLong(micros) }

func decodeTimeMicros(r *Reader) (int64, error) { return r.ReadLong() }

// encodeTimestamp writes a signed offset from the Unix epoch (in whatever
// unit the logical type names) as a plain long.
func encodeTimestamp(w *Writer, offset int64) { w.WriteLong(offset) }

func decodeTimestamp(r *Reader) (int64, error) { return r.ReadLong() }
