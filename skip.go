package avroplan

import "fmt"

// SkipPlan advances r past exactly one encoded value without materializing
// it, per spec.md §4.G's skip sub-mode: used for record fields present on
// the wire but absent from the host type.
type SkipPlan func(r *Reader) error

// skipBuilder breaks recursion for skip plans the same way the serializer and
// deserializer memo tables do, keyed purely on schema identity since a skip
// plan has no target type.
type skipBuilder struct {
	memo map[Schema]*skipCell
}

type skipCell struct {
	plan SkipPlan
}

// BuildSkipper returns a plan that reads and discards one value of schema's
// shape, for callers implementing "skip fields absent from the host type"
// during record decode.
func BuildSkipper(schema Schema) (SkipPlan, error) {
	sb := &skipBuilder{memo: make(map[Schema]*skipCell)}
	return sb.build(schema)
}

func (sb *skipBuilder) build(schema Schema) (SkipPlan, error) {
	switch s := schema.(type) {
	case *NullSchema:
		return func(r *Reader) error { return nil }, nil

	case *BooleanSchema:
		return func(r *Reader) error { _, err := r.ReadBoolean(); return err }, nil

	case *IntSchema:
		return func(r *Reader) error { _, err := r.ReadInt(); return err }, nil

	case *LongSchema:
		return func(r *Reader) error { _, err := r.ReadLong(); return err }, nil

	case *FloatSchema:
		return func(r *Reader) error { _, err := r.ReadFloat(); return err }, nil

	case *DoubleSchema:
		return func(r *Reader) error { _, err := r.ReadDouble(); return err }, nil

	case *BytesSchema:
		return func(r *Reader) error { return r.SkipBytes() }, nil

	case *StringSchema:
		return func(r *Reader) error { return r.SkipBytes() }, nil

	case *FixedSchema:
		size := s.Size
		return func(r *Reader) error { return r.SkipFixed(size) }, nil

	case *EnumSchema:
		return func(r *Reader) error { _, err := r.ReadInt(); return err }, nil

	case *ArraySchema:
		itemSkip, err := sb.build(s.Items)
		if err != nil {
			return nil, err
		}
		return func(r *Reader) error {
			for {
				count, err := r.ReadBlockHeader()
				if err != nil {
					return err
				}
				if count == 0 {
					return nil
				}
				for i := int64(0); i < count; i++ {
					if err := itemSkip(r); err != nil {
						return err
					}
				}
			}
		}, nil

	case *MapSchema:
		valSkip, err := sb.build(s.Values)
		if err != nil {
			return nil, err
		}
		return func(r *Reader) error {
			for {
				count, err := r.ReadBlockHeader()
				if err != nil {
					return err
				}
				if count == 0 {
					return nil
				}
				for i := int64(0); i < count; i++ {
					if err := r.SkipBytes(); err != nil {
						return err
					}
					if err := valSkip(r); err != nil {
						return err
					}
				}
			}
		}, nil

	case *RecordSchema:
		if cell, ok := sb.memo[schema]; ok {
			return func(r *Reader) error {
				if cell.plan == nil {
					return fmt.Errorf("recursive skip binding referenced before resolution")
				}
				return cell.plan(r)
			}, nil
		}
		cell := &skipCell{}
		sb.memo[schema] = cell
		fieldSkips := make([]SkipPlan, len(s.Fields))
		for i, f := range s.Fields {
			fs, err := sb.build(f.Type)
			if err != nil {
				return nil, err
			}
			fieldSkips[i] = fs
		}
		plan := func(r *Reader) error {
			for _, fs := range fieldSkips {
				if err := fs(r); err != nil {
					return err
				}
			}
			return nil
		}
		cell.plan = plan
		return plan, nil

	case *UnionSchema:
		branchSkips := make([]SkipPlan, len(s.Branches))
		for i, b := range s.Branches {
			bs, err := sb.build(b)
			if err != nil {
				return nil, err
			}
			branchSkips[i] = bs
		}
		return func(r *Reader) error {
			idx, err := r.ReadLong()
			if err != nil {
				return err
			}
			if idx < 0 || int(idx) >= len(branchSkips) {
				return r.invalid(fmt.Sprintf("union index %d out of range", idx))
			}
			return branchSkips[idx](r)
		}, nil

	default:
		return nil, newUnsupportedSchemaForSkip(schema)
	}
}

func newUnsupportedSchemaForSkip(schema Schema) error {
	return &UnsupportedSchema{Schema: schema, Message: "no skip rule for this schema kind"}
}
