package iso8211

// SubfieldValue is a single decoded subfield: exactly one of Int, Str, or
// Bytes is meaningful, selected by Kind.
type SubfieldValue struct {
	Kind  FormatKind
	Int   int64
	Str   string
	Bytes []byte
}

// RecordRow is one repetition of a field's subfield-label set.
type RecordRow map[string]SubfieldValue

// FieldValue is a fully decoded field: the tag, and one RecordRow per
// repetition needed to consume the field's declared length exactly.
type FieldValue struct {
	Tag  string
	Rows []RecordRow
}

// AllRows returns fv's rows, or nil if fv itself is nil. Callers that treat
// a wholly absent field the same as a field with zero repetitions can range
// over the result unconditionally.
func (fv *FieldValue) AllRows() []RecordRow {
	if fv == nil {
		return nil
	}
	return fv.Rows
}

// DecodeField decodes a field's raw bytes (as sliced from the field area by
// its directory entry, including any trailing field terminator) against its
// schema, repeating the label set until the data is consumed.
func DecodeField(schema *FieldSchema, data []byte, overrides *OverrideSchema) (*FieldValue, error) {
	body := data
	if len(body) > 0 && body[len(body)-1] == FieldTerminator {
		body = body[:len(body)-1]
	}

	if len(schema.Labels) == 0 || len(body) == 0 {
		return &FieldValue{Tag: schema.Tag}, nil
	}
	if len(schema.Formats) == 0 {
		return nil, &SchemaError{Tag: schema.Tag, Message: "field schema declares labels but no format specs"}
	}

	var rows []RecordRow
	c := NewCursor(body)
	for c.Remaining() > 0 {
		row := make(RecordRow, len(schema.Labels))
		for i, label := range schema.Labels {
			spec := schema.Formats[i%len(schema.Formats)]
			if k, ok := overrides.FormatOverride(schema.Tag, label); ok {
				spec.Kind = k
			}

			val, err := decodeSubfield(c, spec)
			if err != nil {
				if overrides.IsOptional(schema.Tag, label) {
					row[label] = SubfieldValue{Kind: spec.Kind}
					continue
				}
				return nil, &SchemaError{Tag: schema.Tag, Offset: c.Pos(), Message: err.Error()}
			}
			row[label] = val
		}
		rows = append(rows, row)
	}

	return &FieldValue{Tag: schema.Tag, Rows: rows}, nil
}

func decodeSubfield(c *Cursor, spec FormatSpec) (SubfieldValue, error) {
	switch spec.Kind {
	case FormatASCII:
		if spec.Width > 0 {
			b, err := c.Read(spec.Width)
			if err != nil {
				return SubfieldValue{}, err
			}
			return SubfieldValue{Kind: spec.Kind, Str: trimASCII(b)}, nil
		}
		rest, _ := c.Peek(c.Remaining())
		b, err := c.ReadUntil(UnitTerminator)
		if err != nil {
			// Last subfield of the field, delimited implicitly by the end
			// of the field's data rather than an explicit unit terminator.
			return SubfieldValue{Kind: spec.Kind, Str: trimASCII(rest)}, nil
		}
		return SubfieldValue{Kind: spec.Kind, Str: string(b)}, nil
	case FormatInteger:
		v, err := c.ReadFixedASCIIInt(spec.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: spec.Kind, Int: v}, nil
	case FormatReal:
		b, err := c.Read(spec.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: spec.Kind, Str: trimASCII(b)}, nil
	case FormatBitfield:
		b, err := c.Read(spec.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		cp := make([]byte, len(b))
		copy(cp, b)
		return SubfieldValue{Kind: spec.Kind, Bytes: cp}, nil
	case FormatBinary:
		if spec.Signed {
			v, err := c.ReadIntLE(spec.Width)
			if err != nil {
				return SubfieldValue{}, err
			}
			return SubfieldValue{Kind: spec.Kind, Int: int64(v)}, nil
		}
		v, err := c.ReadUintLE(spec.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: spec.Kind, Int: int64(v)}, nil
	default:
		return SubfieldValue{}, &SchemaError{Message: "unsupported format kind"}
	}
}

func trimASCII(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end])
}
