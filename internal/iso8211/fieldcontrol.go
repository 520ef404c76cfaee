package iso8211

import (
	"bytes"
	"strings"
)

// FieldControls decodes the DDR's "0000" field control field, which binds
// the hierarchy of every field in the record via parent/child tag pairs.
//
// Reference: original_source/s57/src/iso8211/field.rs
// (Field::parse_field_control_field).
type FieldControls struct {
	Raw           string
	ExternalTitle string
	TagPairs      [][2]string
}

// ParseFieldControlField decodes the "0000" field's data.
//
// Structure: field controls (9 bytes) + external file title, then a unit
// terminator, then a list of 4-character parent/child tag pairs, then a
// field terminator.
func ParseFieldControlField(data []byte) (*FieldControls, error) {
	firstUT := bytes.IndexByte(data, UnitTerminator)
	if firstUT < 0 {
		return nil, &SchemaError{Tag: "0000", Message: "missing unit terminator in field control field"}
	}
	beforeUT := data[:firstUT]
	if len(beforeUT) < 9 {
		return nil, &SchemaError{Tag: "0000", Message: "field controls shorter than 9 bytes"}
	}
	raw := string(beforeUT[:9])
	title := ""
	if len(beforeUT) > 9 {
		title = strings.TrimSpace(string(beforeUT[9:]))
	}

	afterUT := data[firstUT+1:]
	end := bytes.IndexByte(afterUT, FieldTerminator)
	if end < 0 {
		end = len(afterUT)
	}
	pairsStr := []rune(string(afterUT[:end]))

	var pairs [][2]string
	for i := 0; i+7 < len(pairsStr); i += 8 {
		parent := string(pairsStr[i : i+4])
		child := string(pairsStr[i+4 : i+8])
		pairs = append(pairs, [2]string{parent, child})
	}

	return &FieldControls{Raw: raw, ExternalTitle: title, TagPairs: pairs}, nil
}

// RecordIdentifierField decodes the DDR's "0001" field, describing the
// structure of the record-identifier subfield present at the start of every
// data record derived from this schema.
//
// Reference: original_source/s57/src/iso8211/field.rs
// (Field::parse_record_identifier_field).
type RecordIdentifierField struct {
	Raw             string
	FieldName       string
	ArrayDescriptor string
	FormatControls  string
}

// ParseRecordIdentifierField decodes the DDR-shaped "0001" field. It returns
// ok=false if data is too short to be the DDR (text) shape, which is
// expected: in a data record, "0001" degenerates to a 1-byte sequence
// number plus a reserved byte, handled separately by the record reader.
func ParseRecordIdentifierField(data []byte) (field *RecordIdentifierField, ok bool) {
	if len(data) < 20 {
		return nil, false
	}
	parts := bytes.Split(data, []byte{UnitTerminator})
	if len(parts) < 3 {
		return nil, false
	}
	first := parts[0]
	if len(first) < 9 {
		return nil, false
	}
	raw := string(first[:9])
	name := strings.TrimSpace(string(first[9:]))
	arrayDescriptor := strings.TrimSpace(string(parts[1]))

	formatPart := parts[2]
	if len(formatPart) > 0 && formatPart[len(formatPart)-1] == FieldTerminator {
		formatPart = formatPart[:len(formatPart)-1]
	}

	return &RecordIdentifierField{
		Raw:             raw,
		FieldName:       name,
		ArrayDescriptor: arrayDescriptor,
		FormatControls:  strings.TrimSpace(string(formatPart)),
	}, true
}
