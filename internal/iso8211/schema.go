package iso8211

import "strings"

// FieldSchema is a decoded DDR field definition: the tag, its structure and
// data type codes, its subfield labels (the array descriptor split on '!'),
// and the parsed format-controls specs, one per label.
//
// Reference: original_source/s57/src/ddr.rs (FieldDef), spec §4.2.
type FieldSchema struct {
	Tag           string
	Name          string
	StructureCode byte // data structure code digit: 0 elementary, 1 vector, 2 array
	DataTypeCode  byte // data type code digit
	Labels        []string
	Formats       []FormatSpec
}

// parseFieldDefinition decodes one DDR field definition's data (as sliced
// from the field area by its directory entry) into a FieldSchema.
//
// Layout: field controls (9 bytes) + field name, UT, array descriptor
// (labels separated by '!'), UT, format controls, FT.
func parseFieldDefinition(tag string, data []byte) (*FieldSchema, error) {
	if len(data) < 9 {
		return nil, &SchemaError{Tag: tag, Message: "field definition shorter than 9-byte field controls"}
	}
	controls := data[:9]
	rest := data[9:]

	c := NewCursor(rest)
	nameBytes, err := c.ReadUntil(UnitTerminator)
	if err != nil {
		return nil, &SchemaError{Tag: tag, Message: "missing field-name terminator"}
	}
	arrayBytes, err := c.ReadUntil(UnitTerminator)
	if err != nil {
		return nil, &SchemaError{Tag: tag, Message: "missing array-descriptor terminator"}
	}
	var formatBytes []byte
	if c.Remaining() > 0 {
		formatStart := c.Pos()
		if b, err := c.ReadUntil(FieldTerminator); err == nil {
			formatBytes = b
		} else {
			// Tolerate a missing trailing field terminator: take whatever
			// remains rather than fail a field that is otherwise complete.
			formatBytes = rest[formatStart:]
		}
	}

	labels := splitLabels(string(arrayBytes))
	formats, err := ParseFormatControls(strings.TrimSpace(string(formatBytes)))
	if err != nil {
		return nil, &SchemaError{Tag: tag, Message: err.Error()}
	}

	return &FieldSchema{
		Tag:           tag,
		Name:          strings.TrimSpace(string(nameBytes)),
		StructureCode: controls[0],
		DataTypeCode:  controls[1],
		Labels:        labels,
		Formats:       formats,
	}, nil
}

func splitLabels(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "*") // lexical-level marker, not part of the first label
	if s == "" {
		return nil
	}
	return strings.Split(s, "!")
}
