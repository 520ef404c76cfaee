package iso8211

// DDR is a decoded Data Descriptive Record: the schema that governs how
// every subsequent data record in the file is structured.
//
// Reference: original_source/s57/src/ddr.rs (Ddr), spec §3.1/§4.2.
type DDR struct {
	Leader           *Leader
	FieldControls    *FieldControls
	RecordIdentifier *RecordIdentifierField
	Fields           map[string]*FieldSchema
}

// ParseDDR decodes a full DDR record: its leader, directory, and every field
// definition the directory names. The "0000" field control field and "0001"
// record identifier field are recognized specially; all other tags are
// decoded as ordinary field definitions.
func ParseDDR(data []byte) (*DDR, error) {
	leader, err := ParseLeader(data)
	if err != nil {
		return nil, err
	}
	if !leader.IsDDR() {
		return nil, &LeaderMalformedError{Offset: 6, Message: "leader identifier does not mark a DDR"}
	}

	entrySize := leader.DirectoryEntrySize()
	dirEnd := LeaderSize
	for dirEnd < len(data) && data[dirEnd] != FieldTerminator {
		dirEnd += entrySize
	}
	if dirEnd > len(data) {
		return nil, &SubfieldOverrunError{Offset: LeaderSize, Requested: dirEnd - LeaderSize, Available: len(data) - LeaderSize}
	}
	entries, err := ParseDirectory(data[LeaderSize:dirEnd+1], leader)
	if err != nil {
		return nil, err
	}

	ddr := &DDR{Leader: leader, Fields: map[string]*FieldSchema{}}
	for _, entry := range entries {
		start := leader.BaseAddressOfFieldArea + entry.Position
		end := start + entry.Length
		if start < 0 || end > len(data) || start > end {
			return nil, &SubfieldOverrunError{Offset: start, Requested: entry.Length, Available: len(data) - start}
		}
		fieldData := data[start:end]

		switch entry.Tag {
		case "0000":
			fc, err := ParseFieldControlField(fieldData)
			if err != nil {
				return nil, err
			}
			ddr.FieldControls = fc
		case "0001":
			if rid, ok := ParseRecordIdentifierField(fieldData); ok {
				ddr.RecordIdentifier = rid
				continue
			}
			fallthrough
		default:
			schema, err := parseFieldDefinition(entry.Tag, fieldData)
			if err != nil {
				return nil, err
			}
			ddr.Fields[entry.Tag] = schema
		}
	}

	return ddr, nil
}

// FieldSchema looks up the schema for tag, or nil if the DDR never defined
// it.
func (d *DDR) FieldSchema(tag string) *FieldSchema {
	return d.Fields[tag]
}
