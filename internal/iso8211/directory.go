package iso8211

// DirectoryEntry maps a field tag to its length and position within the
// field area, relative to the base address in the leader.
//
// Reference: original_source/s57/src/iso8211/directory.rs.
type DirectoryEntry struct {
	Tag      string
	Length   int
	Position int
}

// ParseDirectory reads repeating directory entries from data until a field
// terminator is found or data is exhausted. entrySize comes from the
// leader's entry map.
func ParseDirectory(data []byte, leader *Leader) ([]DirectoryEntry, error) {
	entrySize := leader.DirectoryEntrySize()
	if entrySize <= 0 {
		return nil, &LeaderMalformedError{Offset: LeaderSize, Message: "leader declares zero-width directory entries"}
	}

	var entries []DirectoryEntry
	offset := 0
	for offset < len(data) {
		if data[offset] == FieldTerminator {
			break
		}
		if offset+entrySize > len(data) {
			return nil, &LeaderMalformedError{
				Offset:  LeaderSize + offset,
				Message: "not enough data for directory entry",
			}
		}

		chunk := data[offset : offset+entrySize]
		c := NewCursor(chunk)

		tag, err := c.Read(leader.SizeOfFieldTag)
		if err != nil {
			return nil, &LeaderMalformedError{Offset: LeaderSize + offset, Message: "truncated directory tag"}
		}
		length, err := c.ReadFixedASCIIInt(leader.SizeOfFieldLengthField)
		if err != nil {
			return nil, &SchemaError{Offset: LeaderSize + offset, Message: "invalid directory field length"}
		}
		position, err := c.ReadFixedASCIIInt(leader.SizeOfFieldPositionField)
		if err != nil {
			return nil, &SchemaError{Offset: LeaderSize + offset, Message: "invalid directory field position"}
		}

		entries = append(entries, DirectoryEntry{
			Tag:      string(tag),
			Length:   int(length),
			Position: int(position),
		})
		offset += entrySize
	}

	return entries, nil
}
