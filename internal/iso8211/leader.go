package iso8211

import "fmt"

// LeaderSize is the fixed size of every ISO 8211 record leader.
const LeaderSize = 24

// Leader is the 24-byte fixed leader present at the start of every ISO 8211
// record (DDR or data record).
//
// Reference: original_source/s57/src/iso8211/leader.rs (Leader::parse), and
// S-57 Part 3 §7 (record structure).
type Leader struct {
	RecordLength                 int
	InterchangeLevel             byte
	LeaderIdentifier              byte // 'L' for DDR, 'D' for data record
	InlineCodeExtensionIndicator byte
	VersionNumber                byte
	ApplicationIndicator         byte
	FieldControlLength           int
	BaseAddressOfFieldArea       int
	ExtendedCharacterSet         string
	SizeOfFieldLengthField       int
	SizeOfFieldPositionField     int
	Reserved                     byte
	SizeOfFieldTag               int
}

// ParseLeader decodes the leading 24 bytes of a record.
func ParseLeader(data []byte) (*Leader, error) {
	if len(data) < LeaderSize {
		return nil, &LeaderMalformedError{Offset: 0, Message: "record shorter than 24-byte leader"}
	}
	c := NewCursor(data[:LeaderSize])

	recordLength, err := c.ReadFixedASCIIInt(5)
	if err != nil {
		return nil, &LeaderMalformedError{Offset: 0, Message: "invalid record length: " + err.Error()}
	}
	il, _ := c.Read(1)
	lid, _ := c.Read(1)
	icei, _ := c.Read(1)
	vn, _ := c.Read(1)
	ai, _ := c.Read(1)

	fieldControlLength, err := c.ReadFixedASCIIInt(2)
	if err != nil {
		return nil, &LeaderMalformedError{Offset: 10, Message: "invalid field control length"}
	}
	base, err := c.ReadFixedASCIIInt(5)
	if err != nil {
		return nil, &LeaderMalformedError{Offset: 12, Message: "invalid base address of field area"}
	}
	ecs, _ := c.Read(3)

	sizeOfFieldLength, err := c.ReadFixedASCIIInt(1)
	if err != nil {
		return nil, &LeaderMalformedError{Offset: 20, Message: "invalid size-of-field-length digit"}
	}
	sizeOfFieldPosition, err := c.ReadFixedASCIIInt(1)
	if err != nil {
		return nil, &LeaderMalformedError{Offset: 21, Message: "invalid size-of-field-position digit"}
	}
	reserved, _ := c.Read(1)
	sizeOfFieldTag, err := c.ReadFixedASCIIInt(1)
	if err != nil {
		return nil, &LeaderMalformedError{Offset: 23, Message: "invalid size-of-field-tag digit"}
	}

	if lid[0] != 'L' && lid[0] != 'D' {
		return nil, &LeaderMalformedError{Offset: 6, Message: fmt.Sprintf("unexpected leader identifier %q", lid[0])}
	}

	return &Leader{
		RecordLength:                  int(recordLength),
		InterchangeLevel:              il[0],
		LeaderIdentifier:              lid[0],
		InlineCodeExtensionIndicator:  icei[0],
		VersionNumber:                 vn[0],
		ApplicationIndicator:          ai[0],
		FieldControlLength:            int(fieldControlLength),
		BaseAddressOfFieldArea:        int(base),
		ExtendedCharacterSet:          string(ecs),
		SizeOfFieldLengthField:        int(sizeOfFieldLength),
		SizeOfFieldPositionField:      int(sizeOfFieldPosition),
		Reserved:                      reserved[0],
		SizeOfFieldTag:                int(sizeOfFieldTag),
	}, nil
}

// IsDDR reports whether this leader belongs to the Data Descriptive Record.
func (l *Leader) IsDDR() bool { return l.LeaderIdentifier == 'L' }

// IsDR reports whether this leader belongs to an ordinary data record.
func (l *Leader) IsDR() bool { return l.LeaderIdentifier == 'D' }

// DirectoryEntrySize is the byte width of one directory entry, derived from
// the leader's entry map.
func (l *Leader) DirectoryEntrySize() int {
	return l.SizeOfFieldTag + l.SizeOfFieldLengthField + l.SizeOfFieldPositionField
}
