package iso8211

import (
	"io"
	"os"
)

// Record is a decoded data record: its leader and the raw byte slice of
// every field the directory names, keyed by tag and still unparsed against
// any schema. Callers decode individual fields with DecodeField once they
// know which DDR governs the file.
type Record struct {
	Leader *Leader
	Tags   []string
	raw    map[string][]byte
}

// Field returns the raw bytes of tag within this record, including its
// trailing field terminator, or nil if the record has no such field.
func (r *Record) Field(tag string) []byte {
	return r.raw[tag]
}

// Reader streams DDR and data records from an ISO 8211 file. It holds the
// whole file in memory (S-57 cells are single-digit megabytes) but never
// re-reads a byte once consumed by Next.
//
// Reference: original_source/s57/src/iso8211 (module-level reader loop),
// spec §4.1 (ByteCursor) and §5 (scoped file handle, one goroutine).
type Reader struct {
	path string
	data []byte
	pos  int
	ddr  *DDR
}

// Open reads path fully into memory and returns a Reader positioned before
// the first record.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	return &Reader{path: path, data: data}, nil
}

// Close releases the Reader's buffered file contents.
func (r *Reader) Close() error {
	r.data = nil
	return nil
}

// peekRecordLength reads the 5-byte record-length field at the current
// position without consuming it, returning the full byte span of the next
// record.
func (r *Reader) peekRecordLength() (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	remaining := r.data[r.pos:]
	if len(remaining) < 5 {
		return 0, &LeaderMalformedError{Offset: r.pos, Message: "truncated record length"}
	}
	c := NewCursor(remaining[:5])
	n, err := c.ReadFixedASCIIInt(5)
	if err != nil {
		return 0, &LeaderMalformedError{Offset: r.pos, Message: "invalid record length: " + err.Error()}
	}
	if n <= 0 || r.pos+int(n) > len(r.data) {
		return 0, &SubfieldOverrunError{Offset: r.pos, Requested: int(n), Available: len(r.data) - r.pos}
	}
	return int(n), nil
}

// ReadDDR reads and parses the file's leading Data Descriptive Record, and
// remembers it so subsequent calls to Next know how to slice data records'
// field areas. It must be called exactly once, before the first Next.
func (r *Reader) ReadDDR() (*DDR, error) {
	n, err := r.peekRecordLength()
	if err != nil {
		return nil, err
	}
	ddr, err := ParseDDR(r.data[r.pos : r.pos+n])
	if err != nil {
		return nil, err
	}
	r.pos += n
	r.ddr = ddr
	return ddr, nil
}

// Next reads and returns the next data record, or io.EOF once the file is
// exhausted. ReadDDR must have been called first.
func (r *Reader) Next() (*Record, error) {
	if r.ddr == nil {
		return nil, &SchemaError{Message: "Next called before ReadDDR"}
	}
	n, err := r.peekRecordLength()
	if err != nil {
		return nil, err
	}
	recData := r.data[r.pos : r.pos+n]
	r.pos += n

	leader, err := ParseLeader(recData)
	if err != nil {
		return nil, err
	}
	if !leader.IsDR() {
		return nil, &LeaderMalformedError{Offset: r.pos - n + 6, Message: "leader identifier does not mark a data record"}
	}

	entrySize := leader.DirectoryEntrySize()
	dirEnd := LeaderSize
	for dirEnd < len(recData) && recData[dirEnd] != FieldTerminator {
		dirEnd += entrySize
	}
	if dirEnd > len(recData) {
		return nil, &SubfieldOverrunError{Offset: LeaderSize, Requested: dirEnd - LeaderSize, Available: len(recData) - LeaderSize}
	}
	entries, err := ParseDirectory(recData[LeaderSize:dirEnd+1], leader)
	if err != nil {
		return nil, err
	}

	rec := &Record{Leader: leader, raw: map[string][]byte{}}
	for _, entry := range entries {
		start := leader.BaseAddressOfFieldArea + entry.Position
		end := start + entry.Length
		if start < 0 || end > len(recData) || start > end {
			return nil, &SubfieldOverrunError{Offset: start, Requested: entry.Length, Available: len(recData) - start}
		}
		rec.raw[entry.Tag] = recData[start:end]
		rec.Tags = append(rec.Tags, entry.Tag)
	}

	return rec, nil
}

// DDR returns the schema this Reader parsed via ReadDDR, or nil if it has
// not been called yet.
func (r *Reader) DDR() *DDR {
	return r.ddr
}
