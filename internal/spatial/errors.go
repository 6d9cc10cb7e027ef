package spatial

import "fmt"

// ErrRecordCountMismatch indicates the shape and dBASE files disagree on record count.
// The files have no shared key, so a positional join is impossible.
type ErrRecordCountMismatch struct {
	ShpCount int
	DbfCount int
}

func (e *ErrRecordCountMismatch) Error() string {
	return fmt.Sprintf("record count mismatch: shape file has %d records, dBASE file has %d", e.ShpCount, e.DbfCount)
}

// ErrMultiPartLineUnsupported indicates a PolyLine with more than one part
type ErrMultiPartLineUnsupported struct {
	Record int // 0-based record index
	Parts  int
}

func (e *ErrMultiPartLineUnsupported) Error() string {
	return fmt.Sprintf("record %d: polyline with %d parts is not supported", e.Record, e.Parts)
}

// ErrMissingField indicates a configured join field is absent from the dBASE header
type ErrMissingField struct {
	Name string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("field %q not found in dBASE header", e.Name)
}
