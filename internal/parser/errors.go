package parser

import (
	"fmt"
)

// ErrTruncatedInput indicates the source ended before a read could be satisfied
type ErrTruncatedInput struct {
	Offset int64 // Bytes consumed before the failed read
	Want   int   // Bytes requested
	Got    int   // Bytes actually available
	Err    error // Underlying reader error (io.EOF or io.ErrUnexpectedEOF)
}

func (e *ErrTruncatedInput) Error() string {
	return fmt.Sprintf("truncated input at byte %d: wanted %d bytes, got %d", e.Offset, e.Want, e.Got)
}

func (e *ErrTruncatedInput) Unwrap() error {
	return e.Err
}

// ErrBadMagic indicates the shape file does not start with the 0x0000270A file code
type ErrBadMagic struct {
	Got uint32
}

func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("bad file code: expected 0x%08x, got 0x%08x", FileCode, e.Got)
}

// ErrUnknownShapeType indicates a shape type code outside the defined set
type ErrUnknownShapeType struct {
	Code   int32
	Offset int64
}

func (e *ErrUnknownShapeType) Error() string {
	return fmt.Sprintf("unknown shape type %d at byte %d", e.Code, e.Offset)
}

// ErrUnsupportedShapeType indicates a defined shape type that this decoder does not handle
// (MultiPoint, the Z and M variants, MultiPatch). Null is reported with this error by the
// join, which has no object variant for it.
type ErrUnsupportedShapeType struct {
	Code   int32
	Record int32 // 1-based record number, 0 if unknown
	Offset int64
}

func (e *ErrUnsupportedShapeType) Error() string {
	name := ShapeType(e.Code).String()
	if e.Record > 0 {
		return fmt.Sprintf("unsupported shape type %d (%s) in record %d at byte %d", e.Code, name, e.Record, e.Offset)
	}
	return fmt.Sprintf("unsupported shape type %d (%s) at byte %d", e.Code, name, e.Offset)
}

// FrameScope says which framing level a length mismatch was detected at
type FrameScope int

const (
	// FrameRecord is a single record's declared length
	FrameRecord FrameScope = iota
	// FrameFile is the whole file's declared length
	FrameFile
)

func (s FrameScope) String() string {
	if s == FrameFile {
		return "file"
	}
	return "record"
}

// ErrFrameLengthMismatch indicates declared and consumed byte counts disagree
type ErrFrameLengthMismatch struct {
	Scope    FrameScope
	Record   int32 // Record number for record scope, 0 otherwise
	Offset   int64 // Cursor position when the mismatch was detected
	Expected int64 // Declared byte count
	Actual   int64 // Consumed (or required) byte count
}

func (e *ErrFrameLengthMismatch) Error() string {
	if e.Scope == FrameRecord && e.Record > 0 {
		return fmt.Sprintf("record %d frame length mismatch at byte %d: declared %d bytes, consumed %d",
			e.Record, e.Offset, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s frame length mismatch at byte %d: declared %d bytes, consumed %d",
		e.Scope, e.Offset, e.Expected, e.Actual)
}

// ErrPartReconstructionMismatch indicates part offsets do not partition the point array
type ErrPartReconstructionMismatch struct {
	Parts     []int32
	NumPoints int
	Covered   int    // Points accounted for by the reconstructed groups
	Reason    string // Set when offsets are out of order or out of range
}

func (e *ErrPartReconstructionMismatch) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("part reconstruction mismatch: %s (parts=%v, points=%d)", e.Reason, e.Parts, e.NumPoints)
	}
	return fmt.Sprintf("part reconstruction mismatch: parts %v cover %d of %d points", e.Parts, e.Covered, e.NumPoints)
}

// ErrHeaderTooShort indicates the dBASE header length cannot hold the fixed prefix and terminator
type ErrHeaderTooShort struct {
	HeaderBytes int
	Minimum     int
}

func (e *ErrHeaderTooShort) Error() string {
	return fmt.Sprintf("dBASE header too short: %d bytes declared, at least %d required", e.HeaderBytes, e.Minimum)
}

// ErrMisalignedFieldTable indicates the field descriptor area is not a multiple of 32 bytes
type ErrMisalignedFieldTable struct {
	DescriptorBytes int
}

func (e *ErrMisalignedFieldTable) Error() string {
	return fmt.Sprintf("dBASE field descriptor area of %d bytes is not a multiple of %d", e.DescriptorBytes, fieldDescriptorSize)
}

// ErrMissingTerminator indicates the field descriptor array is not followed by 0x0D
type ErrMissingTerminator struct {
	Got    byte
	Offset int64
}

func (e *ErrMissingTerminator) Error() string {
	return fmt.Sprintf("dBASE header terminator at byte %d: expected 0x%02x, got 0x%02x", e.Offset, headerTerminator, e.Got)
}

// ErrInvalidFieldName indicates a field descriptor name that is empty or not valid UTF-8
type ErrInvalidFieldName struct {
	Field  int
	Raw    []byte
	Offset int64
}

func (e *ErrInvalidFieldName) Error() string {
	return fmt.Sprintf("dBASE field %d has invalid name %q at byte %d", e.Field, e.Raw, e.Offset)
}

// ErrUnknownFieldType indicates a field type byte outside the defined set
type ErrUnknownFieldType struct {
	Code   byte
	Field  int
	Offset int64
}

func (e *ErrUnknownFieldType) Error() string {
	return fmt.Sprintf("dBASE field %d has unknown type %q (0x%02x) at byte %d", e.Field, rune(e.Code), e.Code, e.Offset)
}

// ErrUnsupportedFieldType indicates a defined field type whose values cannot be decoded yet
type ErrUnsupportedFieldType struct {
	Type   FieldType
	Field  string
	Record int
	Offset int64
}

func (e *ErrUnsupportedFieldType) Error() string {
	return fmt.Sprintf("dBASE field %q of type %s is not supported (record %d, byte %d)", e.Field, e.Type, e.Record, e.Offset)
}

// ErrUnexpectedRecordFlag indicates a dBASE record that is not marked active
type ErrUnexpectedRecordFlag struct {
	Flag   byte
	Record int
	Offset int64
}

func (e *ErrUnexpectedRecordFlag) Error() string {
	if e.Flag == recordDeleted {
		return fmt.Sprintf("dBASE record %d at byte %d is marked deleted", e.Record, e.Offset)
	}
	return fmt.Sprintf("dBASE record %d at byte %d has unexpected flag 0x%02x", e.Record, e.Offset, e.Flag)
}

// ErrInvalidText indicates attribute bytes that are not valid in the configured code page
type ErrInvalidText struct {
	Field  string
	Record int
	Offset int64
	Err    error
}

func (e *ErrInvalidText) Error() string {
	return fmt.Sprintf("dBASE field %q in record %d at byte %d is not valid text: %v", e.Field, e.Record, e.Offset, e.Err)
}

func (e *ErrInvalidText) Unwrap() error {
	return e.Err
}

// ErrUnknownCodePage indicates a code page name that maps to no known text encoding
type ErrUnknownCodePage struct {
	Name string
}

func (e *ErrUnknownCodePage) Error() string {
	return fmt.Sprintf("unknown code page %q", e.Name)
}
