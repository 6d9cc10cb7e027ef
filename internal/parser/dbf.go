package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang/glog"
	"golang.org/x/text/encoding"
)

const (
	dbfPrefixBytes      = 32 // flags, date, counts, reserved
	fieldDescriptorSize = 32
	fieldNameBytes      = 11
	headerTerminator    = 0x0D
	recordActive        = 0x20
	recordDeleted       = 0x2A
)

// DbaseHeader is the dBASE table header with its field descriptor array.
//
// Layout (dBASE III+ / level 5):
//   - byte 0:      flags (version)
//   - bytes 1-3:   last update as YY MM DD, YY counted from 1900
//   - bytes 4-7:   record count, little endian
//   - bytes 8-9:   header length in bytes, little endian
//   - bytes 10-11: record length in bytes, little endian
//   - bytes 12-31: reserved
//   - 32 bytes per field descriptor
//   - 0x0D terminator
type DbaseHeader struct {
	Flags       uint8
	YearOffset  uint8
	Month       uint8
	Day         uint8
	NumRecords  int
	HeaderBytes int
	RecordBytes int
	Fields      []FieldDescriptor
}

// FieldDescriptor describes one attribute column.
type FieldDescriptor struct {
	Name         string
	Type         FieldType
	Length       int
	DecimalCount int
}

// LastUpdate returns the last-update date stored in the header.
func (h *DbaseHeader) LastUpdate() time.Time {
	return time.Date(1900+int(h.YearOffset), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

// HeaderAndRecordBytes is the offset just past the last record.
func (h *DbaseHeader) HeaderAndRecordBytes() int64 {
	return int64(h.HeaderBytes) + int64(h.NumRecords)*int64(h.RecordBytes)
}

// TotalBytes is the expected file size including the trailing EOF marker.
func (h *DbaseHeader) TotalBytes() int64 {
	return h.HeaderAndRecordBytes() + 1
}

// IndexOf returns the position of the first field whose trimmed name matches
// name case-insensitively.
func (h *DbaseHeader) IndexOf(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, f := range h.Fields {
		if strings.EqualFold(strings.TrimSpace(f.Name), name) {
			return i, true
		}
	}
	return -1, false
}

// DbaseRecord is one attribute row, index-aligned with DbaseHeader.Fields.
type DbaseRecord struct {
	Entries []string
}

// DbaseFile is a fully decoded attribute file.
type DbaseFile struct {
	Header  DbaseHeader
	Records []DbaseRecord
}

// DbaseDecoder decodes a dBASE stream. It owns its cursor; use one decoder per stream.
type DbaseDecoder struct {
	cur  *Cursor
	text textDecoder
}

// NewDbaseDecoder starts decoding at the first byte of r. A nil enc means strict UTF-8.
func NewDbaseDecoder(r io.Reader, enc encoding.Encoding) *DbaseDecoder {
	return &DbaseDecoder{cur: NewCursor(r), text: textDecoder{enc: enc}}
}

// Consumed returns the number of bytes decoded so far.
func (d *DbaseDecoder) Consumed() int64 {
	return d.cur.Consumed()
}

// DecodeHeader reads the fixed prefix, the field descriptors and the terminator.
func (d *DbaseDecoder) DecodeHeader() (*DbaseHeader, error) {
	c := d.cur
	h := &DbaseHeader{}

	prefix, err := c.ReadExact(4)
	if err != nil {
		return nil, err
	}
	h.Flags, h.YearOffset, h.Month, h.Day = prefix[0], prefix[1], prefix[2], prefix[3]

	numRecords, err := c.readUint32LE()
	if err != nil {
		return nil, err
	}
	headerBytes, err := c.readUint16LE()
	if err != nil {
		return nil, err
	}
	recordBytes, err := c.readUint16LE()
	if err != nil {
		return nil, err
	}
	h.NumRecords = int(numRecords)
	h.HeaderBytes = int(headerBytes)
	h.RecordBytes = int(recordBytes)

	if err := c.Skip(20); err != nil {
		return nil, err
	}

	// Everything between the prefix and the terminator byte is descriptors
	fixed := dbfPrefixBytes + 1
	descriptorBytes := h.HeaderBytes - fixed
	if descriptorBytes < 0 {
		return nil, &ErrHeaderTooShort{HeaderBytes: h.HeaderBytes, Minimum: fixed}
	}
	if descriptorBytes%fieldDescriptorSize != 0 {
		return nil, &ErrMisalignedFieldTable{DescriptorBytes: descriptorBytes}
	}

	numFields := descriptorBytes / fieldDescriptorSize
	h.Fields = make([]FieldDescriptor, 0, numFields)
	for i := 0; i < numFields; i++ {
		fd, err := d.decodeFieldDescriptor(i)
		if err != nil {
			return nil, err
		}
		h.Fields = append(h.Fields, fd)
	}

	termOffset := c.Consumed()
	term, err := c.readUint8()
	if err != nil {
		return nil, err
	}
	if term != headerTerminator {
		return nil, &ErrMissingTerminator{Got: term, Offset: termOffset}
	}

	// Each record is the flag byte plus every field
	width := 1
	for _, f := range h.Fields {
		width += f.Length
	}
	if width != h.RecordBytes {
		return nil, &ErrFrameLengthMismatch{
			Scope:    FrameRecord,
			Offset:   c.Consumed(),
			Expected: int64(h.RecordBytes),
			Actual:   int64(width),
		}
	}

	return h, nil
}

// decodeFieldDescriptor reads one 32-byte descriptor:
// name[11], type[1], reserved[4], length[1], decimal count[1], reserved[14].
func (d *DbaseDecoder) decodeFieldDescriptor(index int) (FieldDescriptor, error) {
	c := d.cur
	start := c.Consumed()

	raw, err := c.ReadExact(fieldDescriptorSize)
	if err != nil {
		return FieldDescriptor{}, err
	}

	nameBytes := raw[:fieldNameBytes]
	if i := bytes.IndexByte(nameBytes, 0); i >= 0 {
		nameBytes = nameBytes[:i]
	}
	name := strings.TrimSpace(string(nameBytes))
	if name == "" || !utf8.Valid(nameBytes) {
		return FieldDescriptor{}, &ErrInvalidFieldName{
			Field:  index,
			Raw:    append([]byte(nil), raw[:fieldNameBytes]...),
			Offset: start,
		}
	}

	fieldType, err := FieldTypeFromCode(raw[11], index, start+11)
	if err != nil {
		return FieldDescriptor{}, err
	}

	return FieldDescriptor{
		Name:         name,
		Type:         fieldType,
		Length:       int(raw[16]),
		DecimalCount: int(raw[17]),
	}, nil
}

// DecodeRecord reads one record laid out by h. index is the 0-based record
// position and is only used for error context.
//
// Only active records (flag 0x20) are accepted. Deleted records (0x2A) are an
// error as well; skipping them is left to the caller.
func (d *DbaseDecoder) DecodeRecord(h *DbaseHeader, index int) (DbaseRecord, error) {
	c := d.cur

	flagOffset := c.Consumed()
	flag, err := c.readUint8()
	if err != nil {
		return DbaseRecord{}, err
	}
	if flag != recordActive {
		return DbaseRecord{}, &ErrUnexpectedRecordFlag{Flag: flag, Record: index, Offset: flagOffset}
	}

	entries := make([]string, 0, len(h.Fields))
	for _, f := range h.Fields {
		offset := c.Consumed()
		raw, err := c.ReadExact(f.Length)
		if err != nil {
			return DbaseRecord{}, err
		}
		if !f.Type.Decodable() {
			return DbaseRecord{}, &ErrUnsupportedFieldType{Type: f.Type, Field: f.Name, Record: index, Offset: offset}
		}
		text, err := d.text.decode(raw)
		if err != nil {
			return DbaseRecord{}, &ErrInvalidText{Field: f.Name, Record: index, Offset: offset, Err: err}
		}
		entries = append(entries, strings.Trim(text, " \t\r\n\x00"))
	}

	return DbaseRecord{Entries: entries}, nil
}

// DecodeFile reads the header and then records until exactly
// HeaderBytes + NumRecords*RecordBytes bytes have been consumed.
// The trailing EOF marker is not read.
func (d *DbaseDecoder) DecodeFile() (*DbaseFile, error) {
	header, err := d.DecodeHeader()
	if err != nil {
		return nil, err
	}

	goal := header.HeaderAndRecordBytes()
	// NumRecords is untrusted until the records are actually read
	file := &DbaseFile{Header: *header, Records: make([]DbaseRecord, 0, min(header.NumRecords, maxPreallocated))}

	for d.cur.Consumed() < goal {
		if goal-d.cur.Consumed() < int64(header.RecordBytes) {
			break
		}
		index := len(file.Records)
		rec, err := d.DecodeRecord(header, index)
		if err != nil {
			return nil, fmt.Errorf("dBASE record %d: %w", index, err)
		}
		file.Records = append(file.Records, rec)
	}

	if consumed := d.cur.Consumed(); consumed != goal {
		return nil, &ErrFrameLengthMismatch{
			Scope:    FrameFile,
			Offset:   consumed,
			Expected: goal,
			Actual:   consumed,
		}
	}

	glog.V(2).Infof("decoded dBASE file: %d records, %d fields, %d bytes",
		len(file.Records), len(header.Fields), goal)
	return file, nil
}

// ParseDbfFile decodes the dBASE file at filename through a buffered reader.
func ParseDbfFile(filename string, enc encoding.Encoding) (*DbaseFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return NewDbaseDecoder(bufio.NewReader(f), enc).DecodeFile()
}

// ParseDbfBytes decodes a dBASE file held in memory.
func ParseDbfBytes(data []byte, enc encoding.Encoding) (*DbaseFile, error) {
	return NewDbaseDecoder(bytes.NewReader(data), enc).DecodeFile()
}
