// Package shptest builds byte-exact shape and dBASE files for tests.
//
// Builders derive every declared length (file length, record content length,
// dBASE header and record widths) from the content they are given. Each
// builder also exposes knobs that break exactly one of those declarations so
// tests can exercise a single failure mode at a time.
package shptest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Shape type codes, mirrored here so tests can build files without importing the decoder.
const (
	TypeNull       int32 = 0
	TypePoint      int32 = 1
	TypePolyLine   int32 = 3
	TypePolygon    int32 = 5
	TypeMultiPoint int32 = 8
	TypePointZ     int32 = 11
)

// FileCode is the big endian magic at byte 0 of a shape file.
const FileCode uint32 = 0x0000270A

// XY is a coordinate pair.
type XY [2]float64

type shpRecord struct {
	number      int32
	content     []byte
	lengthDelta int32
}

// ShpBuilder assembles a shape file.
type ShpBuilder struct {
	FileCode        uint32
	Version         int32
	ShapeType       int32
	Box             [4]float64 // Xmin, Ymin, Xmax, Ymax
	FileLengthDelta int32      // Added to the computed file length, in 16-bit words

	records []shpRecord
}

// NewShp starts a shape file whose header declares shapeType.
func NewShp(shapeType int32) *ShpBuilder {
	return &ShpBuilder{FileCode: FileCode, Version: 1000, ShapeType: shapeType}
}

// Null appends a Null record.
func (b *ShpBuilder) Null() *ShpBuilder {
	return b.Raw(TypeNull, nil)
}

// Point appends a Point record.
func (b *ShpBuilder) Point(x, y float64) *ShpBuilder {
	var buf bytes.Buffer
	writeLE(&buf, x, y)
	return b.Raw(TypePoint, buf.Bytes())
}

// PolyLine appends a PolyLine record with the given part offsets.
func (b *ShpBuilder) PolyLine(parts []int32, points ...XY) *ShpBuilder {
	return b.Raw(TypePolyLine, MultiPartPayload(parts, points))
}

// Polygon appends a Polygon record with the given part offsets.
func (b *ShpBuilder) Polygon(parts []int32, points ...XY) *ShpBuilder {
	return b.Raw(TypePolygon, MultiPartPayload(parts, points))
}

// Raw appends a record of any type; payload follows the shape type field.
func (b *ShpBuilder) Raw(shapeType int32, payload []byte) *ShpBuilder {
	var buf bytes.Buffer
	writeLE(&buf, shapeType)
	buf.Write(payload)
	b.records = append(b.records, shpRecord{
		number:  int32(len(b.records) + 1),
		content: buf.Bytes(),
	})
	return b
}

// SkewContentLength adds delta words to the last record's declared content length.
func (b *ShpBuilder) SkewContentLength(delta int32) *ShpBuilder {
	b.records[len(b.records)-1].lengthDelta += delta
	return b
}

// Len returns the number of records added so far.
func (b *ShpBuilder) Len() int {
	return len(b.records)
}

// Bytes renders the file.
func (b *ShpBuilder) Bytes() []byte {
	var body bytes.Buffer
	for _, r := range b.records {
		writeBE(&body, r.number, int32(len(r.content)/2)+r.lengthDelta)
		body.Write(r.content)
	}

	var out bytes.Buffer
	writeBE(&out, b.FileCode)
	out.Write(make([]byte, 20))
	writeBE(&out, int32((100+body.Len())/2)+b.FileLengthDelta)
	writeLE(&out, b.Version, b.ShapeType)
	writeLE(&out, b.Box[0], b.Box[1], b.Box[2], b.Box[3])
	out.Write(make([]byte, 32)) // Z and M ranges
	out.Write(body.Bytes())
	return out.Bytes()
}

// MultiPartPayload encodes Box, NumParts, NumPoints, Parts and Points.
// The box is computed from points.
func MultiPartPayload(parts []int32, points []XY) []byte {
	box := bounds(points)
	var buf bytes.Buffer
	writeLE(&buf, box[0], box[1], box[2], box[3])
	writeLE(&buf, int32(len(parts)), int32(len(points)))
	for _, p := range parts {
		writeLE(&buf, p)
	}
	for _, pt := range points {
		writeLE(&buf, pt[0], pt[1])
	}
	return buf.Bytes()
}

func bounds(points []XY) [4]float64 {
	if len(points) == 0 {
		return [4]float64{}
	}
	box := [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		box[0] = math.Min(box[0], p[0])
		box[1] = math.Min(box[1], p[1])
		box[2] = math.Max(box[2], p[0])
		box[3] = math.Max(box[3], p[1])
	}
	return box
}

// Field is one dBASE column.
type Field struct {
	Name     string
	Type     byte
	Length   int
	Decimals int
}

// Char returns a Character field.
func Char(name string, length int) Field {
	return Field{Name: name, Type: 'C', Length: length}
}

// Numeric returns a Numeric field.
func Numeric(name string, length, decimals int) Field {
	return Field{Name: name, Type: 'N', Length: length, Decimals: decimals}
}

type dbfRow struct {
	flag   byte
	values []string
}

// DbfBuilder assembles a dBASE III file.
type DbfBuilder struct {
	Fields []Field

	Year, Month, Day byte // Year counts from 1900
	HeaderBytesDelta int  // Added to the computed header length
	RecordBytesDelta int  // Added to the computed record length
	NumRecordsDelta  int  // Added to the actual row count
	Terminator       byte
	OmitEOF          bool

	rows []dbfRow
}

// NewDbf starts a dBASE file with the given columns.
func NewDbf(fields ...Field) *DbfBuilder {
	return &DbfBuilder{
		Fields:     fields,
		Year:       124,
		Month:      10,
		Day:        18,
		Terminator: 0x0D,
	}
}

// Row appends an active record.
func (b *DbfBuilder) Row(values ...string) *DbfBuilder {
	return b.RowWithFlag(0x20, values...)
}

// RowWithFlag appends a record with an arbitrary deletion flag.
func (b *DbfBuilder) RowWithFlag(flag byte, values ...string) *DbfBuilder {
	b.rows = append(b.rows, dbfRow{flag: flag, values: values})
	return b
}

// HeaderBytes returns the header length the file will declare.
func (b *DbfBuilder) HeaderBytes() int {
	return 32 + 32*len(b.Fields) + 1 + b.HeaderBytesDelta
}

// RecordBytes returns the record length the file will declare.
func (b *DbfBuilder) RecordBytes() int {
	n := 1
	for _, f := range b.Fields {
		n += f.Length
	}
	return n + b.RecordBytesDelta
}

// Bytes renders the file. Values longer than their field are truncated,
// shorter ones are padded with spaces.
func (b *DbfBuilder) Bytes() []byte {
	var out bytes.Buffer
	out.Write([]byte{0x03, b.Year, b.Month, b.Day})
	writeLE(&out, uint32(len(b.rows)+b.NumRecordsDelta), uint16(b.HeaderBytes()), uint16(b.RecordBytes()))
	out.Write(make([]byte, 20))

	for _, f := range b.Fields {
		name := make([]byte, 11)
		copy(name, f.Name)
		out.Write(name)
		out.WriteByte(f.Type)
		out.Write(make([]byte, 4))
		out.WriteByte(byte(f.Length))
		out.WriteByte(byte(f.Decimals))
		out.Write(make([]byte, 14))
	}
	out.WriteByte(b.Terminator)

	for _, r := range b.rows {
		out.WriteByte(r.flag)
		for i, f := range b.Fields {
			cell := bytes.Repeat([]byte{' '}, f.Length)
			if i < len(r.values) {
				copy(cell, r.values[i])
			}
			out.Write(cell)
		}
	}
	if !b.OmitEOF {
		out.WriteByte(0x1A)
	}
	return out.Bytes()
}

// WritePair writes stem.shp and stem.dbf into dir and returns their paths.
func WritePair(tb testing.TB, dir, stem string, shp, dbf []byte) (string, string) {
	tb.Helper()
	shpPath := filepath.Join(dir, stem+".shp")
	dbfPath := filepath.Join(dir, stem+".dbf")
	WriteFile(tb, shpPath, shp)
	WriteFile(tb, dbfPath, dbf)
	return shpPath, dbfPath
}

// WriteFile writes data to path, failing the test on error.
func WriteFile(tb testing.TB, path string, data []byte) {
	tb.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeLE(buf *bytes.Buffer, values ...any) {
	for _, v := range values {
		_ = binary.Write(buf, binary.LittleEndian, v)
	}
}

func writeBE(buf *bytes.Buffer, values ...any) {
	for _, v := range values {
		_ = binary.Write(buf, binary.BigEndian, v)
	}
}
