package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// FileCode is the big-endian magic number at the start of every shape file.
const FileCode = 0x0000270A

const (
	shpHeaderBytes       = 100
	shpRecordHeaderBytes = 8
)

// ShpHeader is the fixed 100-byte shape file header.
//
// Layout (Shapefile Technical Description, table 1):
//   - bytes 0-3:   file code, big endian
//   - bytes 4-23:  unused
//   - bytes 24-27: file length in 16-bit words, big endian
//   - bytes 28-31: version, little endian
//   - bytes 32-35: shape type, little endian
//   - bytes 36-67: Xmin, Ymin, Xmax, Ymax, little endian doubles
//   - bytes 68-99: Zmin, Zmax, Mmin, Mmax, little endian doubles
type ShpHeader struct {
	FileCode        uint32
	FileLengthWords int32
	Version         int32
	ShapeType       ShapeType
	Box             BoundingRectangle
	ZRange          Range
	MRange          Range
}

// FileLengthBytes returns the declared total file size in bytes.
func (h *ShpHeader) FileLengthBytes() int64 {
	return int64(h.FileLengthWords) * 2
}

// ShpRecordHeader frames one record. ContentLengthWords excludes the 8 header bytes.
type ShpRecordHeader struct {
	RecordNumber       int32 // Starts at 1
	ContentLengthWords int32
}

// ContentLengthBytes returns the declared payload size in bytes.
func (h ShpRecordHeader) ContentLengthBytes() int64 {
	return int64(h.ContentLengthWords) * 2
}

// ShapeRecord is one framed record with its decoded geometry.
type ShapeRecord struct {
	Header   ShpRecordHeader
	Geometry Geometry
}

// ShpFile is a fully decoded shape file.
type ShpFile struct {
	Header  ShpHeader
	Records []ShapeRecord
}

// ShapeDecoder decodes a shape file stream. It owns its cursor; use one decoder per stream.
type ShapeDecoder struct {
	cur *Cursor
}

// NewShapeDecoder starts decoding at the first byte of r.
func NewShapeDecoder(r io.Reader) *ShapeDecoder {
	return &ShapeDecoder{cur: NewCursor(r)}
}

// Consumed returns the number of bytes decoded so far.
func (d *ShapeDecoder) Consumed() int64 {
	return d.cur.Consumed()
}

// DecodeHeader reads the 100-byte file header. Any failure here is fatal for the file.
func (d *ShapeDecoder) DecodeHeader() (*ShpHeader, error) {
	c := d.cur

	code, err := c.readUint32BE()
	if err != nil {
		return nil, err
	}
	if code != FileCode {
		return nil, &ErrBadMagic{Got: code}
	}

	// Five unused big endian integers
	if err := c.Skip(20); err != nil {
		return nil, err
	}

	length, err := c.readInt32BE()
	if err != nil {
		return nil, err
	}
	version, err := c.readInt32LE()
	if err != nil {
		return nil, err
	}

	typeOffset := c.Consumed()
	rawType, err := c.readInt32LE()
	if err != nil {
		return nil, err
	}
	shapeType, err := ShapeTypeFromCode(rawType, typeOffset)
	if err != nil {
		return nil, err
	}

	box, err := readBoundingRectangle(c)
	if err != nil {
		return nil, err
	}
	var zm [4]float64
	for i := range zm {
		if zm[i], err = c.readFloat64LE(); err != nil {
			return nil, err
		}
	}

	return &ShpHeader{
		FileCode:        code,
		FileLengthWords: length,
		Version:         version,
		ShapeType:       shapeType,
		Box:             box,
		ZRange:          Range{Min: zm[0], Max: zm[1]},
		MRange:          Range{Min: zm[2], Max: zm[3]},
	}, nil
}

// DecodeRecordHeader reads the big endian record number and content length.
func (d *ShapeDecoder) DecodeRecordHeader() (ShpRecordHeader, error) {
	number, err := d.cur.readInt32BE()
	if err != nil {
		return ShpRecordHeader{}, err
	}
	length, err := d.cur.readInt32BE()
	if err != nil {
		return ShpRecordHeader{}, err
	}
	return ShpRecordHeader{RecordNumber: number, ContentLengthWords: length}, nil
}

// DecodeRecord reads one record header and its payload.
//
// The payload must consume exactly ContentLengthBytes; a record that decodes to a
// plausible shape but leaves the cursor anywhere else is still rejected, since every
// following record would be misaligned.
func (d *ShapeDecoder) DecodeRecord() (ShapeRecord, error) {
	rh, err := d.DecodeRecordHeader()
	if err != nil {
		return ShapeRecord{}, err
	}
	geometry, err := d.decodePayload(rh)
	if err != nil {
		return ShapeRecord{}, err
	}
	return ShapeRecord{Header: rh, Geometry: geometry}, nil
}

func (d *ShapeDecoder) decodePayload(rh ShpRecordHeader) (Geometry, error) {
	c := d.cur
	start := c.Consumed()
	expected := rh.ContentLengthBytes()

	rawType, err := c.readInt32LE()
	if err != nil {
		return nil, err
	}
	shapeType, err := ShapeTypeFromCode(rawType, start)
	if err != nil {
		return nil, err
	}

	var geometry Geometry
	switch shapeType {
	case ShapeNull:
		geometry, err = decodeNull(c)
	case ShapePoint:
		geometry, err = decodePoint(c)
	case ShapePolyLine:
		geometry, err = decodePolyLine(c, expected)
	case ShapePolygon:
		geometry, err = decodePolygon(c, expected)
	default:
		return nil, &ErrUnsupportedShapeType{Code: rawType, Record: rh.RecordNumber, Offset: start}
	}
	if err != nil {
		var frame *ErrFrameLengthMismatch
		if errors.As(err, &frame) && frame.Record == 0 {
			frame.Record = rh.RecordNumber
		}
		return nil, fmt.Errorf("record %d (%s): %w", rh.RecordNumber, shapeType, err)
	}

	if actual := c.Consumed() - start; actual != expected {
		return nil, &ErrFrameLengthMismatch{
			Scope:    FrameRecord,
			Record:   rh.RecordNumber,
			Offset:   c.Consumed(),
			Expected: expected,
			Actual:   actual,
		}
	}

	if glog.V(3) {
		glog.Infof("shp record %d: %s, %d bytes", rh.RecordNumber, shapeType, expected)
	}
	return geometry, nil
}

// DecodeFile reads the header and then records until exactly FileLengthBytes
// have been consumed.
func (d *ShapeDecoder) DecodeFile() (*ShpFile, error) {
	header, err := d.DecodeHeader()
	if err != nil {
		return nil, err
	}

	target := header.FileLengthBytes()
	file := &ShpFile{Header: *header}

	for d.cur.Consumed() < target {
		remaining := target - d.cur.Consumed()
		if remaining < shpRecordHeaderBytes {
			return nil, d.fileOvershoot(target, d.cur.Consumed()+shpRecordHeaderBytes)
		}

		rh, err := d.DecodeRecordHeader()
		if err != nil {
			return nil, err
		}
		if end := d.cur.Consumed() + rh.ContentLengthBytes(); end > target || rh.ContentLengthWords < 0 {
			return nil, d.fileOvershoot(target, end)
		}

		geometry, err := d.decodePayload(rh)
		if err != nil {
			return nil, err
		}
		file.Records = append(file.Records, ShapeRecord{Header: rh, Geometry: geometry})
	}

	if consumed := d.cur.Consumed(); consumed != target {
		return nil, d.fileOvershoot(target, consumed)
	}

	glog.V(2).Infof("decoded shape file: %d records of %s, %d bytes",
		len(file.Records), header.ShapeType, target)
	return file, nil
}

func (d *ShapeDecoder) fileOvershoot(target, actual int64) error {
	return &ErrFrameLengthMismatch{
		Scope:    FrameFile,
		Offset:   d.cur.Consumed(),
		Expected: target,
		Actual:   actual,
	}
}

// ParseShpFile decodes the shape file at filename through a buffered reader.
func ParseShpFile(filename string) (*ShpFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return NewShapeDecoder(bufio.NewReader(f)).DecodeFile()
}

// ParseShpBytes decodes a shape file held in memory.
func ParseShpBytes(data []byte) (*ShpFile, error) {
	return NewShapeDecoder(bytes.NewReader(data)).DecodeFile()
}
