package shapefile

import (
	"time"

	"github.com/pkg/errors"

	"github.com/beetlebugorg/shapefile/internal/parser"
)

// ShapeFile is a decoded .shp file on its own, without attributes.
type ShapeFile struct {
	header  ShapeHeader
	records []ShapeRecord
}

// ShapeHeader is the fixed 100-byte header of a shape file.
type ShapeHeader struct {
	// ShapeType is the type declared for the whole file, e.g. "PolyLine".
	ShapeType       string
	Version         int32
	FileLengthBytes int64
	Bounds          Bounds
}

// ShapeRecord is one record of a shape file.
type ShapeRecord struct {
	// Number is the 1-based record number stored in the file.
	Number             int32
	ShapeType          string
	ContentLengthBytes int64

	// Parts holds the record's points grouped by part. A Point record has a
	// single part with one point; a Null record has none.
	Parts [][][]float64
}

// Header returns the file header.
func (f *ShapeFile) Header() ShapeHeader { return f.header }

// Records returns the records in file order.
func (f *ShapeFile) Records() []ShapeRecord { return f.records }

// RecordCount returns the number of records.
func (f *ShapeFile) RecordCount() int { return len(f.records) }

func newShapeFile(src *parser.ShpFile) (*ShapeFile, error) {
	h := src.Header
	f := &ShapeFile{
		header: ShapeHeader{
			ShapeType:       h.ShapeType.String(),
			Version:         h.Version,
			FileLengthBytes: h.FileLengthBytes(),
			Bounds: Bounds{
				MinX: h.Box.X.Min, MinY: h.Box.Y.Min,
				MaxX: h.Box.X.Max, MaxY: h.Box.Y.Max,
			},
		},
		records: make([]ShapeRecord, len(src.Records)),
	}
	for i, rec := range src.Records {
		parts, err := recordParts(rec.Geometry)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", rec.Header.RecordNumber)
		}
		f.records[i] = ShapeRecord{
			Number:             rec.Header.RecordNumber,
			ShapeType:          rec.Geometry.Type().String(),
			ContentLengthBytes: rec.Header.ContentLengthBytes(),
			Parts:              parts,
		}
	}
	return f, nil
}

func recordParts(g parser.Geometry) ([][][]float64, error) {
	var groups [][]parser.Point
	switch v := g.(type) {
	case parser.Point:
		return [][][]float64{{{v.X, v.Y}}}, nil
	case parser.PolyLine:
		var err error
		if groups, err = v.Split(); err != nil {
			return nil, err
		}
	case parser.Polygon:
		var err error
		if groups, err = v.Split(); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}
	if len(groups) == 0 {
		return nil, nil
	}
	parts := make([][][]float64, len(groups))
	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		parts[i] = make([][]float64, len(group))
		for j, p := range group {
			parts[i][j] = []float64{p.X, p.Y}
		}
	}
	return parts, nil
}

// AttributeFile is a decoded .dbf file on its own, without shapes.
type AttributeFile struct {
	header   AttributeHeader
	records  [][]string
	codePage string
}

// AttributeHeader is the dBASE header and field table.
type AttributeHeader struct {
	NumRecords  int
	HeaderBytes int
	RecordBytes int
	LastUpdate  time.Time
	Fields      []Field
}

// Field describes one dBASE column.
type Field struct {
	Name string
	// Type is the field type name, e.g. "Character" or "Numeric".
	Type     string
	Length   int
	Decimals int
}

// Header returns the header and field table.
func (f *AttributeFile) Header() AttributeHeader { return f.header }

// Records returns the trimmed field values of every record, in field order.
func (f *AttributeFile) Records() [][]string { return f.records }

// RecordCount returns the number of records.
func (f *AttributeFile) RecordCount() int { return len(f.records) }

// CodePage returns the code page the text was decoded with; "" means UTF-8.
func (f *AttributeFile) CodePage() string { return f.codePage }

// IndexOf returns the position of the first field named name.
func (f *AttributeFile) IndexOf(name string) (int, bool) {
	for i, field := range f.header.Fields {
		if field.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns the values of one field across all records.
func (f *AttributeFile) Column(name string) ([]string, bool) {
	idx, ok := f.IndexOf(name)
	if !ok {
		return nil, false
	}
	values := make([]string, len(f.records))
	for i, rec := range f.records {
		values[i] = rec[idx]
	}
	return values, true
}

func newAttributeFile(src *parser.DbaseFile, codePage string) *AttributeFile {
	h := src.Header
	fields := make([]Field, len(h.Fields))
	for i, fd := range h.Fields {
		fields[i] = Field{
			Name:     fd.Name,
			Type:     fd.Type.String(),
			Length:   fd.Length,
			Decimals: fd.DecimalCount,
		}
	}
	records := make([][]string, len(src.Records))
	for i, rec := range src.Records {
		records[i] = rec.Entries
	}
	return &AttributeFile{
		header: AttributeHeader{
			NumRecords:  h.NumRecords,
			HeaderBytes: h.HeaderBytes,
			RecordBytes: h.RecordBytes,
			LastUpdate:  h.LastUpdate(),
			Fields:      fields,
		},
		records:  records,
		codePage: codePage,
	}
}
