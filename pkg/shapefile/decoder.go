package shapefile

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/beetlebugorg/shapefile/internal/parser"
	"github.com/beetlebugorg/shapefile/internal/spatial"
)

// Decoder decodes shape/dBASE pairs into objects.
//
// Create a decoder with NewDecoder and use Decode or DecodeWithOptions to read a pair.
type Decoder interface {
	// Decode reads a .shp file and its .dbf companion with default options.
	//
	// Record i of the shape file is joined with record i of the dBASE file.
	// Returns an error if either file is malformed or the record counts differ.
	Decode(shpPath, dbfPath string) (*Layer, error)

	// DecodeWithOptions reads a pair with custom options.
	DecodeWithOptions(shpPath, dbfPath string, opts DecodeOptions) (*Layer, error)

	// DecodeBytes decodes a pair held in memory. CodePage in opts is used
	// as is; there is no sidecar to consult.
	DecodeBytes(name string, shp, dbf []byte, opts DecodeOptions) (*Layer, error)

	// DecodeShapes reads only a .shp file. No join takes place, so the
	// records keep their file numbering and multi-part lines are allowed.
	DecodeShapes(path string, mode ReadMode) (*ShapeFile, error)

	// DecodeShapesBytes decodes a .shp file held in memory.
	DecodeShapesBytes(shp []byte) (*ShapeFile, error)

	// DecodeAttributes reads only a .dbf file. CodePage and Mode in opts
	// apply as for DecodeWithOptions; the other options are ignored.
	DecodeAttributes(path string, opts DecodeOptions) (*AttributeFile, error)

	// DecodeAttributesBytes decodes a .dbf file held in memory, using
	// opts.CodePage as is.
	DecodeAttributesBytes(dbf []byte, opts DecodeOptions) (*AttributeFile, error)
}

// NewDecoder creates a decoder.
//
// Example:
//
//	dec := shapefile.NewDecoder()
//	layer, err := dec.Decode("roads.shp", "roads.dbf")
func NewDecoder() Decoder {
	return &decoderWrapper{
		internal: parser.NewParser(),
	}
}

// decoderWrapper wraps the internal parser and converts types
type decoderWrapper struct {
	internal parser.Parser
}

func (d *decoderWrapper) Decode(shpPath, dbfPath string) (*Layer, error) {
	return d.DecodeWithOptions(shpPath, dbfPath, DefaultDecodeOptions())
}

func (d *decoderWrapper) DecodeWithOptions(shpPath, dbfPath string, opts DecodeOptions) (*Layer, error) {
	internalOpts := parser.ParseOptions{
		CodePage: opts.CodePage,
		Mode:     opts.Mode,
	}
	pair, err := d.internal.ParseWithOptions(shpPath, dbfPath, internalOpts)
	if err != nil {
		return nil, err
	}
	return buildLayer(layerName(shpPath), pair, opts)
}

func (d *decoderWrapper) DecodeBytes(name string, shp, dbf []byte, opts DecodeOptions) (*Layer, error) {
	shapes, err := parser.NewShapeDecoder(bytes.NewReader(shp)).DecodeFile()
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s shapes", name)
	}
	enc, err := parser.LookupCodePage(opts.CodePage)
	if err != nil {
		return nil, err
	}
	attrs, err := parser.NewDbaseDecoder(bytes.NewReader(dbf), enc).DecodeFile()
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s attributes", name)
	}
	pair := &parser.Layer{Shapes: shapes, Attributes: attrs, CodePage: opts.CodePage}
	return buildLayer(name, pair, opts)
}

func (d *decoderWrapper) DecodeShapes(path string, mode ReadMode) (*ShapeFile, error) {
	file, err := parser.ReadShapes(path, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return newShapeFile(file)
}

func (d *decoderWrapper) DecodeShapesBytes(shp []byte) (*ShapeFile, error) {
	file, err := parser.ParseShpBytes(shp)
	if err != nil {
		return nil, errors.Wrap(err, "decode shapes")
	}
	return newShapeFile(file)
}

func (d *decoderWrapper) DecodeAttributes(path string, opts DecodeOptions) (*AttributeFile, error) {
	codePage, enc, err := parser.ResolveCodePage(path, opts.CodePage)
	if err != nil {
		return nil, err
	}
	file, err := parser.ReadAttributes(path, enc, opts.Mode)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return newAttributeFile(file, codePage), nil
}

func (d *decoderWrapper) DecodeAttributesBytes(dbf []byte, opts DecodeOptions) (*AttributeFile, error) {
	enc, err := parser.LookupCodePage(opts.CodePage)
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseDbfBytes(dbf, enc)
	if err != nil {
		return nil, errors.Wrap(err, "decode attributes")
	}
	return newAttributeFile(file, opts.CodePage), nil
}

func buildLayer(name string, pair *parser.Layer, opts DecodeOptions) (*Layer, error) {
	objects, err := spatial.Join(pair.Shapes, pair.Attributes, spatial.JoinOptions{
		NameField:  opts.NameField,
		ClassField: opts.ClassField,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "join %s", name)
	}
	if opts.NamedOnly {
		objects = spatial.NamedOnly(objects)
	}
	return newLayer(name, pair.Shapes.Header.ShapeType.String(), pair.CodePage, convertObjects(objects)), nil
}

// layerName is the file name without directory or extension.
func layerName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
