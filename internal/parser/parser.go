package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/text/encoding"
)

// Parser decodes a shape file and its companion dBASE file.
//
// The two files of a pair carry no key linking them; records are matched by
// position later, so a Parser only guarantees that each file is internally
// consistent (every declared length accounted for).
type Parser interface {
	// Parse decodes both files of a pair with default options
	Parse(shpPath, dbfPath string) (*Layer, error)

	// ParseWithOptions decodes both files of a pair with custom options
	ParseWithOptions(shpPath, dbfPath string, opts ParseOptions) (*Layer, error)
}

// Layer is one decoded shape/dBASE pair, not yet joined.
type Layer struct {
	Shapes     *ShpFile
	Attributes *DbaseFile
	CodePage   string // Code page the attributes were decoded with, "" for UTF-8
}

// ReadMode selects how file contents reach the decoders
type ReadMode int

const (
	// ReadBuffered streams the file through a buffered reader
	ReadBuffered ReadMode = iota
	// ReadWhole loads the file into memory and decodes from the byte slice
	ReadWhole
)

func (m ReadMode) String() string {
	if m == ReadWhole {
		return "bytes"
	}
	return "file"
}

// ParseReadMode accepts "file" and "bytes".
func ParseReadMode(s string) (ReadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "file":
		return ReadBuffered, nil
	case "bytes":
		return ReadWhole, nil
	default:
		return 0, fmt.Errorf("unknown read mode %q (want file or bytes)", s)
	}
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// CodePage names the dBASE text encoding.
	// Empty means use the .cpg sidecar when present, otherwise UTF-8.
	CodePage string

	// Mode selects streaming or whole-file decoding
	Mode ReadMode
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		CodePage: "",
		Mode:     ReadBuffered,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new pair parser
func NewParser() Parser {
	return &defaultParser{}
}

func (p *defaultParser) Parse(shpPath, dbfPath string) (*Layer, error) {
	return p.ParseWithOptions(shpPath, dbfPath, DefaultParseOptions())
}

func (p *defaultParser) ParseWithOptions(shpPath, dbfPath string, opts ParseOptions) (*Layer, error) {
	shapes, err := ReadShapes(shpPath, opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", shpPath, err)
	}

	codePage, enc, err := ResolveCodePage(dbfPath, opts.CodePage)
	if err != nil {
		return nil, err
	}

	attrs, err := ReadAttributes(dbfPath, enc, opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", dbfPath, err)
	}

	glog.V(2).Infof("parsed pair %s: %d shapes, %d attribute records",
		filepath.Base(shpPath), len(shapes.Records), len(attrs.Records))
	return &Layer{Shapes: shapes, Attributes: attrs, CodePage: codePage}, nil
}

// ReadShapes decodes a shape file using the given read mode.
func ReadShapes(filename string, mode ReadMode) (*ShpFile, error) {
	if mode == ReadWhole {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return ParseShpBytes(data)
	}
	return ParseShpFile(filename)
}

// ReadAttributes decodes a dBASE file using the given read mode and encoding.
func ReadAttributes(filename string, enc encoding.Encoding, mode ReadMode) (*DbaseFile, error) {
	if mode == ReadWhole {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return ParseDbfBytes(data, enc)
	}
	return ParseDbfFile(filename, enc)
}

// ResolveCodePage picks the text encoding for dbfPath. A non-empty override
// wins; otherwise the .cpg sidecar is used, and without one text is UTF-8.
func ResolveCodePage(dbfPath, override string) (string, encoding.Encoding, error) {
	codePage := override
	if codePage == "" {
		var err error
		if codePage, err = SidecarCodePage(dbfPath); err != nil {
			return "", nil, err
		}
	}
	enc, err := LookupCodePage(codePage)
	if err != nil {
		return "", nil, err
	}
	return codePage, enc, nil
}

// SidecarCodePage returns the trimmed contents of the .cpg sidecar next to
// dbfPath, or "" when there is none.
func SidecarCodePage(dbfPath string) (string, error) {
	stem := strings.TrimSuffix(dbfPath, filepath.Ext(dbfPath))
	for _, ext := range []string{".cpg", ".CPG"} {
		data, err := os.ReadFile(stem + ext)
		if err == nil {
			return strings.TrimSpace(string(data)), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("error reading code page file %s: %w", stem+ext, err)
		}
	}
	return "", nil
}
