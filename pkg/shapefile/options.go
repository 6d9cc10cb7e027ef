package shapefile

import "github.com/beetlebugorg/shapefile/internal/parser"

// ReadMode selects how file contents reach the decoders.
type ReadMode = parser.ReadMode

const (
	// ReadBuffered streams each file through a buffered reader.
	ReadBuffered = parser.ReadBuffered
	// ReadWhole loads each file into memory and decodes from the byte slice.
	ReadWhole = parser.ReadWhole
)

// ParseReadMode accepts "file" and "bytes".
func ParseReadMode(s string) (ReadMode, error) {
	return parser.ParseReadMode(s)
}

// DecodeOptions configures decoding behavior.
type DecodeOptions struct {
	// NameField is the dBASE field holding the object name.
	// A layer without this field yields unnamed objects. Empty disables names.
	NameField string

	// ClassField is the dBASE field holding the feature classification.
	// It must be present when set. Empty leaves Class blank.
	ClassField string

	// CodePage overrides the dBASE text encoding. When empty the .cpg
	// sidecar is used if present, otherwise text must be UTF-8.
	CodePage string

	// NamedOnly drops objects without a name after the join.
	NamedOnly bool

	// Mode selects streaming or whole-file decoding.
	Mode ReadMode
}

// DefaultDecodeOptions returns default options.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		NameField:  "name",
		ClassField: "fclass",
		CodePage:   "",
		NamedOnly:  false,
		Mode:       ReadBuffered,
	}
}
