package parser

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Numeric code page names as written to .cpg files by common GIS tools.
var numericCodePages = map[string]encoding.Encoding{
	"437":  charmap.CodePage437,
	"850":  charmap.CodePage850,
	"852":  charmap.CodePage852,
	"866":  charmap.CodePage866,
	"1250": charmap.Windows1250,
	"1251": charmap.Windows1251,
	"1252": charmap.Windows1252,
	"1253": charmap.Windows1253,
	"1254": charmap.Windows1254,
	"1255": charmap.Windows1255,
	"1256": charmap.Windows1256,
	"1257": charmap.Windows1257,
	"1258": charmap.Windows1258,
}

// LookupCodePage resolves the contents of a .cpg file to a text encoding.
// An empty name and any spelling of UTF-8 return nil, which means strict UTF-8.
func LookupCodePage(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	switch strings.ToUpper(strings.ReplaceAll(name, "-", "")) {
	case "", "UTF8":
		return nil, nil
	}
	if enc, ok := numericCodePages[name]; ok {
		return enc, nil
	}
	if n := strings.TrimPrefix(strings.ToUpper(name), "CP"); n != strings.ToUpper(name) {
		if enc, ok := numericCodePages[n]; ok {
			return enc, nil
		}
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, &ErrUnknownCodePage{Name: name}
	}
	return enc, nil
}

// textDecoder turns raw attribute bytes into a Go string.
type textDecoder struct {
	enc encoding.Encoding
}

func (t textDecoder) decode(raw []byte) (string, error) {
	if t.enc == nil {
		if !utf8.Valid(raw) {
			return "", errInvalidUTF8
		}
		return string(raw), nil
	}
	out, err := t.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

var errInvalidUTF8 = errors.New("invalid UTF-8")
