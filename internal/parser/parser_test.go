package parser

import (
	"path/filepath"
	"testing"

	"github.com/beetlebugorg/shapefile/internal/shptest"
)

func writeRoadPair(t *testing.T, dir string) (string, string) {
	t.Helper()
	shp := shptest.NewShp(shptest.TypePolyLine).
		PolyLine([]int32{0}, shptest.XY{0, 0}, shptest.XY{1, 1}).
		PolyLine([]int32{0}, shptest.XY{2, 2}, shptest.XY{3, 3}, shptest.XY{4, 4}).
		Bytes()
	dbf := shptest.NewDbf(shptest.Char("name", 12), shptest.Char("fclass", 12)).
		Row("Rue d\xe9", "primary").
		Row("", "track").
		Bytes()
	return shptest.WritePair(t, dir, "roads", shp, dbf)
}

func TestParsePair(t *testing.T) {
	dir := t.TempDir()
	shpPath, dbfPath := writeRoadPair(t, dir)
	shptest.WriteFile(t, filepath.Join(dir, "roads.cpg"), []byte("1252\n"))

	for _, mode := range []ReadMode{ReadBuffered, ReadWhole} {
		t.Run(mode.String(), func(t *testing.T) {
			layer, err := NewParser().ParseWithOptions(shpPath, dbfPath, ParseOptions{Mode: mode})
			if err != nil {
				t.Fatalf("ParseWithOptions: %v", err)
			}
			if layer.CodePage != "1252" {
				t.Errorf("CodePage = %q, want 1252", layer.CodePage)
			}
			if len(layer.Shapes.Records) != 2 || len(layer.Attributes.Records) != 2 {
				t.Fatalf("got %d shapes and %d attribute records, want 2 and 2",
					len(layer.Shapes.Records), len(layer.Attributes.Records))
			}
			if got := layer.Attributes.Records[0].Entries[0]; got != "Rue dé" {
				t.Errorf("name = %q, want %q", got, "Rue dé")
			}
		})
	}
}

func TestParsePairCodePageOverride(t *testing.T) {
	dir := t.TempDir()
	shpPath, dbfPath := writeRoadPair(t, dir)

	// Without a sidecar the attributes must be UTF-8
	if _, err := NewParser().Parse(shpPath, dbfPath); err == nil {
		t.Fatal("expected invalid text error without a code page")
	}

	layer, err := NewParser().ParseWithOptions(shpPath, dbfPath, ParseOptions{CodePage: "ISO-8859-1"})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if got := layer.Attributes.Records[0].Entries[0]; got != "Rue dé" {
		t.Errorf("name = %q, want %q", got, "Rue dé")
	}
}

func TestParsePairMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewParser().Parse(filepath.Join(dir, "none.shp"), filepath.Join(dir, "none.dbf"))
	if err == nil {
		t.Fatal("expected error for missing files")
	}
}

func TestParseReadMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ReadMode
		wantErr bool
	}{
		{"file", ReadBuffered, false},
		{"", ReadBuffered, false},
		{"BYTES", ReadWhole, false},
		{"mmap", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseReadMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReadMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReadMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveCodePage(t *testing.T) {
	dir := t.TempDir()
	withSidecar := filepath.Join(dir, "roads.dbf")
	shptest.WriteFile(t, filepath.Join(dir, "roads.cpg"), []byte(" 1252\n"))
	without := filepath.Join(dir, "pois.dbf")

	tests := []struct {
		name     string
		path     string
		override string
		want     string
		wantEnc  bool
		wantErr  bool
	}{
		{name: "sidecar", path: withSidecar, want: "1252", wantEnc: true},
		{name: "override wins", path: withSidecar, override: "UTF-8", want: "UTF-8"},
		{name: "no sidecar", path: without, want: ""},
		{name: "unknown override", path: without, override: "klingon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := ResolveCodePage(tt.path, tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("code page = %q, want %q", got, tt.want)
			}
			if (enc != nil) != tt.wantEnc {
				t.Errorf("encoding = %v, wantEnc %v", enc, tt.wantEnc)
			}
		})
	}
}
