package parser

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

func TestLookupCodePage(t *testing.T) {
	tests := []struct {
		name string
		want encoding.Encoding
	}{
		{"", nil},
		{"UTF-8", nil},
		{" utf8\n", nil},
		{"1252", charmap.Windows1252},
		{"CP1251", charmap.Windows1251},
		{"cp437", charmap.CodePage437},
		{"ISO-8859-1", charmap.ISO8859_1},
		{"windows-1250", charmap.Windows1250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupCodePage(tt.name)
			if err != nil {
				t.Fatalf("LookupCodePage(%q): %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("LookupCodePage(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookupCodePageUnknown(t *testing.T) {
	_, err := LookupCodePage("klingon")

	var e *ErrUnknownCodePage
	if !errors.As(err, &e) {
		t.Fatalf("expected *ErrUnknownCodePage, got %v", err)
	}
	if e.Name != "klingon" {
		t.Errorf("Name = %q, want klingon", e.Name)
	}
}
