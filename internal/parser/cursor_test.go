package parser

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestCursorCountsConsumedBytes(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{
		0x00, 0x00, 0x27, 0x0A, // BE 9994
		0x0A, 0x27, 0x00, 0x00, // LE 9994
		0xAA, 0xBB, 0xCC,
	}))

	be, err := c.readUint32BE()
	if err != nil {
		t.Fatalf("readUint32BE: %v", err)
	}
	if be != FileCode {
		t.Errorf("readUint32BE = 0x%x, want 0x%x", be, FileCode)
	}
	le, err := c.readUint32LE()
	if err != nil {
		t.Fatalf("readUint32LE: %v", err)
	}
	if le != FileCode {
		t.Errorf("readUint32LE = 0x%x, want 0x%x", le, FileCode)
	}
	if c.Consumed() != 8 {
		t.Errorf("Consumed = %d, want 8", c.Consumed())
	}

	if err := c.Skip(1); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	b, err := c.ReadExact(2)
	if err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if !bytes.Equal(b, []byte{0xBB, 0xCC}) {
		t.Errorf("ReadExact = %x, want bbcc", b)
	}
	if c.Consumed() != 11 {
		t.Errorf("Consumed = %d, want 11", c.Consumed())
	}
}

func TestCursorTruncatedInput(t *testing.T) {
	tests := []struct {
		name string
		read func(c *Cursor) error
		want ErrTruncatedInput
	}{
		{
			name: "read exact",
			read: func(c *Cursor) error { _, err := c.ReadExact(8); return err },
			want: ErrTruncatedInput{Offset: 0, Want: 8, Got: 3},
		},
		{
			name: "double",
			read: func(c *Cursor) error { _, err := c.readFloat64LE(); return err },
			want: ErrTruncatedInput{Offset: 0, Want: 8, Got: 3},
		},
		{
			name: "skip",
			read: func(c *Cursor) error { return c.Skip(20) },
			want: ErrTruncatedInput{Offset: 0, Want: 20, Got: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(bytes.NewReader([]byte{1, 2, 3}))
			err := tt.read(c)

			var trunc *ErrTruncatedInput
			if !errors.As(err, &trunc) {
				t.Fatalf("expected *ErrTruncatedInput, got %v", err)
			}
			if trunc.Offset != tt.want.Offset || trunc.Want != tt.want.Want || trunc.Got != tt.want.Got {
				t.Errorf("got offset=%d want=%d got=%d, expected %+v", trunc.Offset, trunc.Want, trunc.Got, tt.want)
			}
			if c.Consumed() != 0 {
				t.Errorf("Consumed moved to %d on failed read", c.Consumed())
			}
		})
	}
}

func TestCursorEmptyInput(t *testing.T) {
	c := NewCursor(bytes.NewReader(nil))
	_, err := c.readUint8()
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected error wrapping io.EOF, got %v", err)
	}
}
