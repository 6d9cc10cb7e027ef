package parser

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// Cursor is a forward-only reader that counts every byte it hands out.
//
// Both file formats are validated by comparing declared lengths against
// Consumed deltas, so all decoding goes through a Cursor. There is no seeking.
type Cursor struct {
	r        io.Reader
	consumed int64
	scratch  [8]byte
}

// NewCursor wraps r. The caller keeps ownership of r.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: r}
}

// Consumed returns the number of bytes successfully read so far.
func (c *Cursor) Consumed() int64 {
	return c.consumed
}

// ReadExact returns exactly n bytes or an *ErrTruncatedInput.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := c.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Skip consumes n bytes without keeping them.
func (c *Cursor) Skip(n int) error {
	got, err := io.CopyN(io.Discard, c.r, int64(n))
	if err != nil {
		return c.readError(n, int(got), err)
	}
	c.consumed += got
	return nil
}

// fill reads len(p) bytes into p. The counter only moves on success.
func (c *Cursor) fill(p []byte) error {
	got, err := io.ReadFull(c.r, p)
	if err != nil {
		return c.readError(len(p), got, err)
	}
	c.consumed += int64(got)
	return nil
}

func (c *Cursor) readError(want, got int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ErrTruncatedInput{Offset: c.consumed, Want: want, Got: got, Err: err}
	}
	return err
}

func (c *Cursor) readUint8() (uint8, error) {
	if err := c.fill(c.scratch[:1]); err != nil {
		return 0, err
	}
	return c.scratch[0], nil
}

func (c *Cursor) readUint16LE() (uint16, error) {
	if err := c.fill(c.scratch[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(c.scratch[:2]), nil
}

func (c *Cursor) readUint32LE() (uint32, error) {
	if err := c.fill(c.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(c.scratch[:4]), nil
}

func (c *Cursor) readUint32BE() (uint32, error) {
	if err := c.fill(c.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(c.scratch[:4]), nil
}

func (c *Cursor) readInt32LE() (int32, error) {
	v, err := c.readUint32LE()
	return int32(v), err
}

func (c *Cursor) readInt32BE() (int32, error) {
	v, err := c.readUint32BE()
	return int32(v), err
}

// readFloat64LE reads an IEEE 754 double. The shape format stores all doubles little endian.
func (c *Cursor) readFloat64LE() (float64, error) {
	if err := c.fill(c.scratch[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(c.scratch[:8])), nil
}
