// Package bits packs and unpacks big-endian bit streams.
//
// Bits are ordered most significant first within each byte, and bytes are
// ordered first to last, so bit 0 of a stream is the MSB of its first byte.
package bits

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/icza/bitio"
)

// ErrClosed is returned when writing to a Writer after Bytes was called.
var ErrClosed = errors.New("bits: writer closed")

// Writer accumulates bits and packs them into bytes.
type Writer struct {
	buf    bytes.Buffer
	bw     *bitio.Writer
	n      int
	closed bool
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	w := &Writer{}
	w.bw = bitio.NewWriter(&w.buf)
	return w
}

// Len returns the number of bits written.
func (w *Writer) Len() int {
	return w.n
}

// WriteBits appends the n lowest bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, n int) error {
	if w.closed {
		return ErrClosed
	}
	if n < 0 || n > 64 {
		return fmt.Errorf("bits: invalid bit count %d", n)
	}
	if n == 0 {
		return nil
	}
	if n < 64 {
		v &= 1<<uint(n) - 1
	}
	if err := w.bw.WriteBits(v, uint8(n)); err != nil {
		return err
	}
	w.n += n
	return nil
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(b bool) error {
	if w.closed {
		return ErrClosed
	}
	if err := w.bw.WriteBool(b); err != nil {
		return err
	}
	w.n++
	return nil
}

// Bytes flushes pending bits, zero-padding the final byte, and returns the
// packed buffer. The writer accepts no further bits afterwards.
func (w *Writer) Bytes() ([]byte, error) {
	if !w.closed {
		if err := w.bw.Close(); err != nil {
			return nil, err
		}
		w.closed = true
	}
	return w.buf.Bytes(), nil
}

// ByteLen returns the number of bytes needed to hold n bits.
func ByteLen(n int) int {
	return (n + 7) / 8
}

// ReadUint reads n bits (at most 64) starting at bit offset off of data and
// returns them as an unsigned integer, first bit most significant.
func ReadUint(data []byte, off, n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("bits: invalid bit count %d", n)
	}
	if off < 0 || off+n > len(data)*8 {
		return 0, fmt.Errorf("bits: range [%d, %d) exceeds %d bits", off, off+n, len(data)*8)
	}
	if n == 0 {
		return 0, nil
	}
	r := bitio.NewReader(bytes.NewReader(data[off/8 : ByteLen(off+n)]))
	if skip := off % 8; skip > 0 {
		if _, err := r.ReadBits(uint8(skip)); err != nil {
			return 0, err
		}
	}
	return r.ReadBits(uint8(n))
}

// Bit returns bit i of data, 0 being the MSB of data[0].
func Bit(data []byte, i int) byte {
	return data[i>>3] >> (7 - uint(i&7)) & 1
}
