// Package bitview provides zero-copy, bit-addressable windows over byte buffers.
//
// A Sequence is an immutable run of bits in big-endian order: bit 0 is the
// most significant bit of byte 0. A View is a logical window onto a Sequence
// described by the absolute position of its first bit, a non-zero stride and
// a length:
//
//	logical index:   0     1     2    ...  Len()-1
//	absolute bit:  first first+step ...  first+(Len()-1)*step
//
// Views are values. Slicing returns a new View over the same Sequence and
// never copies bits; a slice of a slice composes the strides and offsets so
// that addressing stays exact at any nesting depth:
//
//	v := bitview.New([]byte{0xb2})   // 1011 0010
//	mid := v.Slice(2, 6)             // 1100
//	odd, _ := v.SliceStep(1, bitview.Omit, 2) // 0 1 0 0
//
// Slicing follows Go-friendly Python semantics: negative bounds count from
// the end, out-of-range bounds are clamped, and Omit selects the default
// bound for the direction of the stride.
//
// # Export
//
// Span returns the bytes of the backing buffer that cover a contiguous
// (step 1) window without copying. Bytes always works and returns a fresh,
// zero-padded buffer holding exactly the window's bits. A window with step -1
// is not contiguous.
//
// # Thread Safety
//
// Sequences and Views are never mutated after construction and are safe
// for concurrent use. New aliases the caller's buffer, which must not be
// modified while views over it are in use.
package bitview
