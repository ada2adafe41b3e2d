// Package field implements the fixed-width field codecs of a bit record.
//
// A Codec is a small immutable value: a Kind, a bit width and a placeholder
// flag. Decode consumes exactly Bits() bits from the front of a
// bitview.View; Encode produces exactly Bits() bits in the low end of a
// uint64.
//
//	Kind      Go value   Width    Encoding
//	────────────────────────────────────────────────────────
//	Uint      uint64     1..64    unsigned big-endian
//	Int       int64      1..64    two's complement, first bit is sign
//	Bool      bool       1..64    0 or 1, decodes any non-zero as true
//	Float32   float32    32       IEEE-754 binary32
//	Float64   float64    64       IEEE-754 binary64
//
// Encode accepts any Go integer, float or bool kind appropriate to the field,
// including named types, and integral floats for integer fields. Values that
// do not fit the field are rejected with an invalid_argument error rather
// than truncated.
//
// Codecs can be spelled compactly: "u12", "i16", "b1", "bool", "f32",
// "float64". See Parse and Lookup.
package field
