package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/bitparse/bitview"
	"github.com/wippyai/bitparse/errors"
)

// MaxBits is the widest integer or boolean field.
const MaxBits = 64

// Codec encodes and decodes one fixed-width field.
type Codec struct {
	kind        Kind
	bits        int
	placeholder bool
}

// New returns a codec of the given kind and width. Float kinds require
// their natural width.
func New(kind Kind, bits int) (Codec, error) {
	switch kind {
	case KindUint, KindInt, KindBool:
		if bits < 1 || bits > MaxBits {
			return Codec{}, errors.Schema(nil, "%s width %d outside 1..%d", kind, bits, MaxBits)
		}
	case KindFloat32:
		if bits != 32 {
			return Codec{}, errors.Schema(nil, "float32 width must be 32, got %d", bits)
		}
	case KindFloat64:
		if bits != 64 {
			return Codec{}, errors.Schema(nil, "float64 width must be 64, got %d", bits)
		}
	default:
		return Codec{}, errors.Schema(nil, "unknown field kind %d", kind)
	}
	return Codec{kind: kind, bits: bits}, nil
}

func must(c Codec, err error) Codec {
	if err != nil {
		panic(err)
	}
	return c
}

// Uint returns an unsigned integer codec. It panics if bits is outside 1..64.
func Uint(bits int) Codec { return must(New(KindUint, bits)) }

// Int returns a two's-complement integer codec. It panics if bits is outside 1..64.
func Int(bits int) Codec { return must(New(KindInt, bits)) }

// Bool returns a boolean codec. It panics if bits is outside 1..64.
func Bool(bits int) Codec { return must(New(KindBool, bits)) }

// Float32 returns an IEEE-754 binary32 codec.
func Float32() Codec { return Codec{kind: KindFloat32, bits: 32} }

// Float64 returns an IEEE-754 binary64 codec.
func Float64() Codec { return Codec{kind: KindFloat64, bits: 64} }

// Lookup resolves a kind name and width, as found in schema descriptions.
// A zero width selects the default for kinds that have one (bool: 1,
// floats: their natural width).
func Lookup(kind string, bits int) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "u", "uint", "unsigned":
		return New(KindUint, bits)
	case "i", "s", "int", "sint", "signed":
		return New(KindInt, bits)
	case "b", "bool", "boolean":
		if bits == 0 {
			bits = 1
		}
		return New(KindBool, bits)
	case "f", "float":
		switch bits {
		case 32:
			return Float32(), nil
		case 64:
			return Float64(), nil
		}
		return Codec{}, errors.Schema(nil, "float width must be 32 or 64, got %d", bits)
	case "f32", "float32":
		if bits == 0 {
			bits = 32
		}
		return New(KindFloat32, bits)
	case "f64", "float64", "double":
		if bits == 0 {
			bits = 64
		}
		return New(KindFloat64, bits)
	}
	return Codec{}, errors.Schema(nil, "unrecognized field kind %q", kind)
}

// Parse resolves a compact codec spec such as "u12", "i16", "b1", "bool",
// "f32" or "float64".
func Parse(spec string) (Codec, error) {
	spec = strings.TrimSpace(spec)
	i := strings.IndexFunc(spec, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return Lookup(spec, 0)
	}
	bits, err := strconv.Atoi(spec[i:])
	if err != nil {
		return Codec{}, errors.Schema(nil, "invalid width in field spec %q", spec)
	}
	return Lookup(spec[:i], bits)
}

// Kind returns the codec's value kind.
func (c Codec) Kind() Kind { return c.kind }

// Bits returns the field width in bits.
func (c Codec) Bits() int { return c.bits }

// Placeholder reports whether the field is consumed and produced on the wire
// but never exposed on records.
func (c Codec) Placeholder() bool { return c.placeholder }

// AsPlaceholder returns a copy of c marked as a placeholder.
func (c Codec) AsPlaceholder() Codec {
	c.placeholder = true
	return c
}

// String returns the compact spec of the codec, e.g. "u12".
func (c Codec) String() string {
	if int(c.kind) >= len(kindPrefixes) {
		return "unknown"
	}
	return kindPrefixes[c.kind] + strconv.Itoa(c.bits)
}

// Zero returns the zero value of the codec's Go type.
func (c Codec) Zero() any {
	return c.FromBits(0)
}

// FromBits returns the decoded value of a raw Bits()-wide pattern.
func (c Codec) FromBits(raw uint64) any {
	switch c.kind {
	case KindUint:
		return raw
	case KindInt:
		if c.bits < 64 && raw>>uint(c.bits-1)&1 == 1 {
			raw |= ^uint64(0) << uint(c.bits)
		}
		return int64(raw)
	case KindBool:
		return raw != 0
	case KindFloat32:
		return math.Float32frombits(uint32(raw))
	case KindFloat64:
		return math.Float64frombits(raw)
	}
	return nil
}

// Decode consumes Bits() bits from the front of v and returns the decoded
// value and the remaining window.
func (c Codec) Decode(v bitview.View) (any, bitview.View, error) {
	if v.Len() < c.bits {
		err := errors.Truncated(errors.PhaseDecode, nil, c.bits, v.Len())
		err.FieldType = c.String()
		return nil, v, err
	}
	raw, err := v.To(c.bits).Uint64()
	if err != nil {
		return nil, v, err
	}
	return c.FromBits(raw), v.From(c.bits), nil
}

// Encode returns the Bits()-wide pattern representing val in the low bits
// of the result.
func (c Codec) Encode(val any) (uint64, error) {
	switch c.kind {
	case KindUint:
		mag, neg, ok := integer(val)
		if !ok {
			return 0, c.mismatch(val)
		}
		if (neg && mag != 0) || (c.bits < 64 && mag>>uint(c.bits) != 0) {
			return 0, errors.Overflow(errors.PhaseEncode, nil, val, c.String())
		}
		return mag, nil

	case KindInt:
		mag, neg, ok := integer(val)
		if !ok {
			return 0, c.mismatch(val)
		}
		limit := uint64(1) << uint(c.bits-1)
		if (neg && mag > limit) || (!neg && mag >= limit) {
			return 0, errors.Overflow(errors.PhaseEncode, nil, val, c.String())
		}
		raw := mag
		if neg {
			raw = -mag
		}
		return raw & c.mask(), nil

	case KindBool:
		b, ok := boolean(val)
		if !ok {
			return 0, c.mismatch(val)
		}
		if b {
			return 1, nil
		}
		return 0, nil

	case KindFloat32:
		if f, ok := val.(float32); ok {
			return uint64(math.Float32bits(f)), nil
		}
		f, ok := float(val)
		if !ok {
			return 0, c.mismatch(val)
		}
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return 0, errors.Overflow(errors.PhaseEncode, nil, val, c.String())
		}
		return uint64(math.Float32bits(float32(f))), nil

	case KindFloat64:
		f, ok := float(val)
		if !ok {
			return 0, c.mismatch(val)
		}
		return math.Float64bits(f), nil
	}
	return 0, errors.Schema(nil, "unknown field kind %d", c.kind)
}

func (c Codec) mask() uint64 {
	if c.bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(c.bits) - 1
}

func (c Codec) mismatch(val any) error {
	return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", val), c.String())
}
