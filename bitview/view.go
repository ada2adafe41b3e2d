package bitview

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/internal/bits"
)

// Omit marks a slice bound as absent. The default start is the first bit in
// the direction of the stride; the default stop is one past the last.
const Omit = math.MinInt

// View is a window onto a Sequence. The zero View is empty.
type View struct {
	seq   *Sequence
	first int // absolute position of logical bit 0
	step  int
	n     int
}

// New returns a view over all bits of data. The slice is aliased.
func New(data []byte) View {
	return FromSequence(NewSequence(data))
}

// FromSequence returns a view over all bits of seq.
func FromSequence(seq *Sequence) View {
	return View{seq: seq, step: 1, n: seq.Len()}
}

// Of returns a view sharing v's backing sequence and adopting its current
// bounds.
func Of(v View) View {
	return v.norm()
}

func (v View) norm() View {
	if v.step == 0 {
		v.step = 1
	}
	return v
}

// Sequence returns the backing bit sequence.
func (v View) Sequence() *Sequence {
	return v.seq
}

// Len returns the number of bits visible through the view.
func (v View) Len() int {
	return v.n
}

// Step returns the stride between consecutive logical bits.
func (v View) Step() int {
	return v.norm().step
}

// Bounds returns the absolute half-open range [start, stop) of backing bits
// the view touches. An empty view reports start == stop.
func (v View) Bounds() (start, stop int) {
	v = v.norm()
	if v.n == 0 {
		return v.first, v.first
	}
	last := v.first + (v.n-1)*v.step
	if v.step > 0 {
		return v.first, last + 1
	}
	return last, v.first + 1
}

// Contiguous reports whether the view has unit stride and can be exported as
// a raw byte span.
func (v View) Contiguous() bool {
	return v.norm().step == 1
}

// AbsIndex maps logical index i to its absolute position in the backing
// sequence. Negative i counts from the end.
func (v View) AbsIndex(i int) (int, error) {
	v = v.norm()
	j := i
	if j < 0 {
		j += v.n
	}
	if j < 0 || j >= v.n {
		return 0, errors.OutOfRange(errors.PhaseIndex, nil, i, v.n)
	}
	return v.first + j*v.step, nil
}

// At returns bit i of the view as 0 or 1. Negative i counts from the end.
func (v View) At(i int) (byte, error) {
	abs, err := v.AbsIndex(i)
	if err != nil {
		return 0, err
	}
	return v.seq.bit(abs), nil
}

// Slice returns the unit-stride sub-view [start, stop). Negative bounds
// count from the end and bounds are clamped to the view.
func (v View) Slice(start, stop int) View {
	s, _ := v.SliceStep(start, stop, 1)
	return s
}

// SliceStep returns the sub-view selecting logical indices start, start+step,
// ... up to but excluding stop. Either bound may be Omit. A zero step is an
// error.
func (v View) SliceStep(start, stop, step int) (View, error) {
	if step == 0 {
		return View{}, errors.New(errors.PhaseSlice, errors.KindInvalidArgument).
			Value(step).
			Detail("slice step cannot be zero").
			Build()
	}
	v = v.norm()
	start, n := indices(v.n, start, stop, step)
	return View{
		seq:   v.seq,
		first: v.first + start*v.step,
		step:  v.step * step,
		n:     n,
	}, nil
}

// From returns the view from logical index i to the end.
func (v View) From(i int) View {
	return v.Slice(i, Omit)
}

// To returns the view from the start up to logical index i.
func (v View) To(i int) View {
	return v.Slice(Omit, i)
}

// Every returns every step-th bit of the view.
func (v View) Every(step int) (View, error) {
	return v.SliceStep(Omit, Omit, step)
}

// Reversed returns the view read back to front.
func (v View) Reversed() View {
	r, _ := v.SliceStep(Omit, Omit, -1)
	return r
}

// indices resolves slice bounds against a view of the given length and
// returns the resolved start and the resulting length.
func indices(length, start, stop, step int) (int, int) {
	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}

	defStart, defStop := lower, upper
	if step < 0 {
		defStart, defStop = upper, lower
	}
	start = clamp(start, length, lower, upper, defStart)
	stop = clamp(stop, length, lower, upper, defStop)

	n := 0
	if step > 0 && start < stop {
		n = (stop-start-1)/step + 1
	} else if step < 0 && start > stop {
		n = (start-stop-1)/(-step) + 1
	}
	return start, n
}

func clamp(i, length, lower, upper, def int) int {
	if i == Omit {
		return def
	}
	if i < 0 {
		i += length
		if i < lower {
			i = lower
		}
	} else if i > upper {
		i = upper
	}
	return i
}

// Span returns the bytes of the backing buffer covering a contiguous view,
// rounded out to whole bytes. The result aliases the backing buffer and is
// capped at its own length, so appending to it reallocates. Views with a
// stride other than 1 are unsupported.
func (v View) Span() ([]byte, error) {
	v = v.norm()
	if v.step != 1 {
		return nil, errors.Unsupported(errors.PhaseExport,
			fmt.Sprintf("byte span of non-contiguous window (step %d)", v.step))
	}
	if v.n == 0 {
		return []byte{}, nil
	}
	lo, hi := v.first/8, bits.ByteLen(v.first+v.n)
	return v.seq.data[lo:hi:hi], nil
}

// Bytes returns a fresh buffer holding exactly the view's bits, zero-padded
// to a whole number of bytes. It works for any stride.
func (v View) Bytes() []byte {
	v = v.norm()
	if v.n == 0 {
		return []byte{}
	}

	if v.step == 1 && v.first%8 == 0 {
		out := make([]byte, bits.ByteLen(v.n))
		copy(out, v.seq.data[v.first/8:])
		if r := v.n % 8; r != 0 {
			out[len(out)-1] &= 0xff << uint(8-r)
		}
		return out
	}

	w := bits.NewWriter()
	if v.step == 1 {
		for off := 0; off < v.n; off += 64 {
			n := min(64, v.n-off)
			u, _ := bits.ReadUint(v.seq.data, v.first+off, n)
			_ = w.WriteBits(u, n)
		}
	} else {
		for i := 0; i < v.n; i++ {
			_ = w.WriteBit(v.seq.bit(v.first+i*v.step) == 1)
		}
	}
	out, _ := w.Bytes()
	return out
}

// Uint64 interprets the view as an unsigned integer, first bit most
// significant. Views longer than 64 bits are unsupported; use BigInt.
func (v View) Uint64() (uint64, error) {
	v = v.norm()
	if v.n > 64 {
		return 0, errors.Unsupported(errors.PhaseExport,
			fmt.Sprintf("%d-bit window does not fit in 64 bits", v.n))
	}
	if v.n == 0 {
		return 0, nil
	}
	if v.step == 1 {
		u, err := bits.ReadUint(v.seq.data, v.first, v.n)
		if err != nil {
			return 0, errors.Wrap(errors.PhaseExport, errors.KindOutOfRange, err, "read window bits")
		}
		return u, nil
	}
	var u uint64
	for i := 0; i < v.n; i++ {
		u = u<<1 | uint64(v.seq.bit(v.first+i*v.step))
	}
	return u, nil
}

// Int64 interprets the view as a two's-complement signed integer whose first
// bit is the sign bit.
func (v View) Int64() (int64, error) {
	u, err := v.Uint64()
	if err != nil {
		return 0, err
	}
	if v.n > 0 && v.n < 64 && u>>uint(v.n-1) == 1 {
		u |= ^uint64(0) << uint(v.n)
	}
	return int64(u), nil
}

// BigInt interprets a view of any length as an integer, signed or unsigned.
func (v View) BigInt(signed bool) *big.Int {
	b := new(big.Int)
	if v.n == 0 {
		return b
	}
	b.SetBytes(v.Bytes())
	b.Rsh(b, uint(bits.ByteLen(v.n)*8-v.n))
	if signed && b.Bit(v.n-1) == 1 {
		b.Sub(b, new(big.Int).Lsh(big.NewInt(1), uint(v.n)))
	}
	return b
}

// Equal reports whether both views expose the same logical bits.
func (v View) Equal(o View) bool {
	if v.n != o.n {
		return false
	}
	v, o = v.norm(), o.norm()
	for i := 0; i < v.n; i++ {
		if v.seq.bit(v.first+i*v.step) != o.seq.bit(o.first+i*o.step) {
			return false
		}
	}
	return true
}

// String renders the view as a string of 0 and 1 characters.
func (v View) String() string {
	v = v.norm()
	var b strings.Builder
	b.Grow(v.n)
	for i := 0; i < v.n; i++ {
		b.WriteByte('0' + v.seq.bit(v.first+i*v.step))
	}
	return b.String()
}
