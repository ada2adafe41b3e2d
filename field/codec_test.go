package field

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/bitparse/bitview"
	"github.com/wippyai/bitparse/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		bits    int
		wantErr bool
	}{
		{"uint min", KindUint, 1, false},
		{"uint max", KindUint, 64, false},
		{"uint zero", KindUint, 0, true},
		{"uint wide", KindUint, 65, true},
		{"int negative", KindInt, -3, true},
		{"bool wide", KindBool, 8, false},
		{"float32", KindFloat32, 32, false},
		{"float32 wrong width", KindFloat32, 16, true},
		{"float64", KindFloat64, 64, false},
		{"float64 wrong width", KindFloat64, 32, true},
		{"unknown kind", Kind(42), 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.kind, tt.bits)
			if tt.wantErr {
				if !stderrors.Is(err, errors.ErrSchema) {
					t.Fatalf("New(%v, %d) error = %v, want schema error", tt.kind, tt.bits, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%v, %d): %v", tt.kind, tt.bits, err)
			}
			if c.Kind() != tt.kind || c.Bits() != tt.bits {
				t.Errorf("got %v/%d", c.Kind(), c.Bits())
			}
		})
	}
}

func TestConstructorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Uint(0) did not panic")
		}
	}()
	Uint(0)
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Codec
	}{
		{"u12", Uint(12)},
		{"uint8", Uint(8)},
		{"i16", Int(16)},
		{"s3", Int(3)},
		{"int64", Int(64)},
		{"b1", Bool(1)},
		{"bool", Bool(1)},
		{"b8", Bool(8)},
		{"f32", Float32()},
		{"float32", Float32()},
		{"f64", Float64()},
		{"float64", Float64()},
		{"double", Float64()},
		{" U4 ", Uint(4)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, spec := range []string{"", "u", "u0", "u65", "x8", "f16", "float", "f32x", "i99999999999999999999"} {
		t.Run(spec, func(t *testing.T) {
			if _, err := Parse(spec); !stderrors.Is(err, errors.ErrSchema) {
				t.Errorf("Parse(%q) error = %v, want schema error", spec, err)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		c    Codec
		want string
	}{
		{Uint(12), "u12"},
		{Int(16), "i16"},
		{Bool(1), "b1"},
		{Float32(), "f32"},
		{Float64(), "f64"},
		{Uint(3).AsPlaceholder(), "u3"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPlaceholder(t *testing.T) {
	c := Uint(4)
	p := c.AsPlaceholder()
	if c.Placeholder() {
		t.Error("AsPlaceholder mutated the receiver")
	}
	if !p.Placeholder() || p.Bits() != 4 || p.Kind() != KindUint {
		t.Errorf("placeholder = %+v", p)
	}
}

func TestZero(t *testing.T) {
	tests := []struct {
		c    Codec
		want any
	}{
		{Uint(8), uint64(0)},
		{Int(8), int64(0)},
		{Bool(1), false},
		{Float32(), float32(0)},
		{Float64(), float64(0)},
	}
	for _, tt := range tests {
		if got := tt.c.Zero(); got != tt.want {
			t.Errorf("%v.Zero() = %#v, want %#v", tt.c, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	// 1100 1111 0101 0101
	v := bitview.New([]byte{0xcf, 0x55})

	tests := []struct {
		name string
		c    Codec
		want any
		rest int
	}{
		{"u4", Uint(4), uint64(12), 12},
		{"u1", Uint(1), uint64(1), 15},
		{"i4 negative", Int(4), int64(-4), 12},
		{"i8", Int(8), int64(-49), 8},
		{"i16", Int(16), int64(-12459), 0},
		{"u16", Uint(16), uint64(0xcf55), 0},
		{"b1", Bool(1), true, 15},
		{"b3", Bool(3), true, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := tt.c.Decode(v)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %#v, want %#v", got, tt.want)
			}
			if rest.Len() != tt.rest {
				t.Errorf("rest.Len() = %d, want %d", rest.Len(), tt.rest)
			}
		})
	}
}

func TestDecodeBoolZero(t *testing.T) {
	got, _, err := Bool(4).Decode(bitview.New([]byte{0x0f}))
	if err != nil {
		t.Fatal(err)
	}
	if got != false {
		t.Errorf("Decode = %v, want false", got)
	}
}

func TestDecodeAdvances(t *testing.T) {
	v := bitview.New([]byte{0xcf, 0x55})
	var got []any
	for _, c := range []Codec{Uint(4), Uint(4), Int(4), Bool(1), Uint(3)} {
		val, rest, err := c.Decode(v)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, val)
		v = rest
	}
	want := []any{uint64(12), uint64(15), int64(5), false, uint64(5)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %#v, want %#v", i, got[i], want[i])
		}
	}
	if v.Len() != 0 {
		t.Errorf("remaining %d bits", v.Len())
	}
}

func TestDecodeTruncated(t *testing.T) {
	v := bitview.New([]byte{0xff})
	_, rest, err := Uint(12).Decode(v)
	if !stderrors.Is(err, errors.ErrTruncatedInput) {
		t.Fatalf("error = %v, want truncated input", err)
	}
	if rest.Len() != 8 {
		t.Errorf("rest.Len() = %d, want untouched view", rest.Len())
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.FieldType != "u12" {
		t.Errorf("error = %#v, want field type u12", err)
	}
}

func TestDecodeFloat(t *testing.T) {
	v32 := bitview.New([]byte{0x42, 0x28, 0x00, 0x00})
	got, _, err := Float32().Decode(v32)
	if err != nil {
		t.Fatal(err)
	}
	if got != float32(42) {
		t.Errorf("float32 = %v, want 42", got)
	}

	v64 := bitview.New([]byte{0x40, 0x45, 0, 0, 0, 0, 0, 0})
	got, _, err = Float64().Decode(v64)
	if err != nil {
		t.Fatal(err)
	}
	if got != float64(42) {
		t.Errorf("float64 = %v, want 42", got)
	}
}

func TestEncode(t *testing.T) {
	type level uint8
	type offset int16
	type flag bool

	tests := []struct {
		name string
		c    Codec
		val  any
		want uint64
	}{
		{"uint", Uint(4), 12, 12},
		{"uint max", Uint(4), uint8(15), 15},
		{"uint64 full", Uint(64), uint64(math.MaxUint64), math.MaxUint64},
		{"uint named", Uint(8), level(200), 200},
		{"uint integral float", Uint(8), float64(7), 7},
		{"int positive", Int(4), 5, 5},
		{"int negative", Int(4), -4, 0xc},
		{"int minus one", Int(8), int8(-1), 0xff},
		{"int min", Int(4), -8, 0x8},
		{"int64 min", Int(64), int64(math.MinInt64), 1 << 63},
		{"int named", Int(16), offset(-2), 0xfffe},
		{"bool true", Bool(1), true, 1},
		{"bool false", Bool(4), false, 0},
		{"bool named", Bool(1), flag(true), 1},
		{"float32", Float32(), float32(42), 0x42280000},
		{"float32 from float64", Float32(), 42.0, 0x42280000},
		{"float32 from int", Float32(), 42, 0x42280000},
		{"float64", Float64(), 42.0, 0x4045000000000000},
		{"float64 inf", Float64(), math.Inf(1), 0x7ff0000000000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.c.Encode(tt.val)
			if err != nil {
				t.Fatalf("Encode(%v): %v", tt.val, err)
			}
			if got != tt.want {
				t.Errorf("Encode(%v) = %#x, want %#x", tt.val, got, tt.want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		c    Codec
		val  any
	}{
		{"uint too big", Uint(4), 16},
		{"uint negative", Uint(8), -1},
		{"int too big", Int(4), 8},
		{"int too small", Int(4), -9},
		{"int64 uint overflow", Int(64), uint64(1 << 63)},
		{"fractional float to uint", Uint(8), 1.5},
		{"nan to int", Int(8), math.NaN()},
		{"string to uint", Uint(8), "12"},
		{"nil to int", Int(8), nil},
		{"int to bool", Bool(1), 1},
		{"bool to uint", Uint(1), true},
		{"string to float", Float64(), "1.0"},
		{"float32 overflow", Float32(), math.MaxFloat64},
		{"slice to uint", Uint(8), []byte{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.Encode(tt.val)
			if !stderrors.Is(err, errors.ErrInvalidArgument) {
				t.Fatalf("Encode(%v) error = %v, want invalid argument", tt.val, err)
			}
			var e *errors.Error
			if stderrors.As(err, &e) && e.Phase != errors.PhaseEncode {
				t.Errorf("phase = %s, want encode", e.Phase)
			}
		})
	}
}

func TestSignedRoundTrip(t *testing.T) {
	for bits := 1; bits <= 16; bits++ {
		c := Int(bits)
		lo := -(int64(1) << (bits - 1))
		hi := int64(1)<<(bits-1) - 1
		for x := lo; x <= hi; x++ {
			raw, err := c.Encode(x)
			if err != nil {
				t.Fatalf("i%d Encode(%d): %v", bits, x, err)
			}
			if raw>>uint(bits) != 0 {
				t.Fatalf("i%d Encode(%d) = %#x exceeds width", bits, x, raw)
			}
			if got := c.FromBits(raw); got != x {
				t.Fatalf("i%d round trip %d = %v", bits, x, got)
			}
		}
		if _, err := c.Encode(hi + 1); err == nil {
			t.Errorf("i%d accepted %d", bits, hi+1)
		}
		if _, err := c.Encode(lo - 1); err == nil {
			t.Errorf("i%d accepted %d", bits, lo-1)
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{0, -0.5, 1e-300, math.MaxFloat64, math.Pi} {
		raw, err := Float64().Encode(f)
		if err != nil {
			t.Fatal(err)
		}
		if got := Float64().FromBits(raw); got != f {
			t.Errorf("float64 round trip %v = %v", f, got)
		}
	}

	raw, err := Float32().Encode(math.NaN())
	if err != nil {
		t.Fatal(err)
	}
	if got := Float32().FromBits(raw).(float32); !math.IsNaN(float64(got)) {
		t.Errorf("float32 NaN round trip = %v", got)
	}
}

func TestKind(t *testing.T) {
	for _, k := range []Kind{KindUint, KindInt, KindBool, KindFloat32, KindFloat64} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("string"); ok {
		t.Error("ParseKind accepted string")
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99) = %q", Kind(99).String())
	}
	if !KindInt.IsInteger() || KindBool.IsInteger() || !KindFloat32.IsFloat() {
		t.Error("kind predicates")
	}
}
