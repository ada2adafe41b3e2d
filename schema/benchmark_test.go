package schema

import (
	"testing"

	"github.com/wippyai/bitparse/bitview"
)

func benchSchema() *Schema {
	return NewBuilder("Bench").
		Uint("a", 3).
		Int("b", 13).
		Bool("c", 1).
		Pad(7).
		Uint("d", 32).
		Float64("e").
		MustBuild()
}

func BenchmarkParse(b *testing.B) {
	s := benchSchema()
	data := make([]byte, s.ByteLen())
	for i := range data {
		data[i] = byte(i*37 + 11)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Parse(data)
	}
}

func BenchmarkSerialize(b *testing.B) {
	s := benchSchema()
	rec := s.MustNew(map[string]any{"a": 5, "b": -1000, "c": true, "d": uint32(1 << 31), "e": 3.5})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Serialize(rec)
	}
}

func BenchmarkParseView_Stream(b *testing.B) {
	s := NewBuilder("Sample").Uint("v", 12).MustBuild()
	data := make([]byte, 3*1024)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := bitview.New(data)
		for v.Len() >= s.Bits() {
			_, rest, err := s.ParseView(v)
			if err != nil {
				b.Fatal(err)
			}
			v = rest
		}
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	data := []byte{0x0a, 0x80, 0x00, 0xfe, 0xd4}
	var st Status

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Unmarshal(data, &st)
	}
}
