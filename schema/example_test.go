package schema_test

import (
	"fmt"

	"github.com/wippyai/bitparse/schema"
)

func Example() {
	s := schema.NewBuilder("Status").
		Uint("count", 8).
		Bool("enabled", 1).
		Pad(7).
		Pad(8).
		Int("temperature", 16).
		MustBuild()

	rec, err := s.Parse([]byte{0x0a, 0x80, 0x00, 0xfe, 0xd4})
	if err != nil {
		panic(err)
	}
	fmt.Println(rec)

	temp, _ := rec.Int("temperature")
	fmt.Println(temp)
	// Output:
	// Status(count=10, enabled=true, temperature=-300)
	// -300
}

func ExampleSchema_New() {
	s := schema.NewBuilder("Packed").
		Uint("a", 8).
		Uint("b", 12).
		Uint("c", 4).
		MustBuild()

	rec, err := s.New(map[string]any{"a": 0xab, "b": 0xcd0, "c": 0xe})
	if err != nil {
		panic(err)
	}
	data, _ := rec.Bytes()
	fmt.Printf("% x\n", data)
	// Output: ab cd 0e
}

func ExampleUnmarshal() {
	type Flags struct {
		First  bool `bit:"b1"`
		Second bool `bit:"b1"`
		Byte   bool `bit:"b8"`
	}

	var f Flags
	if err := schema.Unmarshal([]byte{0x80, 0x40}, &f); err != nil {
		panic(err)
	}
	fmt.Printf("%+v\n", f)
	// Output: {First:true Second:false Byte:true}
}

func ExampleParseYAML() {
	s, err := schema.ParseYAML([]byte(`
name: Nibbles
fields:
  - hi: u4
  - lo: u4
`))
	if err != nil {
		panic(err)
	}
	rec, _ := s.Parse([]byte{0x5a})
	fmt.Println(rec)
	// Output: Nibbles(hi=5, lo=10)
}
