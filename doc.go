// Package bitparse provides a declarative bit-level binary codec.
//
// A record layout is described once as an ordered list of named,
// fixed-width fields (unsigned and signed integers up to 64 bits, booleans,
// IEEE-754 floats). The same description parses bytes into typed records and
// serializes records back to bytes. Fields need not be byte-aligned.
//
// # Architecture Overview
//
//	bitparse/            Root package with the Memory and Allocator interfaces
//	├── bitview/         Bit sequences and strided windows over them
//	├── field/           Fixed-width field codecs
//	├── schema/          Record schemas, records, builders, YAML and struct binding
//	├── witschema/       Schemas derived from WIT record and flags types
//	├── memory/          Records loaded from and stored to wazero linear memory
//	└── errors/          Structured error types
//
// # Quick Start
//
//	s := schema.NewBuilder("Status").
//	    Uint("count", 8).
//	    Bool("enabled", 1).
//	    Pad(15).
//	    Int("temperature", 16).
//	    MustBuild()
//
//	rec, err := s.Parse([]byte{0x0a, 0x80, 0x00, 0xfe, 0xd4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rec) // Status(count=10, enabled=true, temperature=-300)
//
//	data, err := rec.Bytes()
//
// # Wire Format
//
// Fields occupy consecutive bits in declaration order. Bit 0 is the most
// significant bit of byte 0. Integers are big-endian, signed integers are
// two's complement, and the serialized form is zero-padded to a whole byte.
//
// # Thread Safety
//
// Views, codecs, schemas and records are immutable after construction and
// safe for concurrent use. A view created from a byte slice aliases it; the
// slice must not be modified while views over it are in use.
package bitparse
