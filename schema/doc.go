// Package schema declares bit records and converts them to and from bytes.
//
// A Schema is an ordered list of named fields, each with a fixed-width
// field.Codec. Fields occupy consecutive bits in declaration order with no
// alignment; the serialized form is rounded up to whole bytes with zero
// padding in the final byte.
//
//	s := schema.NewBuilder("Reading").
//		Uint("sensor", 4).
//		Int("temperature", 12).
//		Bool("alarm", 1).
//		Pad(7).
//		MustBuild()
//
//	rec, err := s.Parse(data)
//	t, err := rec.Int("temperature")
//
// Placeholder fields are read and written but never exposed on records.
// A field is a placeholder when its codec is marked with AsPlaceholder, when
// it is added with Builder.Placeholder or Builder.Pad, or when its name
// starts with an underscore. Placeholders serialize as zero.
//
// # Declaring schemas
//
// Schemas can be declared four ways, all validated once at construction:
//
//   - Builder, for code
//   - Define, from a []Field
//   - FromDescriptions and ParseYAML, from data
//   - Compile and For, from a Go struct with `bit` tags
//
// Struct binding uses tags of the form `bit:"spec"` or `bit:"name,spec"`,
// where spec is a compact codec such as "u12" or "f32":
//
//	type Reading struct {
//		Sensor      uint8 `bit:"u4"`
//		Temperature int16 `bit:"temperature,i12"`
//		Alarm       bool  `bit:"b1"`
//		_           struct{} `bit:"u7"`
//	}
//
//	var r Reading
//	err := schema.Unmarshal(data, &r)
//
// Schemas and records are immutable and safe for concurrent use.
package schema
