package schema

import (
	"strconv"

	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/field"
)

// Builder accumulates fields for a schema. The first invalid field is
// reported by Build.
type Builder struct {
	name   string
	fields []Field
	pads   int
	err    error
}

// NewBuilder starts a schema with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Field appends a field with an explicit codec.
func (b *Builder) Field(name string, c field.Codec) *Builder {
	b.fields = append(b.fields, Field{Name: name, Codec: c})
	return b
}

func (b *Builder) add(name string, c field.Codec, err error) *Builder {
	if err != nil {
		if b.err == nil {
			b.err = errors.WithPath(err, b.name, name)
		}
		return b
	}
	return b.Field(name, c)
}

// Uint appends an unsigned integer field.
func (b *Builder) Uint(name string, bits int) *Builder {
	c, err := field.New(field.KindUint, bits)
	return b.add(name, c, err)
}

// Int appends a two's-complement integer field.
func (b *Builder) Int(name string, bits int) *Builder {
	c, err := field.New(field.KindInt, bits)
	return b.add(name, c, err)
}

// Bool appends a boolean field.
func (b *Builder) Bool(name string, bits int) *Builder {
	c, err := field.New(field.KindBool, bits)
	return b.add(name, c, err)
}

// Float32 appends an IEEE-754 binary32 field.
func (b *Builder) Float32(name string) *Builder {
	return b.Field(name, field.Float32())
}

// Float64 appends an IEEE-754 binary64 field.
func (b *Builder) Float64(name string) *Builder {
	return b.Field(name, field.Float64())
}

// Spec appends a field from a compact codec spec such as "u12".
func (b *Builder) Spec(name, spec string) *Builder {
	c, err := field.Parse(spec)
	return b.add(name, c, err)
}

// Placeholder appends a field that is read and written but not exposed.
func (b *Builder) Placeholder(name string, c field.Codec) *Builder {
	return b.Field(name, c.AsPlaceholder())
}

// Pad appends an anonymous run of zero bits.
func (b *Builder) Pad(bits int) *Builder {
	c, err := field.New(field.KindUint, bits)
	name := "_pad" + strconv.Itoa(b.pads)
	b.pads++
	return b.add(name, c.AsPlaceholder(), err)
}

// Build validates the accumulated fields and returns the schema.
func (b *Builder) Build(opts ...Option) (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Define(b.name, b.fields, opts...)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild(opts ...Option) *Schema {
	s, err := b.Build(opts...)
	if err != nil {
		panic(err)
	}
	return s
}
