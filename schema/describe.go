package schema

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/field"
)

// Description is the data form of a field: a name, a kind and a width.
// When Bits is zero, Kind may hold a compact spec such as "u12" or "bool".
type Description struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Bits        int    `yaml:"bits,omitempty"`
	Placeholder bool   `yaml:"placeholder,omitempty"`
}

var descriptionKeys = map[string]bool{
	"name":        true,
	"kind":        true,
	"bits":        true,
	"placeholder": true,
}

// UnmarshalYAML accepts either the full mapping form or the shorthand
// `name: spec`. A single key with a scalar value is always shorthand, since
// the full form needs both name and kind, so fields may be called "bits" or
// "kind".
func (d *Description) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: field description must be a mapping", node.Line)
	}
	if len(node.Content) == 2 && node.Content[1].Kind == yaml.ScalarNode {
		d.Name = node.Content[0].Value
		return node.Content[1].Decode(&d.Kind)
	}
	for i := 0; i < len(node.Content); i += 2 {
		if k := node.Content[i]; !descriptionKeys[k.Value] {
			return fmt.Errorf("line %d: unknown field description key %q", k.Line, k.Value)
		}
	}
	type plain Description
	return node.Decode((*plain)(d))
}

// Codec resolves the description's codec.
func (d Description) Codec() (field.Codec, error) {
	var (
		c   field.Codec
		err error
	)
	if d.Bits == 0 {
		c, err = field.Parse(d.Kind)
	} else {
		c, err = field.Lookup(d.Kind, d.Bits)
	}
	if err != nil {
		return field.Codec{}, err
	}
	if d.Placeholder {
		c = c.AsPlaceholder()
	}
	return c, nil
}

// FromDescriptions builds a schema from field descriptions.
func FromDescriptions(name string, descs []Description, opts ...Option) (*Schema, error) {
	fields := make([]Field, len(descs))
	for i, d := range descs {
		c, err := d.Codec()
		if err != nil {
			return nil, errors.WithPath(err, name, d.Name)
		}
		fields[i] = Field{Name: d.Name, Codec: c}
	}
	return Define(name, fields, opts...)
}

// Describe returns the descriptions of the schema's fields.
func (s *Schema) Describe() []Description {
	out := make([]Description, len(s.fields))
	for i, f := range s.fields {
		out[i] = Description{
			Name:        f.Name,
			Kind:        f.Codec.Kind().String(),
			Bits:        f.Codec.Bits(),
			Placeholder: f.Codec.Placeholder(),
		}
	}
	return out
}

// Document is the YAML layout of a schema file.
//
//	name: Reading
//	reject_trailing: true
//	fields:
//	  - sensor: u4
//	  - name: temperature
//	    kind: int
//	    bits: 12
//	  - _pad: u8
type Document struct {
	Name           string        `yaml:"name"`
	RejectTrailing bool          `yaml:"reject_trailing,omitempty"`
	Fields         []Description `yaml:"fields"`
}

// ParseYAML builds a schema from a YAML document.
func ParseYAML(data []byte) (*Schema, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindSchema, err, "decode schema document")
	}

	var opts []Option
	if doc.RejectTrailing {
		opts = append(opts, RejectTrailing())
	}
	return FromDescriptions(doc.Name, doc.Fields, opts...)
}

// LoadYAML reads a schema document from a file.
func LoadYAML(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindSchema, err, "read "+path)
	}
	return ParseYAML(data)
}

// MarshalYAML renders the schema as a Document.
func (s *Schema) MarshalYAML() (any, error) {
	return Document{
		Name:           s.name,
		RejectTrailing: s.opts.rejectTrailing,
		Fields:         s.Describe(),
	}, nil
}
