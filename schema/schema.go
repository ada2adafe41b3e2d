package schema

import (
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/bitparse/bitview"
	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/field"
	"github.com/wippyai/bitparse/internal/bits"
)

// Field is one named field of a schema.
type Field struct {
	Name  string
	Codec field.Codec
}

// Schema is an immutable, ordered record layout.
type Schema struct {
	name    string
	fields  []Field
	offsets []int
	slots   []int          // record slot per field, -1 for placeholders
	names   []string       // non-placeholder names in order
	byName  map[string]int // first field with the name
	bits    int
	opts    options
}

// Define builds a schema from an ordered field list. Fields whose name
// starts with "_" are placeholders.
func Define(name string, fields []Field, opts ...Option) (*Schema, error) {
	if name == "" {
		return nil, errors.Schema(nil, "schema name is empty")
	}

	s := &Schema{
		name:    name,
		fields:  make([]Field, len(fields)),
		offsets: make([]int, len(fields)),
		slots:   make([]int, len(fields)),
		byName:  make(map[string]int, len(fields)),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}

	for i, f := range fields {
		if f.Codec.Bits() == 0 {
			return nil, errors.Schema([]string{name, f.Name}, "field has no codec")
		}
		if f.Name == "" && !f.Codec.Placeholder() {
			return nil, errors.Schema([]string{name}, "field %d has no name", i)
		}
		if strings.HasPrefix(f.Name, "_") {
			f.Codec = f.Codec.AsPlaceholder()
		}

		s.fields[i] = f
		s.offsets[i] = s.bits
		s.bits += f.Codec.Bits()

		if f.Codec.Placeholder() {
			s.slots[i] = -1
			if _, seen := s.byName[f.Name]; !seen && f.Name != "" {
				s.byName[f.Name] = i
			}
			continue
		}
		if j, seen := s.byName[f.Name]; seen {
			if !s.fields[j].Codec.Placeholder() {
				return nil, errors.Schema([]string{name, f.Name}, "duplicate field name")
			}
		}
		s.byName[f.Name] = i
		s.slots[i] = len(s.names)
		s.names = append(s.names, f.Name)
	}

	Logger().Debug("schema built",
		zap.String("schema", name),
		zap.Int("fields", len(s.fields)),
		zap.Int("values", len(s.names)),
		zap.Int("bits", s.bits),
		zap.Bool("reject_trailing", s.opts.rejectTrailing))

	return s, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(name string, fields []Field, opts ...Option) *Schema {
	s, err := Define(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Fields returns a copy of the field list, placeholders included.
func (s *Schema) Fields() []Field { return slices.Clone(s.fields) }

// Len returns the number of fields, placeholders included.
func (s *Schema) Len() int { return len(s.fields) }

// Names returns the names of the non-placeholder fields in order.
func (s *Schema) Names() []string { return slices.Clone(s.names) }

// Bits returns the total encoded width.
func (s *Schema) Bits() int { return s.bits }

// ByteLen returns the length of a serialized record.
func (s *Schema) ByteLen() int { return bits.ByteLen(s.bits) }

// Offset returns the bit offset of the named field.
func (s *Schema) Offset(name string) (int, bool) {
	i, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return s.offsets[i], true
}

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Parse decodes a record from the front of data.
func (s *Schema) Parse(data []byte) (*Record, error) {
	rec, rest, err := s.ParseView(bitview.New(data))
	if err != nil {
		return nil, err
	}
	if s.opts.rejectTrailing {
		if err := s.checkTrailing(rest); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// ParseView decodes a record from the front of v and returns the bits that
// follow it, so consecutive records can be read from one buffer. Trailing
// bits are never checked here.
func (s *Schema) ParseView(v bitview.View) (*Record, bitview.View, error) {
	values := make([]any, len(s.names))
	rest := v
	for i, f := range s.fields {
		val, next, err := f.Codec.Decode(rest)
		if err != nil {
			return nil, v, errors.WithPath(err, s.name, f.Name)
		}
		if slot := s.slots[i]; slot >= 0 {
			values[slot] = val
		}
		rest = next
	}
	return &Record{schema: s, values: values}, rest, nil
}

func (s *Schema) checkTrailing(rest bitview.View) error {
	for i := 0; i < rest.Len(); i++ {
		if b, _ := rest.At(i); b != 0 {
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path(s.name).
				Value(s.bits + i).
				Detail("trailing bit %d is set", s.bits+i).
				Build()
		}
	}
	return nil
}

// Serialize encodes r, which must have been produced by this schema.
// Placeholders encode as zero and the final byte is zero-padded.
func (s *Schema) Serialize(r *Record) ([]byte, error) {
	if r == nil || r.schema != s {
		return nil, errors.New(errors.PhaseSerialize, errors.KindInvalidArgument).
			Path(s.name).
			Detail("record does not belong to schema").
			Build()
	}
	return s.pack(r.values)
}

func (s *Schema) pack(values []any) ([]byte, error) {
	w := bits.NewWriter()
	for i, f := range s.fields {
		val := f.Codec.Zero()
		if slot := s.slots[i]; slot >= 0 {
			val = values[slot]
		}
		raw, err := f.Codec.Encode(val)
		if err != nil {
			return nil, errors.WithPath(err, s.name, f.Name)
		}
		if err := w.WriteBits(raw, f.Codec.Bits()); err != nil {
			return nil, errors.Wrap(errors.PhaseSerialize, errors.KindInvalidArgument, err, "pack "+f.Name)
		}
	}
	data, err := w.Bytes()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSerialize, errors.KindInvalidArgument, err, "flush")
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// New constructs a record from named values. Every non-placeholder field
// must be given, and nothing else. Values are range-checked and stored in
// their canonical decoded form.
func (s *Schema) New(values map[string]any) (*Record, error) {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		i, ok := s.byName[name]
		if !ok || s.slots[i] < 0 {
			return nil, errors.FieldUnknown(errors.PhaseConstruct, []string{s.name}, name)
		}
	}

	out := make([]any, len(s.names))
	for i, f := range s.fields {
		slot := s.slots[i]
		if slot < 0 {
			continue
		}
		val, ok := values[f.Name]
		if !ok {
			return nil, errors.FieldMissing(errors.PhaseConstruct, []string{s.name}, f.Name)
		}
		c, err := canonical(f.Codec, val)
		if err != nil {
			return nil, errors.WithPath(err, s.name, f.Name)
		}
		out[slot] = c
	}
	return &Record{schema: s, values: out}, nil
}

// MustNew is like New but panics on error.
func (s *Schema) MustNew(values map[string]any) *Record {
	r, err := s.New(values)
	if err != nil {
		panic(err)
	}
	return r
}

func canonical(c field.Codec, val any) (any, error) {
	raw, err := c.Encode(val)
	if err != nil {
		return nil, err
	}
	return c.FromBits(raw), nil
}

func (s *Schema) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Codec.String())
	}
	b.WriteByte('}')
	return b.String()
}
