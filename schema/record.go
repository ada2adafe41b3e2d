package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/wippyai/bitparse/errors"
)

// Record is an immutable set of decoded field values bound to its schema.
type Record struct {
	schema *Schema
	values []any
}

// Schema returns the schema the record belongs to.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns the named value as uint64, int64, bool, float32 or float64.
func (r *Record) Get(name string) (any, error) {
	i, ok := r.schema.byName[name]
	if !ok || r.schema.slots[i] < 0 {
		return nil, errors.FieldUnknown(errors.PhaseIndex, []string{r.schema.name}, name)
	}
	return r.values[r.schema.slots[i]], nil
}

func get[T any](r *Record, name string) (T, error) {
	var zero T
	val, err := r.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := val.(T)
	if !ok {
		f, _ := r.schema.Field(name)
		return zero, errors.TypeMismatch(errors.PhaseIndex, []string{r.schema.name, name},
			fmt.Sprintf("%T", zero), f.Codec.String())
	}
	return t, nil
}

// Uint returns the value of an unsigned integer field.
func (r *Record) Uint(name string) (uint64, error) { return get[uint64](r, name) }

// Int returns the value of a signed integer field.
func (r *Record) Int(name string) (int64, error) { return get[int64](r, name) }

// Bool returns the value of a boolean field.
func (r *Record) Bool(name string) (bool, error) { return get[bool](r, name) }

// Float32 returns the value of a float32 field.
func (r *Record) Float32(name string) (float32, error) { return get[float32](r, name) }

// Float64 returns the value of a float64 field.
func (r *Record) Float64(name string) (float64, error) { return get[float64](r, name) }

// Names returns the field names present on the record, in schema order.
func (r *Record) Names() []string { return r.schema.Names() }

// Map returns the record's values keyed by field name.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, name := range r.schema.names {
		m[name] = r.values[i]
	}
	return m
}

// Equal reports whether o has the same schema and bit-identical values.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.schema != o.schema {
		return false
	}
	for i := range r.values {
		if !sameValue(r.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

func sameValue(a, b any) bool {
	switch x := a.(type) {
	case float32:
		y, ok := b.(float32)
		return ok && math.Float32bits(x) == math.Float32bits(y)
	case float64:
		y, ok := b.(float64)
		return ok && math.Float64bits(x) == math.Float64bits(y)
	}
	return a == b
}

// Bytes serializes the record with its schema.
func (r *Record) Bytes() ([]byte, error) {
	return r.schema.Serialize(r)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *Record) MarshalBinary() ([]byte, error) {
	return r.Bytes()
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.schema.name)
	b.WriteByte('(')
	for i, name := range r.schema.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, r.values[i])
	}
	b.WriteByte(')')
	return b.String()
}
