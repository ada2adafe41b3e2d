package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/field"
)

// binding maps a compiled struct type onto its schema.
type binding struct {
	schema *Schema
	index  [][]int // Go field index per record slot
}

var bindings sync.Map // reflect.Type -> *binding

// Compile derives a schema from a struct type with `bit` tags. Results are
// cached per type. Untagged and "-" fields are skipped; blank fields are
// placeholders.
func Compile(t reflect.Type) (*Schema, error) {
	b, err := compile(t)
	if err != nil {
		return nil, err
	}
	return b.schema, nil
}

// For is Compile for a type parameter.
func For[T any]() (*Schema, error) {
	return Compile(reflect.TypeFor[T]())
}

func compile(t reflect.Type) (*binding, error) {
	if t == nil {
		return nil, errors.Schema(nil, "type is nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := bindings.Load(t); ok {
		return cached.(*binding), nil
	}

	if t.Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseSchema, errors.KindSchema).
			GoType(t.String()).
			Detail("bit records bind to structs").
			Build()
	}

	name := t.Name()
	if name == "" {
		name = "record"
	}

	var (
		fields []Field
		index  [][]int
	)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("bit")
		if !ok || tag == "-" {
			continue
		}

		fieldName, spec := parseTag(sf.Name, tag)
		path := []string{name, sf.Name}
		c, err := field.Parse(spec)
		if err != nil {
			return nil, errors.WithPath(err, name, sf.Name)
		}

		if sf.Name == "_" {
			fields = append(fields, Field{Name: "_" + sf.Name, Codec: c.AsPlaceholder()})
			continue
		}
		if !sf.IsExported() {
			return nil, errors.Schema(path, "tagged field is unexported")
		}
		if err := checkGoType(c, sf.Type, path); err != nil {
			return nil, err
		}
		if strings.HasPrefix(fieldName, "_") {
			return nil, errors.Schema(path, "field name %q would be a placeholder", fieldName)
		}

		fields = append(fields, Field{Name: fieldName, Codec: c})
		index = append(index, sf.Index)
	}

	s, err := Define(name, fields)
	if err != nil {
		return nil, err
	}
	b := &binding{schema: s, index: index}

	Logger().Debug("struct compiled",
		zap.String("type", t.String()),
		zap.Int("fields", len(index)),
		zap.Int("bits", s.Bits()))

	actual, _ := bindings.LoadOrStore(t, b)
	return actual.(*binding), nil
}

// parseTag splits `name,spec` or `spec`. The name defaults to the Go field
// name.
func parseTag(goName, tag string) (name, spec string) {
	if before, after, ok := strings.Cut(tag, ","); ok {
		if before == "" {
			before = goName
		}
		return before, after
	}
	return goName, tag
}

// checkGoType rejects Go fields that cannot hold every value of the codec.
func checkGoType(c field.Codec, t reflect.Type, path []string) error {
	var (
		valid    bool
		expected string
	)

	switch c.Kind() {
	case field.KindUint:
		switch t.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			valid = c.Bits() <= t.Bits()
		}
		expected = "unsigned integer of at least " + c.String()
	case field.KindInt:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			valid = c.Bits() <= t.Bits()
		}
		expected = "signed integer of at least " + c.String()
	case field.KindBool:
		valid = t.Kind() == reflect.Bool
		expected = "bool"
	case field.KindFloat32:
		valid = t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
		expected = "float32"
	case field.KindFloat64:
		valid = t.Kind() == reflect.Float64
		expected = "float64"
	}

	if !valid {
		return errors.TypeMismatch(errors.PhaseSchema, path, t.String(), expected)
	}
	return nil
}

// Marshal serializes a tagged struct or pointer to one.
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, errors.InvalidArgument(errors.PhaseSerialize, nil, "nil pointer")
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, errors.InvalidArgument(errors.PhaseSerialize, nil, "nil value")
	}

	b, err := compile(rv.Type())
	if err != nil {
		return nil, err
	}

	values := make([]any, len(b.index))
	for slot, idx := range b.index {
		values[slot] = rv.FieldByIndex(idx).Interface()
	}
	return b.schema.pack(values)
}

// Unmarshal parses data into the tagged struct pointed to by v.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New(errors.PhaseParse, errors.KindInvalidArgument).
			GoType(fmt.Sprintf("%T", v)).
			Detail("Unmarshal requires a non-nil pointer").
			Build()
	}

	b, err := compile(rv.Type())
	if err != nil {
		return err
	}
	rec, err := b.schema.Parse(data)
	if err != nil {
		return err
	}

	rv = rv.Elem()
	for slot, idx := range b.index {
		assign(rv.FieldByIndex(idx), rec.values[slot])
	}
	return nil
}

// Bind returns a record holding the tagged fields of v.
func Bind(v any) (*Record, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, errors.InvalidArgument(errors.PhaseConstruct, nil, "nil value")
	}
	b, err := compile(rv.Type())
	if err != nil {
		return nil, err
	}

	s := b.schema
	values := make([]any, len(b.index))
	for slot, idx := range b.index {
		f, _ := s.Field(s.names[slot])
		c, err := canonical(f.Codec, rv.FieldByIndex(idx).Interface())
		if err != nil {
			return nil, errors.WithPath(err, s.name, f.Name)
		}
		values[slot] = c
	}
	return &Record{schema: s, values: values}, nil
}

func assign(dst reflect.Value, val any) {
	switch v := val.(type) {
	case uint64:
		dst.SetUint(v)
	case int64:
		dst.SetInt(v)
	case bool:
		dst.SetBool(v)
	case float32:
		dst.SetFloat(float64(v))
	case float64:
		dst.SetFloat(v)
	}
}
