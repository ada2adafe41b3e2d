// Package witschema derives bit schemas from WIT type definitions.
//
// A WIT record of scalar fields becomes a packed schema with one field per
// record field, in declaration order:
//
//	WIT        Codec
//	──────────────────
//	bool       b8
//	u8..u64    u8..u64
//	s8..s64    i8..i64
//	f32, f64   f32, f64
//	char       u32
//	enum       u<n>, n = bits needed for the last case index
//
// A WIT flags type becomes one b1 field per flag. Type aliases are
// resolved. Strings, lists, nested records, variants and resources have no
// fixed bit width and are rejected with a schema error.
//
// The resulting layout is bit-packed. It is not the canonical ABI layout of
// the type.
package witschema

import (
	"fmt"
	"math/bits"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/field"
	"github.com/wippyai/bitparse/schema"
)

// FromTypeDef derives a schema from a WIT record or flags definition.
func FromTypeDef(td *wit.TypeDef, opts ...schema.Option) (*schema.Schema, error) {
	if td == nil {
		return nil, errors.Schema(nil, "type definition is nil")
	}
	name := typeName(td)

	switch kind := resolve(td).Kind.(type) {
	case *wit.Record:
		fields := make([]schema.Field, 0, len(kind.Fields))
		for _, f := range kind.Fields {
			c, err := Codec(f.Type)
			if err != nil {
				return nil, errors.WithPath(err, name, f.Name)
			}
			fields = append(fields, schema.Field{Name: f.Name, Codec: c})
		}
		return schema.Define(name, fields, opts...)

	case *wit.Flags:
		fields := make([]schema.Field, len(kind.Flags))
		for i, f := range kind.Flags {
			fields[i] = schema.Field{Name: f.Name, Codec: field.Bool(1)}
		}
		return schema.Define(name, fields, opts...)

	default:
		return nil, errors.New(errors.PhaseSchema, errors.KindSchema).
			Path(name).
			FieldType(witName(td)).
			Detail("only records and flags map to bit schemas, got %T", kind).
			Build()
	}
}

// Codec returns the codec for a scalar WIT type.
func Codec(t wit.Type) (field.Codec, error) {
	switch t := t.(type) {
	case wit.Bool:
		return field.Bool(8), nil
	case wit.U8:
		return field.Uint(8), nil
	case wit.U16:
		return field.Uint(16), nil
	case wit.U32:
		return field.Uint(32), nil
	case wit.U64:
		return field.Uint(64), nil
	case wit.S8:
		return field.Int(8), nil
	case wit.S16:
		return field.Int(16), nil
	case wit.S32:
		return field.Int(32), nil
	case wit.S64:
		return field.Int(64), nil
	case wit.F32:
		return field.Float32(), nil
	case wit.F64:
		return field.Float64(), nil
	case wit.Char:
		return field.Uint(32), nil
	case *wit.TypeDef:
		switch kind := t.Kind.(type) {
		case *wit.Enum:
			if len(kind.Cases) == 0 {
				return field.Codec{}, errors.Schema(nil, "enum %s has no cases", typeName(t))
			}
			return field.Uint(max(1, bits.Len(uint(len(kind.Cases)-1)))), nil
		case wit.Type:
			return Codec(kind)
		}
	}
	return field.Codec{}, errors.New(errors.PhaseSchema, errors.KindSchema).
		FieldType(witName(t)).
		Detail("WIT type has no fixed bit width").
		Build()
}

// resolve follows aliases to the innermost definition.
func resolve(td *wit.TypeDef) *wit.TypeDef {
	for {
		inner, ok := td.Kind.(*wit.TypeDef)
		if !ok {
			return td
		}
		td = inner
	}
}

func typeName(td *wit.TypeDef) string {
	if td.Name != nil && *td.Name != "" {
		return *td.Name
	}
	return "record"
}

func witName(t wit.Type) string {
	if t == nil {
		return "nil"
	}
	if td, ok := t.(*wit.TypeDef); ok && td.Name != nil {
		return *td.Name
	}
	return fmt.Sprintf("%T", t)
}
