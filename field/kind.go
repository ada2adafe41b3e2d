package field

// Kind is the closed set of field value types.
type Kind uint8

const (
	KindUint Kind = iota
	KindInt
	KindBool
	KindFloat32
	KindFloat64
)

var kindNames = [...]string{
	KindUint:    "uint",
	KindInt:     "int",
	KindBool:    "bool",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

var kindPrefixes = [...]string{
	KindUint:    "u",
	KindInt:     "i",
	KindBool:    "b",
	KindFloat32: "f",
	KindFloat64: "f",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the Kind named by s, as produced by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsInteger reports whether values of the kind are integers.
func (k Kind) IsInteger() bool {
	return k == KindUint || k == KindInt
}

// IsFloat reports whether the kind has a fixed IEEE-754 width.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}
