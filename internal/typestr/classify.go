package typestr

// primitive scalar types of the language.
var primitives = map[string]bool{
	"int":      true,
	"float":    true,
	"bool":     true,
	"string":   true,
	"void":     true,
	"vector":   true,
	"typename": true,
	"func":     true,
}

// builtin generic container classes.
var containers = map[string]bool{
	"array": true,
	"map":   true,
	"set":   true,
}

// IsPrimitive reports whether name is a primitive scalar type.
func IsPrimitive(name string) bool {
	return primitives[name]
}

// IsBuiltinContainer reports whether name is a builtin container class.
func IsBuiltinContainer(name string) bool {
	return containers[name]
}

// IsBuiltin reports whether name is any builtin type.
func IsBuiltin(name string) bool {
	return IsPrimitive(name) || IsBuiltinContainer(name)
}

// IsUserType reports whether name refers to a user-declared type.
func IsUserType(name string) bool {
	return name != "" && !IsBuiltin(name) && name != "auto"
}

// NumericCompat describes one-directional numeric compatibility.
type NumericCompat uint8

const (
	// NumericIncompatible means the pair is not a numeric conversion.
	NumericIncompatible NumericCompat = iota
	// NumericWidening is the silent int -> float direction.
	NumericWidening
	// NumericNarrowing is the lossy float -> int direction. It is
	// compatible-with-warning, never a hard error by default.
	NumericNarrowing
)

// CheckNumeric classifies the from -> to conversion between numeric
// primitives. Identity is not a conversion and returns NumericIncompatible.
func CheckNumeric(from, to string) NumericCompat {
	switch {
	case from == "int" && to == "float":
		return NumericWidening
	case from == "float" && to == "int":
		return NumericNarrowing
	default:
		return NumericIncompatible
	}
}

// IsNumeric reports whether name is a numeric primitive.
func IsNumeric(name string) bool {
	return name == "int" || name == "float"
}
