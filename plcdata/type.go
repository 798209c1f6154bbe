package plcdata

// TypeCode identifies the wire encoding of a single frame field.
//
// Each code maps to a fixed encoding width, matching the packed data types
// used by industrial controllers (IEC 61131-3 elementary types):
//
//	Bool    1 byte  (0x00 / 0x01)
//	Int8    1 byte  two's complement          (SINT)
//	Int16   2 bytes two's complement          (INT)
//	Int32   4 bytes two's complement          (DINT)
//	Int64   8 bytes two's complement          (LINT)
//	Uint8   1 byte  unsigned                  (USINT / BYTE)
//	Uint16  2 bytes unsigned                  (UINT / WORD)
//	Uint32  4 bytes unsigned                  (UDINT / DWORD)
//	Uint64  8 bytes unsigned                  (ULINT / LWORD)
//	Float32 4 bytes IEEE-754 single           (REAL)
//	Float64 8 bytes IEEE-754 double           (LREAL)
//	Char    1 byte  raw                       (CHAR)
//	String  N bytes raw, not null-terminated  (STRING)
//
// Multi-byte values are always big-endian. String is the only code without
// an intrinsic width; its per-field byte length is declared when the field
// is added with Frame.AddString.
type TypeCode uint8

const (
	Bool TypeCode = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Char
	String
)

// String returns the name of the type code.
func (tc TypeCode) String() string {
	switch tc {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Char:
		return "char"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// FixedSize returns the encoded width of the type code in bytes,
// or -1 for String, whose width is declared per field.
func (tc TypeCode) FixedSize() int {
	switch tc {
	case Bool, Int8, Uint8, Char:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case String:
		return -1
	default:
		return -1
	}
}

// IsSigned reports whether the type code encodes a signed integer.
func (tc TypeCode) IsSigned() bool {
	switch tc {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether the type code encodes an unsigned integer.
func (tc TypeCode) IsUnsigned() bool {
	switch tc {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the type code encodes a floating-point value.
func (tc TypeCode) IsFloat() bool {
	return tc == Float32 || tc == Float64
}

// TypeCodeFromString returns the TypeCode named by s.
// It is the inverse of TypeCode.String and is used when schemas are built
// from configuration files.
func TypeCodeFromString(s string) (TypeCode, bool) {
	codes := map[string]TypeCode{
		"bool":    Bool,
		"int8":    Int8,
		"int16":   Int16,
		"int32":   Int32,
		"int64":   Int64,
		"uint8":   Uint8,
		"uint16":  Uint16,
		"uint32":  Uint32,
		"uint64":  Uint64,
		"float32": Float32,
		"float64": Float64,
		"char":    Char,
		"string":  String,
	}
	tc, ok := codes[s]

	return tc, ok
}
