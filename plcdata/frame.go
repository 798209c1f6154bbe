package plcdata

import (
	"fmt"
	"strings"

	"github.com/kkats/go-plcbridge/internal/util"
)

// FieldSpec describes one named, typed field of a frame layout.
type FieldSpec struct {
	// Name identifies the field within its frame. Unique per frame.
	Name string
	// Type selects the field's wire encoding.
	Type TypeCode
	// Size is the encoded width in bytes. For String fields this is the
	// declared per-field length; for all other types it equals
	// Type.FixedSize().
	Size int
}

type field struct {
	spec  FieldSpec
	value any // normalized: bool, int64, uint64, float64, byte or string
}

// Frame is an ordered set of named, typed values with a fixed binary layout.
//
// The layout is built once by adding fields in wire order; field order
// determines both the byte offset of each value and iteration order. After
// the layout is built, a Frame is used either as an immutable template
// (cloned per transmission) or as a live frame whose values are overwritten
// by name.
//
// Two frames are structurally compatible when their field count, names,
// order and type codes are identical. Both endpoints of a link must build
// structurally compatible frames for the same message type; this is the
// caller's responsibility and is not verified on the wire (see Decode).
//
// A Frame is not safe for concurrent use.
type Frame struct {
	fields []field
	index  map[string]int
}

// NewFrame creates an empty frame layout.
func NewFrame() *Frame {
	return &Frame{
		index: make(map[string]int),
	}
}

// AddField appends a field with the given name, type code and default value
// to the frame layout.
//
// The default value must be compatible with the type code; it is normalized
// and range-checked the same way Set normalizes values.
//
// ErrDuplicateField is returned if a field with the same name was already
// added. String fields carry a per-field length and must be added with
// AddString instead.
func (f *Frame) AddField(name string, code TypeCode, defaultValue any) error {
	if code == String {
		return fmt.Errorf("%w: use AddString for string fields", ErrInvalidValue)
	}

	return f.addField(FieldSpec{Name: name, Type: code, Size: code.FixedSize()}, defaultValue)
}

// AddString appends a fixed-length string field of size bytes to the frame
// layout. The stored value always occupies exactly size bytes on the wire:
// shorter values are padded with NUL bytes and longer values are truncated.
func (f *Frame) AddString(name string, size int, defaultValue string) error {
	if size <= 0 {
		return fmt.Errorf("%w: field %q, size %d", ErrInvalidStringSize, name, size)
	}

	return f.addField(FieldSpec{Name: name, Type: String, Size: size}, defaultValue)
}

func (f *Frame) addField(spec FieldSpec, defaultValue any) error {
	if _, exists := f.index[spec.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, spec.Name)
	}

	value, err := normalize(spec, defaultValue)
	if err != nil {
		return err
	}

	f.index[spec.Name] = len(f.fields)
	f.fields = append(f.fields, field{spec: spec, value: value})

	return nil
}

// Set overwrites the value of the named field.
//
// The value is normalized to the field's type code: any Go integer type is
// accepted for integer fields, float32/float64 for float fields, string for
// string fields (padded/truncated to the declared length) and a byte or
// one-character string for char fields. Values outside the field's
// representable range are rejected with ErrInvalidValue.
func (f *Frame) Set(name string, value any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}

	v, err := normalize(f.fields[i].spec, value)
	if err != nil {
		return err
	}

	f.fields[i].value = v

	return nil
}

// Get returns the value of the named field in its normalized form
// (bool, int64, uint64, float64, byte or string).
func (f *Frame) Get(name string) (any, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}

	return f.fields[i].value, nil
}

// GetBool returns the value of a bool field.
func (f *Frame) GetBool(name string) (bool, error) {
	v, err := f.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: field %q is %s", ErrInvalidValue, name, f.fields[f.index[name]].spec.Type)
	}

	return b, nil
}

// GetInt returns the value of a signed integer field.
func (f *Frame) GetInt(name string) (int64, error) {
	v, err := f.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: field %q is %s", ErrInvalidValue, name, f.fields[f.index[name]].spec.Type)
	}

	return n, nil
}

// GetUint returns the value of an unsigned integer field.
func (f *Frame) GetUint(name string) (uint64, error) {
	v, err := f.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("%w: field %q is %s", ErrInvalidValue, name, f.fields[f.index[name]].spec.Type)
	}

	return n, nil
}

// GetFloat returns the value of a float field.
func (f *Frame) GetFloat(name string) (float64, error) {
	v, err := f.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: field %q is %s", ErrInvalidValue, name, f.fields[f.index[name]].spec.Type)
	}

	return n, nil
}

// GetString returns the value of a string field. The returned string always
// has the field's declared length, including any NUL padding.
func (f *Frame) GetString(name string) (string, error) {
	v, err := f.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %s", ErrInvalidValue, name, f.fields[f.index[name]].spec.Type)
	}

	return s, nil
}

// GetChar returns the value of a char field.
func (f *Frame) GetChar(name string) (byte, error) {
	v, err := f.Get(name)
	if err != nil {
		return 0, err
	}
	c, ok := v.(byte)
	if !ok {
		return 0, fmt.Errorf("%w: field %q is %s", ErrInvalidValue, name, f.fields[f.index[name]].spec.Type)
	}

	return c, nil
}

// Size returns the encoded byte size of the frame, the sum of per-field
// widths in field order. It always equals the length of the buffer produced
// by Encode.
func (f *Frame) Size() int {
	size := 0
	for i := range f.fields {
		size += f.fields[i].spec.Size
	}

	return size
}

// Len returns the number of fields.
func (f *Frame) Len() int {
	return len(f.fields)
}

// Fields returns the frame's field specs in wire order.
// The returned slice is a copy; modifying it does not affect the frame.
func (f *Frame) Fields() []FieldSpec {
	specs := make([]FieldSpec, len(f.fields))
	for i := range f.fields {
		specs[i] = f.fields[i].spec
	}

	return specs
}

// Clone creates a new frame with an identical layout and every value reset
// to the type's zero equivalent (0, 0.0, false, NUL-padded empty string).
// The clone shares no mutable state with the source.
func (f *Frame) Clone() *Frame {
	clone := &Frame{
		fields: make([]field, len(f.fields)),
		index:  make(map[string]int, len(f.index)),
	}

	for i := range f.fields {
		spec := f.fields[i].spec
		clone.fields[i] = field{spec: spec, value: zeroValue(spec)}
		clone.index[spec.Name] = i
	}

	return clone
}

// Equal reports whether other has an identical layout and equal values.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || len(f.fields) != len(other.fields) {
		return false
	}

	for i := range f.fields {
		if f.fields[i].spec != other.fields[i].spec {
			return false
		}
		if f.fields[i].value != other.fields[i].value {
			return false
		}
	}

	return true
}

// String returns a human-readable representation of the frame for logging.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.WriteString("Frame(")
	for i := range f.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", f.fields[i].spec.Name, f.fields[i].value)
	}
	sb.WriteString(")")

	return sb.String()
}

func zeroValue(spec FieldSpec) any {
	switch {
	case spec.Type == Bool:
		return false
	case spec.Type.IsSigned():
		return int64(0)
	case spec.Type.IsUnsigned():
		return uint64(0)
	case spec.Type.IsFloat():
		return float64(0)
	case spec.Type == Char:
		return byte(0)
	default:
		return strings.Repeat("\x00", spec.Size)
	}
}

// normalize converts value to the canonical stored form for spec and
// validates its range. Range checks happen here, at store time, so Encode
// only needs to re-check widths narrower than the stored form.
func normalize(spec FieldSpec, value any) (any, error) {
	if value == nil {
		return zeroValue(spec), nil
	}

	switch {
	case spec.Type == Bool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: field %q expects bool, got %T", ErrInvalidValue, spec.Name, value)
		}
		return b, nil

	case spec.Type.IsSigned():
		n, err := util.ToInt64(value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidValue, spec.Name, err)
		}
		if !signedFits(n, spec.Size) {
			return nil, fmt.Errorf("%w: field %q: %d exceeds %s range", ErrInvalidValue, spec.Name, n, spec.Type)
		}
		return n, nil

	case spec.Type.IsUnsigned():
		n, err := util.ToUint64(value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidValue, spec.Name, err)
		}
		if !unsignedFits(n, spec.Size) {
			return nil, fmt.Errorf("%w: field %q: %d exceeds %s range", ErrInvalidValue, spec.Name, n, spec.Type)
		}
		return n, nil

	case spec.Type.IsFloat():
		n, err := util.ToFloat64(value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidValue, spec.Name, err)
		}
		return n, nil

	case spec.Type == Char:
		switch v := value.(type) {
		case byte:
			return v, nil
		case string:
			if len(v) != 1 {
				return nil, fmt.Errorf("%w: field %q expects a single character", ErrInvalidValue, spec.Name)
			}
			return v[0], nil
		default:
			return nil, fmt.Errorf("%w: field %q expects byte or 1-char string, got %T", ErrInvalidValue, spec.Name, value)
		}

	default: // String
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q expects string, got %T", ErrInvalidValue, spec.Name, value)
		}
		return padString(s, spec.Size), nil
	}
}

// padString fits s to exactly size bytes: NUL padding on the right,
// truncation if s is longer.
func padString(s string, size int) string {
	if len(s) >= size {
		return s[:size]
	}

	return s + strings.Repeat("\x00", size-len(s))
}

func signedFits(n int64, size int) bool {
	switch size {
	case 1:
		return n >= -128 && n <= 127
	case 2:
		return n >= -32768 && n <= 32767
	case 4:
		return n >= -2147483648 && n <= 2147483647
	default:
		return true
	}
}

func unsignedFits(n uint64, size int) bool {
	switch size {
	case 1:
		return n <= 0xFF
	case 2:
		return n <= 0xFFFF
	case 4:
		return n <= 0xFFFFFFFF
	default:
		return true
	}
}
