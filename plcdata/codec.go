package plcdata

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes the frame to its wire representation: the big-endian
// encodings of each field concatenated in field order, with no delimiters,
// length prefix or checksum. Frame boundaries on the wire are established
// purely by the statically agreed byte count (Size).
//
// ErrEncoding is returned when a stored value cannot be represented in its
// field's declared width (float32 magnitude overflow). Integer ranges are
// already validated when values are stored.
func (f *Frame) Encode() ([]byte, error) {
	buf := make([]byte, 0, f.Size())

	for i := range f.fields {
		var err error
		buf, err = appendField(buf, &f.fields[i])
		if err != nil {
			return nil, err
		}
	}

	return buf, nil
}

// Decode deserializes data into a new frame with the same layout as f,
// consuming bytes in field order per each field's width and type code.
// The receiver is used as an immutable template and is left untouched.
//
// ErrSizeMismatch is returned when len(data) != f.Size(); no partial decode
// is ever performed. Decoding bytes produced by a structurally incompatible
// layout silently misinterprets them; only same-layout round trips are
// meaningful.
func (f *Frame) Decode(data []byte) (*Frame, error) {
	if len(data) != f.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, frame size is %d", ErrSizeMismatch, len(data), f.Size())
	}

	frame := f.Clone()

	offset := 0
	for i := range frame.fields {
		fld := &frame.fields[i]
		fld.value = decodeField(fld.spec, data[offset:offset+fld.spec.Size])
		offset += fld.spec.Size
	}

	return frame, nil
}

func appendField(buf []byte, fld *field) ([]byte, error) {
	spec := fld.spec

	switch {
	case spec.Type == Bool:
		if fld.value.(bool) {
			return append(buf, 0x01), nil
		}
		return append(buf, 0x00), nil

	case spec.Type.IsSigned():
		return appendUint(buf, uint64(fld.value.(int64)), spec.Size), nil //nolint:gosec

	case spec.Type.IsUnsigned():
		return appendUint(buf, fld.value.(uint64), spec.Size), nil

	case spec.Type == Float32:
		v := fld.value.(float64)
		if !math.IsInf(v, 0) && math.Abs(v) > math.MaxFloat32 {
			return nil, fmt.Errorf("%w: field %q: %g overflows float32", ErrEncoding, spec.Name, v)
		}
		return binary.BigEndian.AppendUint32(buf, math.Float32bits(float32(v))), nil

	case spec.Type == Float64:
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(fld.value.(float64))), nil

	case spec.Type == Char:
		return append(buf, fld.value.(byte)), nil

	default: // String, stored value already has the declared length
		return append(buf, fld.value.(string)...), nil
	}
}

func appendUint(buf []byte, v uint64, size int) []byte {
	switch size {
	case 1:
		return append(buf, byte(v))
	case 2:
		return binary.BigEndian.AppendUint16(buf, uint16(v)) //nolint:gosec
	case 4:
		return binary.BigEndian.AppendUint32(buf, uint32(v)) //nolint:gosec
	default:
		return binary.BigEndian.AppendUint64(buf, v)
	}
}

func decodeField(spec FieldSpec, data []byte) any {
	switch {
	case spec.Type == Bool:
		return data[0] != 0

	case spec.Type.IsSigned():
		return signExtend(readUint(data), spec.Size)

	case spec.Type.IsUnsigned():
		return readUint(data)

	case spec.Type == Float32:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(data)))

	case spec.Type == Float64:
		return math.Float64frombits(binary.BigEndian.Uint64(data))

	case spec.Type == Char:
		return data[0]

	default: // String
		return string(data)
	}
}

func readUint(data []byte) uint64 {
	switch len(data) {
	case 1:
		return uint64(data[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(data))
	case 4:
		return uint64(binary.BigEndian.Uint32(data))
	default:
		return binary.BigEndian.Uint64(data)
	}
}

func signExtend(v uint64, size int) int64 {
	switch size {
	case 1:
		return int64(int8(v)) //nolint:gosec
	case 2:
		return int64(int16(v)) //nolint:gosec
	case 4:
		return int64(int32(v)) //nolint:gosec
	default:
		return int64(v) //nolint:gosec
	}
}
