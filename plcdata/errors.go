package plcdata

import "errors"

var (
	// ErrDuplicateField indicates that a field with the same name was already
	// added to the frame. Field names must be unique within a frame.
	ErrDuplicateField = errors.New("plcdata: duplicate field name")

	// ErrFieldNotFound indicates that no field with the given name exists in
	// the frame.
	ErrFieldNotFound = errors.New("plcdata: field not found")

	// ErrInvalidValue indicates that a value cannot be stored in a field,
	// either because its Go type is incompatible with the field's type code
	// or because it is outside the representable range.
	ErrInvalidValue = errors.New("plcdata: invalid value for field type")

	// ErrEncoding indicates that a stored value cannot be represented in the
	// field's declared encoding width. This is a schema misuse error and is
	// never retried.
	ErrEncoding = errors.New("plcdata: value not representable in field width")

	// ErrSizeMismatch indicates that the byte buffer handed to Decode does
	// not match the frame's encoded size. Partial decodes are never
	// performed.
	ErrSizeMismatch = errors.New("plcdata: buffer length does not match frame size")

	// ErrInvalidStringSize indicates that a string field was declared with a
	// non-positive byte length.
	ErrInvalidStringSize = errors.New("plcdata: string field size must be positive")

	// ErrTemplateExists indicates that a template with the same name is
	// already registered.
	ErrTemplateExists = errors.New("plcdata: template already registered")
)
