package rowmap

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrDuplicateOrderKey indicates two mapped fields resolve to the same order key.
	ErrDuplicateOrderKey = errors.New("duplicate order key")

	// ErrInvalidTag indicates a column tag could not be parsed.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidFormat indicates a date pattern could not be translated.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNotStruct indicates the record type is not a struct or pointer to struct.
	ErrNotStruct = errors.New("record type is not a struct")

	// ErrInvalidTarget indicates ReadAllInto was not given a pointer to a slice.
	ErrInvalidTarget = errors.New("target must be a pointer to a slice")

	// ErrShortRow indicates a row has fewer columns than the layout.
	ErrShortRow = errors.New("row shorter than layout")

	// ErrEncode indicates a field value could not be rendered as text.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates column text could not be assigned to a field.
	ErrDecode = errors.New("decode failed")

	// ErrRead indicates the row source failed.
	ErrRead = errors.New("read failed")

	// ErrWrite indicates the row sink failed.
	ErrWrite = errors.New("write failed")
)

// ConfigError represents a layout configuration error. Configuration errors
// abort the whole operation before any row is read or written.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrDuplicateOrderKey, etc.)
	Type   string // Record type name
	Field  string // Field that triggered the error, if any
	Detail string // Extra context such as the conflicting key
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Detail)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Type, msg, e.Field)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Type, msg)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FieldError describes a single field that could not be encoded or decoded.
// Field errors never abort a batch; they are reported as diagnostics.
type FieldError struct {
	Err    error  // ErrEncode or ErrDecode
	Type   string // Record type name
	Field  string // Field identifier
	Column string // Column display name
	Row    int    // Position of the record or row in the batch
	Cause  error  // Original error from the codec
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s.%s (row %d): %v", e.Err.Error(), e.Type, e.Field, e.Row, e.Cause)
	}
	return fmt.Sprintf("%s %s.%s (row %d)", e.Err.Error(), e.Type, e.Field, e.Row)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// RowError reports a row whose width does not fit the layout.
type RowError struct {
	Err     error // ErrShortRow
	Row     int   // Position of the row in the source
	Columns int   // Columns present in the row
	Want    int   // Columns required by the layout
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d has %d columns, want %d", e.Err.Error(), e.Row, e.Columns, e.Want)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// IOError wraps a failure of the row source or sink.
type IOError struct {
	Err   error // ErrRead or ErrWrite
	Type  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Err.Error(), e.Type, e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func newConfigError(sentinel error, typeName, field, detail string) error {
	return &ConfigError{Err: sentinel, Type: typeName, Field: field, Detail: detail}
}
