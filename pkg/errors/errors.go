package errors

import (
	"fmt"
)

// ParseError reports a configuration file that could not be read or decoded.
// Line is 1-based and zero when the decoder did not report a position.
type ParseError struct {
	Path string
	Line int
	Err  error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	return &ParseError{Path: path, Line: line, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("config %s: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a configuration value rejected by the schema.
// Field is the dotted yaml path, e.g. "render.dark" or "picker.swatches[1]".
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError. value may be nil when the
// problem spans several fields.
func NewValidationError(field string, value any, message string, err error) error {
	return &ValidationError{Field: field, Value: value, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}

	switch {
	case e.Field == "":
		return fmt.Sprintf("invalid config: %s", e.Message)
	case e.Value == nil:
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	default:
		return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Message)
	}
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EncodeError is raised when a QR engine cannot produce a symbol, typically
// because the text exceeds the capacity of the requested error-correction level.
type EncodeError struct {
	Engine string
	Err    error
}

// NewEncodeError constructs an EncodeError for the given engine.
func NewEncodeError(engine string, err error) error {
	return &EncodeError{Engine: engine, Err: err}
}

func (e *EncodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Engine != "" {
		return fmt.Sprintf("encode error [%s]: %v", e.Engine, e.Err)
	}
	return fmt.Sprintf("encode error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *EncodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StoreError indicates that a preference could not be loaded or persisted.
type StoreError struct {
	Op  string
	Key string
	Err error
}

// NewStoreError constructs a StoreError for an operation on key.
func NewStoreError(op, key string, err error) error {
	return &StoreError{Op: op, Key: key, Err: err}
}

func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("store error: %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
