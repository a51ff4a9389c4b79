package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// SchemaError reports a line in a record file that does not decode into
// the expected record shape. It is fatal for that file's read.
type SchemaError struct {
	Path string
	Line int
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s:%d: invalid record: %v", e.Path, e.Line, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func NewSchema(path string, line int, err error) *SchemaError {
	return &SchemaError{Path: path, Line: line, Err: err}
}
