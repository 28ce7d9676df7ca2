// Package engine turns raw web input into validated operation requests,
// routes them to exactly one conversion routine and wraps the outcome in
// the uniform envelope the HTTP layer serves.
package engine

import "errors"

// ErrorKind tags a failed operation.
type ErrorKind string

const (
	// KindBadInput marks malformed or missing request data.
	KindBadInput ErrorKind = "bad-input"
	// KindUnsupportedOption marks an option that failed schema validation.
	KindUnsupportedOption ErrorKind = "unsupported-option"
	// KindMissingDependency marks an optional capability absent at runtime.
	KindMissingDependency ErrorKind = "missing-dependency"
	// KindProcessingFailure marks a conversion that raised during
	// otherwise-valid processing.
	KindProcessingFailure ErrorKind = "processing-failure"
)

// ErrMissingDependency is the sentinel conversion routines wrap when an
// optional capability (OCR binary, AI API key) is unavailable. The
// dispatcher translates it to KindMissingDependency.
var ErrMissingDependency = errors.New("optional dependency unavailable")

// OperationError is the tagged failure value returned across the normalizer
// and dispatcher boundaries instead of a raised exception.
type OperationError struct {
	Kind    ErrorKind
	Message string
}

func (e *OperationError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// BadInput builds a bad-input error.
func BadInput(msg string) *OperationError {
	return &OperationError{Kind: KindBadInput, Message: msg}
}

// UnsupportedOption builds an unsupported-option error.
func UnsupportedOption(msg string) *OperationError {
	return &OperationError{Kind: KindUnsupportedOption, Message: msg}
}
