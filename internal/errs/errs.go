// Package errs defines the error taxonomy shared by the store clients and
// the HTTP handlers. Handlers map these to status codes; everything else is
// treated as an internal error.
package errs

import "fmt"

// ValidationError indicates a missing or malformed caller-supplied field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError indicates a duplicate flow+title+mode tuple on create.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError indicates an unknown promptId or (promptId, version) pair.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// TransportError wraps a network or HTTP failure talking to the data plane.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// InternalError wraps an unexpected backend failure.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
