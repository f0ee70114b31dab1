package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for transport mapping. The set is closed.
type Kind uint8

const (
	// KindInternal signals a local infrastructure failure or anything unclassified.
	KindInternal Kind = iota
	// KindBadRequest signals invalid client input.
	KindBadRequest
	// KindInvalidJSON signals an inbound body that cannot be parsed.
	KindInvalidJSON
	// KindNotFound signals an unmatched route.
	KindNotFound
	// KindBackend signals an unreachable, failing or malformed TEI backend.
	KindBackend
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindInvalidJSON:
		return "invalid_json"
	case KindNotFound:
		return "not_found"
	case KindBackend:
		return "tei_error"
	default:
		return "internal_error"
	}
}

// Error is a classified failure with a client-facing message.
// Err keeps the underlying cause for logs and is never sent to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewBadRequest creates a KindBadRequest error.
func NewBadRequest(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// NewInvalidJSON creates a KindInvalidJSON error.
func NewInvalidJSON(cause error) error {
	return &Error{Kind: KindInvalidJSON, Message: "Invalid JSON in request body", Err: cause}
}

// NewNotFound creates a KindNotFound error.
func NewNotFound() error {
	return &Error{Kind: KindNotFound, Message: "Not Found"}
}

// NewBackendError creates a KindBackend error.
func NewBackendError(msg string, cause error) error {
	return &Error{Kind: KindBackend, Message: msg, Err: cause}
}

// NewInternal creates a KindInternal error.
func NewInternal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// AsError extracts the classified error from a chain.
// Errors that carry no classification come back as KindInternal.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf returns the classification of err.
func KindOf(err error) Kind {
	return AsError(err).Kind
}
