package rerankproxy

import (
	"errors"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
)

// Sentinel errors. Use errors.Is() to check.
var (
	ErrBadRequest = errors.New("bad request")
	ErrBackend    = errors.New("tei backend error")
	ErrInternal   = errors.New("internal error")
)

// Error is returned by Client.Rerank.
type Error struct {
	kind    error
	Message string
	cause   error
}

func (e *Error) Error() string { return e.kind.Error() + ": " + e.Message }

// Is matches the sentinel for the error's class.
func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.cause }

// fromDomain converts pipeline errors into the public error type.
func fromDomain(err error) error {
	if err == nil {
		return nil
	}
	de := domain.AsError(err)

	var kind error
	switch de.Kind {
	case domain.KindBadRequest, domain.KindInvalidJSON:
		kind = ErrBadRequest
	case domain.KindBackend:
		kind = ErrBackend
	case domain.KindNotFound, domain.KindInternal:
		kind = ErrInternal
	default:
		kind = ErrInternal
	}
	return &Error{kind: kind, Message: de.Message, cause: err}
}
