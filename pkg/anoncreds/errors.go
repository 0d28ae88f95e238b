package anoncreds

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/internal/backend"
)

var (
	// ErrInvalidArgument matches every error raised because the flat
	// arguments broke the calling contract. The library is not invoked.
	ErrInvalidArgument = errors.New("anoncreds: invalid argument")

	// ErrNotBuilt is returned by Open when the native bindings are not linked
	// and no Library was configured.
	ErrNotBuilt = backend.ErrNotBuilt

	// ErrLibraryClosed is returned by operations on a closed Marshaller and by
	// a second Close.
	ErrLibraryClosed = errors.New("anoncreds: library closed")
)

// Error describes a failed operation. Code is either the library's status,
// forwarded verbatim, or ffi.InvalidArgument for contract violations caught
// before the call.
type Error struct {
	Op     string
	Code   ffi.ErrorCode
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Code == ffi.InvalidArgument {
		if e.Err != nil {
			return fmt.Sprintf("anoncreds: %s: invalid argument: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("anoncreds: %s: invalid argument: %s", e.Op, e.Detail)
	}
	msg := fmt.Sprintf("anoncreds: %s failed with code %d (%s)", e.Op, int32(e.Code), e.Code)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports contract violations as ErrInvalidArgument.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidArgument && e.Code == ffi.InvalidArgument
}

func invalidArgument(op string, err error) error {
	return &Error{Op: op, Code: ffi.InvalidArgument, Err: err}
}

func invalidArgumentf(op, format string, args ...any) error {
	return &Error{Op: op, Code: ffi.InvalidArgument, Detail: fmt.Sprintf(format, args...)}
}

// StatusOf recovers the numeric status a flat caller should see for err.
// Lifecycle errors map to InvalidState and anything unrecognised to
// Unexpected.
func StatusOf(err error) ffi.ErrorCode {
	if err == nil {
		return ffi.Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	switch {
	case errors.Is(err, ErrNotBuilt), errors.Is(err, ErrLibraryClosed):
		return ffi.InvalidState
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ffi.InvalidState
	}
	return ffi.Unexpected
}
