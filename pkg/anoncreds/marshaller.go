package anoncreds

import (
	"context"
	"sync/atomic"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/internal/backend"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
)

// Marshaller turns flat arguments into library aggregates and back. It keeps
// no per-call state and is safe for concurrent use when the wrapped Library
// is.
type Marshaller struct {
	lib    ffi.Library
	log    logging.Logger
	closed atomic.Bool
}

// Open prepares a Marshaller over cfg.Library, or over the native backend
// when none is configured.
func Open(cfg Config) (*Marshaller, error) {
	lib := cfg.Library
	if lib == nil {
		native, err := backend.New()
		if err != nil {
			return nil, err
		}
		lib = native
	}
	return &Marshaller{lib: lib, log: cfg.logger()}, nil
}

// Close marks the Marshaller unusable. Objects already issued by the library
// stay valid until freed. Calling Close twice returns ErrLibraryClosed.
func (m *Marshaller) Close() error {
	if m == nil {
		return nil
	}
	if !m.closed.CompareAndSwap(false, true) {
		return ErrLibraryClosed
	}
	return nil
}

// LibraryVersion returns the version reported by the wrapped library.
func (m *Marshaller) LibraryVersion() string {
	return m.lib.Version()
}

// begin checks lifecycle and context before any argument is touched.
func (m *Marshaller) begin(ctx context.Context) error {
	if m == nil || m.closed.Load() {
		return ErrLibraryClosed
	}
	return ctx.Err()
}

// status converts a library code into an error, logging failures.
func (m *Marshaller) status(ctx context.Context, op string, code ffi.ErrorCode) error {
	if code == ffi.Success {
		return nil
	}
	err := &Error{Op: op, Code: code}
	if code.IsLibraryCode() {
		err.Detail = m.lib.CurrentError()
	}
	m.log.Warn(ctx, "anoncreds call failed", "op", op, "code", int32(code), "status", code.String())
	return err
}

// reject logs a contract violation and returns it unchanged.
func (m *Marshaller) reject(ctx context.Context, err error) error {
	if e, ok := err.(*Error); ok {
		m.log.Warn(ctx, "anoncreds arguments rejected", "op", e.Op, "code", int32(e.Code))
	}
	return err
}

func requireHandles(op string, handles ...namedHandle) error {
	for _, h := range handles {
		if h.h.IsNull() {
			return invalidArgumentf(op, "%s handle is null", h.name)
		}
	}
	return nil
}

type namedHandle struct {
	name string
	h    ffi.ObjectHandle
}
