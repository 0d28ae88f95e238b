package anoncreds

import (
	"runtime"
	"sync"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

// Buffer holds a byte buffer allocated by the library. Ownership moves to
// the caller, who must call Release once done. A finalizer releases buffers
// that are dropped, but relying on it delays the free.
//
//	buf, err := m.ObjectGetJSON(ctx, schema)
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
type Buffer struct {
	mu  sync.Mutex
	lib ffi.Library
	buf ffi.ByteBuffer
}

func newBuffer(lib ffi.Library, buf ffi.ByteBuffer) *Buffer {
	b := &Buffer{lib: lib, buf: buf}
	runtime.SetFinalizer(b, func(b *Buffer) {
		b.Release()
	})
	return b
}

// Len returns the buffer length, or zero once released.
func (b *Buffer) Len() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len
}

// Data returns the library pointer, or nil once released.
func (b *Buffer) Data() *byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Data
}

// Bytes returns a view of the library memory. The view is invalid after
// Release.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Bytes()
}

// Copy returns a Go-owned copy of the contents.
func (b *Buffer) Copy() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	src := b.buf.Bytes()
	if src == nil {
		return nil
	}
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

// String copies the contents into a string.
func (b *Buffer) String() string {
	return string(b.Copy())
}

// Release hands the memory back to the library. It is safe to call more
// than once.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lib == nil {
		return
	}
	if b.buf.Data != nil {
		b.lib.BufferFree(b.buf)
	}
	b.lib = nil
	b.buf = ffi.ByteBuffer{}
	runtime.SetFinalizer(b, nil)
}
