package cabi

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

var (
	// ErrNullPointer reports a NULL pointer where the caller promised data.
	ErrNullPointer = errors.New("cabi: null pointer")

	// ErrBadLength reports a negative or implausibly large count or length.
	ErrBadLength = errors.New("cabi: bad length")
)

// maxElems bounds counts accepted from foreign callers.
const maxElems = 1 << 28

func view[T any](ptr unsafe.Pointer, count uintptr, what string) ([]T, error) {
	if count == 0 {
		return []T{}, nil
	}
	if count > maxElems {
		return nil, fmt.Errorf("%w: %s count %d", ErrBadLength, what, count)
	}
	if ptr == nil {
		return nil, fmt.Errorf("%w: %s with count %d", ErrNullPointer, what, count)
	}
	return unsafe.Slice((*T)(ptr), count), nil
}

// GoString copies the NUL-terminated string at p. A NULL p yields "".
func GoString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// RequiredString copies the NUL-terminated string at p and rejects NULL.
func RequiredString(p unsafe.Pointer, what string) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: %s", ErrNullPointer, what)
	}
	return GoString(p), nil
}

// Strings copies count NUL-terminated strings from a char*[] array.
func Strings(ptr unsafe.Pointer, count uintptr, what string) ([]string, error) {
	ptrs, err := view[unsafe.Pointer](ptr, count, what)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ptrs))
	for i, p := range ptrs {
		if p == nil {
			return nil, fmt.Errorf("%w: %s[%d]", ErrNullPointer, what, i)
		}
		out[i] = GoString(p)
	}
	return out, nil
}

// Handles views a size_t[] array as object handles.
func Handles(ptr unsafe.Pointer, count uintptr, what string) ([]ffi.ObjectHandle, error) {
	return view[ffi.ObjectHandle](ptr, count, what)
}

// Int64s views an int64_t[] array.
func Int64s(ptr unsafe.Pointer, count uintptr, what string) ([]int64, error) {
	return view[int64](ptr, count, what)
}

// Int32s views an int32_t[] array.
func Int32s(ptr unsafe.Pointer, count uintptr, what string) ([]int32, error) {
	return view[int32](ptr, count, what)
}

// Bools reads an int8_t[] flag array; any non-zero byte is true.
func Bools(ptr unsafe.Pointer, count uintptr, what string) ([]bool, error) {
	flags, err := view[int8](ptr, count, what)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(flags))
	for i, f := range flags {
		out[i] = f != 0
	}
	return out, nil
}

// Bytes views a pointer+length byte region.
func Bytes(ptr unsafe.Pointer, length int64, what string) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %s length %d", ErrBadLength, what, length)
	}
	return view[byte](ptr, uintptr(length), what)
}

// WriteDigit stores "1" or "0" followed by NUL at dst, the result buffer of
// a boolean operation. dst must have room for two bytes.
func WriteDigit(dst unsafe.Pointer, ok bool) error {
	if dst == nil {
		return fmt.Errorf("%w: result buffer", ErrNullPointer)
	}
	out := unsafe.Slice((*byte)(dst), 2)
	out[0] = ffi.FormatVerified(ok)[0]
	out[1] = 0
	return nil
}

// Handle stores h at the ObjectHandle output slot dst.
func Handle(dst unsafe.Pointer, h ffi.ObjectHandle) error {
	if dst == nil {
		return fmt.Errorf("%w: handle output", ErrNullPointer)
	}
	*(*ffi.ObjectHandle)(dst) = h
	return nil
}
