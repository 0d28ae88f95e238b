// Package cabi reads the raw argument shapes of a C calling convention into
// Go values: pointer+count arrays of char*, size_t, int64_t, int32_t and
// int8_t, pointer+length byte regions, and NUL-terminated strings. It also
// writes the single-digit boolean result that flat callers read back.
//
// The package deliberately avoids cgo so it can be tested without a C
// toolchain. Callers convert their C pointers with unsafe.Pointer.
//
// Arrays are returned as views over the caller's memory where the element
// representation matches Go's, and as fresh slices otherwise. Strings are
// always copied. Neither outlives the call that read them.
package cabi
