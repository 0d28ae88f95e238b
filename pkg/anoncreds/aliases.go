package anoncreds

import "github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"

// ObjectHandle is an alias for ffi.ObjectHandle.
type ObjectHandle = ffi.ObjectHandle

// ErrorCode is an alias for ffi.ErrorCode.
type ErrorCode = ffi.ErrorCode
