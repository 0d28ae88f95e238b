//go:build !cgo || windows || !libanoncreds

package backend

import "github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"

// Built reports whether the native bindings are linked.
const Built = false

// New reports ErrNotBuilt: this binary was compiled without libanoncreds.
func New() (ffi.Library, error) {
	return nil, ErrNotBuilt
}

// Version returns an empty string when the native library is not linked.
func Version() string { return "" }
