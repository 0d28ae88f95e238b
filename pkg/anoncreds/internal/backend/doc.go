// Package backend hosts the thin cgo layer that links the marshaller to the
// native libanoncreds library. The real implementation is compiled only with
// cgo and the libanoncreds build tag:
//
//	CGO_ENABLED=1 go build -tags libanoncreds ./...
//
// Every other build links the stub, whose New reports ErrNotBuilt, so the rest
// of the repository compiles and tests without the native library.
//
// The cgo layer copies every Go-owned input into C memory for the duration of
// one call and frees it before returning. Nothing built here outlives the call.
package backend
