// Package internalcheck holds policy tests that inspect the module's own
// source with go/packages.
//
// The checks keep cgo confined to the native backend and the C shared
// library command, keep unsafe out of packages that have no business with
// raw memory, forbid hex formatting of values that may carry credential
// material, and require status codes to be compared against named
// constants. The package exports nothing.
package internalcheck
