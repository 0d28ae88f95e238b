// Package ffi describes the native interface of libanoncreds in Go terms.
//
// The wrapped library does not accept flat arrays. Its operations take counted
// lists of strings, counted lists of object handles, arrays of credential
// entry and proof records, and length-prefixed byte buffers. This package
// defines those aggregate shapes, the builders that assemble them from
// parallel arrays, and the Library contract that a backend (the cgo binding or
// an in-memory fake) implements.
//
// # Ownership
//
// Aggregates built here are views over caller memory. A StrList built from a
// []string aliases that slice and must not be retained past the single call
// it was built for. ByteBuffer values returned by Library.ObjectGetJSON are the
// exception: their memory belongs to the library until released through
// Library.BufferFree.
//
// # Positional contract
//
// Library methods are positional, in the same order as the native symbols.
// Field order inside each record mirrors the C struct layout.
package ffi
