// Package mocklib provides an in-memory ffi.Library for tests and examples.
//
// It stands in for libanoncreds without doing any cryptography: objects are
// JSON documents kept in a handle table, verification returns a configurable
// outcome, and every call is recorded with deep copies of the aggregates it
// received so tests can assert on the exact shapes the marshaller built.
//
//	lib := mocklib.New()
//	credDef := lib.Put(mocklib.KindCredDef, `{"schemaId":"s1"}`)
//	m, _ := anoncreds.Open(anoncreds.Config{Library: lib})
//
// The fake applies the same structural checks the native library applies to
// its inputs (well-formed lists, known handles, matching counts) and answers
// with ffi.Input when they fail, so marshaller tests can tell local contract
// enforcement apart from library rejection.
package mocklib
