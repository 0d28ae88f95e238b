// Package anoncreds adapts flat calling conventions to libanoncreds.
//
// Callers that can only pass scalars, raw pointers and parallel arrays with
// counts hand their arguments to a Marshaller. The Marshaller validates them,
// assembles the counted lists and nested records the library expects,
// invokes the wrapped operation exactly once and reports the library's status
// code verbatim. It holds no cryptographic logic and keeps no state between
// calls.
//
//	m, err := anoncreds.Open(anoncreds.Config{})
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	schema, err := m.CreateSchema(ctx, &anoncreds.CreateSchemaParams{
//	    Name:      "degree",
//	    Version:   "1.0",
//	    IssuerID:  "did:example:1",
//	    AttrNames: []string{"name", "age"},
//	})
//
// The native library is linked only when building with cgo and the
// libanoncreds build tag. Every other build compiles, and Open without an
// explicit Config.Library returns ErrNotBuilt.
package anoncreds
