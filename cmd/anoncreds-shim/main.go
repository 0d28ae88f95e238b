// Command anoncreds-shim builds a C shared library exporting the flat
// shim_anoncreds_* calling convention over libanoncreds:
//
//	go build -tags libanoncreds -buildmode=c-shared -o libanoncreds-shim.so ./cmd/anoncreds-shim
//
// Callers pass scalars, raw pointers and parallel arrays with counts. Every
// export returns the library's status code; contract violations such as a
// NULL array with a non-zero count return InvalidArgument (100) without
// calling the library. Strings handed back are allocated with malloc and
// released with shim_anoncreds_string_free. JSON buffers are the library's
// own memory, forwarded as is and released with shim_anoncreds_buffer_free.
package main

func main() {}
