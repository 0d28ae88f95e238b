package ffi

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrCountMismatch reports parallel arrays that should describe the same
	// list but carry different element counts.
	ErrCountMismatch = errors.New("ffi: parallel array count mismatch")

	// ErrMalformed reports an aggregate whose count disagrees with its data.
	ErrMalformed = errors.New("ffi: malformed aggregate")
)

// List is a counted list as the native interface expects it: an explicit
// element count next to the elements. Count always equals len(Data) for lists
// produced by the builders in this package.
type List[T any] struct {
	Count int
	Data  []T
}

// Validate checks that the list is well formed.
func (l List[T]) Validate() error {
	if l.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrMalformed, l.Count)
	}
	if l.Count != len(l.Data) {
		return fmt.Errorf("%w: count %d with %d elements", ErrMalformed, l.Count, len(l.Data))
	}
	return nil
}

// Items disassembles the list back into its elements, in order. A count
// larger than the data is clamped to the data and a negative count yields no
// elements; Validate reports both.
func (l List[T]) Items() []T {
	n := min(max(l.Count, 0), len(l.Data))
	return l.Data[:n:n]
}

// Len returns the declared element count.
func (l List[T]) Len() int { return l.Count }

// StrList is a counted list of NUL-terminated strings (FfiStrList).
type StrList = List[string]

// HandleList is a counted list of object handles (FfiList_ObjectHandle).
type HandleList = List[ObjectHandle]

// CredentialEntry is one credential taking part in a presentation
// (FfiCredentialEntry). Timestamp is -1 or a revocation status list time.
type CredentialEntry struct {
	Credential ObjectHandle
	Timestamp  int64
	RevState   ObjectHandle
}

// CredentialEntryList is FfiList_FfiCredentialEntry.
type CredentialEntryList = List[CredentialEntry]

// CredentialProve says which attribute or predicate of which entry to prove
// (FfiCredentialProve).
type CredentialProve struct {
	EntryIdx    int64
	Referent    string
	IsPredicate bool
	Reveal      bool
}

// CredentialProveList is FfiList_FfiCredentialProve.
type CredentialProveList = List[CredentialProve]

// CredRevInfo carries the revocation registry used while issuing a
// credential (FfiCredRevInfo). Null handles mean revocation is not configured.
type CredRevInfo struct {
	RegDef        ObjectHandle
	RegDefPrivate ObjectHandle
	RegIdx        int64
	TailsPath     string
}

// Configured reports whether the record names a revocation registry.
func (r CredRevInfo) Configured() bool {
	return !r.RegDef.IsNull() && !r.RegDefPrivate.IsNull()
}

// NonrevokedIntervalOverride replaces the requested "from" time of a
// non-revocation interval for one registry (FfiNonrevokedIntervalOverride).
type NonrevokedIntervalOverride struct {
	RevRegDefID             string
	RequestedFromTs         int32
	OverrideRevStatusListTs int32
}

// NonrevokedIntervalOverrideList is FfiList_FfiNonrevokedIntervalOverride.
type NonrevokedIntervalOverrideList = List[NonrevokedIntervalOverride]

// ByteBuffer is a length-prefixed byte region (ByteBuffer). Built by
// BuildByteBuffer it borrows caller memory; returned by the library it is
// owned by the library until BufferFree.
type ByteBuffer struct {
	Len  int64
	Data *byte
}

// Validate checks that the buffer is well formed.
func (b ByteBuffer) Validate() error {
	if b.Len < 0 {
		return fmt.Errorf("%w: negative buffer length %d", ErrMalformed, b.Len)
	}
	if b.Len > 0 && b.Data == nil {
		return fmt.Errorf("%w: nil data with length %d", ErrMalformed, b.Len)
	}
	return nil
}

// IsEmpty reports whether the buffer holds no bytes.
func (b ByteBuffer) IsEmpty() bool { return b.Len <= 0 || b.Data == nil }

// Bytes returns a view of the buffer without copying. The view is only valid
// while the underlying memory is.
func (b ByteBuffer) Bytes() []byte {
	if b.IsEmpty() {
		return nil
	}
	return unsafe.Slice(b.Data, b.Len)
}
