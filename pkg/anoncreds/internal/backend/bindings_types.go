//go:build cgo && !windows && libanoncreds

package backend

/*
#cgo CFLAGS: -I${SRCDIR}/../../../../native/include
#cgo LDFLAGS: -L${SRCDIR}/../../../../native/lib -lanoncreds -ldl -lm
#include <stdlib.h>
#include <string.h>
#include "libanoncreds.h"
*/
import "C"

import (
	"math"
	"unsafe"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

// arena owns the C memory backing the aggregates of a single native call.
// Every allocation is released by free, which callers defer right after the
// arena is created. Nothing allocated here may be retained past the call.
type arena struct {
	ptrs []unsafe.Pointer
}

func (a *arena) malloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	p := C.malloc(C.size_t(size))
	if p == nil {
		panic("anoncreds: C.malloc failed")
	}
	a.ptrs = append(a.ptrs, p)
	return p
}

// cstring copies s into C memory. The empty string maps to NULL only when
// optional is set; required strings stay non-NULL even when empty.
func (a *arena) cstring(s string, optional bool) C.FfiStr {
	if optional && s == "" {
		return nil
	}
	p := C.CString(s)
	a.ptrs = append(a.ptrs, unsafe.Pointer(p))
	return C.FfiStr(p)
}

func (a *arena) free() {
	for _, p := range a.ptrs {
		C.free(p)
	}
	a.ptrs = nil
}

// strList assembles an FfiStrList over C copies of the elements.
func (a *arena) strList(l ffi.StrList) C.FfiStrList {
	var out C.FfiStrList
	items := l.Items()
	out.count = C.size_t(len(items))
	if len(items) == 0 {
		return out
	}
	base := (*C.FfiStr)(a.malloc(uintptr(len(items)) * unsafe.Sizeof(C.FfiStr(nil))))
	dst := unsafe.Slice(base, len(items))
	for i, s := range items {
		dst[i] = a.cstring(s, false)
	}
	out.data = base
	return out
}

// handleList assembles an FfiList_ObjectHandle.
func (a *arena) handleList(l ffi.HandleList) C.FfiList_ObjectHandle {
	var out C.FfiList_ObjectHandle
	items := l.Items()
	out.count = C.size_t(len(items))
	if len(items) == 0 {
		return out
	}
	base := (*C.ObjectHandle)(a.malloc(uintptr(len(items)) * unsafe.Sizeof(C.ObjectHandle(0))))
	dst := unsafe.Slice(base, len(items))
	for i, h := range items {
		dst[i] = C.ObjectHandle(h)
	}
	out.data = base
	return out
}

// byteBuffer copies a borrowed Go buffer into C memory.
func (a *arena) byteBuffer(b ffi.ByteBuffer) C.ByteBuffer {
	var out C.ByteBuffer
	src := b.Bytes()
	out.len = C.int64_t(len(src))
	if len(src) == 0 {
		return out
	}
	p := a.malloc(uintptr(len(src)))
	C.memcpy(p, unsafe.Pointer(&src[0]), C.size_t(len(src)))
	out.data = (*C.uint8_t)(p)
	return out
}

// credentialEntries assembles FfiList_FfiCredentialEntry. Timestamps outside
// the native int32 range are rejected before any memory is written.
func (a *arena) credentialEntries(l ffi.CredentialEntryList) (C.FfiList_FfiCredentialEntry, bool) {
	var out C.FfiList_FfiCredentialEntry
	items := l.Items()
	for _, e := range items {
		if e.Timestamp < math.MinInt32 || e.Timestamp > math.MaxInt32 {
			return out, false
		}
	}
	out.count = C.size_t(len(items))
	if len(items) == 0 {
		return out, true
	}
	base := (*C.FfiCredentialEntry)(a.malloc(uintptr(len(items)) * unsafe.Sizeof(C.FfiCredentialEntry{})))
	dst := unsafe.Slice(base, len(items))
	for i, e := range items {
		dst[i].credential = C.ObjectHandle(e.Credential)
		dst[i].timestamp = C.int32_t(e.Timestamp)
		dst[i].rev_state = C.ObjectHandle(e.RevState)
	}
	out.data = base
	return out, true
}

// credentialProves assembles FfiList_FfiCredentialProve.
func (a *arena) credentialProves(l ffi.CredentialProveList) C.FfiList_FfiCredentialProve {
	var out C.FfiList_FfiCredentialProve
	items := l.Items()
	out.count = C.size_t(len(items))
	if len(items) == 0 {
		return out
	}
	base := (*C.FfiCredentialProve)(a.malloc(uintptr(len(items)) * unsafe.Sizeof(C.FfiCredentialProve{})))
	dst := unsafe.Slice(base, len(items))
	for i, p := range items {
		dst[i].entry_idx = C.int64_t(p.EntryIdx)
		dst[i].referent = a.cstring(p.Referent, false)
		dst[i].is_predicate = boolByte(p.IsPredicate)
		dst[i].reveal = boolByte(p.Reveal)
	}
	out.data = base
	return out
}

// overrides assembles FfiList_FfiNonrevokedIntervalOverride as a real array,
// one record per registry definition.
func (a *arena) overrides(l ffi.NonrevokedIntervalOverrideList) C.FfiList_FfiNonrevokedIntervalOverride {
	var out C.FfiList_FfiNonrevokedIntervalOverride
	items := l.Items()
	out.count = C.size_t(len(items))
	if len(items) == 0 {
		return out
	}
	base := (*C.FfiNonrevokedIntervalOverride)(a.malloc(uintptr(len(items)) * unsafe.Sizeof(C.FfiNonrevokedIntervalOverride{})))
	dst := unsafe.Slice(base, len(items))
	for i, o := range items {
		dst[i].rev_reg_def_id = a.cstring(o.RevRegDefID, false)
		dst[i].requested_from_ts = C.int32_t(o.RequestedFromTs)
		dst[i].override_rev_status_list_ts = C.int32_t(o.OverrideRevStatusListTs)
	}
	out.data = base
	return out
}

// revInfo assembles the FfiCredRevInfo record in C memory. The record is
// always passed; null handles signal that revocation is not configured.
func (a *arena) revInfo(r ffi.CredRevInfo) *C.FfiCredRevInfo {
	p := (*C.FfiCredRevInfo)(a.malloc(unsafe.Sizeof(C.FfiCredRevInfo{})))
	p.reg_def = C.ObjectHandle(r.RegDef)
	p.reg_def_private = C.ObjectHandle(r.RegDefPrivate)
	p.reg_idx = C.int64_t(r.RegIdx)
	p.tails_path = a.cstring(r.TailsPath, true)
	return p
}

func boolByte(b bool) C.int8_t {
	if b {
		return 1
	}
	return 0
}

// takeString copies a library-owned C string into Go and releases it.
func takeString(p *C.char) string {
	if p == nil {
		return ""
	}
	s := C.GoString(p)
	C.anoncreds_string_free(p)
	return s
}
