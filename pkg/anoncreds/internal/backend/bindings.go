//go:build cgo && !windows && libanoncreds

package backend

/*
#include <stdlib.h>
#include "libanoncreds.h"
*/
import "C"

import (
	"unsafe"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

// Built reports whether the native bindings are linked.
const Built = true

// native implements ffi.Library over libanoncreds. It holds no state; every
// method builds its C aggregates in a fresh arena and frees them on return.
type native struct{}

// New returns the libanoncreds-backed Library.
func New() (ffi.Library, error) {
	return native{}, nil
}

// Version returns the version string reported by libanoncreds.
func Version() string {
	return takeString(C.anoncreds_version())
}

func (native) Version() string { return Version() }

func (native) CurrentError() string {
	var msg *C.char
	if rc := C.anoncreds_get_current_error(&msg); rc != 0 {
		return ""
	}
	return takeString(msg)
}

func (native) EncodeCredentialAttributes(attrRawValues ffi.StrList) (string, ffi.ErrorCode) {
	var a arena
	defer a.free()

	var out *C.char
	rc := C.anoncreds_encode_credential_attributes(a.strList(attrRawValues), &out)
	if ffi.ErrorCode(rc) != ffi.Success {
		return "", ffi.ErrorCode(rc)
	}
	return takeString(out), ffi.Success
}

func (native) CreateSchema(schemaName, schemaVersion, issuerID string, attrNames ffi.StrList) (ffi.ObjectHandle, ffi.ErrorCode) {
	var a arena
	defer a.free()

	var out C.ObjectHandle
	rc := C.anoncreds_create_schema(
		a.cstring(schemaName, false),
		a.cstring(schemaVersion, false),
		a.cstring(issuerID, false),
		a.strList(attrNames),
		&out,
	)
	return ffi.ObjectHandle(out), ffi.ErrorCode(rc)
}

func (native) PresentationRequestFromJSON(json ffi.ByteBuffer) (ffi.ObjectHandle, ffi.ErrorCode) {
	var a arena
	defer a.free()

	var out C.ObjectHandle
	rc := C.anoncreds_presentation_request_from_json(a.byteBuffer(json), &out)
	return ffi.ObjectHandle(out), ffi.ErrorCode(rc)
}

func (native) ObjectGetJSON(handle ffi.ObjectHandle) (ffi.ByteBuffer, ffi.ErrorCode) {
	var bb C.ByteBuffer
	rc := C.anoncreds_object_get_json(C.ObjectHandle(handle), &bb)
	if ffi.ErrorCode(rc) != ffi.Success {
		return ffi.ByteBuffer{}, ffi.ErrorCode(rc)
	}
	return ffi.ByteBuffer{Len: int64(bb.len), Data: (*byte)(unsafe.Pointer(bb.data))}, ffi.Success
}

func (native) CreateCredential(
	credDef, credDefPrivate, credOffer, credRequest ffi.ObjectHandle,
	attrNames, attrRawValues, attrEncValues ffi.StrList,
	revRegID string,
	revStatusList ffi.ObjectHandle,
	revocation ffi.CredRevInfo,
) (ffi.ObjectHandle, ffi.ErrorCode) {
	var a arena
	defer a.free()

	var out C.ObjectHandle
	rc := C.anoncreds_create_credential(
		C.ObjectHandle(credDef),
		C.ObjectHandle(credDefPrivate),
		C.ObjectHandle(credOffer),
		C.ObjectHandle(credRequest),
		a.strList(attrNames),
		a.strList(attrRawValues),
		a.strList(attrEncValues),
		a.cstring(revRegID, true),
		C.ObjectHandle(revStatusList),
		a.revInfo(revocation),
		&out,
	)
	return ffi.ObjectHandle(out), ffi.ErrorCode(rc)
}

func (native) CreatePresentation(
	presReq ffi.ObjectHandle,
	credentials ffi.CredentialEntryList,
	credentialsProve ffi.CredentialProveList,
	selfAttestNames, selfAttestValues ffi.StrList,
	linkSecret ffi.ObjectHandle,
	schemas ffi.HandleList,
	schemaIDs ffi.StrList,
	credDefs ffi.HandleList,
	credDefIDs ffi.StrList,
) (ffi.ObjectHandle, ffi.ErrorCode) {
	var a arena
	defer a.free()

	entries, ok := a.credentialEntries(credentials)
	if !ok {
		return 0, ffi.InvalidArgument
	}

	var out C.ObjectHandle
	rc := C.anoncreds_create_presentation(
		C.ObjectHandle(presReq),
		entries,
		a.credentialProves(credentialsProve),
		a.strList(selfAttestNames),
		a.strList(selfAttestValues),
		C.ObjectHandle(linkSecret),
		a.handleList(schemas),
		a.strList(schemaIDs),
		a.handleList(credDefs),
		a.strList(credDefIDs),
		&out,
	)
	return ffi.ObjectHandle(out), ffi.ErrorCode(rc)
}

func (native) VerifyPresentation(
	presentation, presReq ffi.ObjectHandle,
	schemas ffi.HandleList,
	schemaIDs ffi.StrList,
	credDefs ffi.HandleList,
	credDefIDs ffi.StrList,
	revRegDefs ffi.HandleList,
	revRegDefIDs ffi.StrList,
	revStatusLists ffi.HandleList,
	nonrevokedIntervalOverrides ffi.NonrevokedIntervalOverrideList,
) (int8, ffi.ErrorCode) {
	var a arena
	defer a.free()

	var out C.int8_t
	rc := C.anoncreds_verify_presentation(
		C.ObjectHandle(presentation),
		C.ObjectHandle(presReq),
		a.handleList(schemas),
		a.strList(schemaIDs),
		a.handleList(credDefs),
		a.strList(credDefIDs),
		a.handleList(revRegDefs),
		a.strList(revRegDefIDs),
		a.handleList(revStatusLists),
		a.overrides(nonrevokedIntervalOverrides),
		&out,
	)
	return int8(out), ffi.ErrorCode(rc)
}

func (native) BufferFree(buf ffi.ByteBuffer) {
	if buf.Data == nil {
		return
	}
	var bb C.ByteBuffer
	bb.len = C.int64_t(buf.Len)
	bb.data = (*C.uint8_t)(unsafe.Pointer(buf.Data))
	C.anoncreds_buffer_free(bb)
}

func (native) ObjectFree(handle ffi.ObjectHandle) {
	if handle.IsNull() {
		return
	}
	C.anoncreds_object_free(C.ObjectHandle(handle))
}
