package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef size_t ObjectHandle;
typedef int32_t ErrorCode;
typedef const char *FfiStr;
*/
import "C"

import (
	"unsafe"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

var exported = &shim{
	open:    sharedMarshaller,
	cstring: cString,
}

func cString(s string) unsafe.Pointer { return unsafe.Pointer(C.CString(s)) }

func code(c ffi.ErrorCode) C.ErrorCode { return C.ErrorCode(c) }

//export shim_anoncreds_encode_credential_attributes
func shim_anoncreds_encode_credential_attributes(attrRawValues **C.char, count C.size_t, resultP **C.char) C.ErrorCode {
	return code(exported.encodeCredentialAttributes(unsafe.Pointer(attrRawValues), uintptr(count), unsafe.Pointer(resultP)))
}

//export shim_anoncreds_create_schema
func shim_anoncreds_create_schema(
	schemaName, schemaVersion, issuerID C.FfiStr,
	attrNames **C.char, attrNamesLen C.size_t,
	resultP *C.ObjectHandle,
) C.ErrorCode {
	return code(exported.createSchema(
		unsafe.Pointer(schemaName), unsafe.Pointer(schemaVersion), unsafe.Pointer(issuerID),
		unsafe.Pointer(attrNames), uintptr(attrNamesLen),
		unsafe.Pointer(resultP)))
}

//export shim_anoncreds_presentation_request_from_json
func shim_anoncreds_presentation_request_from_json(jsonPtr *C.uchar, jsonLen C.int64_t, resultP *C.ObjectHandle) C.ErrorCode {
	return code(exported.presentationRequestFromJSON(unsafe.Pointer(jsonPtr), int64(jsonLen), unsafe.Pointer(resultP)))
}

// shim_anoncreds_object_get_json stores the library's JSON buffer pointer at
// *bufP. The bytes are not NUL-terminated; use
// shim_anoncreds_object_get_json_buffer when the length is needed. Release
// the pointer with shim_anoncreds_buffer_free.
//
//export shim_anoncreds_object_get_json
func shim_anoncreds_object_get_json(handle C.ObjectHandle, bufP **C.uchar) C.ErrorCode {
	return code(exported.objectGetJSON(ffi.ObjectHandle(handle), unsafe.Pointer(bufP)))
}

//export shim_anoncreds_object_get_json_buffer
func shim_anoncreds_object_get_json_buffer(handle C.ObjectHandle, bufP **C.uchar, lenP *C.int64_t) C.ErrorCode {
	return code(exported.objectGetJSONBuffer(ffi.ObjectHandle(handle), unsafe.Pointer(bufP), unsafe.Pointer(lenP)))
}

//export shim_anoncreds_create_credential
func shim_anoncreds_create_credential(
	credDef, credDefPrivate, credOffer, credRequest C.ObjectHandle,
	attrNames **C.char, attrNamesLen C.size_t,
	attrRawValues **C.char, attrRawValuesLen C.size_t,
	attrEncValues **C.char, attrEncValuesLen C.size_t,
	revRegID C.FfiStr,
	revStatusList C.ObjectHandle,
	revocationRegDef C.ObjectHandle,
	revocationRegDefPrivate C.ObjectHandle,
	revocationRegIdx C.int64_t,
	revocationTailsPath C.FfiStr,
	credP *C.ObjectHandle,
) C.ErrorCode {
	return code(exported.createCredential(&flatCredential{
		credDef:          ffi.ObjectHandle(credDef),
		credDefPrivate:   ffi.ObjectHandle(credDefPrivate),
		credOffer:        ffi.ObjectHandle(credOffer),
		credRequest:      ffi.ObjectHandle(credRequest),
		attrNames:        unsafe.Pointer(attrNames),
		attrNamesLen:     uintptr(attrNamesLen),
		attrRawValues:    unsafe.Pointer(attrRawValues),
		attrRawValuesLen: uintptr(attrRawValuesLen),
		attrEncValues:    unsafe.Pointer(attrEncValues),
		attrEncValuesLen: uintptr(attrEncValuesLen),
		revRegID:         unsafe.Pointer(revRegID),
		revStatusList:    ffi.ObjectHandle(revStatusList),
		revRegDef:        ffi.ObjectHandle(revocationRegDef),
		revRegDefPrivate: ffi.ObjectHandle(revocationRegDefPrivate),
		revRegIdx:        int64(revocationRegIdx),
		tailsPath:        unsafe.Pointer(revocationTailsPath),
	}, unsafe.Pointer(credP)))
}

//export shim_anoncreds_create_presentation
func shim_anoncreds_create_presentation(
	presReq C.ObjectHandle,
	credentialsCredential *C.size_t,
	credentialsTimestamp *C.int64_t,
	credentialsRevState *C.size_t,
	credentialsCount C.size_t,
	credentialsProveEntryIdx *C.int64_t,
	credentialsProveReferent **C.char,
	credentialsProveIsPredicate *C.int8_t,
	credentialsProveReveal *C.int8_t,
	credentialsProveCount C.size_t,
	selfAttestNames **C.char,
	selfAttestNamesCount C.size_t,
	selfAttestValues **C.char,
	selfAttestValuesCount C.size_t,
	linkSecret C.ObjectHandle,
	schemas *C.size_t,
	schemasCount C.size_t,
	schemaIDs **C.char,
	schemaIDsCount C.size_t,
	credDefs *C.size_t,
	credDefsCount C.size_t,
	credDefIDs **C.char,
	credDefIDsCount C.size_t,
	presentationP *C.ObjectHandle,
) C.ErrorCode {
	return code(exported.createPresentation(&flatPresentation{
		presReq:             ffi.ObjectHandle(presReq),
		credentials:         unsafe.Pointer(credentialsCredential),
		timestamps:          unsafe.Pointer(credentialsTimestamp),
		revStates:           unsafe.Pointer(credentialsRevState),
		credentialCount:     uintptr(credentialsCount),
		proveEntryIdx:       unsafe.Pointer(credentialsProveEntryIdx),
		proveReferents:      unsafe.Pointer(credentialsProveReferent),
		proveIsPredicate:    unsafe.Pointer(credentialsProveIsPredicate),
		proveReveal:         unsafe.Pointer(credentialsProveReveal),
		proveCount:          uintptr(credentialsProveCount),
		selfAttestNames:     unsafe.Pointer(selfAttestNames),
		selfAttestNamesLen:  uintptr(selfAttestNamesCount),
		selfAttestValues:    unsafe.Pointer(selfAttestValues),
		selfAttestValuesLen: uintptr(selfAttestValuesCount),
		linkSecret:          ffi.ObjectHandle(linkSecret),
		schemas:             unsafe.Pointer(schemas),
		schemasLen:          uintptr(schemasCount),
		schemaIDs:           unsafe.Pointer(schemaIDs),
		schemaIDsLen:        uintptr(schemaIDsCount),
		credDefs:            unsafe.Pointer(credDefs),
		credDefsLen:         uintptr(credDefsCount),
		credDefIDs:          unsafe.Pointer(credDefIDs),
		credDefIDsLen:       uintptr(credDefIDsCount),
	}, unsafe.Pointer(presentationP)))
}

// shim_anoncreds_verify_presentation writes "1" or "0" and a NUL into
// result, which must hold at least two bytes. "0" is written on failure too.
//
//export shim_anoncreds_verify_presentation
func shim_anoncreds_verify_presentation(
	presentation, presReq C.ObjectHandle,
	schemas *C.size_t, schemasCount C.size_t,
	schemaIDs **C.char, schemaIDsCount C.size_t,
	credDefs *C.size_t, credDefsCount C.size_t,
	credDefIDs **C.char, credDefIDsCount C.size_t,
	revRegDefs *C.size_t, revRegDefsCount C.size_t,
	revRegDefIDs **C.char, revRegDefIDsCount C.size_t,
	revStatusList *C.size_t, revStatusListCount C.size_t,
	overrideRevRegDefIDs **C.char,
	overrideRequestedFromTs *C.int32_t,
	overrideRevStatusListTs *C.int32_t,
	overrideCount C.size_t,
	result *C.char,
) C.ErrorCode {
	return code(exported.verifyPresentation(&flatVerification{
		presentation:            ffi.ObjectHandle(presentation),
		presReq:                 ffi.ObjectHandle(presReq),
		schemas:                 unsafe.Pointer(schemas),
		schemasLen:              uintptr(schemasCount),
		schemaIDs:               unsafe.Pointer(schemaIDs),
		schemaIDsLen:            uintptr(schemaIDsCount),
		credDefs:                unsafe.Pointer(credDefs),
		credDefsLen:             uintptr(credDefsCount),
		credDefIDs:              unsafe.Pointer(credDefIDs),
		credDefIDsLen:           uintptr(credDefIDsCount),
		revRegDefs:              unsafe.Pointer(revRegDefs),
		revRegDefsLen:           uintptr(revRegDefsCount),
		revRegDefIDs:            unsafe.Pointer(revRegDefIDs),
		revRegDefIDsLen:         uintptr(revRegDefIDsCount),
		revStatusLists:          unsafe.Pointer(revStatusList),
		revStatusListsLen:       uintptr(revStatusListCount),
		overrideRevRegDefIDs:    unsafe.Pointer(overrideRevRegDefIDs),
		overrideRequestedFromTs: unsafe.Pointer(overrideRequestedFromTs),
		overrideRevStatusListTs: unsafe.Pointer(overrideRevStatusListTs),
		overrideCount:           uintptr(overrideCount),
	}, unsafe.Pointer(result)))
}

//export shim_anoncreds_object_free
func shim_anoncreds_object_free(handle C.ObjectHandle) {
	exported.objectFree(ffi.ObjectHandle(handle))
}

// shim_anoncreds_buffer_free returns a buffer from
// shim_anoncreds_object_get_json to the library.
//
//export shim_anoncreds_buffer_free
func shim_anoncreds_buffer_free(buf *C.uchar) {
	exported.bufferFree(unsafe.Pointer(buf))
}

//export shim_anoncreds_string_free
func shim_anoncreds_string_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// shim_anoncreds_version returns the upstream library version. Release it
// with shim_anoncreds_string_free.
//
//export shim_anoncreds_version
func shim_anoncreds_version() *C.char {
	return (*C.char)(exported.version())
}
