package ffi

// Library is the native libanoncreds interface the marshaller drives. Each
// method corresponds to one exported anoncreds_* symbol and is invoked exactly
// once per marshalled call. Arguments are positional, in native order.
//
// Implementations must not retain any aggregate past the call that received
// it. Returned handles and buffers belong to the caller.
type Library interface {
	// EncodeCredentialAttributes encodes raw attribute values and returns them
	// comma separated (anoncreds_encode_credential_attributes).
	EncodeCredentialAttributes(attrRawValues StrList) (string, ErrorCode)

	// CreateSchema creates a schema object (anoncreds_create_schema).
	CreateSchema(schemaName, schemaVersion, issuerID string, attrNames StrList) (ObjectHandle, ErrorCode)

	// PresentationRequestFromJSON parses a presentation request
	// (anoncreds_presentation_request_from_json).
	PresentationRequestFromJSON(json ByteBuffer) (ObjectHandle, ErrorCode)

	// ObjectGetJSON serializes any object. The returned buffer is owned by
	// the caller and must be released with BufferFree (anoncreds_object_get_json).
	ObjectGetJSON(handle ObjectHandle) (ByteBuffer, ErrorCode)

	// CreateCredential issues a credential (anoncreds_create_credential).
	CreateCredential(
		credDef, credDefPrivate, credOffer, credRequest ObjectHandle,
		attrNames, attrRawValues, attrEncValues StrList,
		revRegID string,
		revStatusList ObjectHandle,
		revocation CredRevInfo,
	) (ObjectHandle, ErrorCode)

	// CreatePresentation builds a presentation (anoncreds_create_presentation).
	CreatePresentation(
		presReq ObjectHandle,
		credentials CredentialEntryList,
		credentialsProve CredentialProveList,
		selfAttestNames, selfAttestValues StrList,
		linkSecret ObjectHandle,
		schemas HandleList,
		schemaIDs StrList,
		credDefs HandleList,
		credDefIDs StrList,
	) (ObjectHandle, ErrorCode)

	// VerifyPresentation verifies a presentation and reports the outcome as
	// a signed byte, 1 for valid (anoncreds_verify_presentation).
	VerifyPresentation(
		presentation, presReq ObjectHandle,
		schemas HandleList,
		schemaIDs StrList,
		credDefs HandleList,
		credDefIDs StrList,
		revRegDefs HandleList,
		revRegDefIDs StrList,
		revStatusLists HandleList,
		nonrevokedIntervalOverrides NonrevokedIntervalOverrideList,
	) (int8, ErrorCode)

	// BufferFree releases a buffer returned by ObjectGetJSON.
	BufferFree(buf ByteBuffer)

	// ObjectFree releases an object handle.
	ObjectFree(handle ObjectHandle)

	// CurrentError returns the detail message of the last failed call on the
	// calling thread, or "" when none is available.
	CurrentError() string

	// Version reports the library version.
	Version() string
}
