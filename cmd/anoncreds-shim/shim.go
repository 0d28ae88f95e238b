package main

import (
	"context"
	"sync"
	"unsafe"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/cabi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

var (
	sharedOnce sync.Once
	shared     *anoncreds.Marshaller
	sharedErr  error
)

// sharedMarshaller opens the process-wide Marshaller on first use.
func sharedMarshaller() (*anoncreds.Marshaller, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = anoncreds.Open(anoncreds.Config{})
	})
	return shared, sharedErr
}

// reader collects flat arguments, keeping the first error.
type reader struct {
	err error
}

func (r *reader) str(p unsafe.Pointer, what string) string {
	if r.err != nil {
		return ""
	}
	s, err := cabi.RequiredString(p, what)
	r.err = err
	return s
}

func (r *reader) strings(p unsafe.Pointer, n uintptr, what string) []string {
	if r.err != nil {
		return nil
	}
	v, err := cabi.Strings(p, n, what)
	r.err = err
	return v
}

func (r *reader) handles(p unsafe.Pointer, n uintptr, what string) []ffi.ObjectHandle {
	if r.err != nil {
		return nil
	}
	v, err := cabi.Handles(p, n, what)
	r.err = err
	return v
}

func (r *reader) int64s(p unsafe.Pointer, n uintptr, what string) []int64 {
	if r.err != nil {
		return nil
	}
	v, err := cabi.Int64s(p, n, what)
	r.err = err
	return v
}

func (r *reader) int32s(p unsafe.Pointer, n uintptr, what string) []int32 {
	if r.err != nil {
		return nil
	}
	v, err := cabi.Int32s(p, n, what)
	r.err = err
	return v
}

func (r *reader) bools(p unsafe.Pointer, n uintptr, what string) []bool {
	if r.err != nil {
		return nil
	}
	v, err := cabi.Bools(p, n, what)
	r.err = err
	return v
}

// shim implements the exported calls on Go values. The cgo layer only
// converts C types, so everything here runs under plain go test.
type shim struct {
	open    func() (*anoncreds.Marshaller, error)
	cstring func(string) unsafe.Pointer

	mu sync.Mutex
	// bufs holds library buffers lent to C callers, keyed by data pointer.
	bufs map[uintptr]*anoncreds.Buffer
}

func (s *shim) marshaller() (*anoncreds.Marshaller, ffi.ErrorCode) {
	m, err := s.open()
	if err != nil {
		return nil, anoncreds.StatusOf(err)
	}
	return m, ffi.Success
}

// handle runs fn and stores the resulting handle at dst. A NULL dst is
// rejected before the library is opened.
func (s *shim) handle(dst unsafe.Pointer, fn func(*anoncreds.Marshaller) (ffi.ObjectHandle, ffi.ErrorCode)) ffi.ErrorCode {
	if dst == nil {
		return ffi.InvalidArgument
	}
	m, status := s.marshaller()
	if m == nil {
		return status
	}
	h, status := fn(m)
	if status == ffi.Success {
		_ = cabi.Handle(dst, h)
	}
	return status
}

func (s *shim) encodeCredentialAttributes(values unsafe.Pointer, count uintptr, resultP unsafe.Pointer) ffi.ErrorCode {
	if resultP == nil {
		return ffi.InvalidArgument
	}
	m, status := s.marshaller()
	if m == nil {
		return status
	}
	var r reader
	raw := r.strings(values, count, "attr_raw_values")
	if r.err != nil {
		return ffi.InvalidArgument
	}
	out, err := m.EncodeCredentialAttributes(context.Background(), raw)
	if err != nil {
		return anoncreds.StatusOf(err)
	}
	*(*unsafe.Pointer)(resultP) = s.cstring(out)
	return ffi.Success
}

func (s *shim) createSchema(name, version, issuerID, attrNames unsafe.Pointer, count uintptr, resultP unsafe.Pointer) ffi.ErrorCode {
	return s.handle(resultP, func(m *anoncreds.Marshaller) (ffi.ObjectHandle, ffi.ErrorCode) {
		var r reader
		params := &anoncreds.CreateSchemaParams{
			Name:      r.str(name, "schema_name"),
			Version:   r.str(version, "schema_version"),
			IssuerID:  r.str(issuerID, "issuer_id"),
			AttrNames: r.strings(attrNames, count, "attr_names"),
		}
		if r.err != nil {
			return 0, ffi.InvalidArgument
		}
		h, err := m.CreateSchema(context.Background(), params)
		return h, anoncreds.StatusOf(err)
	})
}

func (s *shim) presentationRequestFromJSON(data unsafe.Pointer, length int64, resultP unsafe.Pointer) ffi.ErrorCode {
	return s.handle(resultP, func(m *anoncreds.Marshaller) (ffi.ObjectHandle, ffi.ErrorCode) {
		buf, err := cabi.Bytes(data, length, "json")
		if err != nil {
			return 0, ffi.InvalidArgument
		}
		h, err := m.PresentationRequestFromJSON(context.Background(), buf)
		return h, anoncreds.StatusOf(err)
	})
}

// lend fetches the object's JSON and keeps the library buffer alive until
// bufferFree is called with its data pointer. The pointer is the library's
// own; an empty buffer is released at once and lent as nil.
func (s *shim) lend(h ffi.ObjectHandle) (unsafe.Pointer, int64, ffi.ErrorCode) {
	m, status := s.marshaller()
	if m == nil {
		return nil, 0, status
	}
	buf, err := m.ObjectGetJSON(context.Background(), h)
	if err != nil {
		return nil, 0, anoncreds.StatusOf(err)
	}
	p := unsafe.Pointer(buf.Data())
	if p == nil {
		buf.Release()
		return nil, 0, ffi.Success
	}
	n := buf.Len()
	s.mu.Lock()
	if s.bufs == nil {
		s.bufs = make(map[uintptr]*anoncreds.Buffer)
	}
	s.bufs[uintptr(p)] = buf
	s.mu.Unlock()
	return p, n, ffi.Success
}

func (s *shim) objectGetJSON(h ffi.ObjectHandle, bufP unsafe.Pointer) ffi.ErrorCode {
	if bufP == nil {
		return ffi.InvalidArgument
	}
	p, _, status := s.lend(h)
	if status == ffi.Success {
		*(*unsafe.Pointer)(bufP) = p
	}
	return status
}

func (s *shim) objectGetJSONBuffer(h ffi.ObjectHandle, bufP, lenP unsafe.Pointer) ffi.ErrorCode {
	if bufP == nil || lenP == nil {
		return ffi.InvalidArgument
	}
	p, n, status := s.lend(h)
	if status == ffi.Success {
		*(*unsafe.Pointer)(bufP) = p
		*(*int64)(lenP) = n
	}
	return status
}

// bufferFree returns a lent buffer to the library. Unknown pointers are
// ignored.
func (s *shim) bufferFree(p unsafe.Pointer) {
	if p == nil {
		return
	}
	s.mu.Lock()
	buf, ok := s.bufs[uintptr(p)]
	delete(s.bufs, uintptr(p))
	s.mu.Unlock()
	if ok {
		buf.Release()
	}
}

func (s *shim) objectFree(h ffi.ObjectHandle) {
	m, _ := s.marshaller()
	if m == nil {
		return
	}
	_ = m.FreeObject(context.Background(), h)
}

func (s *shim) version() unsafe.Pointer {
	return s.cstring(anoncreds.UpstreamVersion())
}

// flatCredential mirrors the arguments of shim_anoncreds_create_credential.
type flatCredential struct {
	credDef, credDefPrivate, credOffer, credRequest ffi.ObjectHandle

	attrNames        unsafe.Pointer
	attrNamesLen     uintptr
	attrRawValues    unsafe.Pointer
	attrRawValuesLen uintptr
	attrEncValues    unsafe.Pointer
	attrEncValuesLen uintptr

	revRegID         unsafe.Pointer
	revStatusList    ffi.ObjectHandle
	revRegDef        ffi.ObjectHandle
	revRegDefPrivate ffi.ObjectHandle
	revRegIdx        int64
	tailsPath        unsafe.Pointer
}

func (s *shim) createCredential(f *flatCredential, credP unsafe.Pointer) ffi.ErrorCode {
	return s.handle(credP, func(m *anoncreds.Marshaller) (ffi.ObjectHandle, ffi.ErrorCode) {
		var r reader
		params := &anoncreds.CreateCredentialParams{
			CredDef:          f.credDef,
			CredDefPrivate:   f.credDefPrivate,
			CredOffer:        f.credOffer,
			CredRequest:      f.credRequest,
			AttrNames:        r.strings(f.attrNames, f.attrNamesLen, "attr_names"),
			AttrRawValues:    r.strings(f.attrRawValues, f.attrRawValuesLen, "attr_raw_values"),
			AttrEncValues:    r.strings(f.attrEncValues, f.attrEncValuesLen, "attr_enc_values"),
			RevRegID:         cabi.GoString(f.revRegID),
			RevStatusList:    f.revStatusList,
			RevRegDef:        f.revRegDef,
			RevRegDefPrivate: f.revRegDefPrivate,
			RevRegIdx:        f.revRegIdx,
			TailsPath:        cabi.GoString(f.tailsPath),
		}
		if r.err != nil {
			return 0, ffi.InvalidArgument
		}
		h, err := m.CreateCredential(context.Background(), params)
		return h, anoncreds.StatusOf(err)
	})
}

// flatPresentation mirrors the arguments of shim_anoncreds_create_presentation.
type flatPresentation struct {
	presReq ffi.ObjectHandle

	credentials     unsafe.Pointer
	timestamps      unsafe.Pointer
	revStates       unsafe.Pointer
	credentialCount uintptr

	proveEntryIdx    unsafe.Pointer
	proveReferents   unsafe.Pointer
	proveIsPredicate unsafe.Pointer
	proveReveal      unsafe.Pointer
	proveCount       uintptr

	selfAttestNames     unsafe.Pointer
	selfAttestNamesLen  uintptr
	selfAttestValues    unsafe.Pointer
	selfAttestValuesLen uintptr
	linkSecret          ffi.ObjectHandle
	schemas             unsafe.Pointer
	schemasLen          uintptr
	schemaIDs           unsafe.Pointer
	schemaIDsLen        uintptr
	credDefs            unsafe.Pointer
	credDefsLen         uintptr
	credDefIDs          unsafe.Pointer
	credDefIDsLen       uintptr
}

func (s *shim) createPresentation(f *flatPresentation, presentationP unsafe.Pointer) ffi.ErrorCode {
	return s.handle(presentationP, func(m *anoncreds.Marshaller) (ffi.ObjectHandle, ffi.ErrorCode) {
		var r reader
		params := &anoncreds.CreatePresentationParams{
			PresReq:              f.presReq,
			Credentials:          r.handles(f.credentials, f.credentialCount, "credentials_credential"),
			CredentialTimestamps: r.int64s(f.timestamps, f.credentialCount, "credentials_timestamp"),
			CredentialRevStates:  r.handles(f.revStates, f.credentialCount, "credentials_rev_state"),
			ProveEntryIdx:        r.int64s(f.proveEntryIdx, f.proveCount, "credentials_prove_entry_idx"),
			ProveReferents:       r.strings(f.proveReferents, f.proveCount, "credentials_prove_referent"),
			ProveIsPredicate:     r.bools(f.proveIsPredicate, f.proveCount, "credentials_prove_is_predicate"),
			ProveReveal:          r.bools(f.proveReveal, f.proveCount, "credentials_prove_reveal"),
			SelfAttestNames:      r.strings(f.selfAttestNames, f.selfAttestNamesLen, "self_attest_names"),
			SelfAttestValues:     r.strings(f.selfAttestValues, f.selfAttestValuesLen, "self_attest_values"),
			LinkSecret:           f.linkSecret,
			Schemas:              r.handles(f.schemas, f.schemasLen, "schemas"),
			SchemaIDs:            r.strings(f.schemaIDs, f.schemaIDsLen, "schema_ids"),
			CredDefs:             r.handles(f.credDefs, f.credDefsLen, "cred_defs"),
			CredDefIDs:           r.strings(f.credDefIDs, f.credDefIDsLen, "cred_def_ids"),
		}
		if r.err != nil {
			return 0, ffi.InvalidArgument
		}
		h, err := m.CreatePresentation(context.Background(), params)
		return h, anoncreds.StatusOf(err)
	})
}

// flatVerification mirrors the arguments of shim_anoncreds_verify_presentation.
type flatVerification struct {
	presentation, presReq ffi.ObjectHandle

	schemas           unsafe.Pointer
	schemasLen        uintptr
	schemaIDs         unsafe.Pointer
	schemaIDsLen      uintptr
	credDefs          unsafe.Pointer
	credDefsLen       uintptr
	credDefIDs        unsafe.Pointer
	credDefIDsLen     uintptr
	revRegDefs        unsafe.Pointer
	revRegDefsLen     uintptr
	revRegDefIDs      unsafe.Pointer
	revRegDefIDsLen   uintptr
	revStatusLists    unsafe.Pointer
	revStatusListsLen uintptr

	overrideRevRegDefIDs    unsafe.Pointer
	overrideRequestedFromTs unsafe.Pointer
	overrideRevStatusListTs unsafe.Pointer
	overrideCount           uintptr
}

// verifyPresentation writes "1" or "0" and a NUL at result. "0" is written
// on every failure once result is known to be non-NULL.
func (s *shim) verifyPresentation(f *flatVerification, result unsafe.Pointer) ffi.ErrorCode {
	if result == nil {
		return ffi.InvalidArgument
	}
	ok := false
	defer func() { _ = cabi.WriteDigit(result, ok) }()

	m, status := s.marshaller()
	if m == nil {
		return status
	}
	var r reader
	params := &anoncreds.VerifyPresentationParams{
		Presentation:            f.presentation,
		PresReq:                 f.presReq,
		Schemas:                 r.handles(f.schemas, f.schemasLen, "schemas"),
		SchemaIDs:               r.strings(f.schemaIDs, f.schemaIDsLen, "schema_ids"),
		CredDefs:                r.handles(f.credDefs, f.credDefsLen, "cred_defs"),
		CredDefIDs:              r.strings(f.credDefIDs, f.credDefIDsLen, "cred_def_ids"),
		RevRegDefs:              r.handles(f.revRegDefs, f.revRegDefsLen, "rev_reg_defs"),
		RevRegDefIDs:            r.strings(f.revRegDefIDs, f.revRegDefIDsLen, "rev_reg_def_ids"),
		RevStatusLists:          r.handles(f.revStatusLists, f.revStatusListsLen, "rev_status_list"),
		OverrideRevRegDefIDs:    r.strings(f.overrideRevRegDefIDs, f.overrideCount, "override_rev_reg_def_id"),
		OverrideRequestedFromTs: r.int32s(f.overrideRequestedFromTs, f.overrideCount, "override_requested_from_ts"),
		OverrideRevStatusListTs: r.int32s(f.overrideRevStatusListTs, f.overrideCount, "override_rev_status_list_ts"),
	}
	if r.err != nil {
		return ffi.InvalidArgument
	}
	verified, err := m.VerifyPresentation(context.Background(), params)
	ok = verified && err == nil
	return anoncreds.StatusOf(err)
}
