package mocklib

import (
	"crypto/sha256"
	"encoding/json"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

// Operation names used in Call records and failure injection.
const (
	OpEncodeCredentialAttributes  = "encode_credential_attributes"
	OpCreateSchema                = "create_schema"
	OpPresentationRequestFromJSON = "presentation_request_from_json"
	OpObjectGetJSON               = "object_get_json"
	OpCreateCredential            = "create_credential"
	OpCreatePresentation          = "create_presentation"
	OpVerifyPresentation          = "verify_presentation"
)

// Kind tags the objects held by the fake.
type Kind string

// Object kinds.
const (
	KindSchema        Kind = "Schema"
	KindCredDef       Kind = "CredentialDefinition"
	KindCredDefPriv   Kind = "CredentialDefinitionPrivate"
	KindCredOffer     Kind = "CredentialOffer"
	KindCredRequest   Kind = "CredentialRequest"
	KindCredential    Kind = "Credential"
	KindLinkSecret    Kind = "LinkSecret"
	KindPresReq       Kind = "PresentationRequest"
	KindPresentation  Kind = "Presentation"
	KindRevRegDef     Kind = "RevocationRegistryDefinition"
	KindRevRegDefPriv Kind = "RevocationRegistryDefinitionPrivate"
	KindRevStatusList Kind = "RevocationStatusList"
	KindRevState      Kind = "CredentialRevocationState"
)

// Call records one invocation with its positional arguments. Aggregates are
// deep copies taken when the call arrived.
type Call struct {
	Op   string
	Args []any
}

type object struct {
	kind Kind
	json []byte
}

type failure struct {
	code ffi.ErrorCode
	msg  string
}

// Library is the in-memory fake. It is safe for concurrent use.
type Library struct {
	mu       sync.Mutex
	next     ffi.ObjectHandle
	objects  map[ffi.ObjectHandle]object
	buffers  map[*byte]int64
	calls    []Call
	failures map[string]failure
	verified int8
	lastErr  string
}

var _ ffi.Library = (*Library)(nil)

// New returns an empty fake whose verifications succeed.
func New() *Library {
	return &Library{
		next:     1,
		objects:  make(map[ffi.ObjectHandle]object),
		buffers:  make(map[*byte]int64),
		failures: make(map[string]failure),
		verified: 1,
	}
}

// Put stores an object and returns its handle.
func (l *Library) Put(kind Kind, doc string) ffi.ObjectHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.putLocked(kind, []byte(doc))
}

func (l *Library) putLocked(kind Kind, doc []byte) ffi.ObjectHandle {
	h := l.next
	l.next++
	l.objects[h] = object{kind: kind, json: doc}
	return h
}

// Kind returns the kind of the object behind h.
func (l *Library) Kind(h ffi.ObjectHandle) (Kind, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.objects[h]
	return o.kind, ok
}

// Objects returns the number of live objects.
func (l *Library) Objects() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.objects)
}

// OutstandingBuffers returns the number of buffers handed out by
// ObjectGetJSON and not yet released.
func (l *Library) OutstandingBuffers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buffers)
}

// Calls returns the recorded invocations in order.
func (l *Library) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

// CallCount returns how many times op was invoked.
func (l *Library) CallCount(op string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// LastCall returns the most recent invocation of op.
func (l *Library) LastCall(op string) (Call, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.calls) - 1; i >= 0; i-- {
		if l.calls[i].Op == op {
			return l.calls[i], true
		}
	}
	return Call{}, false
}

// Fail makes the next invocation of op return code, with msg as the current
// error detail.
func (l *Library) Fail(op string, code ffi.ErrorCode, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[op] = failure{code: code, msg: msg}
}

// SetVerifyResult sets the raw byte VerifyPresentation reports.
func (l *Library) SetVerifyResult(v int8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verified = v
}

// begin records the call and consumes an injected failure, if any.
func (l *Library) begin(op string, args ...any) (ffi.ErrorCode, bool) {
	l.calls = append(l.calls, Call{Op: op, Args: args})
	if f, ok := l.failures[op]; ok {
		delete(l.failures, op)
		l.lastErr = f.msg
		return f.code, false
	}
	return ffi.Success, true
}

func (l *Library) reject(msg string) ffi.ErrorCode {
	l.lastErr = msg
	return ffi.Input
}

func (l *Library) require(h ffi.ObjectHandle, kinds ...Kind) bool {
	o, ok := l.objects[h]
	if !ok {
		return false
	}
	return len(kinds) == 0 || slices.Contains(kinds, o.kind)
}

func cloneList[T any](in ffi.List[T]) ffi.List[T] {
	return ffi.List[T]{Count: in.Count, Data: slices.Clone(in.Data)}
}

func (l *Library) EncodeCredentialAttributes(attrRawValues ffi.StrList) (string, ffi.ErrorCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if code, ok := l.begin(OpEncodeCredentialAttributes, cloneList(attrRawValues)); !ok {
		return "", code
	}
	if err := attrRawValues.Validate(); err != nil {
		return "", l.reject(err.Error())
	}
	encoded := make([]string, attrRawValues.Count)
	for i, raw := range attrRawValues.Items() {
		encoded[i] = EncodeValue(raw)
	}
	return strings.Join(encoded, ","), ffi.Success
}

// EncodeValue encodes a raw attribute value the way anoncreds does: values
// that fit in a signed 32-bit integer are kept, anything else becomes the
// decimal form of its SHA-256 digest.
func EncodeValue(raw string) string {
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return strconv.FormatInt(n, 10)
	}
	sum := sha256.Sum256([]byte(raw))
	return new(big.Int).SetBytes(sum[:]).String()
}

func (l *Library) CreateSchema(schemaName, schemaVersion, issuerID string, attrNames ffi.StrList) (ffi.ObjectHandle, ffi.ErrorCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if code, ok := l.begin(OpCreateSchema, schemaName, schemaVersion, issuerID, cloneList(attrNames)); !ok {
		return 0, code
	}
	if err := attrNames.Validate(); err != nil {
		return 0, l.reject(err.Error())
	}
	if schemaName == "" || schemaVersion == "" || issuerID == "" {
		return 0, l.reject("schema name, version and issuer id are required")
	}
	if attrNames.Count == 0 {
		return 0, l.reject("schema requires at least one attribute")
	}
	seen := make(map[string]bool, attrNames.Count)
	for _, n := range attrNames.Items() {
		if seen[n] {
			return 0, l.reject("duplicate attribute name " + strconv.Quote(n))
		}
		seen[n] = true
	}
	doc, _ := json.Marshal(map[string]any{
		"name":      schemaName,
		"version":   schemaVersion,
		"issuerId":  issuerID,
		"attrNames": attrNames.Items(),
	})
	return l.putLocked(KindSchema, doc), ffi.Success
}

func (l *Library) PresentationRequestFromJSON(buf ffi.ByteBuffer) (ffi.ObjectHandle, ffi.ErrorCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	doc := slices.Clone(buf.Bytes())
	if code, ok := l.begin(OpPresentationRequestFromJSON, doc); !ok {
		return 0, code
	}
	if err := buf.Validate(); err != nil {
		return 0, l.reject(err.Error())
	}
	if !json.Valid(doc) {
		return 0, l.reject("invalid presentation request json")
	}
	return l.putLocked(KindPresReq, doc), ffi.Success
}

func (l *Library) ObjectGetJSON(handle ffi.ObjectHandle) (ffi.ByteBuffer, ffi.ErrorCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if code, ok := l.begin(OpObjectGetJSON, handle); !ok {
		return ffi.ByteBuffer{}, code
	}
	o, ok := l.objects[handle]
	if !ok {
		return ffi.ByteBuffer{}, l.reject("invalid object handle")
	}
	out := slices.Clone(o.json)
	if len(out) == 0 {
		return ffi.ByteBuffer{}, ffi.Success
	}
	l.buffers[&out[0]] = int64(len(out))
	return ffi.ByteBuffer{Len: int64(len(out)), Data: &out[0]}, ffi.Success
}

func (l *Library) CreateCredential(
	credDef, credDefPrivate, credOffer, credRequest ffi.ObjectHandle,
	attrNames, attrRawValues, attrEncValues ffi.StrList,
	revRegID string,
	revStatusList ffi.ObjectHandle,
	revocation ffi.CredRevInfo,
) (ffi.ObjectHandle, ffi.ErrorCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if code, ok := l.begin(OpCreateCredential,
		credDef, credDefPrivate, credOffer, credRequest,
		cloneList(attrNames), cloneList(attrRawValues), cloneList(attrEncValues),
		revRegID, revStatusList, revocation,
	); !ok {
		return 0, code
	}
	for _, list := range []ffi.StrList{attrNames, attrRawValues, attrEncValues} {
		if err := list.Validate(); err != nil {
			return 0, l.reject(err.Error())
		}
	}
	if !l.require(credDef, KindCredDef) || !l.require(credDefPrivate, KindCredDefPriv) ||
		!l.require(credOffer, KindCredOffer) || !l.require(credRequest, KindCredRequest) {
		return 0, l.reject("invalid credential definition, offer or request handle")
	}
	if attrNames.Count != attrRawValues.Count {
		return 0, l.reject("mismatch between attribute names and raw values")
	}
	if attrEncValues.Count != 0 && attrEncValues.Count != attrNames.Count {
		return 0, l.reject("mismatch between attribute names and encoded values")
	}
	if revocation.Configured() {
		if !l.require(revocation.RegDef, KindRevRegDef) || !l.require(revocation.RegDefPrivate, KindRevRegDefPriv) {
			return 0, l.reject("invalid revocation registry handle")
		}
		if revStatusList.IsNull() || !l.require(revStatusList, KindRevStatusList) {
			return 0, l.reject("revocation status list required with revocation")
		}
	}

	values := make(map[string]map[string]string, attrNames.Count)
	for i, name := range attrNames.Items() {
		raw := attrRawValues.Data[i]
		enc := EncodeValue(raw)
		if attrEncValues.Count != 0 {
			enc = attrEncValues.Data[i]
		}
		values[name] = map[string]string{"raw": raw, "encoded": enc}
	}
	cred := map[string]any{"values": values}
	if revRegID != "" {
		cred["rev_reg_id"] = revRegID
	}
	if revocation.Configured() {
		cred["rev_reg_idx"] = revocation.RegIdx
	}
	doc, _ := json.Marshal(cred)
	return l.putLocked(KindCredential, doc), ffi.Success
}

func (l *Library) CreatePresentation(
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
	l.mu.Lock()
	defer l.mu.Unlock()
	if code, ok := l.begin(OpCreatePresentation,
		presReq, cloneList(credentials), cloneList(credentialsProve),
		cloneList(selfAttestNames), cloneList(selfAttestValues),
		linkSecret,
		cloneList(schemas), cloneList(schemaIDs), cloneList(credDefs), cloneList(credDefIDs),
	); !ok {
		return 0, code
	}
	for _, err := range []error{
		credentials.Validate(), credentialsProve.Validate(),
		selfAttestNames.Validate(), selfAttestValues.Validate(),
		schemas.Validate(), schemaIDs.Validate(), credDefs.Validate(), credDefIDs.Validate(),
	} {
		if err != nil {
			return 0, l.reject(err.Error())
		}
	}
	if !l.require(presReq, KindPresReq) || !l.require(linkSecret, KindLinkSecret) {
		return 0, l.reject("invalid presentation request or link secret handle")
	}
	if selfAttestNames.Count != selfAttestValues.Count ||
		schemas.Count != schemaIDs.Count || credDefs.Count != credDefIDs.Count {
		return 0, l.reject("mismatched list lengths")
	}
	for _, e := range credentials.Items() {
		if !l.require(e.Credential, KindCredential) {
			return 0, l.reject("invalid credential handle")
		}
		if !e.RevState.IsNull() && !l.require(e.RevState, KindRevState) {
			return 0, l.reject("invalid revocation state handle")
		}
	}
	revealed := make(map[string]int64)
	predicates := make(map[string]int64)
	for _, p := range credentialsProve.Items() {
		if p.EntryIdx < 0 || p.EntryIdx >= int64(credentials.Count) {
			return 0, l.reject("credential prove entry index out of range")
		}
		if p.IsPredicate {
			predicates[p.Referent] = p.EntryIdx
		} else if p.Reveal {
			revealed[p.Referent] = p.EntryIdx
		}
	}
	selfAttested := make(map[string]string, selfAttestNames.Count)
	for i, n := range selfAttestNames.Items() {
		selfAttested[n] = selfAttestValues.Data[i]
	}
	doc, _ := json.Marshal(map[string]any{
		"requested_proof": map[string]any{
			"revealed_attrs":      revealed,
			"predicates":          predicates,
			"self_attested_attrs": selfAttested,
		},
		"identifiers": map[string]any{
			"schema_ids":   schemaIDs.Items(),
			"cred_def_ids": credDefIDs.Items(),
		},
	})
	return l.putLocked(KindPresentation, doc), ffi.Success
}

func (l *Library) VerifyPresentation(
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
	l.mu.Lock()
	defer l.mu.Unlock()
	if code, ok := l.begin(OpVerifyPresentation,
		presentation, presReq,
		cloneList(schemas), cloneList(schemaIDs), cloneList(credDefs), cloneList(credDefIDs),
		cloneList(revRegDefs), cloneList(revRegDefIDs), cloneList(revStatusLists),
		cloneList(nonrevokedIntervalOverrides),
	); !ok {
		return 0, code
	}
	for _, err := range []error{
		schemas.Validate(), schemaIDs.Validate(), credDefs.Validate(), credDefIDs.Validate(),
		revRegDefs.Validate(), revRegDefIDs.Validate(), revStatusLists.Validate(),
		nonrevokedIntervalOverrides.Validate(),
	} {
		if err != nil {
			return 0, l.reject(err.Error())
		}
	}
	if !l.require(presentation, KindPresentation) || !l.require(presReq, KindPresReq) {
		return 0, l.reject("invalid presentation or presentation request handle")
	}
	if schemas.Count != schemaIDs.Count || credDefs.Count != credDefIDs.Count || revRegDefs.Count != revRegDefIDs.Count {
		return 0, l.reject("mismatched list lengths")
	}
	return l.verified, ffi.Success
}

func (l *Library) BufferFree(buf ffi.ByteBuffer) {
	if buf.Data == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buffers, buf.Data)
}

func (l *Library) ObjectFree(handle ffi.ObjectHandle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.objects, handle)
}

func (l *Library) CurrentError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *Library) Version() string { return "mocklib" }
