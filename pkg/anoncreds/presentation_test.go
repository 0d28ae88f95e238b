package anoncreds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/mocklib"
)

type wallet struct {
	presReq    ffi.ObjectHandle
	linkSecret ffi.ObjectHandle
	creds      []ffi.ObjectHandle
	revState   ffi.ObjectHandle
	schemas    []ffi.ObjectHandle
	credDefs   []ffi.ObjectHandle
}

func newWallet(lib *mocklib.Library) wallet {
	return wallet{
		presReq:    lib.Put(mocklib.KindPresReq, `{"nonce":"1"}`),
		linkSecret: lib.Put(mocklib.KindLinkSecret, `"secret"`),
		creds:      []ffi.ObjectHandle{lib.Put(mocklib.KindCredential, `{}`), lib.Put(mocklib.KindCredential, `{}`)},
		revState:   lib.Put(mocklib.KindRevState, `{}`),
		schemas:    []ffi.ObjectHandle{lib.Put(mocklib.KindSchema, `{}`), lib.Put(mocklib.KindSchema, `{}`)},
		credDefs:   []ffi.ObjectHandle{lib.Put(mocklib.KindCredDef, `{}`), lib.Put(mocklib.KindCredDef, `{}`)},
	}
}

func (w wallet) presentationParams() *anoncreds.CreatePresentationParams {
	return &anoncreds.CreatePresentationParams{
		PresReq:              w.presReq,
		Credentials:          w.creds,
		CredentialTimestamps: []int64{-1, 1700000000},
		CredentialRevStates:  []ffi.ObjectHandle{0, w.revState},
		ProveEntryIdx:        []int64{0, 1, 1},
		ProveReferents:       []string{"attr1_referent", "attr2_referent", "predicate1_referent"},
		ProveIsPredicate:     []bool{false, false, true},
		ProveReveal:          []bool{true, false, false},
		SelfAttestNames:      []string{"nickname"},
		SelfAttestValues:     []string{"al"},
		LinkSecret:           w.linkSecret,
		Schemas:              w.schemas,
		SchemaIDs:            []string{"schema-1", "schema-2"},
		CredDefs:             w.credDefs,
		CredDefIDs:           []string{"cred-def-1", "cred-def-2"},
	}
}

func TestCreatePresentationPositionalRecords(t *testing.T) {
	m, lib := openMock(t)
	w := newWallet(lib)

	h, err := m.CreatePresentation(context.Background(), w.presentationParams())
	require.NoError(t, err)
	kind, _ := lib.Kind(h)
	assert.Equal(t, mocklib.KindPresentation, kind)

	call, ok := lib.LastCall(mocklib.OpCreatePresentation)
	require.True(t, ok)
	require.Len(t, call.Args, 10)

	entries := call.Args[1].(ffi.CredentialEntryList)
	assert.Equal(t, []ffi.CredentialEntry{
		{Credential: w.creds[0], Timestamp: -1, RevState: 0},
		{Credential: w.creds[1], Timestamp: 1700000000, RevState: w.revState},
	}, entries.Items())

	proves := call.Args[2].(ffi.CredentialProveList)
	assert.Equal(t, []ffi.CredentialProve{
		{EntryIdx: 0, Referent: "attr1_referent", IsPredicate: false, Reveal: true},
		{EntryIdx: 1, Referent: "attr2_referent", IsPredicate: false, Reveal: false},
		{EntryIdx: 1, Referent: "predicate1_referent", IsPredicate: true, Reveal: false},
	}, proves.Items())

	assert.Equal(t, []string{"nickname"}, call.Args[3].(ffi.StrList).Items())
	assert.Equal(t, []string{"al"}, call.Args[4].(ffi.StrList).Items())
	assert.Equal(t, w.linkSecret, call.Args[5])
	assert.Equal(t, w.schemas, call.Args[6].(ffi.HandleList).Items())
	assert.Equal(t, []string{"schema-1", "schema-2"}, call.Args[7].(ffi.StrList).Items())
	assert.Equal(t, w.credDefs, call.Args[8].(ffi.HandleList).Items())
	assert.Equal(t, []string{"cred-def-1", "cred-def-2"}, call.Args[9].(ffi.StrList).Items())
}

func TestCreatePresentationRejectsBeforeCall(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*anoncreds.CreatePresentationParams)
	}{
		{"timestamps short", func(p *anoncreds.CreatePresentationParams) { p.CredentialTimestamps = p.CredentialTimestamps[:1] }},
		{"rev states long", func(p *anoncreds.CreatePresentationParams) { p.CredentialRevStates = append(p.CredentialRevStates, 0) }},
		{"referents short", func(p *anoncreds.CreatePresentationParams) { p.ProveReferents = p.ProveReferents[:2] }},
		{"reveal long", func(p *anoncreds.CreatePresentationParams) { p.ProveReveal = append(p.ProveReveal, true) }},
		{"self attested values missing", func(p *anoncreds.CreatePresentationParams) { p.SelfAttestValues = nil }},
		{"schema ids short", func(p *anoncreds.CreatePresentationParams) { p.SchemaIDs = p.SchemaIDs[:1] }},
		{"cred def ids long", func(p *anoncreds.CreatePresentationParams) { p.CredDefIDs = append(p.CredDefIDs, "x") }},
		{"timestamp outside int32", func(p *anoncreds.CreatePresentationParams) { p.CredentialTimestamps = []int64{1 << 40, -1} }},
		{"null presentation request", func(p *anoncreds.CreatePresentationParams) { p.PresReq = 0 }},
		{"null link secret", func(p *anoncreds.CreatePresentationParams) { p.LinkSecret = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, lib := openMock(t)
			params := newWallet(lib).presentationParams()
			tc.mutate(params)

			_, err := m.CreatePresentation(context.Background(), params)
			require.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
			assert.Zero(t, lib.CallCount(mocklib.OpCreatePresentation))
		})
	}
}

func TestCreatePresentationTimestampRange(t *testing.T) {
	m, lib := openMock(t)
	params := newWallet(lib).presentationParams()
	params.CredentialTimestamps = []int64{-1, 1 << 40}

	h, err := m.CreatePresentation(context.Background(), params)
	require.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
	require.ErrorIs(t, err, ffi.ErrMalformed)
	assert.True(t, h.IsNull())
	assert.Equal(t, ffi.InvalidArgument, anoncreds.StatusOf(err))
	assert.Zero(t, lib.CallCount(mocklib.OpCreatePresentation))
}

func TestCreatePresentationEmptyGroups(t *testing.T) {
	m, lib := openMock(t)
	w := newWallet(lib)

	_, err := m.CreatePresentation(context.Background(), &anoncreds.CreatePresentationParams{
		PresReq:    w.presReq,
		LinkSecret: w.linkSecret,
	})
	require.NoError(t, err)

	call, _ := lib.LastCall(mocklib.OpCreatePresentation)
	entries := call.Args[1].(ffi.CredentialEntryList)
	assert.Equal(t, 0, entries.Count)
	assert.NotNil(t, entries.Data)
	assert.Equal(t, 0, call.Args[2].(ffi.CredentialProveList).Count)
}

func (w wallet) verifyParams(pres ffi.ObjectHandle) *anoncreds.VerifyPresentationParams {
	return &anoncreds.VerifyPresentationParams{
		Presentation: pres,
		PresReq:      w.presReq,
		Schemas:      w.schemas,
		SchemaIDs:    []string{"schema-1", "schema-2"},
		CredDefs:     w.credDefs,
		CredDefIDs:   []string{"cred-def-1", "cred-def-2"},
	}
}

func TestVerifyPresentation(t *testing.T) {
	cases := []struct {
		name   string
		result int8
		want   bool
		digit  string
	}{
		{"verified", 1, true, "1"},
		{"rejected", 0, false, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, lib := openMock(t)
			w := newWallet(lib)
			ctx := context.Background()

			pres, err := m.CreatePresentation(ctx, w.presentationParams())
			require.NoError(t, err)

			lib.SetVerifyResult(tc.result)
			ok, err := m.VerifyPresentation(ctx, w.verifyParams(pres))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
			assert.Equal(t, tc.digit, ffi.FormatVerified(ok))

			call, _ := lib.LastCall(mocklib.OpVerifyPresentation)
			require.Len(t, call.Args, 10)
			assert.Equal(t, 2, call.Args[2].(ffi.HandleList).Count)
			assert.Equal(t, 2, call.Args[4].(ffi.HandleList).Count)
			overrides := call.Args[9].(ffi.NonrevokedIntervalOverrideList)
			assert.Equal(t, 0, overrides.Count)
		})
	}
}

func TestVerifyPresentationOverrides(t *testing.T) {
	m, lib := openMock(t)
	w := newWallet(lib)
	pres := lib.Put(mocklib.KindPresentation, `{}`)

	params := w.verifyParams(pres)
	params.RevRegDefs = []ffi.ObjectHandle{lib.Put(mocklib.KindRevRegDef, `{}`)}
	params.RevRegDefIDs = []string{"rev-reg-1"}
	params.RevStatusLists = []ffi.ObjectHandle{lib.Put(mocklib.KindRevStatusList, `{}`)}
	params.OverrideRevRegDefIDs = []string{"rev-reg-1", "rev-reg-2"}
	params.OverrideRequestedFromTs = []int32{100, 200}
	params.OverrideRevStatusListTs = []int32{90, 190}

	_, err := m.VerifyPresentation(context.Background(), params)
	require.NoError(t, err)

	call, _ := lib.LastCall(mocklib.OpVerifyPresentation)
	assert.Equal(t, []ffi.NonrevokedIntervalOverride{
		{RevRegDefID: "rev-reg-1", RequestedFromTs: 100, OverrideRevStatusListTs: 90},
		{RevRegDefID: "rev-reg-2", RequestedFromTs: 200, OverrideRevStatusListTs: 190},
	}, call.Args[9].(ffi.NonrevokedIntervalOverrideList).Items())
}

func TestVerifyPresentationRejectsBeforeCall(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*anoncreds.VerifyPresentationParams)
	}{
		{"schema ids short", func(p *anoncreds.VerifyPresentationParams) { p.SchemaIDs = p.SchemaIDs[:1] }},
		{"cred defs short", func(p *anoncreds.VerifyPresentationParams) { p.CredDefs = p.CredDefs[:1] }},
		{"rev reg def ids without defs", func(p *anoncreds.VerifyPresentationParams) { p.RevRegDefIDs = []string{"r"} }},
		{"override timestamps short", func(p *anoncreds.VerifyPresentationParams) {
			p.OverrideRevRegDefIDs = []string{"r"}
			p.OverrideRequestedFromTs = []int32{1}
		}},
		{"null presentation", func(p *anoncreds.VerifyPresentationParams) { p.Presentation = 0 }},
		{"null presentation request", func(p *anoncreds.VerifyPresentationParams) { p.PresReq = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, lib := openMock(t)
			params := newWallet(lib).verifyParams(lib.Put(mocklib.KindPresentation, `{}`))
			tc.mutate(params)

			ok, err := m.VerifyPresentation(context.Background(), params)
			require.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
			assert.False(t, ok)
			assert.Zero(t, lib.CallCount(mocklib.OpVerifyPresentation))
		})
	}
}

func TestVerifyPresentationLibraryFailure(t *testing.T) {
	m, lib := openMock(t)
	w := newWallet(lib)
	lib.Fail(mocklib.OpVerifyPresentation, ffi.ProofRejected, "proof rejected")

	ok, err := m.VerifyPresentation(context.Background(), w.verifyParams(lib.Put(mocklib.KindPresentation, `{}`)))
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, ffi.ProofRejected, anoncreds.StatusOf(err))
}
