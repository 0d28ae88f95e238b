package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/mocklib"
)

type report struct {
	Schema       json.RawMessage  `json:"schema"`
	Encoded      string           `json:"encoded"`
	Credential   ffi.ObjectHandle `json:"credential"`
	Presentation ffi.ObjectHandle `json:"presentation"`
	Verified     string           `json:"verified"`
}

// runDemo walks a schema through issuance, presentation and verification
// against the in-memory library.
func runDemo(ctx context.Context, logger logging.Logger) (*report, error) {
	lib := mocklib.New()
	m, err := anoncreds.Open(anoncreds.Config{Library: lib, Logger: logger})
	if err != nil {
		return nil, err
	}
	defer func() { _ = m.Close() }()

	names := []string{"name", "age"}
	values := []string{"Alice", "30"}

	schema, err := m.CreateSchema(ctx, &anoncreds.CreateSchemaParams{
		Name:      "degree",
		Version:   "1.0",
		IssuerID:  "did:example:1",
		AttrNames: names,
	})
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	buf, err := m.ObjectGetJSON(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	schemaJSON := buf.Copy()
	buf.Release()

	encoded, err := m.EncodeCredentialAttributes(ctx, values)
	if err != nil {
		return nil, fmt.Errorf("encode attributes: %w", err)
	}

	credDef := lib.Put(mocklib.KindCredDef, `{"schemaId":"schema-1"}`)
	cred, err := m.CreateCredential(ctx, &anoncreds.CreateCredentialParams{
		CredDef:        credDef,
		CredDefPrivate: lib.Put(mocklib.KindCredDefPriv, `{}`),
		CredOffer:      lib.Put(mocklib.KindCredOffer, `{}`),
		CredRequest:    lib.Put(mocklib.KindCredRequest, `{}`),
		AttrNames:      names,
		AttrRawValues:  values,
	})
	if err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}

	presReq, err := m.PresentationRequestFromJSON(ctx, []byte(`{"name":"proof","version":"1.0","nonce":"1"}`))
	if err != nil {
		return nil, fmt.Errorf("parse presentation request: %w", err)
	}
	pres, err := m.CreatePresentation(ctx, &anoncreds.CreatePresentationParams{
		PresReq:              presReq,
		Credentials:          []ffi.ObjectHandle{cred},
		CredentialTimestamps: []int64{-1},
		CredentialRevStates:  []ffi.ObjectHandle{0},
		ProveEntryIdx:        []int64{0, 0},
		ProveReferents:       []string{"attr1_referent", "predicate1_referent"},
		ProveIsPredicate:     []bool{false, true},
		ProveReveal:          []bool{true, false},
		LinkSecret:           lib.Put(mocklib.KindLinkSecret, `"secret"`),
		Schemas:              []ffi.ObjectHandle{schema},
		SchemaIDs:            []string{"schema-1"},
		CredDefs:             []ffi.ObjectHandle{credDef},
		CredDefIDs:           []string{"cred-def-1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}

	ok, err := m.VerifyPresentation(ctx, &anoncreds.VerifyPresentationParams{
		Presentation: pres,
		PresReq:      presReq,
		Schemas:      []ffi.ObjectHandle{schema},
		SchemaIDs:    []string{"schema-1"},
		CredDefs:     []ffi.ObjectHandle{credDef},
		CredDefIDs:   []string{"cred-def-1"},
	})
	if err != nil {
		return nil, fmt.Errorf("verify presentation: %w", err)
	}

	return &report{
		Schema:       schemaJSON,
		Encoded:      encoded,
		Credential:   cred,
		Presentation: pres,
		Verified:     ffi.FormatVerified(ok),
	}, nil
}
