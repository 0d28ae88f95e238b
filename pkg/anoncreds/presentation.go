package anoncreds

import (
	"context"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
)

const (
	opCreatePresentation = "create_presentation"
	opVerifyPresentation = "verify_presentation"
)

// CreatePresentationParams contains the arguments of CreatePresentation as
// parallel arrays. Entry i of the credential arrays describes one credential;
// entry i of the prove arrays names one referent to prove out of the
// credential at ProveEntryIdx[i].
type CreatePresentationParams struct {
	PresReq ObjectHandle

	Credentials          []ObjectHandle
	CredentialTimestamps []int64
	CredentialRevStates  []ObjectHandle

	ProveEntryIdx    []int64
	ProveReferents   []string
	ProveIsPredicate []bool
	ProveReveal      []bool

	SelfAttestNames  []string
	SelfAttestValues []string

	LinkSecret ObjectHandle

	Schemas    []ObjectHandle
	SchemaIDs  []string
	CredDefs   []ObjectHandle
	CredDefIDs []string
}

// CreatePresentation builds a presentation and returns its handle.
func (m *Marshaller) CreatePresentation(ctx context.Context, params *CreatePresentationParams) (ObjectHandle, error) {
	if err := m.begin(ctx); err != nil {
		return 0, err
	}
	if params == nil {
		return 0, m.reject(ctx, invalidArgumentf(opCreatePresentation, "nil params"))
	}
	if err := requireHandles(opCreatePresentation,
		namedHandle{"pres_req", params.PresReq},
		namedHandle{"link_secret", params.LinkSecret},
	); err != nil {
		return 0, m.reject(ctx, err)
	}

	entries, err := ffi.BuildCredentialEntries(params.Credentials, params.CredentialTimestamps, params.CredentialRevStates)
	if err != nil {
		return 0, m.reject(ctx, invalidArgument(opCreatePresentation, err))
	}
	proves, err := ffi.BuildProofDirectives(params.ProveEntryIdx, params.ProveReferents, params.ProveIsPredicate, params.ProveReveal)
	if err != nil {
		return 0, m.reject(ctx, invalidArgument(opCreatePresentation, err))
	}
	for _, group := range []struct {
		name   string
		counts []ffi.Count
	}{
		{"self attested attributes", []ffi.Count{{Name: "self_attest_names", N: len(params.SelfAttestNames)}, {Name: "self_attest_values", N: len(params.SelfAttestValues)}}},
		{"schemas", []ffi.Count{{Name: "schemas", N: len(params.Schemas)}, {Name: "schema_ids", N: len(params.SchemaIDs)}}},
		{"credential definitions", []ffi.Count{{Name: "cred_defs", N: len(params.CredDefs)}, {Name: "cred_def_ids", N: len(params.CredDefIDs)}}},
	} {
		if err := ffi.MatchCounts(group.name, group.counts...); err != nil {
			return 0, m.reject(ctx, invalidArgument(opCreatePresentation, err))
		}
	}

	m.log.Debug(ctx, opCreatePresentation,
		"credentials", entries.Len(),
		"credentials_prove", proves.Len(),
		"self_attested", len(params.SelfAttestNames),
		"schemas", len(params.Schemas),
		"cred_defs", len(params.CredDefs),
		logging.Redacted("self_attest_values"),
	)

	h, code := m.lib.CreatePresentation(
		params.PresReq,
		entries,
		proves,
		ffi.BuildStrList(params.SelfAttestNames),
		ffi.BuildStrList(params.SelfAttestValues),
		params.LinkSecret,
		ffi.BuildHandleList(params.Schemas),
		ffi.BuildStrList(params.SchemaIDs),
		ffi.BuildHandleList(params.CredDefs),
		ffi.BuildStrList(params.CredDefIDs),
	)
	if err := m.status(ctx, opCreatePresentation, code); err != nil {
		return 0, err
	}
	return h, nil
}

// VerifyPresentationParams contains the arguments of VerifyPresentation.
// The override arrays are parallel and describe one non-revocation interval
// override per registry definition.
type VerifyPresentationParams struct {
	Presentation ObjectHandle
	PresReq      ObjectHandle

	Schemas        []ObjectHandle
	SchemaIDs      []string
	CredDefs       []ObjectHandle
	CredDefIDs     []string
	RevRegDefs     []ObjectHandle
	RevRegDefIDs   []string
	RevStatusLists []ObjectHandle

	OverrideRevRegDefIDs    []string
	OverrideRequestedFromTs []int32
	OverrideRevStatusListTs []int32
}

// VerifyPresentation checks a presentation against its request. A nil error
// with false means the library ran and rejected the presentation.
func (m *Marshaller) VerifyPresentation(ctx context.Context, params *VerifyPresentationParams) (bool, error) {
	if err := m.begin(ctx); err != nil {
		return false, err
	}
	if params == nil {
		return false, m.reject(ctx, invalidArgumentf(opVerifyPresentation, "nil params"))
	}
	if err := requireHandles(opVerifyPresentation,
		namedHandle{"presentation", params.Presentation},
		namedHandle{"pres_req", params.PresReq},
	); err != nil {
		return false, m.reject(ctx, err)
	}
	for _, group := range []struct {
		name   string
		counts []ffi.Count
	}{
		{"schemas", []ffi.Count{{Name: "schemas", N: len(params.Schemas)}, {Name: "schema_ids", N: len(params.SchemaIDs)}}},
		{"credential definitions", []ffi.Count{{Name: "cred_defs", N: len(params.CredDefs)}, {Name: "cred_def_ids", N: len(params.CredDefIDs)}}},
		{"revocation registry definitions", []ffi.Count{{Name: "rev_reg_defs", N: len(params.RevRegDefs)}, {Name: "rev_reg_def_ids", N: len(params.RevRegDefIDs)}}},
	} {
		if err := ffi.MatchCounts(group.name, group.counts...); err != nil {
			return false, m.reject(ctx, invalidArgument(opVerifyPresentation, err))
		}
	}
	overrides, err := ffi.BuildNonrevokedOverrides(params.OverrideRevRegDefIDs, params.OverrideRequestedFromTs, params.OverrideRevStatusListTs)
	if err != nil {
		return false, m.reject(ctx, invalidArgument(opVerifyPresentation, err))
	}

	m.log.Debug(ctx, opVerifyPresentation,
		"schemas", len(params.Schemas),
		"cred_defs", len(params.CredDefs),
		"rev_reg_defs", len(params.RevRegDefs),
		"rev_status_lists", len(params.RevStatusLists),
		"overrides", overrides.Len(),
	)

	out, code := m.lib.VerifyPresentation(
		params.Presentation,
		params.PresReq,
		ffi.BuildHandleList(params.Schemas),
		ffi.BuildStrList(params.SchemaIDs),
		ffi.BuildHandleList(params.CredDefs),
		ffi.BuildStrList(params.CredDefIDs),
		ffi.BuildHandleList(params.RevRegDefs),
		ffi.BuildStrList(params.RevRegDefIDs),
		ffi.BuildHandleList(params.RevStatusLists),
		overrides,
	)
	if err := m.status(ctx, opVerifyPresentation, code); err != nil {
		return false, err
	}
	return out != 0, nil
}
