package anoncreds

import (
	"context"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
)

const opCreateCredential = "create_credential"

// CreateCredentialParams contains the arguments of CreateCredential.
// AttrNames and AttrRawValues are parallel. AttrEncValues is either empty,
// letting the library encode the raw values, or parallel to AttrNames.
//
// RevRegDef and RevRegDefPrivate left null mean the credential is not
// revocable; RevRegIdx and TailsPath are then ignored by the library.
type CreateCredentialParams struct {
	CredDef        ObjectHandle
	CredDefPrivate ObjectHandle
	CredOffer      ObjectHandle
	CredRequest    ObjectHandle

	AttrNames     []string
	AttrRawValues []string
	AttrEncValues []string

	RevRegID         string
	RevStatusList    ObjectHandle
	RevRegDef        ObjectHandle
	RevRegDefPrivate ObjectHandle
	RevRegIdx        int64
	TailsPath        string
}

func (p *CreateCredentialParams) validate() error {
	if err := requireHandles(opCreateCredential,
		namedHandle{"cred_def", p.CredDef},
		namedHandle{"cred_def_private", p.CredDefPrivate},
		namedHandle{"cred_offer", p.CredOffer},
		namedHandle{"cred_request", p.CredRequest},
	); err != nil {
		return err
	}
	if err := ffi.MatchCounts("credential attributes",
		ffi.Count{Name: "attr_names", N: len(p.AttrNames)},
		ffi.Count{Name: "attr_raw_values", N: len(p.AttrRawValues)},
	); err != nil {
		return invalidArgument(opCreateCredential, err)
	}
	if len(p.AttrEncValues) != 0 {
		if err := ffi.MatchCounts("encoded credential attributes",
			ffi.Count{Name: "attr_names", N: len(p.AttrNames)},
			ffi.Count{Name: "attr_enc_values", N: len(p.AttrEncValues)},
		); err != nil {
			return invalidArgument(opCreateCredential, err)
		}
	}
	return nil
}

// CreateCredential issues a credential and returns its handle.
func (m *Marshaller) CreateCredential(ctx context.Context, params *CreateCredentialParams) (ObjectHandle, error) {
	if err := m.begin(ctx); err != nil {
		return 0, err
	}
	if params == nil {
		return 0, m.reject(ctx, invalidArgumentf(opCreateCredential, "nil params"))
	}
	if err := params.validate(); err != nil {
		return 0, m.reject(ctx, err)
	}

	attrNames := ffi.BuildStrList(params.AttrNames)
	rawValues := ffi.BuildStrList(params.AttrRawValues)
	encValues := ffi.BuildStrList(params.AttrEncValues)
	revocation := ffi.BuildRevocationInfo(params.RevRegDef, params.RevRegDefPrivate, params.RevRegIdx, params.TailsPath)
	m.log.Debug(ctx, opCreateCredential,
		"attr_names", attrNames.Len(),
		"attr_enc_values", encValues.Len(),
		"revocable", revocation.Configured(),
		logging.Redacted("attr_raw_values"),
	)

	h, code := m.lib.CreateCredential(
		params.CredDef, params.CredDefPrivate, params.CredOffer, params.CredRequest,
		attrNames, rawValues, encValues,
		params.RevRegID, params.RevStatusList, revocation,
	)
	if err := m.status(ctx, opCreateCredential, code); err != nil {
		return 0, err
	}
	return h, nil
}
