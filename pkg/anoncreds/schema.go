package anoncreds

import (
	"context"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
)

const (
	opEncodeCredentialAttributes = "encode_credential_attributes"
	opCreateSchema               = "create_schema"
)

// EncodeCredentialAttributes encodes raw attribute values. The result is the
// library's comma-separated encoding.
func (m *Marshaller) EncodeCredentialAttributes(ctx context.Context, rawValues []string) (string, error) {
	if err := m.begin(ctx); err != nil {
		return "", err
	}
	values := ffi.BuildStrList(rawValues)
	m.log.Debug(ctx, opEncodeCredentialAttributes, "attr_raw_values", values.Len(), logging.Redacted("values"))

	out, code := m.lib.EncodeCredentialAttributes(values)
	if err := m.status(ctx, opEncodeCredentialAttributes, code); err != nil {
		return "", err
	}
	return out, nil
}

// CreateSchemaParams contains the arguments of CreateSchema.
type CreateSchemaParams struct {
	Name      string
	Version   string
	IssuerID  string
	AttrNames []string
}

// CreateSchema creates a schema object and returns its handle.
func (m *Marshaller) CreateSchema(ctx context.Context, params *CreateSchemaParams) (ObjectHandle, error) {
	if err := m.begin(ctx); err != nil {
		return 0, err
	}
	if params == nil {
		return 0, m.reject(ctx, invalidArgumentf(opCreateSchema, "nil params"))
	}
	attrNames := ffi.BuildStrList(params.AttrNames)
	m.log.Debug(ctx, opCreateSchema, "attr_names", attrNames.Len())

	h, code := m.lib.CreateSchema(params.Name, params.Version, params.IssuerID, attrNames)
	if err := m.status(ctx, opCreateSchema, code); err != nil {
		return 0, err
	}
	return h, nil
}
