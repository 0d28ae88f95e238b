package anoncreds_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/mocklib"
)

func openMock(t *testing.T) (*anoncreds.Marshaller, *mocklib.Library) {
	t.Helper()
	lib := mocklib.New()
	m, err := anoncreds.Open(anoncreds.Config{Library: lib, Logger: logging.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, lib
}

func TestOpenWithoutNativeBindings(t *testing.T) {
	if anoncreds.NativeBuilt() {
		t.Skip("native bindings linked")
	}
	_, err := anoncreds.Open(anoncreds.Config{})
	require.ErrorIs(t, err, anoncreds.ErrNotBuilt)
	assert.Equal(t, ffi.InvalidState, anoncreds.StatusOf(err))
}

func TestCloseTwice(t *testing.T) {
	m, err := anoncreds.Open(anoncreds.Config{Library: mocklib.New()})
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.ErrorIs(t, m.Close(), anoncreds.ErrLibraryClosed)
}

func TestOperationsAfterClose(t *testing.T) {
	lib := mocklib.New()
	m, err := anoncreds.Open(anoncreds.Config{Library: lib})
	require.NoError(t, err)
	require.NoError(t, m.Close())

	_, err = m.EncodeCredentialAttributes(context.Background(), []string{"1"})
	require.ErrorIs(t, err, anoncreds.ErrLibraryClosed)
	assert.Equal(t, ffi.InvalidState, anoncreds.StatusOf(err))
	assert.Empty(t, lib.Calls())
}

func TestCanceledContextSkipsLibrary(t *testing.T) {
	m, lib := openMock(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.CreateSchema(ctx, &anoncreds.CreateSchemaParams{Name: "s", Version: "1", IssuerID: "i", AttrNames: []string{"a"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, lib.Calls())
}

func TestCreateSchemaAndReadBack(t *testing.T) {
	m, lib := openMock(t)
	ctx := context.Background()

	h, err := m.CreateSchema(ctx, &anoncreds.CreateSchemaParams{
		Name:      "degree",
		Version:   "1.0",
		IssuerID:  "did:example:1",
		AttrNames: []string{"name", "age"},
	})
	require.NoError(t, err)
	require.False(t, h.IsNull())

	call, ok := lib.LastCall(mocklib.OpCreateSchema)
	require.True(t, ok)
	assert.Equal(t, []any{"degree", "1.0", "did:example:1"}, call.Args[:3])
	names := call.Args[3].(ffi.StrList)
	assert.Equal(t, 2, names.Count)
	assert.Equal(t, []string{"name", "age"}, names.Items())

	buf, err := m.ObjectGetJSON(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, int64(len(buf.Bytes())), buf.Len())
	assert.JSONEq(t, `{"name":"degree","version":"1.0","issuerId":"did:example:1","attrNames":["name","age"]}`, buf.String())
	assert.Equal(t, 1, lib.OutstandingBuffers())

	buf.Release()
	buf.Release()
	assert.Equal(t, 0, lib.OutstandingBuffers())
	assert.Nil(t, buf.Bytes())
	assert.Zero(t, buf.Len())

	require.NoError(t, m.FreeObject(ctx, h))
	assert.Equal(t, 0, lib.Objects())
	require.NoError(t, m.FreeObject(ctx, 0))
}

func TestEncodeCredentialAttributes(t *testing.T) {
	m, lib := openMock(t)
	out, err := m.EncodeCredentialAttributes(context.Background(), []string{"30", "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "30,"+mocklib.EncodeValue("Alice"), out)

	call, _ := lib.LastCall(mocklib.OpEncodeCredentialAttributes)
	assert.Equal(t, []string{"30", "Alice"}, call.Args[0].(ffi.StrList).Items())
}

func TestEncodeCredentialAttributesEmpty(t *testing.T) {
	m, lib := openMock(t)
	_, err := m.EncodeCredentialAttributes(context.Background(), nil)
	require.NoError(t, err)

	call, _ := lib.LastCall(mocklib.OpEncodeCredentialAttributes)
	list := call.Args[0].(ffi.StrList)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Data)
}

func TestLibraryCodesForwardedVerbatim(t *testing.T) {
	codes := []ffi.ErrorCode{
		ffi.Input, ffi.IOError, ffi.InvalidState, ffi.Unexpected,
		ffi.CredentialRevoked, ffi.InvalidUserRevocID, ffi.ProofRejected, ffi.RevocationRegistryFull,
	}
	for _, code := range codes {
		t.Run(code.String(), func(t *testing.T) {
			m, lib := openMock(t)
			lib.Fail(mocklib.OpCreateSchema, code, "library said no")

			h, err := m.CreateSchema(context.Background(), &anoncreds.CreateSchemaParams{
				Name: "s", Version: "1", IssuerID: "i", AttrNames: []string{"a"},
			})
			require.Error(t, err)
			assert.True(t, h.IsNull())
			assert.Equal(t, code, anoncreds.StatusOf(err))
			assert.NotErrorIs(t, err, anoncreds.ErrInvalidArgument)

			var e *anoncreds.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "create_schema", e.Op)
			assert.Equal(t, "library said no", e.Detail)
		})
	}
}

func TestPresentationRequestFromJSON(t *testing.T) {
	m, lib := openMock(t)
	ctx := context.Background()

	h, err := m.PresentationRequestFromJSON(ctx, []byte(`{"nonce":"1","name":"proof"}`))
	require.NoError(t, err)
	kind, _ := lib.Kind(h)
	assert.Equal(t, mocklib.KindPresReq, kind)

	_, err = m.PresentationRequestFromJSON(ctx, nil)
	require.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
	assert.Equal(t, ffi.InvalidArgument, anoncreds.StatusOf(err))
	assert.Equal(t, 1, lib.CallCount(mocklib.OpPresentationRequestFromJSON))
}

func TestObjectGetJSONNullHandle(t *testing.T) {
	m, lib := openMock(t)
	_, err := m.ObjectGetJSON(context.Background(), 0)
	require.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
	assert.Zero(t, lib.CallCount(mocklib.OpObjectGetJSON))
}

func TestNilParams(t *testing.T) {
	m, lib := openMock(t)
	ctx := context.Background()

	_, err := m.CreateSchema(ctx, nil)
	assert.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
	_, err = m.CreateCredential(ctx, nil)
	assert.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
	_, err = m.CreatePresentation(ctx, nil)
	assert.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
	_, err = m.VerifyPresentation(ctx, nil)
	assert.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
	assert.Empty(t, lib.Calls())
}

func TestDebugLogsCountsOnly(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	lib := mocklib.New()
	m, err := anoncreds.Open(anoncreds.Config{Library: lib, Logger: logger})
	require.NoError(t, err)

	_, err = m.EncodeCredentialAttributes(context.Background(), []string{"very-secret-value"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "attr_raw_values=1")
	assert.Contains(t, out.String(), logging.Placeholder())
	assert.NotContains(t, out.String(), "very-secret-value")
}

func TestFailuresLoggedAtWarn(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn})))
	lib := mocklib.New()
	m, err := anoncreds.Open(anoncreds.Config{Library: lib, Logger: logger})
	require.NoError(t, err)

	lib.Fail(mocklib.OpEncodeCredentialAttributes, ffi.Unexpected, "boom")
	_, err = m.EncodeCredentialAttributes(context.Background(), []string{"1"})
	require.Error(t, err)

	assert.Contains(t, out.String(), "level=WARN")
	assert.Contains(t, out.String(), "op=encode_credential_attributes")
	assert.Contains(t, out.String(), "status=unexpected")
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, ffi.Success, anoncreds.StatusOf(nil))
	assert.Equal(t, ffi.Unexpected, anoncreds.StatusOf(errors.New("other")))
	assert.Equal(t, ffi.InvalidState, anoncreds.StatusOf(anoncreds.ErrLibraryClosed))
	assert.Equal(t, ffi.ProofRejected, anoncreds.StatusOf(&anoncreds.Error{Op: "x", Code: ffi.ProofRejected}))
}

func TestErrorMessages(t *testing.T) {
	err := &anoncreds.Error{Op: "create_schema", Code: ffi.Input, Detail: "bad name"}
	assert.Equal(t, "anoncreds: create_schema failed with code 1 (input): bad name", err.Error())

	inner := errors.New("mismatch")
	err = &anoncreds.Error{Op: "create_credential", Code: ffi.InvalidArgument, Err: inner}
	assert.Equal(t, "anoncreds: create_credential: invalid argument: mismatch", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.ErrorIs(t, err, anoncreds.ErrInvalidArgument)
}

func TestVersions(t *testing.T) {
	assert.NotEmpty(t, anoncreds.WrapperVersion())
	assert.NotEmpty(t, anoncreds.UpstreamVersion())

	m, _ := openMock(t)
	assert.Equal(t, "mocklib", m.LibraryVersion())
}

// stubLibrary overrides the buffer calls of the in-memory library.
type stubLibrary struct {
	*mocklib.Library
	buf   ffi.ByteBuffer
	freed []ffi.ByteBuffer
}

func (s *stubLibrary) ObjectGetJSON(ffi.ObjectHandle) (ffi.ByteBuffer, ffi.ErrorCode) {
	return s.buf, ffi.Success
}

func (s *stubLibrary) BufferFree(buf ffi.ByteBuffer) {
	s.freed = append(s.freed, buf)
}

func TestReleaseFreesZeroLengthAllocation(t *testing.T) {
	var backing byte
	lib := &stubLibrary{Library: mocklib.New(), buf: ffi.ByteBuffer{Len: 0, Data: &backing}}
	m, err := anoncreds.Open(anoncreds.Config{Library: lib, Logger: logging.Nop()})
	require.NoError(t, err)

	buf, err := m.ObjectGetJSON(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, buf.Len())

	buf.Release()
	buf.Release()
	require.Len(t, lib.freed, 1)
	assert.Same(t, &backing, lib.freed[0].Data)
}

func TestReleaseSkipsNullBuffer(t *testing.T) {
	lib := &stubLibrary{Library: mocklib.New()}
	m, err := anoncreds.Open(anoncreds.Config{Library: lib, Logger: logging.Nop()})
	require.NoError(t, err)

	buf, err := m.ObjectGetJSON(context.Background(), 1)
	require.NoError(t, err)
	buf.Release()
	assert.Empty(t, lib.freed)
}

func TestLocalCodesCarryNoLibraryDetail(t *testing.T) {
	m, lib := openMock(t)
	lib.Fail(mocklib.OpCreateSchema, ffi.InvalidArgument, "stale library message")

	_, err := m.CreateSchema(context.Background(), &anoncreds.CreateSchemaParams{
		Name: "s", Version: "1", IssuerID: "i", AttrNames: []string{"a"},
	})
	require.ErrorIs(t, err, anoncreds.ErrInvalidArgument)

	var e *anoncreds.Error
	require.True(t, errors.As(err, &e))
	assert.Empty(t, e.Detail)
	assert.NotContains(t, err.Error(), "stale library message")
}

func TestBufferDataClearedOnRelease(t *testing.T) {
	m, lib := openMock(t)
	h := lib.Put(mocklib.KindSchema, `{"name":"degree"}`)

	buf, err := m.ObjectGetJSON(context.Background(), h)
	require.NoError(t, err)
	require.NotNil(t, buf.Data())
	assert.Same(t, &buf.Bytes()[0], buf.Data())

	buf.Release()
	assert.Nil(t, buf.Data())
	assert.Zero(t, lib.OutstandingBuffers())
}
