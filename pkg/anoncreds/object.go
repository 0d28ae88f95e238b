package anoncreds

import (
	"context"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
)

const (
	opPresentationRequestFromJSON = "presentation_request_from_json"
	opObjectGetJSON               = "object_get_json"
)

// PresentationRequestFromJSON parses a presentation request. data is
// borrowed for the duration of the call only.
func (m *Marshaller) PresentationRequestFromJSON(ctx context.Context, data []byte) (ObjectHandle, error) {
	if err := m.begin(ctx); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, m.reject(ctx, invalidArgumentf(opPresentationRequestFromJSON, "empty json"))
	}
	buf := ffi.BuildByteBuffer(data)
	m.log.Debug(ctx, opPresentationRequestFromJSON, "len", buf.Len)

	h, code := m.lib.PresentationRequestFromJSON(buf)
	if err := m.status(ctx, opPresentationRequestFromJSON, code); err != nil {
		return 0, err
	}
	return h, nil
}

// ObjectGetJSON serialises the object behind h. The returned Buffer is owned
// by the caller and must be released.
func (m *Marshaller) ObjectGetJSON(ctx context.Context, h ObjectHandle) (*Buffer, error) {
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	if err := requireHandles(opObjectGetJSON, namedHandle{"object", h}); err != nil {
		return nil, m.reject(ctx, err)
	}
	m.log.Debug(ctx, opObjectGetJSON, "handle", uint64(h))

	buf, code := m.lib.ObjectGetJSON(h)
	if err := m.status(ctx, opObjectGetJSON, code); err != nil {
		return nil, err
	}
	return newBuffer(m.lib, buf), nil
}

// FreeObject releases an object handle. Null handles are ignored.
func (m *Marshaller) FreeObject(ctx context.Context, h ObjectHandle) error {
	if err := m.begin(ctx); err != nil {
		return err
	}
	if h.IsNull() {
		return nil
	}
	m.lib.ObjectFree(h)
	return nil
}
