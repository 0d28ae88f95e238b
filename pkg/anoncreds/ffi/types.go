package ffi

import "fmt"

// ObjectHandle is an opaque reference to an object owned by libanoncreds. It
// mirrors the native size_t handle. The zero value is the null handle, which
// the library reads as "absent" in optional positions.
type ObjectHandle uintptr

// IsNull reports whether h is the null handle.
func (h ObjectHandle) IsNull() bool { return h == 0 }

// ErrorCode is the status returned by every libanoncreds operation.
type ErrorCode int32

// Status codes reported by libanoncreds.
const (
	Success                ErrorCode = 0
	Input                  ErrorCode = 1
	IOError                ErrorCode = 2
	InvalidState           ErrorCode = 3
	Unexpected             ErrorCode = 4
	CredentialRevoked      ErrorCode = 5
	InvalidUserRevocID     ErrorCode = 6
	ProofRejected          ErrorCode = 7
	RevocationRegistryFull ErrorCode = 8
)

// InvalidArgument is raised locally when a caller breaks the flat-argument
// contract (mismatched parallel arrays, NULL arrays with a count, missing
// required handles). It never comes from the library and does not collide
// with any library code.
const InvalidArgument ErrorCode = 100

// IsLibraryCode reports whether c is one of the codes libanoncreds defines.
func (c ErrorCode) IsLibraryCode() bool {
	return c >= Success && c <= RevocationRegistryFull
}

func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "success"
	case Input:
		return "input"
	case IOError:
		return "io_error"
	case InvalidState:
		return "invalid_state"
	case Unexpected:
		return "unexpected"
	case CredentialRevoked:
		return "credential_revoked"
	case InvalidUserRevocID:
		return "invalid_user_revoc_id"
	case ProofRejected:
		return "proof_rejected"
	case RevocationRegistryFull:
		return "revocation_registry_full"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return fmt.Sprintf("error_code(%d)", int32(c))
	}
}

// FormatVerified renders a verification outcome the way flat callers expect
// it: exactly "1" for a valid presentation and "0" otherwise.
func FormatVerified(ok bool) string {
	if ok {
		return "1"
	}
	return "0"
}
