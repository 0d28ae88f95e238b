package anoncreds

import "github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/internal/backend"

var (
	Version     = "v0.0.0-in-progress"
	UpstreamTag = "v0.2.0"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// UpstreamVersion returns the version reported by libanoncreds when linked;
// otherwise it falls back to the pinned upstream tag.
func UpstreamVersion() string {
	if v := backend.Version(); v != "" {
		return v
	}
	return UpstreamTag
}

// NativeBuilt reports whether libanoncreds is linked into this binary.
func NativeBuilt() bool { return backend.Built }
