package anoncreds

import (
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/ffi"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
)

// Config expresses the knobs of a Marshaller. The zero value opens the
// native library and logs through slog.Default.
type Config struct {
	// Logger receives one debug record per operation and a warning per
	// failure. Attribute values are never logged.
	Logger logging.Logger

	// Library overrides the wrapped library. Leaving it nil selects the
	// native backend.
	Library ffi.Library
}

func (c Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.New(nil)
	}
	return c.Logger
}
