// Package logging provides the logging facade used by the anoncreds
// marshaller.
//
// Logger wraps the subset of log/slog the marshaller needs. New binds it to a
// *slog.Logger (slog.Default() when nil), NewZap binds it to a *zap.Logger,
// and Nop discards everything.
//
//	logger := logging.NewZap(zap.Must(zap.NewProduction()))
//	m, err := anoncreds.Open(anoncreds.Config{Logger: logger})
//
// # Redaction
//
// Attribute values, self-attested values and link secrets never reach the
// log. Operations log list counts and mark value-bearing fields with
// Redacted:
//
//	logger.Debug(ctx, "create credential", "attrs", 3, logging.Redacted("attr_raw_values"))
//	// attr_raw_values="[redacted]"
package logging
