// Package logger builds structured slog loggers with context extraction and
// optional Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithExtractors(requestIDExtractor),
//	)
//
// A ContextExtractor pulls one attribute out of the context on every log
// call, so request scoped values such as request IDs show up without being
// passed around:
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if id := middleware.GetReqID(ctx); id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
// Level and format usually come from configuration strings; ParseLevel and
// ParseFormat convert them and report ErrInvalidLevel or ErrInvalidFormat.
//
// # Sentry Integration
//
// NewWithSentry writes to the configured output and, when a DSN is set,
// also to Sentry. Errors become Sentry issues, warnings are stored as logs.
// Without a DSN, or when the SDK fails to initialize, it behaves like New.
//
// # Libraries
//
// Packages that accept an optional logger default to NewNope, which
// discards everything.
package logger
