// Package log provides structured logging for harness operations.
//
// Logging goes through log/slog with a JSON handler; a wrapping handler
// extracts cockroachdb/errors stack traces into a dedicated attribute. The
// zerolog warning sink routes pkg/errors warnings (which implement
// zerolog.LogObjectMarshaler) into the same process-wide output.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// SetupLogger installs the harness's default slog JSON logger at the given
// level ("debug", "info", "warn" or "error").
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
