package log

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/snowdj/evalharness/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range cases {
		if got := ToLogLevel(name); got != want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown level")
		}
	}()
	ToLogLevel("loud")
}

func TestTestLoggerCapturesAttributes(t *testing.T) {
	logger, buf := NewTestLogger(slog.LevelDebug)

	logger.Info("fit finished",
		ComponentKey, "learner",
		AlgorithmKey, "linreg",
		RowsKey, 120,
	)

	records, err := CapturedRecords(buf)
	if err != nil {
		t.Fatalf("CapturedRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("captured %d records, want 1", len(records))
	}

	rec := records[0]
	if rec["msg"] != "fit finished" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec[AlgorithmKey] != "linreg" {
		t.Errorf("%s = %v, want linreg", AlgorithmKey, rec[AlgorithmKey])
	}
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	logger, buf := NewTestLogger(slog.LevelDebug)

	err := errors.NewSchemaError("task.New", "y", "target column not present")
	logger.Error("task construction failed", ErrAttr(err))

	out := buf.String()
	if !strings.Contains(out, StacktraceAttrKey) {
		t.Errorf("output missing %q attribute: %s", StacktraceAttrKey, out)
	}
}
