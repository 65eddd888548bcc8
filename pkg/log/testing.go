// Testing utilities for structured logging. Tests capture harness log output
// in memory instead of writing to stdout.

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
)

// NewTestLogger returns an slog.Logger wired through the harness handler
// chain, writing JSON records into the returned buffer.
//
//	logger, buf := log.NewTestLogger(slog.LevelDebug)
//	logger.Info("fit finished", log.AlgorithmKey, "linreg")
//	// inspect buf.String()
func NewTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buffer, &slog.HandlerOptions{Level: level})
	return slog.New(WrapByErrFmtHandler(handler)), buffer
}

// CapturedRecords parses every JSON record in a capture buffer.
func CapturedRecords(buffer *bytes.Buffer) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	for _, line := range strings.Split(buffer.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
