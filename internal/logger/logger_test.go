package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_ReleaseWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := newWithWriter(true, zapcore.InfoLevel, "1.2.3", &buf)

	logger.Info("author created", zap.Uint("author.id", 7))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["msg"] != "author created" {
		t.Errorf("expected msg %q, got %v", "author created", entry["msg"])
	}
	if entry["version"] != "1.2.3" {
		t.Errorf("expected version field, got %v", entry["version"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Errorf("expected timestamp key in %v", entry)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := newWithWriter(false, zapcore.WarnLevel, "dev", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %q", out)
	}
}
