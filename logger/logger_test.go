package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", line, err)
	}
	return entry
}

func TestNewDefault(t *testing.T) {
	l := NewDefault()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at fallback info level, got %q", buf.String())
	}
	l.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected info to be written")
	}
}

func TestInfoWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")
	l.Info("scenario registered", Fields(FieldScenario, "daily_sync", FieldCount, 2))

	entry := decodeLine(t, &buf)
	if entry["message"] != "scenario registered" {
		t.Errorf("expected message, got %v", entry["message"])
	}
	if entry[FieldScenario] != "daily_sync" {
		t.Errorf("expected scenario=daily_sync, got %v", entry[FieldScenario])
	}
	if entry["level"] != "info" {
		t.Errorf("expected level=info, got %v", entry["level"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithComponent("scenario.registry")
	if l.Component() != "scenario.registry" {
		t.Errorf("expected component name, got %q", l.Component())
	}
	l.Warn("overwrite")

	entry := decodeLine(t, &buf)
	if entry[FieldComponent] != "scenario.registry" {
		t.Errorf("expected component field, got %v", entry[FieldComponent])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info").WithFields(map[string]interface{}{FieldPolicy: "reject"})
	l.Error("duplicate")

	entry := decodeLine(t, &buf)
	if entry[FieldPolicy] != "reject" {
		t.Errorf("expected policy=reject, got %v", entry[FieldPolicy])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(errors.New("boom")).Error("failed")

	entry := decodeLine(t, &buf)
	if entry["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", entry["error"])
	}
}

func TestServiceNameField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatJSON, ServiceName: "scenarioctl"}, &buf)
	l.Info("hello")

	entry := decodeLine(t, &buf)
	if entry[FieldService] != "scenarioctl" {
		t.Errorf("expected service=scenarioctl, got %v", entry[FieldService])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded")
	l.WithComponent("x").Error("discarded")
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	prev := globalLogger
	defer func() { globalLogger = prev }()

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	prev := globalLogger
	defer func() { globalLogger = prev }()

	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "debug"))
	Info("i")
	Get("cli").Warn("w")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("expected 2 log lines, got %d", got)
	}
	if !strings.Contains(buf.String(), `"component":"cli"`) {
		t.Errorf("expected component field from Get, got %q", buf.String())
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp=true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, &buf)
	l.Info("console line", Fields("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "[INF]") {
		t.Errorf("expected level tag in console output, got %q", out)
	}
	if !strings.Contains(out, "k:") {
		t.Errorf("expected field name in console output, got %q", out)
	}
}

func TestGetUnregistered(t *testing.T) {
	l := Get("never-registered")
	if l.Component() != "never-registered" {
		t.Errorf("expected component fallback, got %q", l.Component())
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d", len(m))
	}
}
