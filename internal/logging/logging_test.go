package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.log")

	logger, err := New(path, zapcore.DebugLevel)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Named("battle").Info("state changed", zap.String("to", "victory"))
	logger.Debug("skipped action")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(raw)
	for _, want := range []string{"info", "battle", "state changed", "victory", "skipped action"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.log")

	logger, err := New(path, zapcore.WarnLevel)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "hidden") || !strings.Contains(string(raw), "shown") {
		t.Errorf("unexpected output for warn level:\n%s", raw)
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", zapcore.InfoLevel)
	if err != nil || logger == nil {
		t.Fatalf("New(\"\") = %v, %v", logger, err)
	}
	logger.Info("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
