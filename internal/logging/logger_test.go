package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug": "debug",
		"warn":  "warn",
		"error": "error",
		"":      "info",
		"loud":  "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geleza.log")
	logger := New(Options{Level: "info", File: path})
	logger.Info("tutor ready", zap.String("uid", "demo-user-1"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"message":"tutor ready"`) || !strings.Contains(line, `"uid":"demo-user-1"`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}

func TestNewSkipsBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geleza.log")
	logger := New(Options{Level: "error", File: path})
	logger.Info("hidden")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("info line should be filtered at error level")
	}
}
