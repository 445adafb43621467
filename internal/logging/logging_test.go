package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
		err  bool
	}{
		{in: "", want: zerolog.InfoLevel},
		{in: "debug", want: zerolog.DebugLevel},
		{in: " WARN ", want: zerolog.WarnLevel},
		{in: "loud", err: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.err {
			if err == nil {
				t.Fatalf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%q: expected %v, got %v (%v)", tt.in, tt.want, got, err)
		}
	}
}

func TestConsoleFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Console(&buf, zerolog.WarnLevel)
	logger.Info().Msg("hidden")
	logger.Warn().Str("game", "memory-tray").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "memory-tray") {
		t.Fatalf("unexpected console output %q", out)
	}
}

func TestFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "reminisce.log")
	logger, closer, err := File(path, zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	logger.Info().Int("round", 2).Msg("resolved")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"round":2`) || !strings.Contains(string(data), `"message":"resolved"`) {
		t.Fatalf("unexpected log line %q", data)
	}
}
