package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestMake_WritesToBuffer verifies log lines land on the configured writer
func TestMake_WritesToBuffer(t *testing.T) {
	t.Setenv(LevelEnvVar, "info")

	var buf bytes.Buffer
	log, err := New().ToWriter(&buf).Make()
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	log.Info().Str("key", "value").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "value") {
		t.Errorf("Expected structured line, got %q", out)
	}
}

// TestMake_DefaultLevelIsWarn verifies info is suppressed by default
func TestMake_DefaultLevelIsWarn(t *testing.T) {
	t.Setenv(LevelEnvVar, "")

	var buf bytes.Buffer
	log, err := New().ToWriter(&buf).Make()
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	log.Info().Msg("hidden")
	log.Warn().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info line should be suppressed at the default level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("Warn line should pass at the default level")
	}
}
