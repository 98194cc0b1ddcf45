package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		debug    string
		level    string
		expected LogLevel
	}{
		{name: "Defaults to info", expected: LevelInfo},
		{name: "Debug via LOG_LEVEL", level: "debug", expected: LevelDebug},
		{name: "Warn via LOG_LEVEL", level: "warn", expected: LevelWarn},
		{name: "Warning alias", level: "warning", expected: LevelWarn},
		{name: "Error via LOG_LEVEL", level: "error", expected: LevelError},
		{name: "Case insensitive", level: "DEBUG", expected: LevelDebug},
		{name: "Unknown level falls back to info", level: "verbose", expected: LevelInfo},
		{name: "DEBUG=true wins over LOG_LEVEL", debug: "true", level: "error", expected: LevelDebug},
		{name: "DEBUG=1", debug: "1", expected: LevelDebug},
		{name: "DEBUG=false ignored", debug: "false", level: "warn", expected: LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := levelFromEnv(tt.debug, tt.level); got != tt.expected {
				t.Errorf("levelFromEnv(%q, %q) = %v, want %v", tt.debug, tt.level, got, tt.expected)
			}
		})
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLogLevelConstants(t *testing.T) {
	if LevelDebug >= LevelInfo {
		t.Error("LevelDebug should be less than LevelInfo")
	}
	if LevelInfo >= LevelWarn {
		t.Error("LevelInfo should be less than LevelWarn")
	}
	if LevelWarn >= LevelError {
		t.Error("LevelWarn should be less than LevelError")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestSetLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	original := GetLevel()
	defer func() {
		log.SetOutput(os.Stderr)
		SetLevel(original)
	}()

	SetLevel(LevelWarn)
	Debug("hidden debug")
	Info("hidden info")
	Warn("visible %s", "warning")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn were logged: %q", out)
	}
	if !strings.Contains(out, "[WARN] visible warning") {
		t.Errorf("warning missing from output: %q", out)
	}
	if IsDebugEnabled() {
		t.Error("IsDebugEnabled() = true at warn level")
	}
}
