package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"DEBUG", slog.LevelDebug, true},
		{"Info", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"", DefaultLevel, false},
		{"verbose", DefaultLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseLevelOrDefault(t *testing.T) {
	if got := ParseLevelOrDefault("error"); got != slog.LevelError {
		t.Errorf("ParseLevelOrDefault(%q) = %v, want %v", "error", got, slog.LevelError)
	}
	if got := ParseLevelOrDefault("nope"); got != DefaultLevel {
		t.Errorf("ParseLevelOrDefault(%q) = %v, want %v", "nope", got, DefaultLevel)
	}
}
