package logging

import (
	"log/slog"
	"strings"
)

// DefaultLevel applies when no level is configured or the configured
// value is not recognized.
const DefaultLevel = slog.LevelInfo

// levelNames maps accepted config strings to levels. "warning" is an
// alias for "warn".
var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel maps a config string to a slog.Level. Matching is
// case-insensitive and ignores surrounding whitespace; ok is false for
// unrecognized values.
func ParseLevel(s string) (level slog.Level, ok bool) {
	level, ok = levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return DefaultLevel, false
	}
	return level, true
}

// ParseLevelOrDefault is ParseLevel with the fallback already applied.
func ParseLevelOrDefault(s string) slog.Level {
	level, _ := ParseLevel(s)
	return level
}
