package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Model == "" {
		errs = append(errs, ValidationError{"model", "must not be empty"})
	}

	if cfg.FalkorDB.Connection == "" {
		errs = append(errs, ValidationError{"falkordb.connection", "must not be empty"})
	} else if !strings.Contains(cfg.FalkorDB.Connection, "://") {
		errs = append(errs, ValidationError{"falkordb.connection", "must be of the form scheme://host:port"})
	}

	if cfg.Execution.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{"execution.timeout_seconds", "must be positive"})
	}

	if cfg.LogLevel != "" {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug", "info", "warn", "warning", "error":
		default:
			errs = append(errs, ValidationError{"log_level", fmt.Sprintf("unrecognized level %q", cfg.LogLevel)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
