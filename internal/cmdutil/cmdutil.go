// Package cmdutil provides shared helpers for command implementations:
// access to the loaded configuration, client construction, and output
// rendering.
package cmdutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/leefowlercu/text-to-cypher/internal/client"
	"github.com/leefowlercu/text-to-cypher/internal/config"
)

// activeConfig is set once by the root command after loading and read
// by subcommands for the remainder of the process.
var activeConfig *config.Config

// SetConfig stores the loaded configuration for subcommand use.
func SetConfig(cfg *config.Config) {
	activeConfig = cfg
}

// Config returns the loaded configuration, or defaults when the root
// command has not loaded one.
func Config() *config.Config {
	if activeConfig == nil {
		cfg := config.NewDefaultConfig()
		activeConfig = &cfg
	}
	return activeConfig
}

// NewClient builds a pipeline client from the loaded configuration.
// modelOverride, when non-empty, takes precedence over the configured
// model.
func NewClient(logger *slog.Logger, modelOverride string) (*client.Client, error) {
	cfg := Config()

	model := cfg.Model
	if modelOverride != "" {
		model = modelOverride
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured; set api_key in the config file or export %s", cfg.APIKeyEnv)
	}

	opts := []client.Option{
		client.WithLogger(logger),
		client.WithSchemaCache(),
	}
	if cfg.Execution.TimeoutSeconds > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(cfg.Execution.TimeoutSeconds)*time.Second))
	}
	if password := cfg.FalkorDB.ResolvePassword(); password != "" {
		opts = append(opts, client.WithGraphPassword(password))
	}
	if cfg.Ollama.URL != "" {
		opts = append(opts, client.WithOllamaURL(cfg.Ollama.URL))
	}

	return client.New(client.Options{
		Model:              model,
		APIKey:             apiKey,
		FalkorDBConnection: cfg.FalkorDB.Connection,
	}, opts...)
}

// PrintJSON renders v as indented JSON on stdout.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output; %w", err)
	}
	fmt.Println(string(data))
	return nil
}
