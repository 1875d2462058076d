package config

import "os"

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel  string          `yaml:"log_level" mapstructure:"log_level"`
	LogFile   string          `yaml:"log_file" mapstructure:"log_file"`
	Model     string          `yaml:"model" mapstructure:"model"`
	APIKey    *string         `yaml:"api_key,omitempty" mapstructure:"api_key"`
	APIKeyEnv string          `yaml:"api_key_env" mapstructure:"api_key_env"`
	FalkorDB  FalkorDBConfig  `yaml:"falkordb" mapstructure:"falkordb"`
	Ollama    OllamaConfig    `yaml:"ollama" mapstructure:"ollama"`
	Execution ExecutionConfig `yaml:"execution" mapstructure:"execution"`
}

// FalkorDBConfig holds graph engine connection configuration.
type FalkorDBConfig struct {
	// Connection is the engine endpoint, e.g. "falkor://localhost:6379".
	Connection  string `yaml:"connection" mapstructure:"connection"`
	PasswordEnv string `yaml:"password_env" mapstructure:"password_env"`
}

// OllamaConfig holds configuration for the local Ollama provider.
type OllamaConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// ExecutionConfig bounds query execution against the graph engine.
type ExecutionConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// ResolveAPIKey returns the API key from config or falls back to environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != nil && *c.APIKey != "" {
		return *c.APIKey
	}
	return os.Getenv(c.APIKeyEnv)
}

// ResolvePassword returns the graph engine password from its configured environment variable.
func (c *FalkorDBConfig) ResolvePassword() string {
	if c.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(c.PasswordEnv)
}
