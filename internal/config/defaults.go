package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	LogLevel = "info"
	LogFile  = "~/.config/text2cypher/text2cypher.log"

	Model     = "gpt-4o-mini"
	APIKeyEnv = "OPENAI_API_KEY"

	FalkorDBConnection  = "falkor://localhost:6379"
	FalkorDBPasswordEnv = "FALKORDB_PASSWORD"

	OllamaURL = "http://localhost:11434"

	ExecutionTimeoutSeconds = 30
)

// setViperDefaults registers all default configuration values.
// Called before reading config files so unset keys resolve to defaults.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log_level", LogLevel)
	v.SetDefault("log_file", LogFile)

	v.SetDefault("model", Model)
	v.SetDefault("api_key_env", APIKeyEnv)

	v.SetDefault("falkordb.connection", FalkorDBConnection)
	v.SetDefault("falkordb.password_env", FalkorDBPasswordEnv)

	v.SetDefault("ollama.url", OllamaURL)

	v.SetDefault("execution.timeout_seconds", ExecutionTimeoutSeconds)
}

// NewDefaultConfig returns a Config populated with defaults only.
func NewDefaultConfig() Config {
	return Config{
		LogLevel:  LogLevel,
		LogFile:   LogFile,
		Model:     Model,
		APIKeyEnv: APIKeyEnv,
		FalkorDB: FalkorDBConfig{
			Connection:  FalkorDBConnection,
			PasswordEnv: FalkorDBPasswordEnv,
		},
		Ollama: OllamaConfig{
			URL: OllamaURL,
		},
		Execution: ExecutionConfig{
			TimeoutSeconds: ExecutionTimeoutSeconds,
		},
	}
}
