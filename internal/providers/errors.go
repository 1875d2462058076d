package providers

import "fmt"

// UnknownProviderError reports a provider name outside the supported set.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("Unknown provider: '%s'. Supported providers are: openai, anthropic, gemini, ollama", e.Provider)
}

// ModelListError reports a failed live model-listing probe. It is
// distinct from UnknownProviderError so callers can tell "not a
// provider we support" from "that provider is currently unreachable".
type ModelListError struct {
	Provider string
	Err      error
}

func (e *ModelListError) Error() string {
	return fmt.Sprintf("failed to list models for %s; %v", e.Provider, e.Err)
}

func (e *ModelListError) Unwrap() error {
	return e.Err
}
