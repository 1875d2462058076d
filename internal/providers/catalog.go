package providers

// Catalog is an immutable table of provider name to model identifiers.
// It is built once at startup and passed explicitly to the providers
// that serve listings without a live probe, so tests can substitute
// their own catalogs.
type Catalog struct {
	models map[string][]string
}

// NewCatalog copies the given table into an immutable Catalog.
func NewCatalog(models map[string][]string) Catalog {
	copied := make(map[string][]string, len(models))
	for provider, ids := range models {
		list := make([]string, len(ids))
		copy(list, ids)
		copied[provider] = list
	}
	return Catalog{models: copied}
}

// Models returns the model identifiers for a provider, in catalog
// order. The returned slice is a copy; mutating it does not affect
// the catalog.
func (c Catalog) Models(provider string) []string {
	ids, ok := c.models[provider]
	if !ok {
		return nil
	}
	list := make([]string, len(ids))
	copy(list, ids)
	return list
}

// DefaultCatalog returns the built-in model table for the providers
// served statically. Ollama and Gemini listings probe live endpoints
// and are not represented here.
func DefaultCatalog() Catalog {
	return NewCatalog(map[string][]string{
		ProviderOpenAI: {
			"gpt-4o-mini",
			"gpt-4o",
			"gpt-4.1",
			"gpt-4.1-mini",
			"gpt-4-turbo",
			"gpt-3.5-turbo",
		},
		ProviderAnthropic: {
			"claude-opus-4-5",
			"claude-sonnet-4-5",
			"claude-haiku-4-5",
			"claude-3-7-sonnet-latest",
			"claude-3-5-haiku-latest",
		},
	})
}
