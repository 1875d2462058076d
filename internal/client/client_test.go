package client

import (
	"strings"
	"testing"
	"time"

	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

func validOptions() Options {
	return Options{
		Model:              "gpt-4o-mini",
		APIKey:             "test-key",
		FalkorDBConnection: "falkor://localhost:6379",
	}
}

func TestNewRequiredOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   string
	}{
		{name: "missing model", mutate: func(o *Options) { o.Model = "" }, want: "model is required"},
		{name: "missing api key", mutate: func(o *Options) { o.APIKey = "" }, want: "api key is required"},
		{name: "missing connection", mutate: func(o *Options) { o.FalkorDBConnection = "" }, want: "falkordb connection is required"},
		{name: "blank model", mutate: func(o *Options) { o.Model = "   " }, want: "model is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)

			_, err := New(opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestNewNoNetworkIO(t *testing.T) {
	// Unroutable endpoints must not slow or fail construction;
	// connections are dialed on first use only.
	opts := Options{
		Model:              "anthropic:claude-sonnet-4-5",
		APIKey:             "test-key",
		FalkorDBConnection: "falkor://192.0.2.1:6379",
	}

	start := time.Now()
	c, err := New(opts, WithOllamaURL("http://192.0.2.1:11434"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("construction took %v; expected no network I/O", elapsed)
	}
}

func TestNewParsesModelRef(t *testing.T) {
	tests := []struct {
		model        string
		wantProvider string
		wantModel    string
	}{
		{model: "gpt-4o-mini", wantProvider: providers.ProviderOpenAI, wantModel: "gpt-4o-mini"},
		{model: "anthropic:claude-sonnet-4-5", wantProvider: providers.ProviderAnthropic, wantModel: "claude-sonnet-4-5"},
		{model: "OLLAMA:llama3.1:8b", wantProvider: providers.ProviderOllama, wantModel: "llama3.1:8b"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			opts := validOptions()
			opts.Model = tt.model

			c, err := New(opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer c.Close()

			if c.Model().Provider != tt.wantProvider {
				t.Errorf("provider = %q, want %q", c.Model().Provider, tt.wantProvider)
			}
			if c.Model().Model != tt.wantModel {
				t.Errorf("model = %q, want %q", c.Model().Model, tt.wantModel)
			}
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	opts := validOptions()
	opts.Model = "cohere:command-r"

	_, err := New(opts)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Unknown provider") {
		t.Errorf("error = %q, want /Unknown provider/", err.Error())
	}
}

func TestNewInvalidConnectionString(t *testing.T) {
	opts := validOptions()
	opts.FalkorDBConnection = "localhost:6379"

	_, err := New(opts)
	if err == nil {
		t.Fatal("expected error for schemeless connection string")
	}
}
