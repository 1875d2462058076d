// Package models implements the models command for catalog listing.
package models

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/text-to-cypher/internal/cmdutil"
)

var modelsProvider string

// ModelsCmd lists the models available across providers.
var ModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models",
	Long: "List available models.\n\n" +
		"Without flags, the union of every provider's model list is printed in " +
		"a stable order, each entry qualified with its provider. With " +
		"--provider, only that provider's models are listed. OpenAI and " +
		"Anthropic models come from a static catalog; Gemini and Ollama are " +
		"probed live, so their entries reflect what is actually reachable.",
	Example: `  # List all models across providers
  text2cypher models

  # List only Ollama models
  text2cypher models --provider ollama`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func init() {
	ModelsCmd.Flags().StringVar(&modelsProvider, "provider", "",
		"Restrict the listing to one provider (case-insensitive)")
}

func runModels(cmd *cobra.Command, args []string) error {
	c, err := cmdutil.NewClient(slog.Default(), "")
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()

	var models []string
	if modelsProvider != "" {
		models, err = c.ListModelsByProvider(ctx, modelsProvider)
	} else {
		models, err = c.ListModels(ctx)
	}
	if err != nil {
		return err
	}

	for _, model := range models {
		fmt.Println(model)
	}
	return nil
}
