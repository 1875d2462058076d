// Package generate implements the generate command for query preview.
package generate

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/text-to-cypher/internal/cmdutil"
)

var generateModel string

// GenerateCmd translates a question into a Cypher query without
// executing it.
var GenerateCmd = &cobra.Command{
	Use:   "generate <graph> <question>",
	Short: "Generate a Cypher query without executing it",
	Long: "Generate a Cypher query from a natural-language question without " +
		"executing it.\n\n" +
		"The graph's schema is discovered and the question is translated, but " +
		"the resulting query is never sent to the engine. The response carries " +
		"only the schema and the generated query, making this safe to run " +
		"against graphs where execution would be unwanted.",
	Example: `  # Preview the query for a question
  text2cypher generate movies "Who directed Alien?"

  # Preview with a specific model
  text2cypher generate movies "Who directed Alien?" --model gemini:gemini-2.0-flash`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVar(&generateModel, "model", "",
		"Model to use, bare or provider-qualified (overrides config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c, err := cmdutil.NewClient(slog.Default(), generateModel)
	if err != nil {
		return err
	}
	defer c.Close()

	resp, err := c.GenerateOnly(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(resp)
}
