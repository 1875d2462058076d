// Package schema implements the schema command for graph introspection.
package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/text-to-cypher/internal/cmdutil"
)

// SchemaCmd prints the discovered schema of a graph.
var SchemaCmd = &cobra.Command{
	Use:   "schema <graph>",
	Short: "Discover and print a graph's schema",
	Long: "Discover and print a graph's schema as JSON.\n\n" +
		"Node labels with their observed property names and relationship types " +
		"with their observed source/target label pairs are derived from a " +
		"bounded sample of the graph, so discovery stays cheap on large graphs. " +
		"An empty graph yields an empty schema, not an error.",
	Example: `  # Print the schema of the movies graph
  text2cypher schema movies`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	c, err := cmdutil.NewClient(slog.Default(), "")
	if err != nil {
		return err
	}
	defer c.Close()

	schemaJSON, err := c.DiscoverSchema(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	// Reindent for readability; the pipeline emits compact JSON.
	var doc any
	if err := json.Unmarshal([]byte(schemaJSON), &doc); err != nil {
		fmt.Println(schemaJSON)
		return nil
	}
	return cmdutil.PrintJSON(doc)
}
