// Package ask implements the ask command for full question-to-answer
// conversion.
package ask

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/text-to-cypher/internal/cmdutil"
	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// Flag variables for the ask command.
var (
	askModel       string
	askHistoryFile string
)

// AskCmd translates a question, executes the query, and prints the
// full pipeline response.
var AskCmd = &cobra.Command{
	Use:   "ask <graph> <question>",
	Short: "Ask a natural-language question against a graph",
	Long: "Ask a natural-language question against a graph.\n\n" +
		"The question is translated into a Cypher query using the graph's " +
		"discovered schema, the query is executed, and the results are " +
		"summarized as a natural-language answer. The full response, including " +
		"the generated query and raw results, is printed as JSON.\n\n" +
		"Prior conversation turns can be supplied with --history pointing at a " +
		"JSON file containing an array of {role, content} messages. The question " +
		"argument becomes the final turn of the conversation.",
	Example: `  # Ask a question using the configured model
  text2cypher ask movies "Who directed Alien?"

  # Ask with a specific model
  text2cypher ask movies "Who directed Alien?" --model anthropic:claude-sonnet-4-5

  # Continue an earlier conversation
  text2cypher ask movies "What else did they direct?" --history turns.json`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	AskCmd.Flags().StringVar(&askModel, "model", "",
		"Model to use, bare or provider-qualified (overrides config)")
	AskCmd.Flags().StringVar(&askHistoryFile, "history", "",
		"Path to a JSON file of prior conversation messages")
}

func runAsk(cmd *cobra.Command, args []string) error {
	graphName := args[0]
	question := args[1]

	c, err := cmdutil.NewClient(slog.Default(), askModel)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()

	if askHistoryFile == "" {
		resp, err := c.ConvertAndExecute(ctx, graphName, question)
		if err != nil {
			return err
		}
		return cmdutil.PrintJSON(resp)
	}

	history, err := loadHistory(askHistoryFile)
	if err != nil {
		return err
	}
	messages := append(history, providers.ChatMessage{
		Role:    providers.RoleUser,
		Content: question,
	})

	resp, err := c.ConvertWithHistory(ctx, graphName, messages)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(resp)
}

func loadHistory(path string) ([]providers.ChatMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file; %w", err)
	}

	var messages []providers.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s; %w", path, err)
	}
	return messages, nil
}
