package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	askcmd "github.com/leefowlercu/text-to-cypher/cmd/ask"
	configcmd "github.com/leefowlercu/text-to-cypher/cmd/config"
	generatecmd "github.com/leefowlercu/text-to-cypher/cmd/generate"
	modelscmd "github.com/leefowlercu/text-to-cypher/cmd/models"
	schemacmd "github.com/leefowlercu/text-to-cypher/cmd/schema"
	"github.com/leefowlercu/text-to-cypher/internal/cmdutil"
	"github.com/leefowlercu/text-to-cypher/internal/config"
	"github.com/leefowlercu/text-to-cypher/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var rootCmd = &cobra.Command{
	Use:   "text2cypher",
	Short: "Translate natural-language questions into Cypher queries",
	Long: "text2cypher translates natural-language questions about a property graph " +
		"into Cypher queries, executes them against FalkorDB, and answers in plain language.\n\n" +
		"Translation and answer synthesis run through a configurable model provider " +
		"(OpenAI, Anthropic, Gemini, or Ollama). The graph schema is discovered " +
		"automatically before each translation, so questions can be asked against " +
		"any graph without prior setup.",
	PersistentPreRunE: runInitialize,
}

func init() {
	logManager = logging.NewManager()

	rootCmd.AddCommand(askcmd.AskCmd)
	rootCmd.AddCommand(generatecmd.GenerateCmd)
	rootCmd.AddCommand(schemacmd.SchemaCmd)
	rootCmd.AddCommand(modelscmd.ModelsCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cmdutil.SetConfig(cfg)

	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		level = logging.DefaultLevel
		if cfg.LogLevel != "" {
			logger.Warn("invalid log level configured, using default", "configured", cfg.LogLevel, "default", "info")
		}
	}

	if err := logManager.Upgrade(config.ExpandPath(cfg.LogFile), level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
	}

	// Subcommands reach the managed logger through slog.Default.
	slog.SetDefault(logManager.Logger())

	return nil
}

func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	defer func() { _ = logManager.Close() }()

	err := rootCmd.Execute()

	if err != nil {
		cmd, _, _ := rootCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = rootCmd
		}

		fmt.Printf("Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Printf("\n")
			cmd.SetOut(os.Stdout)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
