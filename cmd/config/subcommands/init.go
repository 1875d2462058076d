package subcommands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/text-to-cypher/internal/config"
)

var initForce bool

// InitCmd writes a default configuration file.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: "Write a default configuration file to the default location.\n\n" +
		"An existing file is never overwritten unless --force is given. Edit " +
		"the generated file to set the model and graph connection, and export " +
		"the API key through the configured environment variable.",
	Example: `  # Create the default config file
  text2cypher config init

  # Replace an existing config file
  text2cypher config init --force`,
	RunE: runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.DefaultConfigPath()

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", configPath)
		}
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(&cfg, configPath); err != nil {
		return err
	}

	fmt.Printf("Wrote default configuration to %s\n", configPath)
	return nil
}
