package subcommands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/text-to-cypher/internal/cmdutil"
	"github.com/leefowlercu/text-to-cypher/internal/config"
)

var showRaw bool

// ShowCmd displays the current configuration.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: "Display the current configuration.\n\n" +
		"By default, shows the effective configuration with defaults and " +
		"environment overrides applied. Use --raw to show only the values " +
		"explicitly set in the config file.",
	Example: `  # Show effective configuration
  text2cypher config show

  # Show only explicitly set values
  text2cypher config show --raw`,
	PreRunE: validateShow,
	RunE:    runShow,
}

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Show only explicitly configured values (no defaults)")
}

func validateShow(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if showRaw {
		return showRawConfig()
	}
	return showEffectiveConfig()
}

func showRawConfig() error {
	configPath := config.DefaultConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("# No configuration file found")
			fmt.Printf("# Default location: %s\n", configPath)
			return nil
		}
		return fmt.Errorf("failed to read config file; %w", err)
	}

	fmt.Print(string(data))
	return nil
}

func showEffectiveConfig() error {
	cfg := cmdutil.Config()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config; %w", err)
	}

	fmt.Print(string(data))
	return nil
}
