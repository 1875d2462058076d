package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/text-to-cypher/internal/cmdutil"
	"github.com/leefowlercu/text-to-cypher/internal/config"
)

// ValidateCmd checks the loaded configuration for errors.
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current configuration",
	Long: "Validate the current configuration.\n\n" +
		"Checks the effective configuration (file, environment overrides, and " +
		"defaults combined) and reports every violation found.",
	Example: `  # Validate the effective configuration
  text2cypher config validate`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := cmdutil.Config()

	if err := config.Validate(cfg); err != nil {
		return err
	}

	fmt.Println("Configuration is valid")
	return nil
}
