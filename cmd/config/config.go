// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/text-to-cypher/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage text2cypher configuration",
	Long: "Manage text2cypher configuration.\n\n" +
		"Configuration is stored in a YAML file located at " +
		"~/.config/text2cypher/config.yaml by default. Every setting can also " +
		"be supplied through TEXT2CYPHER_-prefixed environment variables.",
}

func init() {
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
}
