package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appforge-labs/appforge/internal/branding"
	"github.com/appforge-labs/appforge/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: "Read and write settings stored at " + config.FilePath() + ".\n\n" +
		"Every key can also be set through the environment: server.addr is read from\n" +
		branding.EnvVar("server_addr") + ", artifact.ttl from " + branding.EnvVar("artifact_ttl") + ", and so on.",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.Known(args[0]) {
			return fmt.Errorf("unknown config key %q", args[0])
		}
		fmt.Println(config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting with its resolved value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.Keys() {
			fmt.Printf("%-24s %s\n", key, config.Get(key))
		}
		return nil
	},
}
