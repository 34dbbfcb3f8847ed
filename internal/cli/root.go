package cli

import (
	"github.com/spf13/cobra"

	"github.com/appforge-labs/appforge/internal/branding"
	"github.com/appforge-labs/appforge/internal/config"
	"github.com/appforge-labs/appforge/internal/output"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates React project scaffolds from a small set of options:
framework version, state management, middleware, CSS framework and custom hooks.
Run it as an HTTP service for a web front end, or generate projects locally.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetupLogging(output.LogConfig{Verbose: verbose})
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		return err
	}
	return nil
}
