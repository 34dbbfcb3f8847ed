package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/appforge-labs/appforge/internal/branding"
	"github.com/appforge-labs/appforge/internal/options"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo describes the binary and the framework majors it can generate.
type versionInfo struct {
	Version    string   `json:"version"`
	Commit     string   `json:"commit"`
	Date       string   `json:"date"`
	Go         string   `json:"go"`
	Frameworks []string `json:"frameworks"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Println(buildVersion)
			return nil
		}

		info := versionInfo{
			Version:    buildVersion,
			Commit:     buildCommit,
			Date:       buildDate,
			Go:         runtime.Version(),
			Frameworks: options.FrameworkVersions,
		}
		if versionJSON {
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%s version %s (commit: %s, built: %s, %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date, info.Go)
		fmt.Printf("Generates React %v projects\n", info.Frameworks)
		return nil
	},
}
