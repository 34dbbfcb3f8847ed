package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	apperrors "github.com/appforge-labs/appforge/internal/errors"
	"github.com/appforge-labs/appforge/internal/manifest"
	"github.com/appforge-labs/appforge/internal/options"
)

var validateManifest bool

func init() {
	validateCmd.Flags().BoolVar(&validateManifest, "manifest", false, "Validate a package.json instead of a configuration")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a configuration file or generated package.json",
	Long: `Check a configuration file against the compatibility rules, or with
--manifest (implied for files named package.json) check a package manifest
against the manifest schema.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if validateManifest || filepath.Base(path) == manifest.FileName {
			return validateManifestFile(path)
		}

		raw, err := options.ParseFile(path)
		if err != nil {
			return err
		}
		cfg, err := options.Validate(raw)
		if err != nil {
			if reason, ok := apperrors.ReasonOf(err); ok {
				return fmt.Errorf("%s is invalid (%s): %w", path, reason, err)
			}
			return err
		}
		fmt.Printf("%s is valid: %s\n", path, cfg)
		return nil
	},
}

func validateManifestFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", path, err)
	}
	result, err := manifest.Validate(data)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		fmt.Printf("%s has %d issue(s):\n", path, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		return fmt.Errorf("%s is not a valid manifest", path)
	}
	fmt.Printf("%s is a valid manifest\n", path)
	return nil
}
