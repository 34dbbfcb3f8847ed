package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/appforge-labs/appforge/internal/archive"
	"github.com/appforge-labs/appforge/internal/branding"
	"github.com/appforge-labs/appforge/internal/config"
	"github.com/appforge-labs/appforge/internal/generator"
	"github.com/appforge-labs/appforge/internal/options"
	"github.com/appforge-labs/appforge/internal/scaffold"
)

var (
	generateConfigFile string
	generateOutput     string
	generateOutputDir  string
	generateTitle      string
	generateFlags      options.Raw
)

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateConfigFile, "config", "c", "", "Configuration file (YAML or JSON)")
	f.StringVar(&generateFlags.FrameworkVersion, "framework-version", "", "React major version: 17 or 18")
	f.StringVar(&generateFlags.StateManagement, "state-management", "", "redux, context-api or none")
	f.StringVar(&generateFlags.Middleware, "middleware", "", "redux-thunk, redux-saga or none")
	f.StringVar(&generateFlags.CSSFramework, "css-framework", "", "tailwind, bootstrap or none")
	f.StringVar(&generateFlags.HooksMode, "hooks-mode", "", "none, hooks (all) or a single hook such as useFetch")
	f.StringVar(&generateTitle, "title", "", "App title (default from project.title)")
	f.StringVarP(&generateOutput, "output", "o", "", "Write a zip archive to this path")
	f.StringVar(&generateOutputDir, "output-dir", "", "Write the project into this directory (default: ./"+branding.ProjectName()+")")
	generateCmd.MarkFlagsMutuallyExclusive("output", "output-dir")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a React project locally",
	Long: `Generate a React project from a configuration file or flags.

Flags override values from --config. The project is written to a directory,
or packed into a zip archive with --output.

Examples:
  appforge generate --state-management redux --middleware redux-saga --css-framework tailwind
  appforge generate --config app.yaml --output app.zip
  appforge generate --hooks-mode hooks --output-dir ./my-app`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := loadRaw(generateConfigFile, generateFlags)
		if err != nil {
			return err
		}

		title := generateTitle
		if title == "" {
			title = config.Get(config.KeyProjectTitle)
		}

		tree, err := generator.New(nil, generator.WithTitle(title)).Build(cmd.Context(), raw)
		if err != nil {
			return err
		}

		if generateOutput != "" {
			n, err := writeZip(cmd.Context(), tree, generateOutput)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%d files)\n", generateOutput, n)
			return nil
		}

		outDir := generateOutputDir
		if outDir == "" {
			outDir = filepath.Join(".", branding.ProjectName())
		}
		written, err := tree.Materialize(afero.NewOsFs(), outDir)
		if err != nil {
			return err
		}
		printResult(outDir, written)
		return nil
	},
}

// loadRaw reads file, if given, and overlays every non-empty flag value.
func loadRaw(file string, flags options.Raw) (options.Raw, error) {
	var raw options.Raw
	if file != "" {
		var err error
		if raw, err = options.ParseFile(file); err != nil {
			return options.Raw{}, err
		}
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&raw.FrameworkVersion, flags.FrameworkVersion)
	overlay(&raw.StateManagement, flags.StateManagement)
	overlay(&raw.Middleware, flags.Middleware)
	overlay(&raw.CSSFramework, flags.CSSFramework)
	overlay(&raw.HooksMode, flags.HooksMode)
	return raw, nil
}

// writeZip packs tree into a zip archive at path. The archive is written
// next to path and renamed into place once complete.
func writeZip(ctx context.Context, tree *scaffold.Tree, path string) (int, error) {
	mem := afero.NewMemMapFs()
	if _, err := tree.Materialize(mem, "/project"); err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("creating output directory: %w", err)
		}
	}
	tmp := path + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", tmp, err)
	}

	level := archive.DefaultLevel
	if settings, err := config.Current(); err == nil {
		level = settings.ArchiveLevel
	}
	n, err := archive.Pack(ctx, mem, "/project", f, level)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("writing archive: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	return n, nil
}

func printResult(outDir string, files []string) {
	fmt.Printf("Created project at %s/\n", outDir)
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. cd %s\n", outDir)
	fmt.Println("  2. Run 'npm install' to install dependencies")
	fmt.Println("  3. Run 'npm start' to start the development server")
}
