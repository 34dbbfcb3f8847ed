// Package branding provides compile-time identity values for the CLI and the
// projects it generates.
//
// Forkers edit branding.yaml and rebuild; Go's //go:embed bakes it into the
// binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	ProjectName string `yaml:"project_name"`
	ArchiveName string `yaml:"archive_name"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "appforge",
			DisplayName: "AppForge",
			Description: "Configuration-driven React project generator",
			HomeDir:     ".appforge",
			EnvPrefix:   "APPFORGE",
			ProjectName: "generated-react-app",
			ArchiveName: "generated-react-app.zip",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "appforge").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "AppForge").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".appforge").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "APPFORGE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ProjectName returns the "name" written into every generated package.json.
func ProjectName() string { load(); return defaults.ProjectName }

// ArchiveName returns the suggested download filename for generated archives.
func ArchiveName() string { load(); return defaults.ArchiveName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "APPFORGE_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
