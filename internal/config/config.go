package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/appforge-labs/appforge/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeyServerAddr          = "server.addr"
	KeyServerAllowedOrigin = "server.allowed_origin"
	KeyServerPublicURL     = "server.public_url"
	KeyArtifactDir         = "artifact.dir"
	KeyArtifactTTL         = "artifact.ttl"
	KeySweepInterval       = "artifact.sweep_interval"
	KeyArchiveLevel        = "archive.level"
	KeyProjectTitle        = "project.title"
)

// Settings is the resolved configuration.
type Settings struct {
	ServerAddr    string
	AllowedOrigin string
	PublicURL     string
	ArtifactDir   string
	ArtifactTTL   time.Duration
	SweepInterval time.Duration
	ArchiveLevel  int
	ProjectTitle  string
}

// Defaults returns the built-in value of every key.
func Defaults() map[string]any {
	return map[string]any{
		KeyServerAddr:          ":5000",
		KeyServerAllowedOrigin: "http://localhost:3000",
		KeyServerPublicURL:     "",
		KeyArtifactDir:         filepath.Join(os.TempDir(), branding.CLIName()),
		KeyArtifactTTL:         "30m",
		KeySweepInterval:       "1m",
		KeyArchiveLevel:        9,
		KeyProjectTitle:        "Generated React App",
	}
}

// Keys returns every recognized key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Defaults()))
	for k := range Defaults() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Known reports whether key is recognized.
func Known(key string) bool {
	_, ok := Defaults()[key]
	return ok
}

// Dir returns the path to the config directory (~/.appforge/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.appforge/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// server.addr is read from APPFORGE_SERVER_ADDR, and so on.
func Load() {
	for k, v := range Defaults() {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the resolved settings.
func Current() (Settings, error) {
	s := Settings{
		ServerAddr:    viper.GetString(KeyServerAddr),
		AllowedOrigin: viper.GetString(KeyServerAllowedOrigin),
		PublicURL:     viper.GetString(KeyServerPublicURL),
		ArtifactDir:   viper.GetString(KeyArtifactDir),
		ProjectTitle:  viper.GetString(KeyProjectTitle),
	}

	var err error
	if s.ArtifactTTL, err = duration(KeyArtifactTTL); err != nil {
		return Settings{}, err
	}
	if s.SweepInterval, err = duration(KeySweepInterval); err != nil {
		return Settings{}, err
	}
	if s.ArchiveLevel, err = strconv.Atoi(viper.GetString(KeyArchiveLevel)); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", KeyArchiveLevel, err)
	}
	return s, nil
}

func duration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !Known(key) {
		return fmt.Errorf("unknown config key %q; known keys: %s", key, strings.Join(Keys(), ", "))
	}
	if err := check(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func check(key, value string) error {
	switch key {
	case KeyArtifactTTL, KeySweepInterval:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration such as 30m, got %q", key, value)
		}
	case KeyArchiveLevel:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 9 {
			return fmt.Errorf("%s must be an integer between 0 and 9, got %q", key, value)
		}
	}
	return nil
}
