// Package config manages user-level settings stored at ~/.appforge/config.yaml.
// Values resolve in order: APPFORGE_* environment variables, the config file,
// then built-in defaults. Keys cover the HTTP server, the artifact store and
// the generated project's title.
package config
