package server

import "time"

// MaxBodyBytes bounds the size of a generate request body.
const MaxBodyBytes = 64 << 10

// Config holds the server settings.
type Config struct {
	// Addr is the listen address (e.g. ":5000").
	Addr string

	// AllowedOrigin is the browser origin granted CORS access.
	AllowedOrigin string

	// PublicURL is the externally visible base URL used in download links.
	// When empty the link is derived from the request's Host header.
	PublicURL string

	// SweepInterval is how often expired archives are removed.
	SweepInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Defaults for zero Config fields.
const (
	DefaultAddr            = ":5000"
	DefaultAllowedOrigin   = "http://localhost:3000"
	DefaultSweepInterval   = time.Minute
	DefaultShutdownTimeout = 5 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = DefaultAllowedOrigin
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}

// GenerateResponse is the body of a successful POST /generate.
type GenerateResponse struct {
	ID          string `json:"id"`
	DownloadURL string `json:"downloadUrl"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Field  string `json:"field,omitempty"`
}
