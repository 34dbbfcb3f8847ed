package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.Writer = &buf
	SetupLogging(cfg)
	t.Cleanup(func() { SetupLogging(LogConfig{}) })
	return &buf
}

func TestSetupLogging_DefaultSuppressesDebug(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	Debug("hidden-msg")
	Info("shown-msg")

	out := buf.String()
	assert.NotContains(t, out, "hidden-msg")
	assert.Contains(t, out, "shown-msg")
}

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true})
	Debug("verbose-msg", "stage", "assemble")

	out := buf.String()
	assert.Contains(t, out, "verbose-msg")
	assert.Contains(t, out, "stage=assemble")
}

func TestWith_CarriesKeyValues(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	With("request", "abc123").Info("published")

	assert.Contains(t, buf.String(), "request=abc123")
}

func TestSetupLogging_Prefix(t *testing.T) {
	buf := captureLog(t, LogConfig{Prefix: "serve"})
	Warn("slow")

	assert.Contains(t, buf.String(), "serve")
}
