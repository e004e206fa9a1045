package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/linetmpl/template"
	"github.com/randalmurphal/linetmpl/vars"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "substring", cfg.MatchMode)
	assert.Equal(t, "empty", cfg.Missing)
	assert.True(t, cfg.TrimVariables)
	assert.Equal(t, "LINETMPL_VAR", cfg.VarsEnvPrefix)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Format = "xml" }, "format"},
		{"bad match mode", func(c *Config) { c.MatchMode = "regex" }, "match_mode"},
		{"bad missing", func(c *Config) { c.Missing = "panic" }, "missing"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"negative poll", func(c *Config) { c.PollInterval = -time.Second }, "poll_interval"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"uppercase format", func(c *Config) { c.Format = "JSON" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "DEBUG"

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Missing = "error"
	cfg.MatchMode = "keyword"

	e := template.NewEngine(cfg.EngineOptions()...)
	assert.Equal(t, template.MatchKeyword, e.Classifier().Mode())

	_, _, err := e.RenderLine("{{name}}", nil)
	assert.ErrorIs(t, err, template.ErrMissingVariable)
}

func TestContext(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vars.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: fromfile\ncity: Pune\nzip: \"1\"\n"), 0o600))

	t.Setenv("LINETMPL_TEST_CTX_CITY", "fromenv")
	t.Setenv("LINETMPL_TEST_CTX_ZIP", "2")

	cfg := DefaultConfig()
	cfg.Vars = map[string]string{"zip": "3"}
	cfg.VarsFiles = []string{file}
	cfg.VarsEnvPrefix = "LINETMPL_TEST_CTX"

	ctx, err := cfg.Context()
	require.NoError(t, err)
	assert.Equal(t, vars.Context{"name": "fromfile", "city": "fromenv", "zip": "3"}, ctx)
}

func TestContext_BadFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VarsFiles = []string{filepath.Join(t.TempDir(), "nope.yaml")}

	_, err := cfg.Context()
	assert.Error(t, err)
}
