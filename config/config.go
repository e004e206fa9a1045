// Package config holds the settings for rendering and classifying template
// lines.
//
// Config only describes and validates settings. The CLI fills it from
// flags, LINETMPL_* environment variables and a YAML config file through
// viper, starting from DefaultConfig.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/randalmurphal/linetmpl/report"
	"github.com/randalmurphal/linetmpl/template"
	"github.com/randalmurphal/linetmpl/vars"
)

// EnvPrefix prefixes the environment variables that override Config keys,
// e.g. LINETMPL_MISSING for missing.
const EnvPrefix = "LINETMPL"

// Config holds configuration for a render or classify run.
type Config struct {
	// --- Output ---

	// Format is the output format: "text", "json" or "yaml".
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// --- Classification ---

	// MatchMode selects keyword detection in tags: "substring" or "keyword".
	MatchMode string `json:"match_mode" yaml:"match_mode" mapstructure:"match_mode"`

	// Workers bounds parallel classification. 0 means one per line.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// --- Rendering ---

	// Missing is the policy for absent variables: "empty", "placeholder" or "error".
	Missing string `json:"missing" yaml:"missing" mapstructure:"missing"`

	// TrimVariables trims whitespace around variable names before lookup.
	TrimVariables bool `json:"trim_variables" yaml:"trim_variables" mapstructure:"trim_variables"`

	// --- Variables ---

	// VarsFiles are YAML, TOML or JSON files merged in order.
	VarsFiles []string `json:"vars_files" yaml:"vars_files" mapstructure:"vars_files"`

	// Vars are inline variables; they override files and the environment.
	Vars map[string]string `json:"vars" yaml:"vars" mapstructure:"vars"`

	// VarsEnvPrefix names the environment prefix for variables,
	// e.g. LINETMPL_VAR_NAME=x sets "name". Empty disables it.
	VarsEnvPrefix string `json:"vars_env_prefix" yaml:"vars_env_prefix" mapstructure:"vars_env_prefix"`

	// --- Watching ---

	// PollInterval is the file polling interval when fsnotify is unavailable.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval" mapstructure:"poll_interval"`

	// --- Logging ---

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Format:        report.FormatText,
		MatchMode:     template.MatchSubstring.String(),
		Missing:       template.MissingEmpty.String(),
		TrimVariables: true,
		VarsEnvPrefix: EnvPrefix + "_VAR",
		PollInterval:  100 * time.Millisecond,
		LogLevel:      "warn",
		LogFormat:     "text",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("format must be text, json or yaml, got %q", c.Format)
	}
	if _, ok := template.ParseMatchMode(c.MatchMode); !ok {
		return fmt.Errorf("match_mode must be substring or keyword, got %q", c.MatchMode)
	}
	if _, ok := template.ParseMissingPolicy(c.Missing); !ok {
		return fmt.Errorf("missing must be empty, placeholder or error, got %q", c.Missing)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_interval must be >= 0, got %v", c.PollInterval)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// EngineOptions translates the config into template engine options.
// Call Validate first; unknown names fall back to the defaults.
func (c *Config) EngineOptions() []template.Option {
	mode, _ := template.ParseMatchMode(c.MatchMode)
	missing, _ := template.ParseMissingPolicy(c.Missing)
	return []template.Option{
		template.WithMatch(mode),
		template.WithMissing(missing),
		template.WithTrim(c.TrimVariables),
	}
}

// Context builds the variable context. Files are merged in order, then the
// environment, then inline Vars, with later sources winning.
func (c *Config) Context() (vars.Context, error) {
	files, err := vars.LoadFiles(c.VarsFiles)
	if err != nil {
		return nil, err
	}
	var env vars.Context
	if c.VarsEnvPrefix != "" {
		env = vars.FromEnv(c.VarsEnvPrefix)
	}
	return files.Merge(env, vars.Context(c.Vars)), nil
}
