// Package cmd provides the linetmpl command-line interface.
//
// Configuration System:
//
//	Settings are resolved from several sources, highest priority first:
//	1. Command-line flags (--format, --missing, etc.)
//	2. Environment variables (LINETMPL_FORMAT, LINETMPL_MISSING, ...)
//	3. The config file (--config, LINETMPL_CONFIG_FILE, or .linetmpl.yaml)
//	4. Built-in defaults
//
// Template variables come from --vars-file files, LINETMPL_VAR_<NAME>
// environment variables, the config file's vars section and --set flags,
// in increasing priority.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/randalmurphal/linetmpl/config"
)

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"format":        "format",
	"match":         "match_mode",
	"missing":       "missing",
	"trim":          "trim_variables",
	"workers":       "workers",
	"vars-file":     "vars_files",
	"poll-interval": "poll_interval",
	"log-level":     "log_level",
	"log-format":    "log_format",
}

// app carries the state shared by the commands of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the linetmpl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "linetmpl",
		Short: "Classify and render templated text line by line",
		Long: `linetmpl reads templated text one line at a time and classifies each line
as literal text, a {{variable}} interpolation, a {% for %}/{% if %} tag, or
unrecognized input. Variable lines are rendered from a context of
name/value pairs; tags are reported but not yet rendered.

Quick Start:
  echo 'Hi {{name}}!' | linetmpl render --set name=Ujjawal
  linetmpl classify page.tmpl
  linetmpl watch page.tmpl --vars-file vars.yaml
  linetmpl schema`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .linetmpl.yaml, can also use LINETMPL_CONFIG_FILE env var)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")

	root.AddCommand(
		newRenderCommand(a),
		newClassifyCommand(a),
		newWatchCommand(a),
		newSchemaCommand(),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// initConfig loads the config file and environment, binds the flags of the
// command being run, and sets up logging.
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v

	switch {
	case a.cfgFile != "":
		v.SetConfigFile(a.cfgFile)
	case os.Getenv("LINETMPL_CONFIG_FILE") != "":
		v.SetConfigFile(os.Getenv("LINETMPL_CONFIG_FILE"))
	default:
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".linetmpl")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// format is left to each command's flag default.
	defaults := config.DefaultConfig()
	v.SetDefault("match_mode", defaults.MatchMode)
	v.SetDefault("missing", defaults.Missing)
	v.SetDefault("trim_variables", defaults.TrimVariables)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("vars_files", defaults.VarsFiles)
	v.SetDefault("vars", map[string]string{})
	v.SetDefault("vars_env_prefix", defaults.VarsEnvPrefix)
	v.SetDefault("poll_interval", defaults.PollInterval)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}
	setupLogging(cmd.ErrOrStderr(), cfg)

	if used := v.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", slog.String("path", used))
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// config returns the validated configuration for the current command.
func (a *app) config() (config.Config, error) {
	cfg := config.DefaultConfig()
	if err := a.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setupLogging(w io.Writer, cfg config.Config) {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
