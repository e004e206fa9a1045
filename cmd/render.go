package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/linetmpl/config"
	"github.com/randalmurphal/linetmpl/report"
	"github.com/randalmurphal/linetmpl/source"
	"github.com/randalmurphal/linetmpl/template"
	"github.com/randalmurphal/linetmpl/vars"
)

// contextFlags are the flags that shape the variable context.
type contextFlags struct {
	set  []string
	demo bool
}

func (f *contextFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "set a variable (key=value, repeatable)")
	cmd.Flags().BoolVar(&f.demo, "demo-vars", false, "start from the demonstration context (name, city)")
	cmd.Flags().StringSlice("vars-file", nil, "YAML, TOML or JSON variables file (repeatable)")
}

// build merges the demonstration context, the configured sources and --set.
func (f *contextFlags) build(cfg config.Config) (vars.Context, error) {
	configured, err := cfg.Context()
	if err != nil {
		return nil, err
	}
	set, err := vars.ParsePairs(f.set)
	if err != nil {
		return nil, err
	}

	base := vars.Context{}
	if f.demo {
		base = vars.Default()
	}
	return base.Merge(configured, set), nil
}

func registerEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String("match", "substring", "tag keyword matching (substring, keyword)")
	cmd.Flags().String("missing", "empty", "missing variable policy (empty, placeholder, error)")
	cmd.Flags().Bool("trim", true, "trim whitespace around variable names before lookup")
}

func newRenderCommand(a *app) *cobra.Command {
	var ctxFlags contextFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render template lines from a file or stdin",
		Long: `Render reads template lines from the given file, or stdin when no file is
given, and writes one output line per input line.

Literal lines are copied unchanged. {{variable}} lines have the variable
replaced from the context. Tag lines print a "not implemented" notice and
unrecognized lines print "Unrecognized input".

Examples:
  linetmpl render page.tmpl --vars-file vars.yaml
  echo 'Hi {{name}}!' | linetmpl render --set name=Ujjawal
  linetmpl render page.tmpl --missing error --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			ctx, err := ctxFlags.build(cfg)
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			return runRender(in, cmd.OutOrStdout(), cfg, ctx)
		},
	}

	cmd.Flags().StringP("format", "f", report.FormatText, "output format (text, json, yaml)")
	registerEngineFlags(cmd)
	ctxFlags.register(cmd)

	return cmd
}

// runRender renders every line of in to out.
//
// With text output the first failing line stops the run. Structured
// output records the error on the line and carries on, and the run fails
// at the end if any line did.
func runRender(in io.Reader, out io.Writer, cfg config.Config, ctx vars.Context) error {
	engine := template.NewEngine(cfg.EngineOptions()...)
	sink, err := report.NewSink(cfg.Format, out)
	if err != nil {
		return err
	}

	stopOnError := isText(cfg.Format)
	failed := 0

	sc := source.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		rendered, content, renderErr := engine.RenderLine(line, ctx)
		if renderErr != nil {
			if stopOnError {
				_ = sink.Flush()
				return fmt.Errorf("line %d: %w", sc.LineNumber(), renderErr)
			}
			failed++
			slog.Warn("line failed to render",
				slog.Int("line", sc.LineNumber()),
				slog.Any("error", renderErr))
		}

		rec := report.NewRecord(sc.LineNumber(), line, content).WithOutput(rendered, renderErr)
		if err := sink.Write(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		_ = sink.Flush()
		return err
	}
	if err := sink.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d line(s) failed to render: %w", failed, template.ErrMissingVariable)
	}
	return nil
}

func isText(format string) bool {
	return format == "" || strings.EqualFold(format, report.FormatText)
}

// openInput opens args[0], or stdin when there are no args.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open template file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
