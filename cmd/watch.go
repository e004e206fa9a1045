package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/linetmpl/report"
	"github.com/randalmurphal/linetmpl/source"
	"github.com/randalmurphal/linetmpl/template"
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		ctxFlags  contextFlags
		fromStart bool
		poll      bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Render lines as they are appended to a file",
		Long: `Watch follows a template file like tail -f and renders each line appended
to it, until interrupted. With --from-start the existing content is
rendered first.

Lines that fail to render are logged and skipped; watching continues.
File system events are used when available; --poll checks the file every
--poll-interval instead, which also works on network file systems.

Examples:
  linetmpl watch page.tmpl --set name=Ujjawal
  linetmpl watch page.tmpl --from-start --format json
  linetmpl watch /mnt/share/page.tmpl --poll --poll-interval 500ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			vars, err := ctxFlags.build(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := []source.TailOption{
				source.WithFromStart(fromStart),
				source.WithPollInterval(cfg.PollInterval),
			}
			if poll {
				opts = append(opts, source.WithPolling())
			}
			tailer := source.NewTailer(args[0], opts...)
			lines, err := tailer.Tail(ctx)
			if err != nil {
				return err
			}
			slog.Info("watching", slog.String("path", tailer.Path()))

			engine := template.NewEngine(cfg.EngineOptions()...)
			sink, err := report.NewSink(cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			n := 0
			for line := range lines {
				n++
				rendered, content, renderErr := engine.RenderLine(line, vars)
				if renderErr != nil {
					slog.Warn("line failed to render", slog.Int("line", n), slog.Any("error", renderErr))
					if isText(cfg.Format) {
						continue
					}
				}
				rec := report.NewRecord(n, line, content).WithOutput(rendered, renderErr)
				if err := sink.Write(rec); err != nil {
					return err
				}
				if err := sink.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", report.FormatText, "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "render the existing content before following")
	cmd.Flags().BoolVar(&poll, "poll", false, "poll the file instead of using file system events")
	cmd.Flags().Duration("poll-interval", 0, "polling interval, used with --poll or when file events are unavailable (0 = config default)")
	registerEngineFlags(cmd)
	ctxFlags.register(cmd)

	return cmd
}
