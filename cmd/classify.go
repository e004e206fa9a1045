package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/linetmpl/config"
	"github.com/randalmurphal/linetmpl/report"
	"github.com/randalmurphal/linetmpl/source"
	"github.com/randalmurphal/linetmpl/template"
)

func newClassifyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Report the classification of each template line",
		Long: `Classify reads every line from the given file, or stdin, and reports what
each line is: literal, variable (with its head, variable and tail), tag
(for or if) or unrecognized. Nothing is rendered.

Lines are classified in parallel; --workers bounds the number of
goroutines (0 means one per line). Output order always follows input order.

Examples:
  linetmpl classify page.tmpl
  linetmpl classify page.tmpl --format yaml --match keyword
  cat page.tmpl | linetmpl classify --format text`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			return runClassify(cmd, in, cfg)
		},
	}

	cmd.Flags().StringP("format", "f", report.FormatJSON, "output format (json, yaml, text)")
	cmd.Flags().String("match", "substring", "tag keyword matching (substring, keyword)")
	cmd.Flags().IntP("workers", "w", 0, "maximum parallel classifiers (0 = one per line)")

	return cmd
}

func runClassify(cmd *cobra.Command, in io.Reader, cfg config.Config) error {
	lines, err := source.ReadAll(in)
	if err != nil {
		return err
	}

	mode, _ := template.ParseMatchMode(cfg.MatchMode)
	classifier := template.NewClassifier(template.WithMatchMode(mode))

	results, err := classifier.ClassifyAll(cmd.Context(), lines, cfg.Workers)
	if err != nil {
		return err
	}

	return writeClassified(cmd.OutOrStdout(), cfg.Format, lines, results)
}

func writeClassified(out io.Writer, format string, lines []string, results []template.Content) error {
	sink, err := report.NewSink(format, out)
	if err != nil {
		return err
	}

	for i, content := range results {
		rec := report.NewRecord(i+1, lines[i], content)
		if isText(format) {
			rec.Output = describe(i+1, content)
		}
		if err := sink.Write(rec); err != nil {
			return err
		}
	}
	return sink.Flush()
}

// describe is the one-line text form of a classification.
func describe(n int, c template.Content) string {
	switch c.Type {
	case template.TypeTag:
		return fmt.Sprintf("%d\ttag\t%s", n, c.Tag)
	case template.TypeVariable:
		return fmt.Sprintf("%d\tvariable\t%q", n, c.Expression.Variable)
	default:
		return fmt.Sprintf("%d\t%s", n, c.Type)
	}
}
