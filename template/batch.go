package template

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ClassifyAll classifies lines concurrently with at most workers
// goroutines. Results are in the same order as lines. workers <= 0 means
// one goroutine per line.
//
// The only error is ctx.Err() when the context is cancelled before every
// line has been classified.
func (c *Classifier) ClassifyAll(ctx context.Context, lines []string, workers int) ([]Content, error) {
	results := make([]Content, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.Classify(line)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ClassifyAll is Classifier.ClassifyAll with the default classifier.
func ClassifyAll(ctx context.Context, lines []string, workers int) ([]Content, error) {
	return defaultClassifier.ClassifyAll(ctx, lines, workers)
}
