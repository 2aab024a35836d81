// Package parallel runs independent per-item work on a bounded number of
// goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Workers int // Maximum concurrent calls. Zero or less means runtime.NumCPU().
}

// DefaultConfig returns one worker per CPU.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Map calls f(ctx, i) for i in [0, n) and returns the results in index
// order. The first error cancels the context passed to the remaining
// calls and is returned; calls not yet started are skipped.
//
// With one worker, or fewer than two items, f runs sequentially on the
// calling goroutine.
func Map[T any](ctx context.Context, n int, cfg Config, f func(ctx context.Context, i int) (T, error)) ([]T, error) {
	out := make([]T, n)

	if cfg.workers() == 1 || n < 2 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, err := f(ctx, i)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := f(gctx, i)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
