// Package runner evaluates batches of metric jobs against one model with
// bounded parallelism. The core stays synchronous; every goroutine here
// works on its own query and result slot.
package runner

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fairembed/fairembed/metrics"
	"github.com/fairembed/fairembed/model"
	"github.com/fairembed/fairembed/query"
)

var ErrNilMetric = errors.New("job metric must not be nil")

const defaultWorkers = 4

// Job pairs a query with the metric and options used to evaluate it.
type Job struct {
	Query   *query.Query
	Metric  metrics.Metric
	Options []metrics.Option
}

// Option configures a batch run.
type Option func(*config)

type config struct {
	workers int
}

// WithWorkers bounds how many jobs run at once. Values below 1 fall back
// to a single worker.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// Run evaluates every job against m and returns the results in job order,
// regardless of completion order. Degraded (NaN) results are normal values;
// the first fatal error cancels the remaining jobs and is returned.
func Run(ctx context.Context, m model.Model, jobs []Job, opts ...Option) ([]metrics.Result, error) {
	cfg := config{workers: defaultWorkers}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}

	results := make([]metrics.Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if job.Metric == nil {
				return fmt.Errorf("job %d: %w", i, ErrNilMetric)
			}
			res, err := job.Metric.Run(job.Query, m, job.Options...)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Metric.ShortName(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
