// Package batch runs many independent cluster scans on a bounded worker pool.
//
// Each Job pairs a read-only matrix with finder options. A Runner executes
// jobs on an ants pool, records Prometheus metrics per job and returns the
// results in job order. A failing job never aborts its siblings; failures
// are combined into one error with multierr.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/katalvlaran/primecluster/finder"
	"github.com/katalvlaran/primecluster/logutil"
	"github.com/katalvlaran/primecluster/matchmatrix"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "primecluster"

var (
	// ErrInvalidWorkers indicates Config.Workers < 1.
	ErrInvalidWorkers = errors.New("batch: workers must be >= 1")
	// ErrJobPanicked wraps a panic recovered from a job.
	ErrJobPanicked = errors.New("batch: job panicked")
)

// Config sizes a Runner.
type Config struct {
	Workers   int
	Namespace string
}

// Job is one independent scan.
type Job struct {
	Name    string
	Matrix  matchmatrix.Matrix
	Options []finder.Option
}

// Result is the outcome of one Job.
type Result struct {
	Name     string           `json:"name"`
	Clusters []finder.Cluster `json:"clusters"`
	Err      error            `json:"-"`
	Error    string           `json:"error,omitempty"`
	Duration time.Duration    `json:"duration"`
}

// Report collects every Result of one Run, in job order.
type Report struct {
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// Option configures a Runner.
type Option func(*Runner)

// WithRegistry registers the metrics with reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(r *Runner) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithLogger sets the runner logger. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// Runner executes Jobs on a fixed-size goroutine pool. Run may be called
// repeatedly until Release.
type Runner struct {
	pool     *ants.Pool
	registry *prometheus.Registry
	metrics  *Metrics
	log      *zap.Logger
}

// NewRunner builds the pool and registers the metrics.
//
// Errors: ErrInvalidWorkers, a pool construction error, or a metric
// registration error (for example a duplicate registration on a shared registry).
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers=%d: %w", cfg.Workers, ErrInvalidWorkers)
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	r := &Runner{log: zap.NewNop()}
	for _, fn := range opts {
		if fn != nil {
			fn(r)
		}
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	m, err := newMetrics(cfg.Namespace, r.registry)
	if err != nil {
		return nil, fmt.Errorf("batch: register metrics: %w", err)
	}
	r.metrics = m

	pool, err := ants.NewPool(cfg.Workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("batch: new pool: %w", err)
	}
	r.pool = pool

	return r, nil
}

// Metrics returns the collectors updated by Run.
func (r *Runner) Metrics() *Metrics { return r.metrics }

// Registry returns the registry holding the metrics.
func (r *Runner) Registry() *prometheus.Registry { return r.registry }

// Release stops the pool. The Runner must not be used afterwards.
func (r *Runner) Release() { r.pool.Release() }

// Run executes jobs and waits for all submitted ones to finish. Once ctx is
// done no further jobs are submitted; those jobs, and running jobs that
// observe the cancellation between clusters, report the context error.
// The returned error combines every per-job failure and is nil when all
// jobs succeeded.
func (r *Runner) Run(ctx context.Context, jobs []Job) (Report, error) {
	rep := Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(jobs)),
	}
	log := r.log.With(zap.String("run_id", rep.RunID))
	log.Info("batch started", zap.Int("jobs", len(jobs)), zap.Int("workers", r.pool.Cap()))
	start := time.Now()

	var wg sync.WaitGroup
	for i, job := range jobs {
		rep.Results[i].Name = job.Name
		if err := ctx.Err(); err != nil {
			rep.Results[i].Err = err
			continue
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			rep.Results[i] = r.runJob(ctx, job)
		})
		if err != nil {
			wg.Done()
			rep.Results[i].Err = fmt.Errorf("submit: %w", err)
		}
	}
	wg.Wait()

	var errs error
	for i := range rep.Results {
		res := &rep.Results[i]
		if res.Err == nil {
			r.metrics.Jobs.WithLabelValues(StatusOK).Inc()
			continue
		}
		res.Error = res.Err.Error()
		rep.Failed++
		status := StatusFailed
		if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
			status = StatusCanceled
		}
		r.metrics.Jobs.WithLabelValues(status).Inc()
		log.Warn("job failed", zap.String("job", res.Name), zap.String("status", status), zap.Error(res.Err))
		errs = multierr.Append(errs, fmt.Errorf("job %q: %w", res.Name, res.Err))
	}
	log.Info("batch finished",
		zap.Int("failed", rep.Failed),
		logutil.Elapsed(start),
	)

	return rep, errs
}

// runJob scans one matrix, checking ctx between clusters.
func (r *Runner) runJob(ctx context.Context, job Job) (res Result) {
	res.Name = job.Name
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Clusters = nil
			res.Err = fmt.Errorf("%w: %v", ErrJobPanicked, p)
		}
		res.Duration = time.Since(start)
		r.metrics.Duration.Observe(res.Duration.Seconds())
	}()

	f, err := finder.New(job.Matrix, job.Options...)
	if err != nil {
		res.Err = err
		return res
	}

	out := make([]finder.Cluster, 0)
	for c, err := range f.Clusters() {
		if err != nil {
			res.Err = err
			return res
		}
		if err = ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		out = append(out, c)
	}
	res.Clusters = out
	r.metrics.Clusters.Add(float64(len(out)))

	return res
}
