// internal/core/usecases/coordinator.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/core/ports"
	"bannerscan/internal/platform/errors"
	"bannerscan/internal/platform/logx"
	"bannerscan/internal/platform/rate"
	"bannerscan/internal/platform/workerpool"
)

const (
	DefaultConcurrency     = 50
	DefaultPerTaskDeadline = 7 * time.Second
)

// Coordinator runs a prober over a batch of targets on a fixed-size worker
// pool and assembles the report.
type Coordinator struct {
	prober ports.Prober
	logger logx.Logger

	concurrency int
	deadline    time.Duration
	scheduler   workerpool.Scheduler
	limiter     *rate.Limiter
	observer    ports.ScanObserver
}

// CoordinatorOptions configures the coordinator.
type CoordinatorOptions struct {
	// Concurrency is the number of workers. Must be positive.
	Concurrency int

	// PerTaskDeadline bounds how long collection waits for one task, measured
	// from the moment a worker starts it. Must be positive.
	PerTaskDeadline time.Duration

	// Scheduler sets the dispatch order (FIFO when nil). Collection order is
	// always submission order.
	Scheduler workerpool.Scheduler

	// Limiter paces connection attempts across all workers. Nil disables
	// pacing. Waiting for a token does not count against PerTaskDeadline.
	Limiter *rate.Limiter

	Observer ports.ScanObserver
	Logger   logx.Logger
}

// NewCoordinator creates a coordinator. Options are validated by Scan.
func NewCoordinator(prober ports.Prober, opts CoordinatorOptions) *Coordinator {
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = ports.NopObserver{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = workerpool.NewFIFOScheduler()
	}

	return &Coordinator{
		prober:      prober,
		logger:      opts.Logger.With("component", "coordinator"),
		concurrency: opts.Concurrency,
		deadline:    opts.PerTaskDeadline,
		scheduler:   opts.Scheduler,
		limiter:     opts.Limiter,
		observer:    opts.Observer,
	}
}

// validate rejects configuration that would make the scan meaningless.
func (c *Coordinator) validate(targets []domain.Target) error {
	if c.prober == nil {
		return errors.Wrap(errors.ErrInvalidInput, "prober is required")
	}
	if c.concurrency <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidConcurrency, c.concurrency)
	}
	if c.deadline <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDeadline, c.deadline)
	}
	if len(targets) == 0 {
		return domain.ErrEmptyTargets
	}
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Scan probes every target and returns the report.
//
// Results appear in submission order. A task that does not finish within the
// per-task deadline, or that fails, is dropped from the report and counted in
// Dropped; it is never retried. The only errors are invalid configuration
// (before any work starts) and cancellation of ctx, in which case the partial
// report is returned along with an error wrapping ErrScanCanceled.
//
// A probe still running at its deadline keeps its goroutine but loses its
// worker slot to a replacement, so one hanging target cannot starve the rest.
// The worker pool is stopped before Scan returns; stopping cancels the context
// seen by probes still running without waiting for them.
func (c *Coordinator) Scan(ctx context.Context, targets []domain.Target) (*domain.ScanReport, error) {
	if err := c.validate(targets); err != nil {
		return nil, err
	}

	report := domain.NewScanReport(len(targets))

	c.logger.Info("starting scan",
		"targets", len(targets),
		"workers", c.concurrency,
		"deadline_ms", c.deadline.Milliseconds(),
		"scheduler", c.scheduler.Name(),
	)
	c.observer.ScanStarted(len(targets))

	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers:      min(c.concurrency, len(targets)),
		TaskDeadline: c.deadline,
		Scheduler:    c.scheduler,
		Limiter:      c.limiter,
		Logger:       c.logger,
	})
	pool.Start()

	tasks := make([]workerpool.Task, len(targets))
	for i, t := range targets {
		tasks[i] = NewProbeTask(c.prober, t)
	}
	futures := pool.Submit(tasks)

	scanErr := c.collect(ctx, futures, report)

	pool.Stop()
	report.Finalize()

	stats := report.Stats()
	c.logger.Info("scan completed",
		"submitted", report.Submitted,
		"results", report.Len(),
		"dropped", report.Dropped,
		"banners", stats[domain.OutcomeBanner],
		"timeouts", stats[domain.OutcomeTimeout],
		"unreachable", stats[domain.OutcomeUnreachable],
		"duration_ms", report.Duration().Milliseconds(),
	)
	c.observer.ScanFinished(report)

	return report, scanErr
}

// collect walks futures in submission order. After ctx is canceled every
// remaining task is dropped.
func (c *Coordinator) collect(ctx context.Context, futures []*workerpool.Future, report *domain.ScanReport) error {
	var scanErr error

	for _, f := range futures {
		task := f.Task().(*ProbeTask)

		if scanErr != nil {
			c.drop(report, task.Target(), scanErr)
			continue
		}

		err := f.Await(ctx, c.deadline)
		switch {
		case err == nil:
			res := task.Result()
			report.Add(res)
			c.observer.ResultCollected(res)
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			scanErr = fmt.Errorf("%w: %w", domain.ErrScanCanceled, err)
			c.logger.Warn("scan canceled", "collected", report.Len(), "remaining", len(futures)-report.Len()-report.Dropped)
			c.drop(report, task.Target(), scanErr)
		default:
			c.drop(report, task.Target(), err)
		}
	}

	return scanErr
}

func (c *Coordinator) drop(report *domain.ScanReport, target domain.Target, reason error) {
	report.Drop()
	err := fmt.Errorf("%w: %w", domain.ErrTaskAbandoned, reason)
	c.logger.Debug("task abandoned", "target", target.HostPort(), "reason", reason.Error())
	c.observer.TaskDropped(target, err)
}
