// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bannerscan/internal/platform/errors"
	"bannerscan/internal/platform/logx"
	"bannerscan/internal/platform/rate"
)

var (
	// ErrDeadlineExceeded is returned by Future.Await when a started task did
	// not finish within its deadline. The task itself keeps running.
	ErrDeadlineExceeded = errors.New("task deadline exceeded")

	// ErrNotStarted is returned by Future.Await when the task is still queued
	// and the pool has dispatched nothing for stallFactor deadlines.
	ErrNotStarted = errors.New("task never started: pool stalled")
)

// stallFactor scales the task deadline into the no-dispatch window after
// which a queued task is abandoned. With TaskDeadline set, a worker slot is
// reclaimed one deadline after its task started, so a healthy pool always
// dispatches within that window.
const stallFactor = 2

// Future states.
const (
	stateRunning int32 = iota
	stateFinished
	stateDetached
)

// Task is a unit of work run by the pool.
type Task interface {
	// Execute runs the task. ctx is canceled when the pool stops.
	Execute(ctx context.Context) error

	// Name identifies the task in logs.
	Name() string

	// Group is the key schedulers use to spread load (e.g. a host address).
	Group() string
}

// Scheduler decides the dispatch order of a batch of tasks.
type Scheduler interface {
	// Schedule returns a permutation of task indexes in dispatch order.
	Schedule(tasks []Task) []int

	// Name returns the scheduler name.
	Name() string
}

// Future tracks one submitted task.
type Future struct {
	task    Task
	pool    *WorkerPool
	started chan struct{}
	done    chan struct{}
	state   atomic.Int32

	// written by the worker before closing started/done
	startedAt time.Time
	duration  time.Duration
	err       error
}

func newFuture(task Task, pool *WorkerPool) *Future {
	return &Future{
		task:    task,
		pool:    pool,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Task returns the submitted task.
func (f *Future) Task() Task { return f.task }

// Started is closed when a worker picks the task up.
func (f *Future) Started() <-chan struct{} { return f.started }

// Done is closed when the task has returned.
func (f *Future) Done() <-chan struct{} { return f.done }

// Err returns the task error. Only valid after Done is closed.
func (f *Future) Err() error { return f.err }

// Duration returns how long Execute ran. Only valid after Done is closed.
func (f *Future) Duration() time.Duration { return f.duration }

// Await waits for the task to complete. Once a worker has started the task
// the deadline is measured from that moment, so time spent queued behind a
// busy pool does not count against it. While the task is still queued, Await
// keeps waiting as long as the pool makes progress; if nothing is dispatched
// for stallFactor deadlines the task is given up with ErrNotStarted.
// A non-positive deadline waits indefinitely.
//
// Returns the task's own error on completion, ErrDeadlineExceeded or
// ErrNotStarted when the deadline passed first, or ctx.Err().
func (f *Future) Await(ctx context.Context, deadline time.Duration) error {
	if deadline <= 0 {
		select {
		case <-f.done:
			return f.err
		case <-ctx.Done():
			return f.finishedOr(ctx.Err())
		}
	}

	if err := f.awaitStart(ctx, deadline); err != nil {
		return f.finishedOr(err)
	}

	remaining := time.Until(f.startedAt.Add(deadline))
	if remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()

		select {
		case <-f.done:
			return f.err
		case <-timer.C:
		case <-ctx.Done():
			return f.finishedOr(ctx.Err())
		}
	}

	return f.finishedOr(ErrDeadlineExceeded)
}

// awaitStart blocks until a worker picks the task up, checking for a stalled
// pool once per deadline.
func (f *Future) awaitStart(ctx context.Context, deadline time.Duration) error {
	select {
	case <-f.started:
		return nil
	default:
	}

	ticker := time.NewTicker(deadline)
	defer ticker.Stop()

	for {
		select {
		case <-f.started:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if f.pool != nil && f.pool.stalled(stallFactor*deadline) {
				return ErrNotStarted
			}
		}
	}
}

// finishedOr prefers a completed result over the given failure when both are ready.
func (f *Future) finishedOr(err error) error {
	select {
	case <-f.done:
		return f.err
	default:
		return err
	}
}

// WorkerPool runs tasks on a fixed number of goroutines fed by an
// unbounded backlog.
//
// A task still running TaskDeadline after it started is detached: its worker
// slot goes to a fresh worker and the old goroutine exits once the task
// returns. Stop never waits for detached or running tasks.
type WorkerPool struct {
	workers      int
	taskDeadline time.Duration
	scheduler    Scheduler
	limiter      *rate.Limiter
	logger       logx.Logger

	taskQueue chan *Future

	// Control
	wg       sync.WaitGroup // attached workers and feeders
	ctx      context.Context
	cancel   context.CancelFunc
	started  atomic.Bool
	stopOnce sync.Once
	nextID   atomic.Int64

	mu       sync.Mutex
	inFlight map[*Future]struct{}
	stopping bool

	// Progress, read by queued futures to tell a busy pool from a stuck one
	lastDispatch atomic.Int64 // unix nanos
	pacing       atomic.Int64 // workers waiting for a rate token

	// Counters
	submitted atomic.Int64
	running   atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
	detached  atomic.Int64
}

// WorkerPoolConfig configures the worker pool.
type WorkerPoolConfig struct {
	Workers   int
	Scheduler Scheduler

	// TaskDeadline, when positive, detaches a task still running that long
	// after it started and hands its slot to a replacement worker.
	TaskDeadline time.Duration

	// Limiter paces dispatch across all workers; nil means unlimited.
	// Time spent waiting for a token happens before the task is started.
	Limiter *rate.Limiter

	Logger logx.Logger
}

// NewWorkerPool creates a pool. Workers defaults to 1 and Scheduler to FIFO.
func NewWorkerPool(cfg WorkerPoolConfig) *WorkerPool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewFIFOScheduler()
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:      cfg.Workers,
		taskDeadline: cfg.TaskDeadline,
		scheduler:    cfg.Scheduler,
		limiter:      cfg.Limiter,
		logger:       cfg.Logger.With("component", "worker-pool"),
		taskQueue:    make(chan *Future),
		ctx:          ctx,
		cancel:       cancel,
		inFlight:     make(map[*Future]struct{}),
	}
}

// Start launches the workers. Calling it more than once has no effect.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		return
	}

	wp.logger.Debug("starting worker pool", "workers", wp.workers, "scheduler", wp.scheduler.Name())
	wp.lastDispatch.Store(time.Now().UnixNano())

	for i := 0; i < wp.workers; i++ {
		wp.spawn()
	}
}

func (wp *WorkerPool) spawn() {
	id := int(wp.nextID.Add(1)) - 1
	wp.wg.Add(1)
	go wp.worker(id)
}

// worker releases its wg slot on exit, unless the slot was already handed
// over by detach.
func (wp *WorkerPool) worker(id int) {
	for {
		select {
		case <-wp.ctx.Done():
			wp.wg.Done()
			return
		case f := <-wp.taskQueue:
			wp.pacing.Add(1)
			err := wp.limiter.Wait(wp.ctx)
			wp.pacing.Add(-1)

			// Wait fails only once the pool is stopping. Both select cases may
			// be ready after Stop; never start work then.
			if err != nil || wp.ctx.Err() != nil || !wp.track(f) {
				wp.wg.Done()
				return
			}
			if !wp.executeTask(id, f) {
				return
			}
		}
	}
}

// track registers f as in flight. It refuses once Stop has begun.
func (wp *WorkerPool) track(f *Future) bool {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.stopping {
		return false
	}
	wp.inFlight[f] = struct{}{}
	return true
}

func (wp *WorkerPool) untrack(f *Future) {
	wp.mu.Lock()
	delete(wp.inFlight, f)
	wp.mu.Unlock()
}

// executeTask runs f and reports whether the worker still owns its slot.
func (wp *WorkerPool) executeTask(workerID int, f *Future) bool {
	f.startedAt = time.Now()
	wp.lastDispatch.Store(f.startedAt.UnixNano())
	close(f.started)

	var reaper *time.Timer
	if wp.taskDeadline > 0 {
		reaper = time.AfterFunc(wp.taskDeadline, func() { wp.detach(f, true) })
	}

	wp.running.Add(1)
	err := wp.safeExecute(f.task)
	wp.running.Add(-1)
	wp.completed.Add(1)

	if reaper != nil {
		reaper.Stop()
	}

	f.duration = time.Since(f.startedAt)
	f.err = err
	close(f.done)

	attached := f.state.CompareAndSwap(stateRunning, stateFinished)
	wp.untrack(f)

	wp.logger.Debug("task completed",
		"worker_id", workerID,
		"task", f.task.Name(),
		"duration_ms", f.duration.Milliseconds(),
		"error", err != nil,
		"detached", !attached,
	)
	return attached
}

// detach releases the slot of a worker whose task is still running. With
// replace set, and unless the pool is stopping, a new worker takes the slot.
func (wp *WorkerPool) detach(f *Future, replace bool) {
	if !f.state.CompareAndSwap(stateRunning, stateDetached) {
		return
	}
	wp.untrack(f)
	wp.detached.Add(1)

	// Add before Done so the counter never drops to zero in between.
	if replace && wp.ctx.Err() == nil {
		wp.spawn()
	}
	wp.wg.Done()

	wp.logger.Debug("task detached from its worker", "task", f.task.Name(), "replaced", replace)
}

// stalled reports whether nothing was dispatched for window and no worker is
// waiting on the rate limiter.
func (wp *WorkerPool) stalled(window time.Duration) bool {
	if wp.pacing.Load() > 0 {
		return false
	}
	last := time.Unix(0, wp.lastDispatch.Load())
	return time.Since(last) >= window
}

// safeExecute turns a panicking task into an error so a worker never dies.
func (wp *WorkerPool) safeExecute(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			wp.panicked.Add(1)
			err = errors.Wrapf(errors.ErrPanic, "task %s: %v", task.Name(), r)
			wp.logger.Warn("task panicked", "task", task.Name(), "panic", fmt.Sprint(r))
		}
	}()
	return task.Execute(wp.ctx)
}

// Submit enqueues tasks without blocking and returns one Future per task in
// submission order. Dispatch order follows the scheduler.
func (wp *WorkerPool) Submit(tasks []Task) []*Future {
	futures := make([]*Future, len(tasks))
	for i, t := range tasks {
		futures[i] = newFuture(t, wp)
	}
	if len(tasks) == 0 {
		return futures
	}

	order := wp.scheduler.Schedule(tasks)
	wp.submitted.Add(int64(len(tasks)))

	wp.logger.Debug("submitting tasks", "total", len(tasks), "scheduler", wp.scheduler.Name())

	// The feeder is the backlog: it blocks on an idle worker, not the caller.
	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		for _, idx := range order {
			select {
			case wp.taskQueue <- futures[idx]:
			case <-wp.ctx.Done():
				return
			}
		}
	}()

	return futures
}

// Stop cancels the pool context and waits for idle workers and feeders to
// exit. Tasks still running observe the cancellation through their ctx but
// are not waited for: they are detached and their goroutines exit when the
// tasks return. Tasks never dispatched are discarded.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		wp.logger.Debug("stopping worker pool", "running", wp.running.Load())

		wp.mu.Lock()
		wp.stopping = true
		running := make([]*Future, 0, len(wp.inFlight))
		for f := range wp.inFlight {
			running = append(running, f)
		}
		wp.mu.Unlock()

		wp.cancel()
		for _, f := range running {
			wp.detach(f, false)
		}
		wp.wg.Wait()

		wp.logger.Debug("worker pool stopped",
			"completed", wp.completed.Load(),
			"detached", wp.detached.Load(),
		)
	})
}

// Stats returns a snapshot of pool counters.
func (wp *WorkerPool) Stats() WorkerPoolStats {
	return WorkerPoolStats{
		Workers:       wp.workers,
		SchedulerName: wp.scheduler.Name(),
		Submitted:     wp.submitted.Load(),
		Running:       wp.running.Load(),
		Completed:     wp.completed.Load(),
		Panicked:      wp.panicked.Load(),
		Detached:      wp.detached.Load(),
	}
}

// WorkerPoolStats holds pool counters.
type WorkerPoolStats struct {
	Workers       int
	SchedulerName string
	Submitted     int64
	Running       int64
	Completed     int64
	Panicked      int64
	Detached      int64
}
