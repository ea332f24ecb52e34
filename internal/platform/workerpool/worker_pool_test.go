// internal/platform/workerpool/worker_pool_test.go
package workerpool

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bannerscan/internal/platform/errors"
	"bannerscan/internal/testutil"
)

type funcTask struct {
	name  string
	group string
	fn    func(ctx context.Context) error
}

func (t *funcTask) Execute(ctx context.Context) error { return t.fn(ctx) }
func (t *funcTask) Name() string                      { return t.name }
func (t *funcTask) Group() string                     { return t.group }

func sleepTask(name string, d time.Duration) *funcTask {
	return &funcTask{name: name, group: name, fn: func(ctx context.Context) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}}
}

func blockingTask(name string) *funcTask {
	return &funcTask{name: name, group: name, fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
}

// stuckTask ignores ctx and returns only once release is closed.
func stuckTask(name string, release <-chan struct{}) *funcTask {
	return &funcTask{name: name, group: name, fn: func(ctx context.Context) error {
		<-release
		return nil
	}}
}

func newTestPool(workers int) *WorkerPool {
	wp := NewWorkerPool(WorkerPoolConfig{Workers: workers})
	wp.Start()
	return wp
}

func TestWorkerPool_SubmitAndAwait(t *testing.T) {
	wp := newTestPool(4)
	defer wp.Stop()

	var ran atomic.Int32
	tasks := make([]Task, 20)
	for i := range tasks {
		tasks[i] = &funcTask{name: fmt.Sprintf("t%d", i), fn: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}}
	}

	futures := wp.Submit(tasks)
	testutil.AssertEqual(t, len(futures), 20, "one future per task")

	for i, f := range futures {
		testutil.AssertNoError(t, f.Await(context.Background(), time.Second), "Await")
		testutil.AssertEqual(t, f.Task(), tasks[i], "futures follow submission order")
	}
	testutil.AssertEqual(t, ran.Load(), int32(20), "every task ran")

	stats := wp.Stats()
	testutil.AssertEqual(t, stats.Submitted, int64(20), "submitted")
	testutil.AssertEqual(t, stats.Completed, int64(20), "completed")
}

func TestWorkerPool_TaskError(t *testing.T) {
	wp := newTestPool(1)
	defer wp.Stop()

	boom := errors.New("boom")
	futures := wp.Submit([]Task{&funcTask{name: "fail", fn: func(ctx context.Context) error { return boom }}})

	err := futures[0].Await(context.Background(), time.Second)
	testutil.AssertTrue(t, errors.Is(err, boom), "task error is returned")
	testutil.AssertTrue(t, errors.Is(futures[0].Err(), boom), "Err() after done")
}

func TestWorkerPool_PanicRecovered(t *testing.T) {
	wp := newTestPool(1)
	defer wp.Stop()

	futures := wp.Submit([]Task{
		&funcTask{name: "panics", fn: func(ctx context.Context) error { panic("kaboom") }},
		&funcTask{name: "after", fn: func(ctx context.Context) error { return nil }},
	})

	err := futures[0].Await(context.Background(), time.Second)
	testutil.AssertTrue(t, errors.Is(err, errors.ErrPanic), "panic becomes ErrPanic")
	testutil.AssertNoError(t, futures[1].Await(context.Background(), time.Second), "worker survives a panic")
	testutil.AssertEqual(t, wp.Stats().Panicked, int64(1), "panic counter")
}

func TestFuture_DeadlineExceeded(t *testing.T) {
	wp := newTestPool(1)
	defer wp.Stop()

	futures := wp.Submit([]Task{blockingTask("hang")})

	start := time.Now()
	err := futures[0].Await(context.Background(), 50*time.Millisecond)
	elapsed := time.Since(start)

	testutil.AssertTrue(t, errors.Is(err, ErrDeadlineExceeded), "deadline exceeded")
	testutil.AssertTrue(t, elapsed < 500*time.Millisecond, "Await returns close to the deadline")
}

func TestFuture_DeadlineStartsWhenTaskStarts(t *testing.T) {
	// One worker: the second task waits ~100ms in the queue, longer than its
	// 80ms deadline, but only runs for ~20ms once started.
	wp := newTestPool(1)
	defer wp.Stop()

	futures := wp.Submit([]Task{
		sleepTask("first", 100*time.Millisecond),
		sleepTask("second", 20*time.Millisecond),
	})

	testutil.AssertNoError(t, futures[0].Await(context.Background(), time.Second), "first")
	testutil.AssertNoError(t, futures[1].Await(context.Background(), 80*time.Millisecond), "queue time does not count")
}

func TestFuture_ParallelDeadlinesDoNotAccumulate(t *testing.T) {
	wp := newTestPool(3)
	defer wp.Stop()

	futures := wp.Submit([]Task{blockingTask("a"), blockingTask("b"), blockingTask("c")})

	start := time.Now()
	for _, f := range futures {
		err := f.Await(context.Background(), 60*time.Millisecond)
		testutil.AssertTrue(t, errors.Is(err, ErrDeadlineExceeded), "each one times out")
	}
	elapsed := time.Since(start)

	testutil.AssertTrue(t, elapsed < 150*time.Millisecond, "sequential awaits share the same wall-clock window")
}

func TestFuture_ContextCanceled(t *testing.T) {
	wp := newTestPool(1)
	defer wp.Stop()

	futures := wp.Submit([]Task{blockingTask("hang")})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := futures[0].Await(ctx, 0)
	testutil.AssertTrue(t, errors.Is(err, context.DeadlineExceeded), "caller ctx wins with no task deadline")
}

func TestWorkerPool_StopReleasesBlockedWorkers(t *testing.T) {
	wp := newTestPool(2)

	futures := wp.Submit([]Task{blockingTask("a"), blockingTask("b"), blockingTask("queued")})
	<-futures[0].Started()
	<-futures[1].Started()

	stopped := make(chan struct{})
	go func() {
		wp.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return")
	}

	select {
	case <-futures[0].Done():
	case <-time.After(time.Second):
		t.Fatal("running task did not observe cancellation")
	}
	testutil.AssertTrue(t, errors.Is(futures[0].Err(), context.Canceled), "running task saw cancellation")

	select {
	case <-futures[2].Started():
		t.Error("queued task should never start after Stop")
	default:
	}

	wp.Stop() // idempotent
}

func TestWorkerPool_Defaults(t *testing.T) {
	wp := NewWorkerPool(WorkerPoolConfig{})
	defer wp.Stop()

	stats := wp.Stats()
	testutil.AssertEqual(t, stats.Workers, 1, "default workers")
	testutil.AssertEqual(t, stats.SchedulerName, "fifo", "default scheduler")
	testutil.AssertEqual(t, len(wp.Submit(nil)), 0, "empty submit")
}

func TestWorkerPool_StopDoesNotWaitForStuckTask(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	wp := newTestPool(1)
	futures := wp.Submit([]Task{stuckTask("stuck", release)})
	<-futures[0].Started()

	stopped := make(chan struct{})
	go func() {
		wp.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop() waited for a task that ignores cancellation")
	}
	testutil.AssertEqual(t, wp.Stats().Detached, int64(1), "stuck task detached")
}

func TestWorkerPool_TaskDeadlineReplacesWorker(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	wp := NewWorkerPool(WorkerPoolConfig{Workers: 1, TaskDeadline: 50 * time.Millisecond})
	wp.Start()
	defer wp.Stop()

	futures := wp.Submit([]Task{
		stuckTask("stuck", release),
		sleepTask("next", 10*time.Millisecond),
		sleepTask("last", 10*time.Millisecond),
	})

	err := futures[0].Await(context.Background(), 50*time.Millisecond)
	testutil.AssertTrue(t, errors.Is(err, ErrDeadlineExceeded), "stuck task times out")

	elapsed := testutil.Elapsed(func() {
		testutil.AssertNoError(t, futures[1].Await(context.Background(), 50*time.Millisecond), "next")
		testutil.AssertNoError(t, futures[2].Await(context.Background(), 50*time.Millisecond), "last")
	})
	testutil.AssertWithin(t, elapsed, 500*time.Millisecond, "queued tasks run on the replacement worker")
	testutil.AssertEqual(t, wp.Stats().Detached, int64(1), "detached")
}

func TestFuture_NotStartedWhenPoolStalls(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	// No TaskDeadline: the only worker stays on the stuck task.
	wp := newTestPool(1)
	defer wp.Stop()

	futures := wp.Submit([]Task{stuckTask("stuck", release), sleepTask("queued", time.Millisecond)})
	<-futures[0].Started()

	deadline := 40 * time.Millisecond
	var err error
	elapsed := testutil.Elapsed(func() {
		err = futures[1].Await(context.Background(), deadline)
	})

	testutil.AssertTrue(t, errors.Is(err, ErrNotStarted), "queued task given up")
	testutil.AssertWithin(t, elapsed, stallFactor*deadline+500*time.Millisecond, "bounded wait for a stalled pool")
}
