// Package workqueue provides the two styles of concurrent task
// execution spec.md 4.H calls for: ThreadPool, a thin error-propagating
// fan-out for a fixed batch of independent jobs, and Pool, a
// long-lived work-stealing scheduler for jobs that themselves spawn
// more jobs.
package workqueue

import (
	"context"

	"github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"

	"github.com/go-sparta/sparta/metrics"
)

// ThreadPool runs a batch of independent, context-cancellable jobs
// concurrently and reports the first error any of them returns,
// cancelling the rest (original_source's ThreadPool.h, adapted onto
// golang.org/x/sync/errgroup rather than a hand-rolled future/promise
// pair — errgroup already is exactly that pattern in idiomatic Go).
type ThreadPool struct {
	g      *errgroup.Group
	ctx    context.Context
	log    log15.Logger
	active metrics.GaugeMeter
	failed metrics.CountMeter
}

// NewThreadPool returns a ThreadPool whose jobs observe ctx's
// cancellation (including cancellation triggered by a sibling job's
// failure).
func NewThreadPool(ctx context.Context) *ThreadPool {
	g, gctx := errgroup.WithContext(ctx)
	return &ThreadPool{
		g:      g,
		ctx:    gctx,
		log:    log15.New("pkg", "workqueue"),
		active: metrics.Gauge("threadpool_active_jobs"),
		failed: metrics.Counter("threadpool_failed_jobs"),
	}
}

// RunAsync schedules f to run on its own goroutine. A panic inside f is
// recovered, logged, and turned into the error Join eventually reports,
// rather than taking down the whole pool.
func (p *ThreadPool) RunAsync(f func(ctx context.Context) error) {
	p.g.Go(func() (err error) {
		p.active.Add(1)
		defer p.active.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("threadpool job panicked", "recovered", r)
				err = panicError{r}
			}
			if err != nil {
				p.failed.Add(1)
			}
		}()
		return f(p.ctx)
	})
}

// Join blocks until every job scheduled with RunAsync has returned,
// and reports the first non-nil error among them, if any.
func (p *ThreadPool) Join() error {
	return p.g.Wait()
}

type panicError struct{ recovered any }

func (e panicError) Error() string {
	return "workqueue: recovered panic in job"
}

// Unwrap lets errors.Is/As inspect the originally recovered value when
// it happens to itself be an error.
func (e panicError) Unwrap() error {
	if err, ok := e.recovered.(error); ok {
		return err
	}
	return nil
}
