package workqueue

import (
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/inconshreveable/log15"

	"github.com/go-sparta/sparta/co"
	"github.com/go-sparta/sparta/metrics"
)

// Task is a unit of work run by a Pool. It receives a TaskContext so it
// can push further work onto the same pool without going through the
// pool's external injection path.
type Task func(ctx *TaskContext)

// TaskContext is handed to a running Task, scoping PushTask to the
// worker currently executing it — original_source's work-stealing
// queue only allows enqueuing new work from inside a task already
// running on the pool, never from an arbitrary outside goroutine (that
// goes through Pool.PushTask instead).
type TaskContext struct {
	pool   *Pool
	worker *worker
}

// PushTask enqueues t onto the calling worker's own deque. The owner pops
// that deque LIFO, so t is the next task the worker takes from it; idle
// siblings steal from the other, oldest end.
func (c *TaskContext) PushTask(t Task) {
	c.worker.push(t)
}

type worker struct {
	pool  *Pool
	mu    sync.Mutex
	tasks []Task
}

func (w *worker) push(t Task) {
	w.mu.Lock()
	w.tasks = append(w.tasks, t)
	w.mu.Unlock()

	w.pool.mu.Lock()
	w.pool.cond.Broadcast()
	w.pool.mu.Unlock()
}

// popOwn pops from the bottom of the deque (LIFO), keeping a worker's
// own recently-pushed work cache-hot.
func (w *worker) popOwn() (Task, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.tasks)
	if n == 0 {
		return nil, false
	}
	t := w.tasks[n-1]
	w.tasks = w.tasks[:n-1]
	return t, true
}

// steal pops from the top of the deque (FIFO), taking a victim's oldest
// work so thief and victim are unlikely to immediately collide again.
func (w *worker) steal() (Task, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.tasks) == 0 {
		return nil, false
	}
	t := w.tasks[0]
	w.tasks = w.tasks[1:]
	return t, true
}

// Pool is a fixed-size work-stealing scheduler: each worker drains its
// own deque first, then tries to steal from a random permutation of its
// siblings, then falls back to the pool's shared injection queue before
// going idle. When every worker is idle and the injection queue is
// empty, the pool is quiescent and Wait returns.
type Pool struct {
	mu        sync.Mutex
	cond      *sync.Cond
	workers   []*worker
	injector  []Task
	idle      int
	stopped   bool
	quiescent co.Signal

	goes co.Goes
	log  log15.Logger

	processed metrics.CountMeter
	stolen    metrics.CountMeter
	active    metrics.GaugeMeter
}

// NewPool starts a pool of n workers, or runtime.GOMAXPROCS(0) workers
// if n <= 0.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers:   make([]*worker, n),
		log:       log15.New("pkg", "workqueue"),
		processed: metrics.Counter("workqueue_tasks_processed"),
		stolen:    metrics.Counter("workqueue_tasks_stolen"),
		active:    metrics.Gauge("workqueue_active_workers"),
	}
	p.cond = sync.NewCond(&p.mu)
	for i := range p.workers {
		p.workers[i] = &worker{pool: p}
	}
	for i := range p.workers {
		idx := i
		p.goes.Go(func() { p.runWorker(idx) })
	}
	return p
}

// PushTask enqueues t onto the pool's shared injection queue, for
// submission from outside any already-running task.
func (p *Pool) PushTask(t Task) {
	p.mu.Lock()
	p.injector = append(p.injector, t)
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Wait blocks until the pool has no task running or queued anywhere —
// own deques, steal targets, and the injection queue all empty.
func (p *Pool) Wait() {
	for {
		p.mu.Lock()
		if p.idle == len(p.workers) && len(p.injector) == 0 {
			p.mu.Unlock()
			return
		}
		w := p.quiescent.NewWaiter()
		p.mu.Unlock()
		<-w.C()
	}
}

// Close stops every worker once it next finds no work, and waits for
// them to return. Tasks already running are allowed to finish; Close
// does not cancel them.
func (p *Pool) Close() {
	p.mu.Lock()
	p.stopped = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.goes.Wait()
}

func (p *Pool) runWorker(idx int) {
	self := p.workers[idx]
	ctx := &TaskContext{pool: p, worker: self}

	for {
		t, ok := self.popOwn()
		if !ok {
			t, ok = p.stealFrom(idx)
		}
		if !ok {
			p.mu.Lock()
			if p.stopped {
				p.mu.Unlock()
				return
			}
			if n := len(p.injector); n > 0 {
				t = p.injector[n-1]
				p.injector = p.injector[:n-1]
				ok = true
				p.mu.Unlock()
			} else {
				p.idle++
				if p.idle == len(p.workers) {
					p.quiescent.Broadcast()
				}
				p.cond.Wait()
				p.idle--
				stopped := p.stopped
				p.mu.Unlock()
				if stopped {
					return
				}
				continue
			}
		}
		p.runTask(t, ctx)
	}
}

func (p *Pool) stealFrom(idx int) (Task, bool) {
	n := len(p.workers)
	if n <= 1 {
		return nil, false
	}
	for _, j := range rand.Perm(n) {
		if j == idx {
			continue
		}
		if t, ok := p.workers[j].steal(); ok {
			p.stolen.Add(1)
			return t, true
		}
	}
	return nil, false
}

func (p *Pool) runTask(t Task, ctx *TaskContext) {
	p.active.Add(1)
	defer p.active.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("workqueue task panicked", "recovered", r)
		}
	}()
	t(ctx)
	p.processed.Add(1)
}
