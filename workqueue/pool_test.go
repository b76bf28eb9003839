package workqueue_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sparta/sparta/workqueue"
)

func TestPoolRunsSingleTask(t *testing.T) {
	p := workqueue.NewPool(4)
	defer p.Close()

	var ran int32
	p.PushTask(func(ctx *workqueue.TaskContext) {
		atomic.StoreInt32(&ran, 1)
	})
	p.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&ran))
}

// TestPoolBinaryFanOut spawns a depth-D binary tree of self-replicating
// tasks via PushTask, exercising 2^(D+1)-1 total tasks fanned out across
// however many workers happen to steal them.
func TestPoolBinaryFanOut(t *testing.T) {
	const depth = 6
	want := int32(1<<(depth+1) - 1)

	p := workqueue.NewPool(8)
	defer p.Close()

	var count int32
	var spawn func(ctx *workqueue.TaskContext, level int)
	spawn = func(ctx *workqueue.TaskContext, level int) {
		atomic.AddInt32(&count, 1)
		if level == 0 {
			return
		}
		ctx.PushTask(func(ctx *workqueue.TaskContext) { spawn(ctx, level-1) })
		ctx.PushTask(func(ctx *workqueue.TaskContext) { spawn(ctx, level-1) })
	}

	p.PushTask(func(ctx *workqueue.TaskContext) { spawn(ctx, depth) })
	p.Wait()

	assert.Equal(t, want, atomic.LoadInt32(&count))
}

func TestPoolManyIndependentTasks(t *testing.T) {
	p := workqueue.NewPool(4)
	defer p.Close()

	const n = 500
	var count int32
	for i := 0; i < n; i++ {
		p.PushTask(func(ctx *workqueue.TaskContext) {
			atomic.AddInt32(&count, 1)
		})
	}
	p.Wait()

	assert.EqualValues(t, n, atomic.LoadInt32(&count))
}

// TestPoolSurvivesPanickingTask confirms a single task's panic is
// recovered without taking down the worker that ran it, and the pool
// keeps servicing later work.
func TestPoolSurvivesPanickingTask(t *testing.T) {
	p := workqueue.NewPool(2)
	defer p.Close()

	p.PushTask(func(ctx *workqueue.TaskContext) {
		panic("kaboom")
	})
	p.Wait()

	var ran int32
	p.PushTask(func(ctx *workqueue.TaskContext) {
		atomic.StoreInt32(&ran, 1)
	})
	p.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&ran))
}

func TestPoolWaitIsIdempotent(t *testing.T) {
	p := workqueue.NewPool(3)
	defer p.Close()

	var count int32
	for i := 0; i < 10; i++ {
		p.PushTask(func(ctx *workqueue.TaskContext) {
			atomic.AddInt32(&count, 1)
		})
	}
	p.Wait()
	p.Wait()

	assert.EqualValues(t, 10, atomic.LoadInt32(&count))
}
