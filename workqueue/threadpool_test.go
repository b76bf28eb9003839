package workqueue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sparta/sparta/workqueue"
)

func TestThreadPoolRunsAllJobs(t *testing.T) {
	p := workqueue.NewThreadPool(context.Background())
	var n int64
	for i := 0; i < 20; i++ {
		p.RunAsync(func(ctx context.Context) error {
			atomic.AddInt64(&n, 1)
			return nil
		})
	}
	assert.NoError(t, p.Join())
	assert.EqualValues(t, 20, atomic.LoadInt64(&n))
}

func TestThreadPoolPropagatesFirstError(t *testing.T) {
	p := workqueue.NewThreadPool(context.Background())
	boom := errors.New("boom")
	p.RunAsync(func(ctx context.Context) error { return nil })
	p.RunAsync(func(ctx context.Context) error { return boom })
	err := p.Join()
	assert.ErrorIs(t, err, boom)
}

func TestThreadPoolCancelsSiblingsOnError(t *testing.T) {
	p := workqueue.NewThreadPool(context.Background())
	boom := errors.New("boom")
	cancelled := make(chan struct{})

	p.RunAsync(func(ctx context.Context) error {
		return boom
	})
	p.RunAsync(func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	assert.ErrorIs(t, p.Join(), boom)
	select {
	case <-cancelled:
	default:
		t.Fatal("sibling job was never cancelled")
	}
}

func TestThreadPoolRecoversPanic(t *testing.T) {
	p := workqueue.NewThreadPool(context.Background())
	p.RunAsync(func(ctx context.Context) error {
		panic("kaboom")
	})
	err := p.Join()
	assert.Error(t, err)
}
