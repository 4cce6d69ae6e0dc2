package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_RunsQueuedTasks(t *testing.T) {
	d := NewDispatcher(2, 8, time.Second)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		d.Dispatch("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	d.Close()
	assert.Equal(t, int32(5), ran.Load())
}

func TestDispatcher_TaskErrorDoesNotPropagate(t *testing.T) {
	d := NewDispatcher(1, 1, time.Second)

	// The error is logged by the worker; Dispatch never surfaces it.
	d.Dispatch("failing", func(ctx context.Context) error {
		return errors.New("boom")
	})

	d.Close()
}

func TestDispatcher_ConcurrentDispatchAndClose(t *testing.T) {
	// Dispatch racing Close must never panic on a closed channel; every
	// task still runs, queued or inline.
	for i := 0; i < 50; i++ {
		d := NewDispatcher(2, 4, time.Second)

		var ran atomic.Int32
		var wg sync.WaitGroup
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Dispatch("racing", func(ctx context.Context) error {
					ran.Add(1)
					return nil
				})
			}()
		}

		d.Close()
		wg.Wait()
		assert.Equal(t, int32(8), ran.Load())
	}
}

func TestDispatcher_RunsInlineWhenClosed(t *testing.T) {
	d := NewDispatcher(1, 1, time.Second)
	d.Close()

	var ran atomic.Bool
	d.Dispatch("late", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.True(t, ran.Load())
}
