package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDispatchesByType(t *testing.T) {
	q := NewQueue("events", QueueConfig{Workers: 2})
	done := make(chan Job, 1)
	q.Register("room.assigned", func(ctx context.Context, job Job) error {
		done <- job
		return nil
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "room.assigned", Payload: "r1"}))

	select {
	case job := <-done:
		assert.NotEmpty(t, job.ID)
		assert.Equal(t, "r1", job.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	q := NewQueue("events", QueueConfig{MaxRetries: 2, RetryDelay: 10 * time.Millisecond})
	var calls int32
	done := make(chan struct{})
	q.Register("leave.decided", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("broker down")
		}
		close(done)
		return nil
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "leave.decided"}))

	select {
	case <-done:
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
}

func TestEnqueueBeforeStartFails(t *testing.T) {
	q := NewQueue("events", QueueConfig{})
	assert.Error(t, q.Enqueue(Job{Type: "x"}))
}

func TestEnqueueReportsFullBuffer(t *testing.T) {
	q := NewQueue("events", QueueConfig{Workers: 1, BufferSize: 1})
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	q.Register("slow", func(ctx context.Context, job Job) error {
		started <- struct{}{}
		<-block
		return nil
	})
	q.Start(context.Background())
	defer func() {
		close(block)
		q.Stop()
	}()

	require.NoError(t, q.Enqueue(Job{Type: "slow"}))
	<-started
	require.NoError(t, q.Enqueue(Job{Type: "slow"}))
	assert.Equal(t, 1, q.Pending())
	err := q.Enqueue(Job{Type: "slow"})
	assert.ErrorIs(t, err, ErrQueueFull)
}
