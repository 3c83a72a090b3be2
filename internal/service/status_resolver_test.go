package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"taskPlanner/internal/models/task"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLookup struct {
	calls atomic.Int32
	err   error
}

func (c *countingLookup) GetStatusByHandle(ctx context.Context, handle task.StatusHandle) (task.Status, error) {
	c.calls.Add(1)
	if c.err != nil {
		return task.Status{}, c.err
	}
	return task.NewStatus(1, handle), nil
}

func TestStatusResolver_NoCache(t *testing.T) {
	lookup := &countingLookup{}
	resolver := NewStatusResolver(lookup, 0)

	for i := 0; i < 3; i++ {
		status, err := resolver.ResolveStatus(context.Background(), task.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, task.StatusPending, status.Handle)
	}
	assert.Equal(t, int32(3), lookup.calls.Load())
}

func TestStatusResolver_TTL(t *testing.T) {
	lookup := &countingLookup{}
	resolver := NewStatusResolver(lookup, time.Minute).(*statusResolver)

	now := time.Date(2020, time.April, 1, 9, 0, 0, 0, time.UTC)
	resolver.now = func() time.Time { return now }

	_, err := resolver.ResolveStatus(context.Background(), task.StatusPending)
	require.NoError(t, err)
	_, err = resolver.ResolveStatus(context.Background(), task.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int32(1), lookup.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = resolver.ResolveStatus(context.Background(), task.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestStatusResolver_Errors(t *testing.T) {
	lookup := &countingLookup{err: errors.New("db down")}
	resolver := NewStatusResolver(lookup, time.Minute)

	_, err := resolver.ResolveStatus(context.Background(), task.StatusFailed)
	assert.ErrorIs(t, err, lookup.err)

	_, err = resolver.ResolveStatus(context.Background(), task.StatusFailed)
	assert.Error(t, err)
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestStatusResolver_Concurrent(t *testing.T) {
	lookup := &countingLookup{}
	resolver := NewStatusResolver(lookup, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := resolver.ResolveStatus(context.Background(), task.StatusExpired)
			assert.NoError(t, err)
			assert.Equal(t, task.StatusExpired, status.Handle)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, lookup.calls.Load(), int32(20))
}
