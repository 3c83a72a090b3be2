package service

import (
	"context"
	"fmt"
	"sync"
	"taskPlanner/internal/models/task"
	"time"

	"golang.org/x/sync/singleflight"
)

type StatusLookup interface {
	GetStatusByHandle(context.Context, task.StatusHandle) (task.Status, error)
}

type cachedStatus struct {
	status    task.Status
	expiresAt time.Time
}

// statusResolver reads task statuses through to the store. Concurrent lookups
// of the same handle share one store call. With ttl > 0 results are kept for
// ttl, with ttl == 0 every call reaches the store.
type statusResolver struct {
	lookup StatusLookup
	ttl    time.Duration
	group  singleflight.Group
	mtx    sync.RWMutex
	cache  map[task.StatusHandle]cachedStatus
	now    func() time.Time
}

func NewStatusResolver(lookup StatusLookup, ttl time.Duration) StatusResolver {
	return &statusResolver{
		lookup: lookup,
		ttl:    ttl,
		cache:  make(map[task.StatusHandle]cachedStatus),
		now:    time.Now,
	}
}

func (r *statusResolver) ResolveStatus(ctx context.Context, handle task.StatusHandle) (task.Status, error) {
	if status, ok := r.cached(handle); ok {
		return status, nil
	}

	v, err, _ := r.group.Do(string(handle), func() (any, error) {
		status, err := r.lookup.GetStatusByHandle(ctx, handle)
		if err != nil {
			return task.Status{}, fmt.Errorf("status %s lookup: %w", handle, err)
		}
		if r.ttl > 0 {
			r.mtx.Lock()
			r.cache[handle] = cachedStatus{status: status, expiresAt: r.now().Add(r.ttl)}
			r.mtx.Unlock()
		}
		return status, nil
	})
	if err != nil {
		return task.Status{}, err
	}
	return v.(task.Status), nil
}

func (r *statusResolver) cached(handle task.StatusHandle) (task.Status, bool) {
	if r.ttl <= 0 {
		return task.Status{}, false
	}
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	entry, ok := r.cache[handle]
	if !ok || r.now().After(entry.expiresAt) {
		return task.Status{}, false
	}
	return entry.status, true
}
