package inmemory

import (
	"context"
	"sort"
	"sync"
	"taskPlanner/internal/logger"
	"taskPlanner/internal/models/task"
	"taskPlanner/internal/models/user"
	repo "taskPlanner/internal/repository"

	"go.uber.org/zap"
)

// TaskStorage keeps tasks, statuses and users in maps. Values are copied on the
// way in and out so callers never share memory with the store.
type TaskStorage struct {
	storage  map[int64]*task.Task
	statuses map[task.StatusHandle]task.Status
	users    map[int64]*user.User
	mtx      *sync.RWMutex
	ids      []int64
	nextID   int64
}

// NewTaskStorage seeds the five task statuses.
func NewTaskStorage() *TaskStorage {
	statuses := make(map[task.StatusHandle]task.Status, len(task.AllStatusHandles))
	for i, handle := range task.AllStatusHandles {
		statuses[handle] = task.NewStatus(int64(i+1), handle)
	}

	return &TaskStorage{
		storage:  make(map[int64]*task.Task),
		statuses: statuses,
		users:    make(map[int64]*user.User),
		mtx:      &sync.RWMutex{},
		ids:      []int64{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: In-memory storage is up")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nextID++
	taskToCreate.ID = s.nextID

	s.storage[taskToCreate.ID] = taskToCreate.Clone()
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

// Update replaces the stored row. Owner and created stay as first stored.
func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	stored := taskToUpdate.Clone()
	stored.OwnerID = existing.OwnerID
	stored.Created = existing.Created
	s.storage[taskToUpdate.ID] = stored
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// Find returns the tasks matching filter ordered by start date, ties in
// insertion order.
func (s *TaskStorage) Find(ctx context.Context, filter task.Filter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if filter.Match(t) {
			res = append(res, t.Clone())
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].StartDate.Before(res[j].StartDate)
	})
	logger.Log(zap.DebugLevel, "Repository: Tasks found", zap.Int("count", len(res)))
	return res, nil
}

func (s *TaskStorage) GetStatusByHandle(ctx context.Context, handle task.StatusHandle) (task.Status, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	status, ok := s.statuses[handle]
	if !ok {
		return task.Status{}, repo.ErrStatusNotFound
	}
	return status, nil
}

// SetStatusActive toggles the administrative active flag of a status. Tasks
// already referencing it see the change.
func (s *TaskStorage) SetStatusActive(ctx context.Context, handle task.StatusHandle, active bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	status, ok := s.statuses[handle]
	if !ok {
		return repo.ErrStatusNotFound
	}
	status.Active = active
	s.statuses[handle] = status

	for _, t := range s.storage {
		if t.Status.Handle == handle {
			t.Status = status
		}
	}
	return nil
}

// SaveUser inserts or replaces a user. A zero ID gets the next free one.
func (s *TaskStorage) SaveUser(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if u.ID == 0 {
		var maxID int64
		for id := range s.users {
			if id > maxID {
				maxID = id
			}
		}
		u.ID = maxID + 1
	}
	stored := *u
	s.users[u.ID] = &stored
	return nil
}

func (s *TaskStorage) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	found := *u
	return &found, nil
}
