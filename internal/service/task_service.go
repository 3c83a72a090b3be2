package service

import (
	"context"
	"errors"
	"strconv"
	"taskPlanner/internal/datetime"
	"taskPlanner/internal/logger"
	"taskPlanner/internal/models/task"
	"taskPlanner/internal/models/user"
	rep "taskPlanner/internal/repository"
	"time"

	"go.uber.org/zap"
)

const taskResource = "task"

// TaskService validates task payloads, enforces the permission policy and
// persists through the repository. It keeps no state between calls besides its
// collaborators.
type TaskService struct {
	repo     TaskRepository
	statuses StatusResolver
	now      func() time.Time
}

func NewTaskService(repo TaskRepository, statuses StatusResolver) *TaskService {
	if statuses == nil {
		statuses = NewStatusResolver(repo, 0)
	}
	return &TaskService{
		repo:     repo,
		statuses: statuses,
		now:      time.Now,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return &StoreFailure{Op: "health check", Err: err}
	}
	return nil
}

// Create builds a new task owned by principal. All four fields are required.
func (s *TaskService) Create(ctx context.Context, principal *user.User, fields Fields, options ...CreateOption) (*task.Task, error) {
	if principal == nil {
		return nil, NewPermissionDenied(taskResource, "")
	}
	if !fields.AllRequiredPresent() {
		logger.Info("Service: Missing mandatory parameters", zap.String("operation", "create_task"))
		return nil, NewMissingMandatoryParameter()
	}

	opts, err := fields.options()
	if err != nil {
		return nil, err
	}

	cfg := createConfig{statusHandle: task.StatusPending}
	for _, opt := range options {
		opt(&cfg)
	}
	if !cfg.statusHandle.Valid() {
		return nil, NewValidationError("status", "unknown status handle "+string(cfg.statusHandle))
	}

	status, err := s.statuses.ResolveStatus(ctx, cfg.statusHandle)
	if err != nil {
		logger.Error("Service: Status lookup failed", err, zap.String("handle", string(cfg.statusHandle)))
		return nil, &StoreFailure{Op: "resolve status", Err: err}
	}

	newTask := task.New(principal.ID, status, datetime.Naive(s.now()), opts...)
	if err := s.repo.Create(ctx, newTask); err != nil {
		logger.Error("Service: Task was not created", err, zap.Int64("owner_id", principal.ID))
		return nil, &StoreFailure{Op: "create task", Err: err}
	}

	logger.Info("Service: Task created",
		zap.Int64("task_id", newTask.ID),
		zap.Int64("owner_id", principal.ID))
	return newTask, nil
}

// FullUpdate replaces title, description and both dates. Status and owner are
// left as they are. t is only changed once the store accepted the write.
func (s *TaskService) FullUpdate(ctx context.Context, t *task.Task, fields Fields) error {
	if !fields.AllRequiredPresent() {
		return NewMissingMandatoryParameter()
	}
	return s.apply(ctx, t, fields, "full_update_task")
}

// PartialUpdate replaces only the supplied fields.
func (s *TaskService) PartialUpdate(ctx context.Context, t *task.Task, fields Fields) (*task.Task, error) {
	if !fields.AnyPresent() {
		return nil, NewMissingMandatoryParameter()
	}
	if err := s.apply(ctx, t, fields, "partial_update_task"); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) apply(ctx context.Context, t *task.Task, fields Fields, operation string) error {
	opts, err := fields.options()
	if err != nil {
		return err
	}

	updated := t.Clone()
	updated.Apply(opts...)

	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(taskResource, strconv.FormatInt(t.ID, 10))
		}
		logger.Error("Service: Task was not updated", err,
			zap.String("operation", operation),
			zap.Int64("task_id", t.ID))
		return &StoreFailure{Op: "update task", Err: err}
	}

	*t = *updated
	return nil
}

// GetTask checks existence before permission, so a missing task is reported
// as not found whoever asks.
func (s *TaskService) GetTask(ctx context.Context, principal *user.User, id int64) (*task.Task, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanReadTask(t, principal) {
		return nil, s.denied(principal, id, "read_task")
	}
	return t, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, principal *user.User, id int64, fields Fields) error {
	t, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !CanUpdateTask(t, principal) {
		return s.denied(principal, id, "full_update_task")
	}
	return s.FullUpdate(ctx, t, fields)
}

func (s *TaskService) PatchTask(ctx context.Context, principal *user.User, id int64, fields Fields) (*task.Task, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanUpdateTask(t, principal) {
		return nil, s.denied(principal, id, "partial_update_task")
	}
	return s.PartialUpdate(ctx, t, fields)
}

// DeleteTask removes the task for good.
func (s *TaskService) DeleteTask(ctx context.Context, principal *user.User, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if !CanDeleteTask(principal) {
		return s.denied(principal, id, "delete_task")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(taskResource, strconv.FormatInt(id, 10))
		}
		logger.Error("Service: Task was not deleted", err, zap.Int64("task_id", id))
		return &StoreFailure{Op: "delete task", Err: err}
	}

	logger.Info("Service: Task deleted", zap.Int64("task_id", id))
	return nil
}

func (s *TaskService) find(ctx context.Context, id int64) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Task not found", zap.Int64("target_id", id))
			return nil, NewNotFound(taskResource, strconv.FormatInt(id, 10))
		}
		logger.Error("Service: Task lookup failed", err, zap.Int64("target_id", id))
		return nil, &StoreFailure{Op: "get task", Err: err}
	}
	return t, nil
}

func (s *TaskService) denied(principal *user.User, id int64, operation string) error {
	fields := []zap.Field{zap.Int64("task_id", id), zap.String("operation", operation)}
	if principal != nil {
		fields = append(fields, zap.Int64("user_id", principal.ID))
	}
	logger.Warn("Service: Access denied", fields...)
	return NewPermissionDenied(taskResource, strconv.FormatInt(id, 10))
}
