package service

import (
	"context"
	"taskPlanner/internal/models/task"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetByID(context.Context, int64) (*task.Task, error)
	Delete(context.Context, int64) error
	Find(context.Context, task.Filter) ([]*task.Task, error)
	GetStatusByHandle(context.Context, task.StatusHandle) (task.Status, error)
}

type StatusResolver interface {
	ResolveStatus(context.Context, task.StatusHandle) (task.Status, error)
}
