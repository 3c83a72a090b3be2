package handlers

import (
	"context"
	"taskPlanner/internal/models/task"
	"taskPlanner/internal/models/user"
	"taskPlanner/internal/service"
	"time"
)

type Service interface {
	HealthCheck(context.Context) error
	Create(context.Context, *user.User, service.Fields, ...service.CreateOption) (*task.Task, error)
	GetTask(context.Context, *user.User, int64) (*task.Task, error)
	UpdateTask(context.Context, *user.User, int64, service.Fields) error
	PatchTask(context.Context, *user.User, int64, service.Fields) (*task.Task, error)
	DeleteTask(context.Context, *user.User, int64) error
	ActiveByOwnerAndWindow(context.Context, int64, *time.Time, *time.Time, bool) ([]*task.Task, error)
}

var _ Service = (*service.TaskService)(nil)
