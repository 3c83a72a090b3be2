package service

import "taskPlanner/internal/models/task"

type createConfig struct {
	statusHandle task.StatusHandle
}

type CreateOption func(*createConfig)

// WithStatusHandle creates the task in the given status instead of PENDING.
func WithStatusHandle(handle task.StatusHandle) CreateOption {
	return func(cfg *createConfig) {
		cfg.statusHandle = handle
	}
}
