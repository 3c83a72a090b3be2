package service

import (
	"taskPlanner/internal/models/task"
	"taskPlanner/internal/models/user"
)

func CanReadTask(t *task.Task, principal *user.User) bool {
	if t == nil || principal == nil {
		return false
	}
	return t.IsOwnedBy(principal.ID) || principal.IsAdmin
}

func CanUpdateTask(t *task.Task, principal *user.User) bool {
	if t == nil || principal == nil {
		return false
	}
	return t.IsOwnedBy(principal.ID) || principal.IsAdmin
}

// CanDeleteTask ignores ownership: only administrators delete, owners included.
func CanDeleteTask(principal *user.User) bool {
	return principal != nil && principal.IsAdmin
}
