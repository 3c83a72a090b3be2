package service

import (
	"context"
	"sort"
	"taskPlanner/internal/logger"
	"taskPlanner/internal/models/task"
	"time"

	"go.uber.org/zap"
)

// ActiveByOwnerAndWindow returns the owner's tasks overlapping the window,
// ordered by start date. A nil bound leaves that side of the window open; the
// engine never fills in defaults. With activeOnly only PENDING tasks are kept.
func (s *TaskService) ActiveByOwnerAndWindow(ctx context.Context, ownerID int64, startDate, dueDate *time.Time, activeOnly bool) ([]*task.Task, error) {
	filter := task.Filter{
		OwnerID:    ownerID,
		StartDate:  startDate,
		DueDate:    dueDate,
		ActiveOnly: activeOnly,
	}

	tasks, err := s.repo.Find(ctx, filter)
	if err != nil {
		logger.Error("Service: Task query failed", err, zap.Int64("owner_id", ownerID))
		return nil, &StoreFailure{Op: "find tasks", Err: err}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].StartDate.Before(tasks[j].StartDate)
	})
	return tasks, nil
}
