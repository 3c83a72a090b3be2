package task_test

import (
	"taskPlanner/internal/models/task"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2020, time.April, 1, hour, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func pendingTask(owner int64, start, due time.Time) *task.Task {
	return &task.Task{
		OwnerID:   owner,
		StartDate: start,
		DueDate:   due,
		Status:    task.NewStatus(1, task.StatusPending),
	}
}

func TestOverlaps(t *testing.T) {
	taskStart, taskDue := at(10), at(12)

	tests := []struct {
		name     string
		start    time.Time
		due      time.Time
		expected bool
	}{
		{name: "query end inside task window", start: at(11), due: at(13), expected: true},
		{name: "query start inside task window", start: at(9), due: at(11), expected: true},
		{name: "query before task", start: at(0), due: at(9), expected: false},
		{name: "query after task", start: at(13), due: at(15), expected: false},
		{name: "identical windows", start: at(10), due: at(12), expected: true},
		{name: "task inside query", start: at(9), due: at(13), expected: true},
		{name: "query inside task", start: at(10).Add(30 * time.Minute), due: at(11), expected: true},
		{name: "touches task start", start: at(8), due: at(10), expected: true},
		{name: "touches task end", start: at(12), due: at(14), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, task.Overlaps(taskStart, taskDue, tt.start, tt.due))
		})
	}
}

func TestFilter_Match(t *testing.T) {
	const owner int64 = 7

	tests := []struct {
		name     string
		task     *task.Task
		filter   task.Filter
		expected bool
	}{
		{
			name:     "other owner never matches",
			task:     pendingTask(8, at(10), at(12)),
			filter:   task.Filter{OwnerID: owner},
			expected: false,
		},
		{
			name:     "no window keeps every owned task",
			task:     pendingTask(owner, at(10), at(12)),
			filter:   task.Filter{OwnerID: owner},
			expected: true,
		},
		{
			name:     "both bounds overlapping",
			task:     pendingTask(owner, at(10), at(12)),
			filter:   task.Filter{OwnerID: owner, StartDate: ptr(at(11)), DueDate: ptr(at(13))},
			expected: true,
		},
		{
			name:     "both bounds disjoint",
			task:     pendingTask(owner, at(10), at(12)),
			filter:   task.Filter{OwnerID: owner, StartDate: ptr(at(0)), DueDate: ptr(at(9))},
			expected: false,
		},
		{
			name:     "start only - task already ended",
			task:     pendingTask(owner, at(10), at(12)),
			filter:   task.Filter{OwnerID: owner, StartDate: ptr(at(13))},
			expected: false,
		},
		{
			name:     "start only - task ends exactly at start",
			task:     pendingTask(owner, at(10), at(12)),
			filter:   task.Filter{OwnerID: owner, StartDate: ptr(at(12))},
			expected: true,
		},
		{
			name:     "due only - task not begun",
			task:     pendingTask(owner, at(9), at(12)),
			filter:   task.Filter{OwnerID: owner, DueDate: ptr(at(8))},
			expected: false,
		},
		{
			name:     "due only - task begins exactly at due",
			task:     pendingTask(owner, at(9), at(12)),
			filter:   task.Filter{OwnerID: owner, DueDate: ptr(at(9))},
			expected: true,
		},
		{
			name: "active only drops completed",
			task: &task.Task{
				OwnerID:   owner,
				StartDate: at(10),
				DueDate:   at(12),
				Status:    task.NewStatus(4, task.StatusCompleted),
			},
			filter:   task.Filter{OwnerID: owner, ActiveOnly: true},
			expected: false,
		},
		{
			name: "inactive pending status still counts as active",
			task: &task.Task{
				OwnerID:   owner,
				StartDate: at(10),
				DueDate:   at(12),
				Status:    task.Status{ID: 1, Handle: task.StatusPending, Active: false},
			},
			filter:   task.Filter{OwnerID: owner, ActiveOnly: true},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Match(tt.task))
		})
	}
}

func TestStatusHandle_DefaultDescription(t *testing.T) {
	assert.Equal(t, "Pending", task.StatusPending.DefaultDescription())
	assert.Equal(t, "Cancelled", task.StatusCancelled.DefaultDescription())
	assert.True(t, task.StatusExpired.Valid())
	assert.False(t, task.StatusHandle("DONE").Valid())
}
