package dto

import (
	"taskPlanner/internal/datetime"
	"taskPlanner/internal/models/task"
	"taskPlanner/internal/service"
)

// TaskRequest is the body of create, full and partial update. Dates are text
// in dd-mm-yyyy HH:MM:SS and are parsed by the service.
type TaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

func (r TaskRequest) ToFields() service.Fields {
	return service.Fields{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		DueDate:     r.DueDate,
	}
}

type TaskSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
	DueDate   string `json:"dueDate"`
}

type TaskDetail struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Created     string `json:"created"`
}

func FromTask(t *task.Task) TaskSummary {
	return TaskSummary{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status.Description,
		StartDate: datetime.Format(t.StartDate),
		DueDate:   datetime.Format(t.DueDate),
	}
}

func FromTaskDetail(t *task.Task) TaskDetail {
	return TaskDetail{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.Description,
		StartDate:   datetime.Format(t.StartDate),
		DueDate:     datetime.Format(t.DueDate),
		Created:     datetime.Format(t.Created),
	}
}

// FromTaskList never returns nil so an empty result encodes as [].
func FromTaskList(tasks []*task.Task) []TaskSummary {
	result := make([]TaskSummary, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
