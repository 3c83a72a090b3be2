package task

import "time"

// Filter selects the tasks of one owner inside an optional window.
// Both bounds are inclusive.
type Filter struct {
	OwnerID    int64
	StartDate  *time.Time
	DueDate    *time.Time
	ActiveOnly bool
}

func (f Filter) Match(t *Task) bool {
	if t.OwnerID != f.OwnerID {
		return false
	}

	switch {
	case f.StartDate != nil && f.DueDate != nil:
		if !Overlaps(t.StartDate, t.DueDate, *f.StartDate, *f.DueDate) {
			return false
		}
	case f.StartDate != nil:
		if t.DueDate.Before(*f.StartDate) {
			return false
		}
	case f.DueDate != nil:
		if t.StartDate.After(*f.DueDate) {
			return false
		}
	}

	if f.ActiveOnly && t.Status.Handle != StatusPending {
		return false
	}
	return true
}

// Overlaps reports whether the task window [taskStart, taskDue] and the query
// window [start, due] share at least one instant. A query bound inside the task
// window, or the task window inside the query window, counts.
func Overlaps(taskStart, taskDue, start, due time.Time) bool {
	return within(start, taskStart, taskDue) ||
		within(due, taskStart, taskDue) ||
		(!taskStart.Before(start) && !taskDue.After(due))
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
