package task

import "strings"

type StatusHandle string

const (
	StatusPending   StatusHandle = "PENDING"
	StatusCancelled StatusHandle = "CANCELLED"
	StatusFailed    StatusHandle = "FAILED"
	StatusCompleted StatusHandle = "COMPLETED"
	StatusExpired   StatusHandle = "EXPIRED"
)

var AllStatusHandles = []StatusHandle{
	StatusPending,
	StatusCancelled,
	StatusFailed,
	StatusCompleted,
	StatusExpired,
}

// Status is a row of the task_statuses lookup table. Tasks reference it, they
// never own it.
type Status struct {
	ID          int64        `json:"id" db:"id"`
	Handle      StatusHandle `json:"handle" db:"handle"`
	Description string       `json:"description" db:"description"`
	Active      bool         `json:"active" db:"active"`
}

func (h StatusHandle) Valid() bool {
	for _, known := range AllStatusHandles {
		if h == known {
			return true
		}
	}
	return false
}

// DefaultDescription is "Pending" for PENDING and so on.
func (h StatusHandle) DefaultDescription() string {
	lower := strings.ToLower(string(h))
	if lower == "" {
		return ""
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func NewStatus(id int64, handle StatusHandle) Status {
	return Status{
		ID:          id,
		Handle:      handle,
		Description: handle.DefaultDescription(),
		Active:      true,
	}
}
