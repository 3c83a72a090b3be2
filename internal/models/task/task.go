package task

import (
	"time"
)

type Task struct {
	ID          int64     `json:"id" db:"id"`
	OwnerID     int64     `json:"owner_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	Status      Status    `json:"status" db:"status"`
	Created     time.Time `json:"created" db:"created"`
}

const (
	TitleMaxLength       = 60
	DescriptionMaxLength = 255
)

// New builds an unsaved task owned by ownerID. Created is fixed here and never
// changed afterwards.
func New(ownerID int64, status Status, created time.Time, options ...TaskOption) *Task {
	t := &Task{
		OwnerID: ownerID,
		Status:  status,
		Created: created,
	}
	t.Apply(options...)
	return t
}

func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}

func (t *Task) IsOwnedBy(userID int64) bool {
	return t.OwnerID == userID
}

// Clone returns a detached copy, stores hand these out so callers can mutate
// freely until they persist.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
