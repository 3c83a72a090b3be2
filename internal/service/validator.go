package service

import (
	"taskPlanner/internal/datetime"
	"taskPlanner/internal/models/task"
	"unicode/utf8"
)

const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyStartDate   = "startDate"
	KeyDueDate     = "dueDate"
)

// Fields is the task payload as it came over the wire. A nil or empty value
// means the field was not supplied.
type Fields struct {
	Title       *string
	Description *string
	StartDate   *string
	DueDate     *string
}

func present(v *string) bool {
	return v != nil && *v != ""
}

func (f Fields) values() []*string {
	return []*string{f.Title, f.Description, f.StartDate, f.DueDate}
}

// AllRequiredPresent is the create and full update precondition.
func (f Fields) AllRequiredPresent() bool {
	for _, v := range f.values() {
		if !present(v) {
			return false
		}
	}
	return true
}

// AnyPresent is the partial update precondition.
func (f Fields) AnyPresent() bool {
	for _, v := range f.values() {
		if present(v) {
			return true
		}
	}
	return false
}

// options parses the supplied fields into task options without touching any
// task. Dates are parsed first, start before due, and the first failure wins.
func (f Fields) options() ([]task.TaskOption, error) {
	var opts []task.TaskOption

	if present(f.StartDate) {
		startDate, err := datetime.Parse(*f.StartDate)
		if err != nil {
			return nil, NewInvalidDateTimeFormat(KeyStartDate, err)
		}
		opts = append(opts, task.WithStartDate(startDate))
	}

	if present(f.DueDate) {
		dueDate, err := datetime.Parse(*f.DueDate)
		if err != nil {
			return nil, NewInvalidDateTimeFormat(KeyDueDate, err)
		}
		opts = append(opts, task.WithDueDate(dueDate))
	}

	if present(f.Title) {
		if utf8.RuneCountInString(*f.Title) > task.TitleMaxLength {
			return nil, NewValidationError(KeyTitle, "must be at most 60 characters")
		}
		opts = append(opts, task.WithTitle(*f.Title))
	}

	if present(f.Description) {
		if utf8.RuneCountInString(*f.Description) > task.DescriptionMaxLength {
			return nil, NewValidationError(KeyDescription, "must be at most 255 characters")
		}
		opts = append(opts, task.WithDescription(*f.Description))
	}

	return opts, nil
}
