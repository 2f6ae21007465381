package task

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Priorities lists the accepted priorities in display order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
}

// Fields carries submitted task attributes. A nil field was not submitted.
type Fields struct {
	Title       *string
	Description *string
	Priority    *string
}

// Empty reports whether no field was submitted.
func (f Fields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Priority == nil
}

// Filter narrows List. A nil Completed matches every task.
type Filter struct {
	Completed *bool
}

func (f Filter) match(t Task) bool {
	return f.Completed == nil || *f.Completed == t.Completed
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Reason: "title is required"}
	}
	return title, nil
}

func validatePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", &ValidationError{
			Field:  "priority",
			Reason: fmt.Sprintf("priority must be one of low, medium, high (got %q)", raw),
		}
	}
	return p, nil
}
