package dto

import (
	"time"

	"github.com/todoflow-labs/fragment-service/internal/task"
)

type EventType string

const (
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskToggled EventType = "task.toggled"
	TaskDeleted EventType = "task.deleted"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskEvent is published after a task mutation. Task is nil for deletions.
type TaskEvent struct {
	Type       EventType `json:"type"`
	TaskID     string    `json:"task_id"`
	Task       *Task     `json:"task,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func FromTask(t task.Task) *Task {
	return &Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}
