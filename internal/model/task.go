package model

import "time"

// TaskStatus represents the progress of a task
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started" // Default
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid returns true if the status is a valid task status
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Task represents a unit of work assigned within an event
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

// MaxTaskTitleLength bounds task titles
const MaxTaskTitleLength = 64

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status,omitempty"` // defaults to "not_started"
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
}

// UpdateTaskRequest represents a request to update a task
type UpdateTaskRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	UserID      *string     `json:"user_id,omitempty"`
}
