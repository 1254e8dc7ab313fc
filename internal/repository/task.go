package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// TaskRepository handles task data access
type TaskRepository struct {
	db database.Database
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db database.Database) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		CREATE task CONTENT {
			title: $title,
			description: $description,
			status: $status,
			event: type::record($event_id),
			user: type::record($user_id),
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"event_id":    task.EventID,
		"user_id":     task.UserID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	task.ID = created.ID
	task.CreatedOn = created.CreatedOn
	task.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	task, err := parseTaskResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// ListByEvent retrieves all tasks for an event
func (r *TaskRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.Task, error) {
	query := `
		SELECT * FROM task
		WHERE event = type::record($event_id)
		ORDER BY created_on ASC
	`
	vars := map[string]interface{}{"event_id": eventID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	tasks := make([]*model.Task, 0)
	for _, row := range unwrapRecords(result) {
		task, err := parseTaskRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Update updates a task's mutable fields
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			status = $status,
			user = type::record($user_id),
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":          task.ID,
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"user_id":     task.UserID,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a task
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func parseTaskResult(result interface{}) (*model.Task, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return parseTaskRow(data)
}

func parseTaskRow(data map[string]interface{}) (*model.Task, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	convertRecordLink(data, "event", "event_id")
	convertRecordLink(data, "user", "user_id")
	normalizeTimes(data, "created_on", "updated_on")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var task model.Task
	if err := json.Unmarshal(jsonBytes, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
