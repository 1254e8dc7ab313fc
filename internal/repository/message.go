package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// MessageRepository handles message data access
type MessageRepository struct {
	db database.Database
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db database.Database) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	query := `
		CREATE message CONTENT {
			content: $content,
			image: IF $image IS NOT NULL THEN $image ELSE NONE END,
			sender: type::record($sender_id),
			event: type::record($event_id),
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"content":   message.Content,
		"image":     ptrToNone(message.Image),
		"sender_id": message.SenderID,
		"event_id":  message.EventID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	message.ID = created.ID
	message.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*model.Message, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	message, err := parseMessageResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return message, nil
}

// ListByEvent retrieves all messages for an event in chronological order
func (r *MessageRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.Message, error) {
	query := `
		SELECT * FROM message
		WHERE event = type::record($event_id)
		ORDER BY created_on ASC
	`
	vars := map[string]interface{}{"event_id": eventID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	messages := make([]*model.Message, 0)
	for _, row := range unwrapRecords(result) {
		message, err := parseMessageRow(row)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// Update updates a message's content and image
func (r *MessageRepository) Update(ctx context.Context, message *model.Message) error {
	query := `
		UPDATE type::record($id) SET
			content = $content,
			image = $image
	`

	vars := map[string]interface{}{
		"id":      message.ID,
		"content": message.Content,
		"image":   message.Image,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a message
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func parseMessageResult(result interface{}) (*model.Message, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return parseMessageRow(data)
}

func parseMessageRow(data map[string]interface{}) (*model.Message, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	convertRecordLink(data, "sender", "sender_id")
	convertRecordLink(data, "event", "event_id")
	normalizeTimes(data, "created_on")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var message model.Message
	if err := json.Unmarshal(jsonBytes, &message); err != nil {
		return nil, err
	}
	return &message, nil
}
