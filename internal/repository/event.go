package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// CreateWithOrganizer creates an event and the creator's organizer team row
// in a single transaction. The team row is created already accepted so the
// creator has full access immediately. Either both records exist afterwards
// or neither does.
func (r *EventRepository) CreateWithOrganizer(ctx context.Context, event *model.Event, organizerID string) error {
	query := `
		BEGIN TRANSACTION;
		LET $ev = CREATE ONLY event CONTENT {
			title: $title,
			description: $description,
			image: IF $image IS NOT NULL THEN $image ELSE NONE END,
			price: $price,
			location: $location,
			date: <datetime>$date,
			created_on: time::now(),
			updated_on: time::now()
		};
		CREATE team CONTENT {
			user: type::record($organizer_id),
			event: $ev.id,
			role: 'organizer',
			invitation_status: true,
			created_on: time::now(),
			updated_on: time::now()
		};
		RETURN $ev;
		COMMIT TRANSACTION;
	`

	vars := map[string]interface{}{
		"title":        event.Title,
		"description":  event.Description,
		"image":        ptrToNone(event.Image),
		"price":        event.Price,
		"location":     event.Location,
		"date":         event.Date.Format(time.RFC3339),
		"organizer_id": organizerID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return errors.New("no result returned")
	}

	// The RETURN statement is the last result in the batch
	data, err := unwrapRecord(result[len(result)-1])
	if err != nil {
		return err
	}

	if id, ok := data["id"]; ok {
		event.ID = convertSurrealID(id)
	}
	if t := getTime(data, "created_on"); t != nil {
		event.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		event.UpdatedOn = *t
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	event, err := parseEventResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// List retrieves all events ordered by date
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY date ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	events := make([]*model.Event, 0)
	for _, row := range unwrapRecords(result) {
		event, err := parseEventRow(row)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// ListOrganizedByUser retrieves events where the user holds an organizer
// team row, regardless of invitation state
func (r *EventRepository) ListOrganizedByUser(ctx context.Context, userID string) ([]*model.OrganizedEvent, error) {
	query := `
		SELECT * FROM event WHERE id IN (
			SELECT VALUE event FROM team
			WHERE user = type::record($user_id)
				AND role = 'organizer'
		) ORDER BY date ASC
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	events := make([]*model.OrganizedEvent, 0)
	for _, row := range unwrapRecords(result) {
		event, err := parseEventRow(row)
		if err != nil {
			return nil, err
		}
		events = append(events, &model.OrganizedEvent{Event: *event, Role: model.TeamRoleOrganizer})
	}
	return events, nil
}

// Update updates an event's mutable fields
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			image = $image,
			price = $price,
			location = $location,
			date = <datetime>$date,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":          event.ID,
		"title":       event.Title,
		"description": event.Description,
		"image":       event.Image,
		"price":       event.Price,
		"location":    event.Location,
		"date":        event.Date.Format(time.RFC3339),
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes an event and all dependent records in one transaction.
// Tasks, team rows, budget items, tickets, and messages scoped to the event
// never outlive it.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	vars := map[string]interface{}{"event_id": id}

	batch := database.NewAtomicBatch()
	batch.Add(`DELETE task WHERE event = type::record($event_id)`, vars)
	batch.Add(`DELETE team WHERE event = type::record($event_id)`, vars)
	batch.Add(`DELETE budget_item WHERE event = type::record($event_id)`, vars)
	batch.Add(`DELETE ticket WHERE event = type::record($event_id)`, vars)
	batch.Add(`DELETE message WHERE event = type::record($event_id)`, vars)
	batch.Add(`DELETE type::record($event_id)`, vars)
	return batch.Execute(ctx, r.db)
}

func parseEventResult(result interface{}) (*model.Event, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return parseEventRow(data)
}

func parseEventRow(data map[string]interface{}) (*model.Event, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	normalizeTimes(data, "date", "created_on", "updated_on")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal(jsonBytes, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
