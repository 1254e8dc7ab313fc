package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// TicketRepository handles ticket data access
type TicketRepository struct {
	db database.Database
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db database.Database) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create creates a new ticket. Tickets carry no updated_on field since they
// are immutable once issued.
func (r *TicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	query := `
		CREATE ticket CONTENT {
			code: $code,
			user: type::record($user_id),
			event: type::record($event_id),
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"code":     ticket.Code,
		"user_id":  ticket.UserID,
		"event_id": ticket.EventID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: ticket code already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	ticket.ID = created.ID
	ticket.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	ticket, err := parseTicketResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ticket, nil
}

// ListByUser retrieves all tickets held by a user
func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error) {
	query := `
		SELECT * FROM ticket
		WHERE user = type::record($user_id)
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	tickets := make([]*model.Ticket, 0)
	for _, row := range unwrapRecords(result) {
		ticket, err := parseTicketRow(row)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// Delete deletes a ticket
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func parseTicketResult(result interface{}) (*model.Ticket, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return parseTicketRow(data)
}

func parseTicketRow(data map[string]interface{}) (*model.Ticket, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	convertRecordLink(data, "user", "user_id")
	convertRecordLink(data, "event", "event_id")
	normalizeTimes(data, "created_on")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var ticket model.Ticket
	if err := json.Unmarshal(jsonBytes, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
