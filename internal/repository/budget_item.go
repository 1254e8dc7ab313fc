package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// BudgetItemRepository handles budget item data access
type BudgetItemRepository struct {
	db database.Database
}

// NewBudgetItemRepository creates a new budget item repository
func NewBudgetItemRepository(db database.Database) *BudgetItemRepository {
	return &BudgetItemRepository{db: db}
}

// Create creates a new budget item
func (r *BudgetItemRepository) Create(ctx context.Context, item *model.BudgetItem) error {
	query := `
		CREATE budget_item CONTENT {
			title: $title,
			description: $description,
			amount: $amount,
			event: type::record($event_id),
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":       item.Title,
		"description": item.Description,
		"amount":      item.Amount,
		"event_id":    item.EventID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	item.ID = created.ID
	item.CreatedOn = created.CreatedOn
	item.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a budget item by ID
func (r *BudgetItemRepository) GetByID(ctx context.Context, id string) (*model.BudgetItem, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	item, err := parseBudgetItemResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// ListByEvent retrieves all budget items for an event
func (r *BudgetItemRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.BudgetItem, error) {
	query := `
		SELECT * FROM budget_item
		WHERE event = type::record($event_id)
		ORDER BY created_on ASC
	`
	vars := map[string]interface{}{"event_id": eventID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	items := make([]*model.BudgetItem, 0)
	for _, row := range unwrapRecords(result) {
		item, err := parseBudgetItemRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Update updates a budget item's mutable fields
func (r *BudgetItemRepository) Update(ctx context.Context, item *model.BudgetItem) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			amount = $amount,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":          item.ID,
		"title":       item.Title,
		"description": item.Description,
		"amount":      item.Amount,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a budget item
func (r *BudgetItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func parseBudgetItemResult(result interface{}) (*model.BudgetItem, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return parseBudgetItemRow(data)
}

func parseBudgetItemRow(data map[string]interface{}) (*model.BudgetItem, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	convertRecordLink(data, "event", "event_id")
	normalizeTimes(data, "created_on", "updated_on")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var item model.BudgetItem
	if err := json.Unmarshal(jsonBytes, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
