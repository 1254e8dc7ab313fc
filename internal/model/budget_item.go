package model

import "time"

// BudgetItem represents a line item in an event's budget
type BudgetItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	EventID     string    `json:"event_id"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// MaxBudgetItemTitleLength bounds budget item titles
const MaxBudgetItemTitleLength = 64

// CreateBudgetItemRequest represents a request to create a budget item
type CreateBudgetItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	EventID     string  `json:"event_id"`
}

// UpdateBudgetItemRequest represents a request to update a budget item
type UpdateBudgetItemRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}
