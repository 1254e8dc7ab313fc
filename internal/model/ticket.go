package model

import "time"

// Ticket represents an admission ticket bound to a user and event.
// Tickets are immutable once issued.
type Ticket struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	CreatedOn time.Time `json:"created_on"`
}

// MaxTicketCodeLength bounds ticket codes
const MaxTicketCodeLength = 64

// CreateTicketRequest represents a request to issue a ticket.
// UserID must match the requester; Code defaults to a generated value.
type CreateTicketRequest struct {
	Code    string `json:"code,omitempty"`
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}
