package model

import "time"

// Event represents a planned event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *string   `json:"image,omitempty"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Field length constraints
const (
	MaxEventTitleLength    = 64
	MaxEventLocationLength = 64
)

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *string   `json:"image,omitempty"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
}

// UpdateEventRequest represents a request to update an event
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Image       *string    `json:"image,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// OrganizedEvent is an event annotated with the viewer's team role
type OrganizedEvent struct {
	Event
	Role TeamRole `json:"role"`
}
