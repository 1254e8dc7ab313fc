package model

import "time"

// Message represents a chat message posted to an event
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Image     *string   `json:"image,omitempty"`
	SenderID  string    `json:"sender_id"`
	EventID   string    `json:"event_id"`
	CreatedOn time.Time `json:"created_on"`
}

// CreateMessageRequest represents a request to post a message.
// SenderID must match the requester.
type CreateMessageRequest struct {
	Content  string  `json:"content"`
	Image    *string `json:"image,omitempty"`
	SenderID string  `json:"sender_id"`
	EventID  string  `json:"event_id"`
}

// UpdateMessageRequest represents a request to edit a message
type UpdateMessageRequest struct {
	Content *string `json:"content,omitempty"`
	Image   *string `json:"image,omitempty"`
}
