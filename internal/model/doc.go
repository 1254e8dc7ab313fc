// Package model defines domain entities and data structures for the Crewly API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Application user with authentication credentials
//   - Event: A planned event with schedule, location, and price
//   - Team: Event membership linking users to events with roles and
//     invitation state
//   - Task: Work item assigned to a team member within an event
//   - BudgetItem: Budget line attached to an event
//   - Ticket: Admission ticket bound to a user and event
//   - Message: Chat message posted to an event
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Event struct {
//	    ID    string  `json:"id"`
//	    Title string  `json:"title"`
//	    Image *string `json:"image,omitempty"`
//	}
//
// # Validation Constants
//
// The package defines validation constants:
//
//	const (
//	    MaxEventTitleLength    = 64
//	    MaxEventLocationLength = 64
//	)
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
