// Package handler provides HTTP request handlers for the Crewly API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the service it needs to serve
// requests for one resource (events, tasks, teams, tickets, and so on).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service dependency
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Service errors are mapped to RFC 9457 Problem Details via MapServiceError
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: Paginated list of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Authentication
//
// Most handlers require authentication via JWT tokens. The auth middleware
// extracts the user ID and makes it available via middleware.GetUserID.
// Authorization beyond authentication (team membership, organizer role,
// resource ownership) is enforced by the service layer.
//
// # Example Usage
//
//	handler := NewEventHandler(eventService)
//	mux.HandleFunc("GET /v1/events", handler.List)
//	mux.HandleFunc("POST /v1/events", handler.Create)
package handler
