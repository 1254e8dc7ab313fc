// Package service implements the business logic layer for the Crewly API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Authorization
//
// Event-scoped services share a MembershipResolver that answers role
// questions from the team table. Access checks run before any mutation, and
// authorization failures carry one uniform message so denied requests do
// not leak what exists.
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrEventNotFound     = errors.New("event not found")
//	    ErrNotEventOrganizer = errors.New("not authorized to perform this action")
//	)
//
// # Example Usage
//
//	service := NewEventService(EventServiceConfig{
//	    EventRepo:  eventRepository,
//	    Membership: membershipResolver,
//	})
//	event, err := service.Create(ctx, userID, model.CreateEventRequest{
//	    Title: "Launch Party",
//	})
package service
