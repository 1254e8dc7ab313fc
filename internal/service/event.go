package service

import (
	"context"
	"strings"

	"github.com/crewly/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	CreateWithOrganizer(ctx context.Context, event *model.Event, organizerID string) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListOrganizedByUser(ctx context.Context, userID string) ([]*model.OrganizedEvent, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
}

// EventService handles event business logic
type EventService struct {
	eventRepo  EventRepository
	membership *MembershipResolver
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo  EventRepository
	Membership *MembershipResolver
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo:  cfg.EventRepo,
		membership: cfg.Membership,
	}
}

// Create creates a new event. The creator becomes an accepted organizer in
// the same transaction.
func (s *EventService) Create(ctx context.Context, userID string, req model.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Image:       req.Image,
		Price:       req.Price,
		Location:    strings.TrimSpace(req.Location),
		Date:        req.Date,
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.CreateWithOrganizer(ctx, event, userID); err != nil {
		return nil, err
	}
	return event, nil
}

// Get retrieves an event by ID. Events are publicly readable.
func (s *EventService) Get(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// List retrieves all events
func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.List(ctx)
}

// ListOrganized retrieves the events where the user holds an organizer row
func (s *EventService) ListOrganized(ctx context.Context, userID string) ([]*model.OrganizedEvent, error) {
	return s.eventRepo.ListOrganizedByUser(ctx, userID)
}

// Update updates an event. Only organizers may modify events.
func (s *EventService) Update(ctx context.Context, userID, eventID string, req model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, userID, eventID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		event.Image = stringPtr(strings.TrimSpace(*req.Image))
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Location != nil {
		event.Location = strings.TrimSpace(*req.Location)
	}
	if req.Date != nil {
		event.Date = *req.Date
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete deletes an event and everything scoped to it. Only organizers
// may delete events.
func (s *EventService) Delete(ctx context.Context, userID, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, userID, eventID); err != nil {
		return err
	}

	return s.eventRepo.Delete(ctx, eventID)
}

func validateEvent(event *model.Event) error {
	if event.Title == "" {
		return ErrEventTitleRequired
	}
	if len(event.Title) > model.MaxEventTitleLength {
		return ErrEventTitleTooLong
	}
	if len(event.Location) > model.MaxEventLocationLength {
		return ErrEventLocationTooLong
	}
	if event.Date.IsZero() {
		return ErrEventDateRequired
	}
	if event.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
