package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// TicketRepository defines the interface for ticket storage
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error)
	Delete(ctx context.Context, id string) error
}

// TicketService handles ticket business logic
type TicketService struct {
	ticketRepo TicketRepository
	eventRepo  EventRepository
	membership *MembershipResolver
}

// TicketServiceConfig holds configuration for the ticket service
type TicketServiceConfig struct {
	TicketRepo TicketRepository
	EventRepo  EventRepository
	Membership *MembershipResolver
}

// NewTicketService creates a new ticket service
func NewTicketService(cfg TicketServiceConfig) *TicketService {
	return &TicketService{
		ticketRepo: cfg.TicketRepo,
		eventRepo:  cfg.EventRepo,
		membership: cfg.Membership,
	}
}

// Create issues a ticket. The requester can only issue tickets bound to
// themself; a missing code is replaced with a generated one.
func (s *TicketService) Create(ctx context.Context, requesterID string, req model.CreateTicketRequest) (*model.Ticket, error) {
	if req.UserID != requesterID {
		return nil, ErrTicketOwnerMismatch
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code, err = generateTicketCode()
		if err != nil {
			return nil, err
		}
	}
	if len(code) > model.MaxTicketCodeLength {
		return nil, ErrTicketCodeTooLong
	}

	ticket := &model.Ticket{
		Code:    code,
		UserID:  requesterID,
		EventID: req.EventID,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrTicketAlreadyExists
		}
		return nil, err
	}
	return ticket, nil
}

// Get retrieves a ticket. Visible to the ticket owner and to members of
// the ticket's event.
func (s *TicketService) Get(ctx context.Context, requesterID, ticketID string) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	if ticket.UserID != requesterID {
		if err := s.membership.RequireMember(ctx, requesterID, ticket.EventID); err != nil {
			return nil, err
		}
	}
	return ticket, nil
}

// ListMine retrieves the requester's own tickets
func (s *TicketService) ListMine(ctx context.Context, requesterID string) ([]*model.Ticket, error) {
	return s.ticketRepo.ListByUser(ctx, requesterID)
}

// Delete deletes a ticket. Only the ticket owner may delete it.
func (s *TicketService) Delete(ctx context.Context, requesterID, ticketID string) error {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}

	if ticket.UserID != requesterID {
		return ErrTicketOwnerMismatch
	}

	return s.ticketRepo.Delete(ctx, ticketID)
}

// generateTicketCode creates a random ticket code
func generateTicketCode() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
