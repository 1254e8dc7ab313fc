package service

import (
	"context"
	"strings"

	"github.com/crewly/api/internal/model"
)

// BudgetItemRepository defines the interface for budget item storage
type BudgetItemRepository interface {
	Create(ctx context.Context, item *model.BudgetItem) error
	GetByID(ctx context.Context, id string) (*model.BudgetItem, error)
	ListByEvent(ctx context.Context, eventID string) ([]*model.BudgetItem, error)
	Update(ctx context.Context, item *model.BudgetItem) error
	Delete(ctx context.Context, id string) error
}

// BudgetService handles budget item business logic
type BudgetService struct {
	budgetRepo BudgetItemRepository
	eventRepo  EventRepository
	membership *MembershipResolver
}

// BudgetServiceConfig holds configuration for the budget service
type BudgetServiceConfig struct {
	BudgetRepo BudgetItemRepository
	EventRepo  EventRepository
	Membership *MembershipResolver
}

// NewBudgetService creates a new budget service
func NewBudgetService(cfg BudgetServiceConfig) *BudgetService {
	return &BudgetService{
		budgetRepo: cfg.BudgetRepo,
		eventRepo:  cfg.EventRepo,
		membership: cfg.Membership,
	}
}

// Create creates a new budget item. Only organizers of the target event
// may create budget items.
func (s *BudgetService) Create(ctx context.Context, requesterID string, req model.CreateBudgetItemRequest) (*model.BudgetItem, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, requesterID, req.EventID); err != nil {
		return nil, err
	}

	item := &model.BudgetItem{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		EventID:     req.EventID,
	}

	if err := validateBudgetItem(item); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get retrieves a budget item. Visible to members of the item's event.
func (s *BudgetService) Get(ctx context.Context, requesterID, itemID string) (*model.BudgetItem, error) {
	item, err := s.budgetRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrBudgetItemNotFound
	}

	if err := s.membership.RequireMember(ctx, requesterID, item.EventID); err != nil {
		return nil, err
	}
	return item, nil
}

// Update updates a budget item. Only organizers of the item's event may
// modify budget items.
func (s *BudgetService) Update(ctx context.Context, requesterID, itemID string, req model.UpdateBudgetItemRequest) (*model.BudgetItem, error) {
	item, err := s.budgetRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrBudgetItemNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, requesterID, item.EventID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		item.Amount = *req.Amount
	}

	if err := validateBudgetItem(item); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete deletes a budget item. Only organizers of the item's event may
// delete budget items.
func (s *BudgetService) Delete(ctx context.Context, requesterID, itemID string) error {
	item, err := s.budgetRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrBudgetItemNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, requesterID, item.EventID); err != nil {
		return err
	}

	return s.budgetRepo.Delete(ctx, itemID)
}

func validateBudgetItem(item *model.BudgetItem) error {
	if item.Title == "" {
		return ErrBudgetItemTitleRequired
	}
	if len(item.Title) > model.MaxBudgetItemTitleLength {
		return ErrBudgetItemTitleTooLong
	}
	if item.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}
