package service

import (
	"context"
	"strings"

	"github.com/crewly/api/internal/model"
)

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	ListByEvent(ctx context.Context, eventID string) ([]*model.Message, error)
	Update(ctx context.Context, message *model.Message) error
	Delete(ctx context.Context, id string) error
}

// MessageService handles message business logic
type MessageService struct {
	messageRepo MessageRepository
	eventRepo   EventRepository
	membership  *MembershipResolver
}

// MessageServiceConfig holds configuration for the message service
type MessageServiceConfig struct {
	MessageRepo MessageRepository
	EventRepo   EventRepository
	Membership  *MembershipResolver
}

// NewMessageService creates a new message service
func NewMessageService(cfg MessageServiceConfig) *MessageService {
	return &MessageService{
		messageRepo: cfg.MessageRepo,
		eventRepo:   cfg.EventRepo,
		membership:  cfg.Membership,
	}
}

// Create posts a message. The requester must be the stated sender and a
// member of the target event.
func (s *MessageService) Create(ctx context.Context, requesterID string, req model.CreateMessageRequest) (*model.Message, error) {
	if req.SenderID != requesterID {
		return nil, ErrMessageSenderMismatch
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.membership.RequireMember(ctx, requesterID, req.EventID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrMessageContentRequired
	}

	message := &model.Message{
		Content:  content,
		Image:    req.Image,
		SenderID: requesterID,
		EventID:  req.EventID,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Get retrieves a message. Visible to members of the message's event.
func (s *MessageService) Get(ctx context.Context, requesterID, messageID string) (*model.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}

	if err := s.membership.RequireMember(ctx, requesterID, message.EventID); err != nil {
		return nil, err
	}
	return message, nil
}

// ListByEvent retrieves the message feed for an event in chronological
// order. Visible to members.
func (s *MessageService) ListByEvent(ctx context.Context, requesterID, eventID string) ([]*model.Message, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.membership.RequireMember(ctx, requesterID, eventID); err != nil {
		return nil, err
	}

	return s.messageRepo.ListByEvent(ctx, eventID)
}

// Update edits a message. Only the sender may edit their own messages.
func (s *MessageService) Update(ctx context.Context, requesterID, messageID string, req model.UpdateMessageRequest) (*model.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}

	if message.SenderID != requesterID {
		return nil, ErrMessageSenderMismatch
	}

	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, ErrMessageContentRequired
		}
		message.Content = content
	}
	if req.Image != nil {
		message.Image = stringPtr(strings.TrimSpace(*req.Image))
	}

	if err := s.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Delete deletes a message. The sender may delete their own messages;
// organizers of the event may moderate any message.
func (s *MessageService) Delete(ctx context.Context, requesterID, messageID string) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}

	if message.SenderID != requesterID {
		organizer, err := s.membership.IsOrganizer(ctx, requesterID, message.EventID)
		if err != nil {
			return err
		}
		if !organizer {
			return ErrMessageSenderMismatch
		}
	}

	return s.messageRepo.Delete(ctx, messageID)
}
