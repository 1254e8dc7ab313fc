package service

import (
	"context"

	"github.com/crewly/api/internal/model"
)

// TeamRepository defines the interface for team membership storage
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	GetMembership(ctx context.Context, userID, eventID string) (*model.Team, error)
	ListByEvent(ctx context.Context, eventID string) ([]*model.Team, error)
	ListPendingForUser(ctx context.Context, userID string) ([]*model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id string) error
}

// TeamService handles team membership and invitation business logic
type TeamService struct {
	teamRepo   TeamRepository
	eventRepo  EventRepository
	userRepo   UserRepository
	membership *MembershipResolver
}

// TeamServiceConfig holds configuration for the team service
type TeamServiceConfig struct {
	TeamRepo   TeamRepository
	EventRepo  EventRepository
	UserRepo   UserRepository
	Membership *MembershipResolver
}

// NewTeamService creates a new team service
func NewTeamService(cfg TeamServiceConfig) *TeamService {
	return &TeamService{
		teamRepo:   cfg.TeamRepo,
		eventRepo:  cfg.EventRepo,
		userRepo:   cfg.UserRepo,
		membership: cfg.Membership,
	}
}

// Invite creates a pending team row for a user. Only organizers of the
// event may invite. A user holds at most one team row per event.
func (s *TeamService) Invite(ctx context.Context, requesterID string, req model.CreateTeamRequest) (*model.Team, error) {
	role := req.Role
	if role == "" {
		role = model.TeamRoleParticipant
	}
	if !role.IsValid() {
		return nil, ErrInvalidTeamRole
	}

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

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.teamRepo.GetMembership(ctx, req.UserID, req.EventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyEventMember
	}

	team := &model.Team{
		UserID:           req.UserID,
		EventID:          req.EventID,
		Role:             role,
		InvitationStatus: false,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Get retrieves a team row. Visible to members of the event, pending
// invitees included.
func (s *TeamService) Get(ctx context.Context, requesterID, teamID string) (*model.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	if err := s.membership.RequireMember(ctx, requesterID, team.EventID); err != nil {
		return nil, err
	}
	return team, nil
}

// ListByEvent retrieves the team roster for an event. Visible to members
// only.
func (s *TeamService) ListByEvent(ctx context.Context, requesterID, eventID string) ([]*model.Team, error) {
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

	return s.teamRepo.ListByEvent(ctx, eventID)
}

// ListInvitations retrieves the requester's open invitations
func (s *TeamService) ListInvitations(ctx context.Context, requesterID string) ([]*model.Team, error) {
	return s.teamRepo.ListPendingForUser(ctx, requesterID)
}

// Update applies the dual mutation rule for team rows:
//
//   - Organizers of the event may change the role.
//   - The invited user may flip invitation_status from pending to accepted.
//     Acceptance is one-way.
//
// Each field is applied only when its requester qualifies; a field the
// requester is not entitled to set is ignored when the other one applies.
// A request where neither field can be applied is rejected.
func (s *TeamService) Update(ctx context.Context, requesterID, teamID string, req model.UpdateTeamRequest) (*model.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	if req.Role != nil && !req.Role.IsValid() {
		return nil, ErrInvalidTeamRole
	}

	isOrganizer, err := s.membership.IsOrganizer(ctx, requesterID, team.EventID)
	if err != nil {
		return nil, err
	}
	isInvitedSubject := team.UserID == requesterID && !team.Accepted()

	applied := false

	if req.Role != nil && isOrganizer {
		team.Role = *req.Role
		applied = true
	}

	if req.InvitationStatus != nil && isInvitedSubject {
		if !*req.InvitationStatus {
			return nil, ErrInvitationNotRevocable
		}
		team.InvitationStatus = true
		applied = true
	}

	if !applied {
		switch {
		case req.Role != nil:
			return nil, ErrNotEventOrganizer
		case req.InvitationStatus != nil && team.UserID == requesterID:
			// subject of an already-accepted row
			return nil, ErrInvitationNotRevocable
		case req.InvitationStatus != nil:
			return nil, ErrNotInvitationSubject
		default:
			return team, nil
		}
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes a team row. Only organizers of the event may remove
// members or retract invitations.
func (s *TeamService) Delete(ctx context.Context, requesterID, teamID string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}

	if err := s.membership.RequireOrganizer(ctx, requesterID, team.EventID); err != nil {
		return err
	}

	return s.teamRepo.Delete(ctx, teamID)
}
