package service

import (
	"context"

	"github.com/crewly/api/internal/model"
)

// MembershipReader defines the single lookup authorization decisions need
type MembershipReader interface {
	GetMembership(ctx context.Context, userID, eventID string) (*model.Team, error)
}

// MembershipResolver answers "what is this user to this event?" for the
// services that guard event-scoped resources. Every access check funnels
// through the one indexed team lookup so the policy stays in one place.
type MembershipResolver struct {
	teams MembershipReader
}

// NewMembershipResolver creates a new membership resolver
func NewMembershipResolver(teams MembershipReader) *MembershipResolver {
	return &MembershipResolver{teams: teams}
}

// Membership returns the team row linking the user to the event, or nil
// when no row exists
func (m *MembershipResolver) Membership(ctx context.Context, userID, eventID string) (*model.Team, error) {
	return m.teams.GetMembership(ctx, userID, eventID)
}

// RequireMember returns nil when the user holds a team row for the event,
// in any role. Invitation state is irrelevant here: a pending invitee is
// already a member for access purposes.
func (m *MembershipResolver) RequireMember(ctx context.Context, userID, eventID string) error {
	team, err := m.teams.GetMembership(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotEventMember
	}
	return nil
}

// RequireOrganizer returns nil when the user holds an organizer team row
// for the event, pending or accepted
func (m *MembershipResolver) RequireOrganizer(ctx context.Context, userID, eventID string) error {
	team, err := m.teams.GetMembership(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if team == nil || !team.Role.IsOrganizer() {
		return ErrNotEventOrganizer
	}
	return nil
}

// IsOrganizer reports whether the user holds an organizer team row for
// the event
func (m *MembershipResolver) IsOrganizer(ctx context.Context, userID, eventID string) (bool, error) {
	team, err := m.teams.GetMembership(ctx, userID, eventID)
	if err != nil {
		return false, err
	}
	return team != nil && team.Role.IsOrganizer(), nil
}
