package model

import "time"

// TeamRole represents a member's role within an event team
type TeamRole string

const (
	TeamRoleOrganizer   TeamRole = "organizer"   // Manages the event and its resources
	TeamRoleParticipant TeamRole = "participant" // Default - can view and chat
)

// IsValid returns true if the role is a valid team role
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleOrganizer, TeamRoleParticipant:
		return true
	default:
		return false
	}
}

// IsOrganizer returns true if the role grants organizer privileges
func (r TeamRole) IsOrganizer() bool {
	return r == TeamRoleOrganizer
}

// Team represents a user's membership on an event team.
// InvitationStatus is false while the invitation is pending and true once
// the invited user has accepted. There is no reverse transition.
type Team struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	EventID          string    `json:"event_id"`
	Role             TeamRole  `json:"role"`
	InvitationStatus bool      `json:"invitation_status"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}

// Accepted returns true once the invitation has been accepted
func (t *Team) Accepted() bool {
	return t.InvitationStatus
}

// CreateTeamRequest represents a request to invite a user to an event team
type CreateTeamRequest struct {
	UserID  string   `json:"user_id"`
	EventID string   `json:"event_id"`
	Role    TeamRole `json:"role,omitempty"` // defaults to "participant"
}

// UpdateTeamRequest represents a request to mutate a team row.
// Organizers may set Role; the invited user may set InvitationStatus while
// the invitation is still pending.
type UpdateTeamRequest struct {
	Role             *TeamRole `json:"role,omitempty"`
	InvitationStatus *bool     `json:"invitation_status,omitempty"`
}
