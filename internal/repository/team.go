package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// TeamRepository handles team membership data access
type TeamRepository struct {
	db database.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db database.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team row. New rows always start as pending
// invitations unless the caller has set InvitationStatus explicitly.
func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	query := `
		CREATE team CONTENT {
			user: type::record($user_id),
			event: type::record($event_id),
			role: $role,
			invitation_status: $invitation_status,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user_id":           team.UserID,
		"event_id":          team.EventID,
		"role":              team.Role,
		"invitation_status": team.InvitationStatus,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: user already on this team", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	team.ID = created.ID
	team.CreatedOn = created.CreatedOn
	team.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a team row by ID
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*model.Team, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	team, err := parseTeamResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return team, nil
}

// GetMembership retrieves the team row linking a user to an event, or nil
// when the user has no row for that event. This is the single lookup every
// authorization decision goes through.
func (r *TeamRepository) GetMembership(ctx context.Context, userID, eventID string) (*model.Team, error) {
	query := `
		SELECT * FROM team
		WHERE user = type::record($user_id) AND event = type::record($event_id)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"user_id":  userID,
		"event_id": eventID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	team, err := parseTeamResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return team, nil
}

// ListByEvent retrieves all team rows for an event
func (r *TeamRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.Team, error) {
	query := `
		SELECT * FROM team
		WHERE event = type::record($event_id)
		ORDER BY created_on ASC
	`
	vars := map[string]interface{}{"event_id": eventID}

	return r.list(ctx, query, vars)
}

// ListPendingForUser retrieves the user's open invitations
func (r *TeamRepository) ListPendingForUser(ctx context.Context, userID string) ([]*model.Team, error) {
	query := `
		SELECT * FROM team
		WHERE user = type::record($user_id) AND invitation_status = false
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"user_id": userID}

	return r.list(ctx, query, vars)
}

// Update updates a team row's role and invitation status
func (r *TeamRepository) Update(ctx context.Context, team *model.Team) error {
	query := `
		UPDATE type::record($id) SET
			role = $role,
			invitation_status = $invitation_status,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":                team.ID,
		"role":              team.Role,
		"invitation_status": team.InvitationStatus,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a team row
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func (r *TeamRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Team, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	teams := make([]*model.Team, 0)
	for _, row := range unwrapRecords(result) {
		team, err := parseTeamRow(row)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func parseTeamResult(result interface{}) (*model.Team, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return parseTeamRow(data)
}

func parseTeamRow(data map[string]interface{}) (*model.Team, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	convertRecordLink(data, "user", "user_id")
	convertRecordLink(data, "event", "event_id")
	normalizeTimes(data, "created_on", "updated_on")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var team model.Team
	if err := json.Unmarshal(jsonBytes, &team); err != nil {
		return nil, err
	}
	return &team, nil
}
