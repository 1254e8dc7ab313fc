package handler

import (
	"net/http"

	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
)

// TeamHandler handles team membership endpoints
type TeamHandler struct {
	svc *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// Create handles POST /v1/teams - invite a user to an event team.
// Organizer only; the new row starts as a pending invitation.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateTeamRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	team, err := h.svc.Invite(ctx, userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, team, nil)
}

// Get handles GET /v1/teams/{teamId} - get a team row, team members only
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	teamID := r.PathValue("teamId")
	if teamID == "" {
		WriteError(w, model.NewBadRequestError("team ID required"))
		return
	}

	team, err := h.svc.Get(ctx, userID, teamID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, team, nil)
}

// ListByEvent handles GET /v1/events/{eventId}/teams - list an event's
// team rows, team members only
func (h *TeamHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	teams, err := h.svc.ListByEvent(ctx, userID, eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, teams, nil)
}

// Update handles PATCH /v1/teams/{teamId}. The invited user may accept a
// pending invitation; the event's organizer may change the member's role.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	teamID := r.PathValue("teamId")
	if teamID == "" {
		WriteError(w, model.NewBadRequestError("team ID required"))
		return
	}

	var req model.UpdateTeamRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	team, err := h.svc.Update(ctx, userID, teamID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, team, nil)
}

// Delete handles DELETE /v1/teams/{teamId} - remove a member from an
// event team, organizer only
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	teamID := r.PathValue("teamId")
	if teamID == "" {
		WriteError(w, model.NewBadRequestError("team ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, teamID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
