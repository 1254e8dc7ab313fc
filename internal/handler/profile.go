package handler

import (
	"net/http"

	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
)

// ProfileHandler serves the authenticated user's own views: their tickets,
// pending team invitations, and the events they organize.
type ProfileHandler struct {
	ticketService *service.TicketService
	teamService   *service.TeamService
	eventService  *service.EventService
}

// ProfileHandlerConfig holds dependencies for the profile handler
type ProfileHandlerConfig struct {
	TicketService *service.TicketService
	TeamService   *service.TeamService
	EventService  *service.EventService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(cfg ProfileHandlerConfig) *ProfileHandler {
	return &ProfileHandler{
		ticketService: cfg.TicketService,
		teamService:   cfg.TeamService,
		eventService:  cfg.EventService,
	}
}

// Tickets handles GET /v1/profile/tickets - list the requester's tickets
func (h *ProfileHandler) Tickets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	tickets, err := h.ticketService.ListMine(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, tickets, nil)
}

// Invitations handles GET /v1/profile/invitations - list the requester's
// pending team invitations, newest first
func (h *ProfileHandler) Invitations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	invitations, err := h.teamService.ListInvitations(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, invitations, nil)
}

// OrganizedEvents handles GET /v1/profile/events/organized - list events
// the requester organizes
func (h *ProfileHandler) OrganizedEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	events, err := h.eventService.ListOrganized(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, events, nil)
}
