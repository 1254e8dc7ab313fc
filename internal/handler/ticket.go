package handler

import (
	"net/http"

	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
)

// TicketHandler handles ticket endpoints
type TicketHandler struct {
	svc *service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(svc *service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// Create handles POST /v1/tickets - issue a ticket to oneself
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateTicketRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	ticket, err := h.svc.Create(ctx, userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, ticket, nil)
}

// Get handles GET /v1/tickets/{ticketId} - get a ticket. Visible to the
// ticket holder and to the event's team members.
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID := r.PathValue("ticketId")
	if ticketID == "" {
		WriteError(w, model.NewBadRequestError("ticket ID required"))
		return
	}

	ticket, err := h.svc.Get(ctx, userID, ticketID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, ticket, nil)
}

// Update handles PATCH /v1/tickets/{ticketId}. Tickets are immutable once
// issued, so this always refuses.
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	WriteError(w, model.NewForbiddenError("not authorized to perform this action"))
}

// Delete handles DELETE /v1/tickets/{ticketId} - void a ticket, holder only
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	ticketID := r.PathValue("ticketId")
	if ticketID == "" {
		WriteError(w, model.NewBadRequestError("ticket ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, ticketID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
