package handler

import (
	"net/http"

	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
)

// MessageHandler handles event chat endpoints
type MessageHandler struct {
	svc *service.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Create handles POST /v1/messages - post a message to an event's chat,
// team members only
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateMessageRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	message, err := h.svc.Create(ctx, userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, message, nil)
}

// Get handles GET /v1/messages/{messageId} - get a message, team members only
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	messageID := r.PathValue("messageId")
	if messageID == "" {
		WriteError(w, model.NewBadRequestError("message ID required"))
		return
	}

	message, err := h.svc.Get(ctx, userID, messageID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, message, nil)
}

// ListByEvent handles GET /v1/events/{eventId}/messages - list an event's
// chat messages in posting order, team members only
func (h *MessageHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
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

	messages, err := h.svc.ListByEvent(ctx, userID, eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, messages, nil)
}

// Update handles PATCH /v1/messages/{messageId} - edit a message, sender only
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	messageID := r.PathValue("messageId")
	if messageID == "" {
		WriteError(w, model.NewBadRequestError("message ID required"))
		return
	}

	var req model.UpdateMessageRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	message, err := h.svc.Update(ctx, userID, messageID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, message, nil)
}

// Delete handles DELETE /v1/messages/{messageId} - remove a message.
// Allowed for the sender and for the event's organizer.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	messageID := r.PathValue("messageId")
	if messageID == "" {
		WriteError(w, model.NewBadRequestError("message ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, messageID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
