package handler

import (
	"net/http"

	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
)

// TaskHandler handles task endpoints
type TaskHandler struct {
	svc *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create handles POST /v1/tasks - create a task, organizer only
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	task, err := h.svc.Create(ctx, userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, task, nil)
}

// Get handles GET /v1/tasks/{taskId} - get a task, team members only
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	taskID := r.PathValue("taskId")
	if taskID == "" {
		WriteError(w, model.NewBadRequestError("task ID required"))
		return
	}

	task, err := h.svc.Get(ctx, userID, taskID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, task, nil)
}

// ListByEvent handles GET /v1/events/{eventId}/tasks - list an event's
// tasks, team members only
func (h *TaskHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
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

	tasks, err := h.svc.ListByEvent(ctx, userID, eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, tasks, nil)
}

// Update handles PATCH /v1/tasks/{taskId} - update a task, organizer only
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	taskID := r.PathValue("taskId")
	if taskID == "" {
		WriteError(w, model.NewBadRequestError("task ID required"))
		return
	}

	var req model.UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	task, err := h.svc.Update(ctx, userID, taskID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, task, nil)
}

// Delete handles DELETE /v1/tasks/{taskId} - delete a task, organizer only
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	taskID := r.PathValue("taskId")
	if taskID == "" {
		WriteError(w, model.NewBadRequestError("task ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, taskID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
