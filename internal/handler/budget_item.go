package handler

import (
	"net/http"

	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
)

// BudgetItemHandler handles budget item endpoints
type BudgetItemHandler struct {
	svc *service.BudgetService
}

// NewBudgetItemHandler creates a new budget item handler
func NewBudgetItemHandler(svc *service.BudgetService) *BudgetItemHandler {
	return &BudgetItemHandler{svc: svc}
}

// Create handles POST /v1/budget-items - create a budget item, organizer only
func (h *BudgetItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateBudgetItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.svc.Create(ctx, userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, item, nil)
}

// Get handles GET /v1/budget-items/{budgetItemId} - get a budget item,
// team members only
func (h *BudgetItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	itemID := r.PathValue("budgetItemId")
	if itemID == "" {
		WriteError(w, model.NewBadRequestError("budget item ID required"))
		return
	}

	item, err := h.svc.Get(ctx, userID, itemID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// Update handles PATCH /v1/budget-items/{budgetItemId} - update a budget
// item, organizer only
func (h *BudgetItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	itemID := r.PathValue("budgetItemId")
	if itemID == "" {
		WriteError(w, model.NewBadRequestError("budget item ID required"))
		return
	}

	var req model.UpdateBudgetItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.svc.Update(ctx, userID, itemID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}

// Delete handles DELETE /v1/budget-items/{budgetItemId} - delete a budget
// item, organizer only
func (h *BudgetItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	itemID := r.PathValue("budgetItemId")
	if itemID == "" {
		WriteError(w, model.NewBadRequestError("budget item ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, itemID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
