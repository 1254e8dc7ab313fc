package handler

import (
	"errors"

	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Authentication Errors → 401 =====
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotEventMember),
		errors.Is(err, service.ErrNotEventOrganizer),
		errors.Is(err, service.ErrNotSelf),
		errors.Is(err, service.ErrTicketOwnerMismatch),
		errors.Is(err, service.ErrMessageSenderMismatch),
		errors.Is(err, service.ErrInvitationNotRevocable),
		errors.Is(err, service.ErrNotInvitationSubject):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrTaskNotFound):
		return model.NewNotFoundError("task")
	case errors.Is(err, service.ErrTeamNotFound):
		return model.NewNotFoundError("team")
	case errors.Is(err, service.ErrBudgetItemNotFound):
		return model.NewNotFoundError("budget item")
	case errors.Is(err, service.ErrTicketNotFound):
		return model.NewNotFoundError("ticket")
	case errors.Is(err, service.ErrMessageNotFound):
		return model.NewNotFoundError("message")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameAlreadyExists),
		errors.Is(err, service.ErrAlreadyEventMember),
		errors.Is(err, service.ErrTicketAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrUsernameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "username", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})

	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	case errors.Is(err, service.ErrJobTitleTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "job_title", Message: err.Error()}})

	case errors.Is(err, service.ErrEventTitleRequired),
		errors.Is(err, service.ErrEventTitleTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrEventLocationTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "location", Message: err.Error()}})
	case errors.Is(err, service.ErrEventDateRequired):
		return model.NewValidationError([]model.FieldError{{Field: "date", Message: err.Error()}})
	case errors.Is(err, service.ErrNegativePrice):
		return model.NewValidationError([]model.FieldError{{Field: "price", Message: err.Error()}})

	case errors.Is(err, service.ErrTaskTitleRequired),
		errors.Is(err, service.ErrTaskTitleTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidTaskStatus):
		return model.NewValidationError([]model.FieldError{{Field: "status", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidTeamRole):
		return model.NewValidationError([]model.FieldError{{Field: "role", Message: err.Error()}})

	case errors.Is(err, service.ErrBudgetItemTitleRequired),
		errors.Is(err, service.ErrBudgetItemTitleTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrNegativeAmount):
		return model.NewValidationError([]model.FieldError{{Field: "amount", Message: err.Error()}})

	case errors.Is(err, service.ErrTicketCodeTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "code", Message: err.Error()}})

	case errors.Is(err, service.ErrMessageContentRequired):
		return model.NewValidationError([]model.FieldError{{Field: "content", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
