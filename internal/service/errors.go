package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameRequired      = errors.New("username is required")
	ErrUsernameTooLong       = errors.New("username exceeds maximum length")
	ErrPasswordRequired      = errors.New("password is required")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong       = errors.New("password must be at most 128 characters")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrJobTitleTooLong       = errors.New("job title exceeds maximum length")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Authorization Errors =====
var (
	ErrNotEventMember    = errors.New("not authorized to perform this action")
	ErrNotEventOrganizer = errors.New("not authorized to perform this action")
	ErrNotSelf           = errors.New("not authorized to perform this action")
)

// ===== Event Errors =====
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventTitleRequired   = errors.New("event title is required")
	ErrEventTitleTooLong    = errors.New("event title exceeds maximum length")
	ErrEventLocationTooLong = errors.New("event location exceeds maximum length")
	ErrEventDateRequired    = errors.New("event date is required")
	ErrNegativePrice        = errors.New("price cannot be negative")
)

// ===== Team Errors =====
var (
	ErrTeamNotFound           = errors.New("team member not found")
	ErrAlreadyEventMember     = errors.New("user is already on this team")
	ErrInvalidTeamRole        = errors.New("invalid team role")
	ErrInvitationNotRevocable = errors.New("not authorized to perform this action")
	ErrNotInvitationSubject   = errors.New("not authorized to perform this action")
)

// ===== Task Errors =====
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleRequired = errors.New("task title is required")
	ErrTaskTitleTooLong  = errors.New("task title exceeds maximum length")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// ===== Budget Errors =====
var (
	ErrBudgetItemNotFound      = errors.New("budget item not found")
	ErrBudgetItemTitleRequired = errors.New("budget item title is required")
	ErrBudgetItemTitleTooLong  = errors.New("budget item title exceeds maximum length")
	ErrNegativeAmount          = errors.New("amount cannot be negative")
)

// ===== Ticket Errors =====
var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketOwnerMismatch = errors.New("not authorized to perform this action")
	ErrTicketCodeTooLong   = errors.New("ticket code exceeds maximum length")
	ErrTicketAlreadyExists = errors.New("ticket code already exists")
)

// ===== Message Errors =====
var (
	ErrMessageNotFound        = errors.New("message not found")
	ErrMessageSenderMismatch  = errors.New("not authorized to perform this action")
	ErrMessageContentRequired = errors.New("message content is required")
)
