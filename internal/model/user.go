package model

import "time"

// User represents a user account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Hash      *string   `json:"-"` // Never expose password hash
	Image     *string   `json:"image,omitempty"`
	JobTitle  *string   `json:"job_title,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Field length constraints
const (
	MaxUsernameLength = 64
	MaxJobTitleLength = 64
)

// UpdateUserRequest represents a request to update a user's own profile
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Image    *string `json:"image,omitempty"`
	JobTitle *string `json:"job_title,omitempty"`
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}
