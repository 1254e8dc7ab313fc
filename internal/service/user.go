package service

import (
	"context"
	"strings"

	"github.com/crewly/api/internal/model"
)

// UserService handles user profile operations
type UserService struct {
	userRepo UserRepository
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	UserRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{
		userRepo: cfg.UserRepo,
	}
}

// List retrieves all users
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// Get retrieves a user by ID. Users can only retrieve themselves; the
// public listing is the only cross-user view.
func (s *UserService) Get(ctx context.Context, requesterID, userID string) (*model.User, error) {
	if requesterID != userID {
		return nil, ErrNotSelf
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update updates a user's own profile. Users can only modify themselves.
func (s *UserService) Update(ctx context.Context, requesterID, userID string, req model.UpdateUserRequest) (*model.User, error) {
	if requesterID != userID {
		return nil, ErrNotSelf
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, ErrUsernameRequired
		}
		if len(username) > model.MaxUsernameLength {
			return nil, ErrUsernameTooLong
		}
		if username != user.Username {
			existing, err := s.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrUsernameAlreadyExists
			}
		}
		user.Username = username
	}

	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if !isValidEmail(email) {
			return nil, ErrInvalidEmail
		}
		if email != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailAlreadyExists
			}
		}
		user.Email = email
	}

	if req.Image != nil {
		user.Image = stringPtr(strings.TrimSpace(*req.Image))
	}

	if req.JobTitle != nil {
		jobTitle := strings.TrimSpace(*req.JobTitle)
		if len(jobTitle) > model.MaxJobTitleLength {
			return nil, ErrJobTitleTooLong
		}
		user.JobTitle = stringPtr(jobTitle)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete deletes a user's own account. Users can only delete themselves.
// The repository removes dependent rows and refresh tokens in the same
// transaction.
func (s *UserService) Delete(ctx context.Context, requesterID, userID string) error {
	if requesterID != userID {
		return ErrNotSelf
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.userRepo.Delete(ctx, userID)
}
