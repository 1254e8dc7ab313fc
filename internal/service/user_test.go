package service

import (
	"context"
	"errors"
	"testing"

	"github.com/crewly/api/internal/model"
)

func TestUpdateUser_Self_Applies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stored := &model.User{ID: "user:1", Username: "ada", Email: "ada@example.com"}
	userRepo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return stored, nil
		},
	}
	svc := NewUserService(UserServiceConfig{UserRepo: userRepo})

	user, err := svc.Update(ctx, "user:1", "user:1", model.UpdateUserRequest{
		JobTitle: strPtr("Stage Manager"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.JobTitle == nil || *user.JobTitle != "Stage Manager" {
		t.Errorf("expected job title update, got %+v", user.JobTitle)
	}
}

func TestUpdateUser_OtherUser_Denied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewUserService(UserServiceConfig{UserRepo: &mockUserRepo{}})

	_, err := svc.Update(ctx, "user:1", "user:2", model.UpdateUserRequest{
		JobTitle: strPtr("Hijacked"),
	})
	if !errors.Is(err, ErrNotSelf) {
		t.Errorf("expected ErrNotSelf, got %v", err)
	}
}

func TestUpdateUser_TakenUsername_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stored := &model.User{ID: "user:1", Username: "ada", Email: "ada@example.com"}
	userRepo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return stored, nil
		},
		getByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "user:2", Username: username}, nil
		},
	}
	svc := NewUserService(UserServiceConfig{UserRepo: userRepo})

	_, err := svc.Update(ctx, "user:1", "user:1", model.UpdateUserRequest{
		Username: strPtr("taken"),
	})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Errorf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestDeleteUser_OtherUser_Denied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewUserService(UserServiceConfig{UserRepo: &mockUserRepo{}})

	err := svc.Delete(ctx, "user:1", "user:2")
	if !errors.Is(err, ErrNotSelf) {
		t.Errorf("expected ErrNotSelf, got %v", err)
	}
}

func TestDeleteUser_Self_Succeeds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deleted := false
	userRepo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := NewUserService(UserServiceConfig{UserRepo: userRepo})

	if err := svc.Delete(ctx, "user:1", "user:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected account to be deleted")
	}
}

func TestGetUser_Missing_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewUserService(UserServiceConfig{UserRepo: &mockUserRepo{}})

	_, err := svc.Get(ctx, "user:missing", "user:missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUser_OtherUser_Denied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	userRepo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	svc := NewUserService(UserServiceConfig{UserRepo: userRepo})

	_, err := svc.Get(ctx, "user:1", "user:2")
	if !errors.Is(err, ErrNotSelf) {
		t.Errorf("expected ErrNotSelf, got %v", err)
	}
}
