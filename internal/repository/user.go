package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			image: IF $image IS NOT NULL THEN $image ELSE NONE END,
			job_title: IF $job_title IS NOT NULL THEN $job_title ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"username":  user.Username,
		"email":     user.Email,
		"hash":      ptrToNone(user.Hash),
		"image":     ptrToNone(user.Image),
		"job_title": ptrToNone(user.JobTitle),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: username or email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.getOne(ctx, query, vars)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	return r.getOne(ctx, query, vars)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	return r.getOne(ctx, query, vars)
}

// List retrieves all users ordered by username
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * FROM user ORDER BY username ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0)
	for _, row := range unwrapRecords(result) {
		user, err := parseUserRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Update updates a user's mutable fields
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE type::record($id) SET
			username = $username,
			email = $email,
			image = $image,
			job_title = $job_title,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"image":     user.Image,
		"job_title": user.JobTitle,
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: username or email already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// Delete deletes a user together with every row that references the user.
// Team memberships, tasks, tickets, messages, and refresh tokens go in the
// same transaction so no dangling record links survive.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	vars := map[string]interface{}{"user_id": id}

	batch := database.NewAtomicBatch()
	batch.Add(`DELETE team WHERE user = type::record($user_id)`, vars)
	batch.Add(`DELETE task WHERE user = type::record($user_id)`, vars)
	batch.Add(`DELETE ticket WHERE user = type::record($user_id)`, vars)
	batch.Add(`DELETE message WHERE sender = type::record($user_id)`, vars)
	batch.Add(`DELETE refresh_token WHERE user = type::record($user_id)`, vars)
	batch.Add(`DELETE type::record($user_id)`, vars)
	return batch.Execute(ctx, r.db)
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func parseUserResult(result interface{}) (*model.User, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return parseUserRow(data)
}

func parseUserRow(data map[string]interface{}) (*model.User, error) {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	normalizeTimes(data, "created_on", "updated_on")

	// The hash field is excluded from JSON so pull it out before the round-trip
	var hash *string
	if h, ok := data["hash"].(string); ok {
		hash = &h
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(jsonBytes, &user); err != nil {
		return nil, err
	}

	user.Hash = hash
	return &user, nil
}
