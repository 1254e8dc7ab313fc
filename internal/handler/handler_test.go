package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/model"
	"github.com/crewly/api/internal/service"
	"github.com/crewly/api/pkg/jwt"
)

// ============================================================================
// Request Helpers
// ============================================================================

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

// ============================================================================
// Stub Repositories
// ============================================================================

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = "user:" + user.Username
	}
	user.CreatedOn = time.Now()
	user.UpdatedOn = user.CreatedOn
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) List(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type stubTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*service.RefreshToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*service.RefreshToken)}
}

func (r *stubTokenRepo) CreateRefreshToken(ctx context.Context, token *service.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *stubTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*service.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[hash], nil
}

func (r *stubTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

func (r *stubTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *stubTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	return nil
}

type stubEventRepo struct {
	createWithOrganizerFunc func(ctx context.Context, event *model.Event, organizerID string) error
	getByIDFunc             func(ctx context.Context, id string) (*model.Event, error)
	listFunc                func(ctx context.Context) ([]*model.Event, error)
	listOrganizedFunc       func(ctx context.Context, userID string) ([]*model.OrganizedEvent, error)
	updateFunc              func(ctx context.Context, event *model.Event) error
	deleteFunc              func(ctx context.Context, id string) error
}

func (r *stubEventRepo) CreateWithOrganizer(ctx context.Context, event *model.Event, organizerID string) error {
	if r.createWithOrganizerFunc != nil {
		return r.createWithOrganizerFunc(ctx, event, organizerID)
	}
	event.ID = "event:stub"
	return nil
}

func (r *stubEventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if r.getByIDFunc != nil {
		return r.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (r *stubEventRepo) List(ctx context.Context) ([]*model.Event, error) {
	if r.listFunc != nil {
		return r.listFunc(ctx)
	}
	return nil, nil
}

func (r *stubEventRepo) ListOrganizedByUser(ctx context.Context, userID string) ([]*model.OrganizedEvent, error) {
	if r.listOrganizedFunc != nil {
		return r.listOrganizedFunc(ctx, userID)
	}
	return nil, nil
}

func (r *stubEventRepo) Update(ctx context.Context, event *model.Event) error {
	if r.updateFunc != nil {
		return r.updateFunc(ctx, event)
	}
	return nil
}

func (r *stubEventRepo) Delete(ctx context.Context, id string) error {
	if r.deleteFunc != nil {
		return r.deleteFunc(ctx, id)
	}
	return nil
}

// stubMembership resolves memberships from a fixed user|event table
type stubMembership struct {
	rows map[string]*model.Team
}

func (s *stubMembership) GetMembership(ctx context.Context, userID, eventID string) (*model.Team, error) {
	if s.rows == nil {
		return nil, nil
	}
	return s.rows[userID+"|"+eventID], nil
}

// ============================================================================
// Service Fixtures
// ============================================================================

func newTestAuthService(t *testing.T) (*service.AuthService, *stubUserRepo) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	jwtService := jwt.NewTestService(privateKey, "test-issuer", time.Hour)

	userRepo := newStubUserRepo()
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		TokenRepo:  newStubTokenRepo(),
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})
	return authService, userRepo
}

func newTestEventService(events *stubEventRepo, membership *stubMembership) *service.EventService {
	if membership == nil {
		membership = &stubMembership{}
	}
	return service.NewEventService(service.EventServiceConfig{
		EventRepo:  events,
		Membership: service.NewMembershipResolver(membership),
	})
}

func organizerRow(userID, eventID string) *model.Team {
	return &model.Team{
		ID:               "team:" + userID,
		UserID:           userID,
		EventID:          eventID,
		Role:             model.TeamRoleOrganizer,
		InvitationStatus: true,
	}
}
