package service

import (
	"context"
	"testing"
	"time"

	"github.com/crewly/api/internal/model"
)

// ============================================================================
// hashToken Tests
// ============================================================================

func TestHashToken_Deterministic(t *testing.T) {
	t.Parallel()

	a := hashToken("some-refresh-token")
	b := hashToken("some-refresh-token")
	if a != b {
		t.Error("expected identical hashes for identical tokens")
	}
	if a == hashToken("other-token") {
		t.Error("expected different hashes for different tokens")
	}
	if a == "some-refresh-token" {
		t.Error("token must not be stored in the clear")
	}
}

// ============================================================================
// GenerateTokenPair Tests
// ============================================================================

func TestGenerateTokenPair_StoresHashedToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var stored *RefreshToken
	tokenRepo := &mockTokenRepo{
		createFunc: func(ctx context.Context, token *RefreshToken) error {
			stored = token
			return nil
		},
	}
	svc := NewTokenService(TokenServiceConfig{
		JWTService: createTestJWTService(t),
		TokenRepo:  tokenRepo,
	})

	pair, err := svc.GenerateTokenPair(ctx, &model.User{ID: "user:1", Username: "ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected refresh token to be stored")
	}
	if stored.TokenHash == pair.RefreshToken {
		t.Error("refresh token must be stored hashed")
	}
	if stored.TokenHash != hashToken(pair.RefreshToken) {
		t.Error("stored hash must match the issued token")
	}
	if stored.UserID != "user:1" {
		t.Errorf("unexpected user binding: %q", stored.UserID)
	}
}

// ============================================================================
// RefreshTokens Tests (single-use rotation)
// ============================================================================

func TestRefreshTokens_ValidToken_RotatesAndRevokesOld(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	user := &model.User{ID: "user:1", Username: "ada", Email: "ada@example.com"}
	stored := map[string]*RefreshToken{}
	revoked := map[string]bool{}
	tokenRepo := &mockTokenRepo{
		createFunc: func(ctx context.Context, token *RefreshToken) error {
			stored[token.TokenHash] = token
			return nil
		},
		getByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return stored[hash], nil
		},
		revokeFunc: func(ctx context.Context, hash string) error {
			revoked[hash] = true
			if tok := stored[hash]; tok != nil {
				tok.Revoked = true
			}
			return nil
		},
	}
	svc := NewTokenService(TokenServiceConfig{
		JWTService: createTestJWTService(t),
		TokenRepo:  tokenRepo,
	})

	pair, err := svc.GenerateTokenPair(ctx, user)
	if err != nil {
		t.Fatalf("initial pair failed: %v", err)
	}

	newPair, err := svc.RefreshTokens(ctx, pair.RefreshToken, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newPair.RefreshToken == pair.RefreshToken {
		t.Error("expected a rotated refresh token")
	}
	if !revoked[hashToken(pair.RefreshToken)] {
		t.Error("expected old token to be revoked")
	}
}

func TestRefreshTokens_ReuseRevokedToken_RevokesAllUserTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	user := &model.User{ID: "user:1", Username: "ada", Email: "ada@example.com"}
	revokedAllFor := ""
	tokenRepo := &mockTokenRepo{
		getByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				UserID:    "user:1",
				TokenHash: hash,
				ExpiresAt: time.Now().Add(time.Hour),
				Revoked:   true,
			}, nil
		},
		revokeAllFunc: func(ctx context.Context, userID string) error {
			revokedAllFor = userID
			return nil
		},
	}
	svc := NewTokenService(TokenServiceConfig{
		JWTService: createTestJWTService(t),
		TokenRepo:  tokenRepo,
	})

	_, err := svc.RefreshTokens(ctx, "reused-token", user)
	if err != ErrRefreshTokenRevoked {
		t.Errorf("expected ErrRefreshTokenRevoked, got %v", err)
	}
	if revokedAllFor != "user:1" {
		t.Error("expected reuse detection to revoke every token for the user")
	}
}

func TestRefreshTokens_ExpiredToken_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	user := &model.User{ID: "user:1", Username: "ada", Email: "ada@example.com"}
	tokenRepo := &mockTokenRepo{
		getByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				UserID:    "user:1",
				TokenHash: hash,
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}
	svc := NewTokenService(TokenServiceConfig{
		JWTService: createTestJWTService(t),
		TokenRepo:  tokenRepo,
	})

	_, err := svc.RefreshTokens(ctx, "expired-token", user)
	if err != ErrRefreshTokenExpired {
		t.Errorf("expected ErrRefreshTokenExpired, got %v", err)
	}
}

func TestRefreshTokens_UnknownToken_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewTokenService(TokenServiceConfig{
		JWTService: createTestJWTService(t),
		TokenRepo:  &mockTokenRepo{},
	})

	_, err := svc.RefreshTokens(ctx, "never-issued", &model.User{ID: "user:1"})
	if err != ErrInvalidRefreshToken {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
