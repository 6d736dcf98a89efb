package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"github.com/tutorlink/tutorlink/internal/pkg/auth"
)

func newTestAuthService() (*AuthService, *fakeUserRepo, *fakeSpecialUserRepo, *fakeTokenRepo, *fakeRevocationStore) {
	userRepo := newFakeUserRepo()
	specialUserRepo := newFakeSpecialUserRepo()
	tokenRepo := newFakeTokenRepo()
	revocation := newFakeRevocationStore()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	svc := NewAuthService(userRepo, specialUserRepo, tokenRepo, revocation, jwtService, &fakeEmailService{}, zerolog.Nop())
	return svc, userRepo, specialUserRepo, tokenRepo, revocation
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "student@example.com",
		Password:  "password1",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.User.RoleType != string(models.RoleUser) {
		t.Fatalf("expected role %s, got %s", models.RoleUser, resp.User.RoleType)
	}
	if resp.Tokens == nil || resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected a token pair, got %+v", resp.Tokens)
	}
}

func TestRegisterAllowListOverridesRequestedRole(t *testing.T) {
	svc, _, specialUserRepo, _, _ := newTestAuthService()

	if err := specialUserRepo.Create(context.Background(), &models.SpecialUser{
		Email:    "staff@example.com",
		RoleType: models.RoleStaff,
	}); err != nil {
		t.Fatalf("seeding allow-list failed: %v", err)
	}

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "staff@example.com",
		Password:  "password1",
		FirstName: "Sam",
		LastName:  "Staff",
		RoleType:  models.RoleUser,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.User.RoleType != string(models.RoleStaff) {
		t.Fatalf("allow-list entry should win: expected %s, got %s", models.RoleStaff, resp.User.RoleType)
	}
}

func TestRegisterPrivilegedRoleRejectedWithoutAllowList(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	for _, role := range []models.RoleType{models.RoleAdmin, models.RoleStaff} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:     "wannabe@example.com",
			Password:  "password1",
			FirstName: "Eve",
			LastName:  "Nobody",
			RoleType:  role,
		})
		if !errors.Is(err, apperrors.ErrInvalidRole) {
			t.Fatalf("role %s: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestRegisterTutorRoleAllowedDirectly(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "tutor@example.com",
		Password:  "password1",
		FirstName: "Tim",
		LastName:  "Tutor",
		RoleType:  models.RoleTutor,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.User.RoleType != string(models.RoleTutor) {
		t.Fatalf("expected role %s, got %s", models.RoleTutor, resp.User.RoleType)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	req := &dto.RegisterRequest{
		Email:     "dup@example.com",
		Password:  "password1",
		FirstName: "First",
		LastName:  "User",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterPasswordValidation(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "ab1"},
		{"no digit", "onlyletters"},
		{"no letter", "12345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &dto.RegisterRequest{
				Email:     "pw@example.com",
				Password:  tt.password,
				FirstName: "P",
				LastName:  "W",
			})
			if !errors.Is(err, apperrors.ErrInvalidPassword) && !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, userRepo, _, _, _ := newTestAuthService()

	hashed, err := auth.HashPassword("password1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	userRepo.add(&models.User{Email: "known@example.com", Password: hashed, RoleType: models.RoleUser, IsActive: true})
	userRepo.add(&models.User{Email: "disabled@example.com", Password: hashed, RoleType: models.RoleUser, IsActive: false})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "password1"},
		{"wrong password", "known@example.com", "wrongpass1"},
		{"inactive account", "disabled@example.com", "password1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "rotate@example.com",
		Password:  "password1",
		FirstName: "Ro",
		LastName:  "Tate",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldToken := resp.Tokens.RefreshToken

	fresh, err := svc.RefreshToken(context.Background(), oldToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if fresh.RefreshToken == oldToken {
		t.Fatalf("refresh should rotate the token")
	}

	// The old token must not be replayable
	if _, err := svc.RefreshToken(context.Background(), oldToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked on replay, got %v", err)
	}
}

func TestRefreshTokenDenylistFailureFallsBack(t *testing.T) {
	svc, _, _, _, revocation := newTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "fallback@example.com",
		Password:  "password1",
		FirstName: "Fa",
		LastName:  "Ll",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// A broken denylist must not lock users out; database state decides
	revocation.err = errors.New("redis down")
	if _, err := svc.RefreshToken(context.Background(), resp.Tokens.RefreshToken); err != nil {
		t.Fatalf("refresh should fall back to database state: %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "bye@example.com",
		Password:  "password1",
		FirstName: "By",
		LastName:  "Ee",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token := resp.Tokens.RefreshToken
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("second logout should be a no-op: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), token); err == nil {
		t.Fatalf("expected refresh to fail after logout")
	}
}

func TestLogoutDenylistsForFullRefreshLifetime(t *testing.T) {
	svc, _, _, _, revocation := newTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "ttl@example.com",
		Password:  "password1",
		FirstName: "Tt",
		LastName:  "L",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Tokens.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// The denylist entry must outlive the token itself, so it carries the
	// configured refresh lifetime rather than a shrinking remainder
	if revocation.lastTTL != 24*time.Hour {
		t.Fatalf("expected the configured refresh lifetime as TTL, got %v", revocation.lastTTL)
	}
}

func TestLogoutAllRevokesEveryToken(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "all@example.com",
		Password:  "password1",
		FirstName: "Al",
		LastName:  "L",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	second, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "all@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.LogoutAll(context.Background(), resp.User.ID); err != nil {
		t.Fatalf("logout all failed: %v", err)
	}

	for _, token := range []string{resp.Tokens.RefreshToken, second.Tokens.RefreshToken} {
		if _, err := svc.RefreshToken(context.Background(), token); !errors.Is(err, apperrors.ErrTokenRevoked) {
			t.Fatalf("expected ErrTokenRevoked, got %v", err)
		}
	}
}
