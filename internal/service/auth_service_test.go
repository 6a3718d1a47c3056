package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			TokenTTLDays: 7,
			BcryptCost:   4,
		},
	}
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, domainErr.Code)
	}
}

func TestRegisterNormalizesEmailAndAssignsUserRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users)

	user, token, _, err := svc.Register(context.Background(), " Alice ", "Alice@Example.COM", "555-0100", "s3cret!")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Name != "Alice" {
		t.Errorf("expected trimmed name, got %q", user.Name)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected role user, got %q", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "s3cret!" {
		t.Error("password must be stored hashed")
	}
	if token == "" {
		t.Error("expected a signed token")
	}
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users)

	if _, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "", "s3cret!"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, _, _, err := svc.Register(context.Background(), "Mallory", "ALICE@example.com", "", "other!")
	assertErrorCode(t, err, "CONFLICT")
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users)

	registered, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "", "s3cret!")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login(context.Background(), "Alice@Example.com", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("issued token failed to parse: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != domain.RoleUser {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users)

	if _, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "", "s3cret!"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assertErrorCode(t, err, "UNAUTHORIZED")

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret!")
	assertErrorCode(t, err, "UNAUTHORIZED")
}

func TestVerifyReturnsNotFoundForDeletedUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users)

	registered, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "", "s3cret!")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Verify(context.Background(), registered.ID); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if err := users.Delete(context.Background(), registered.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	_, err = svc.Verify(context.Background(), registered.ID)
	assertErrorCode(t, err, "NOT_FOUND")
}
