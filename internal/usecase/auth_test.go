package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/infra/security"
	"github.com/arklim/social-platform-community/internal/repository"
)

const testSigningKey = "dGhpcy1pcy1hLXRlc3Qtc2lnbmluZy1rZXktZm9yLWhzNTEyLXRva2Vucy0xMjM0NTY3OA=="

func newTestIssuer(t *testing.T) *security.TokenIssuer {
	t.Helper()
	issuer, err := security.NewTokenIssuer(testSigningKey, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer() error: %v", err)
	}
	return issuer
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	user := &domain.User{ID: 10, Email: "alice@example.com", PasswordHash: hash}

	t.Run("valid credentials yield a token for the user email", func(t *testing.T) {
		users := &mockUserRepository{
			t: t,
			getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
				if email != user.Email {
					t.Errorf("GetByEmail(%q), want %q", email, user.Email)
				}
				return user, nil
			},
		}

		issuer := newTestIssuer(t)
		svc := NewAuthService(users, issuer, nil)

		token, err := svc.Login(context.Background(), user.Email, "correct-horse")
		if err != nil {
			t.Fatalf("Login() unexpected error: %v", err)
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if claims.Subject != user.Email {
			t.Errorf("subject = %q, want %q", claims.Subject, user.Email)
		}
		if claims.Authority != security.RoleUser {
			t.Errorf("authority = %q, want %q", claims.Authority, security.RoleUser)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUserRepository{
			t: t,
			getByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
				return user, nil
			},
		}

		svc := NewAuthService(users, newTestIssuer(t), nil)
		if _, err := svc.Login(context.Background(), user.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		users := &mockUserRepository{
			t: t,
			getByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
				return nil, repository.ErrNotFound
			},
		}

		svc := NewAuthService(users, newTestIssuer(t), nil)
		if _, err := svc.Login(context.Background(), "nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})

	t.Run("blank credentials rejected without a lookup", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{t: t}, newTestIssuer(t), nil)
		if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})
}

func TestIdentifyViewer(t *testing.T) {
	user := &domain.User{ID: 10, Email: "alice@example.com"}

	t.Run("valid token resolves to authenticated viewer", func(t *testing.T) {
		issuer := newTestIssuer(t)
		token, err := issuer.Issue(user.Email)
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}

		users := &mockUserRepository{
			t: t,
			getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
				if email != user.Email {
					t.Errorf("GetByEmail(%q), want %q", email, user.Email)
				}
				return user, nil
			},
		}

		svc := NewAuthService(users, issuer, nil)
		viewer, err := svc.IdentifyViewer(context.Background(), token)
		if err != nil {
			t.Fatalf("IdentifyViewer() unexpected error: %v", err)
		}
		if !viewer.Authenticated || viewer.UserID != user.ID {
			t.Errorf("viewer = %+v, want authenticated user %d", viewer, user.ID)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{t: t}, newTestIssuer(t), nil)
		if _, err := svc.IdentifyViewer(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidAccessToken) {
			t.Fatalf("IdentifyViewer() error = %v, want %v", err, ErrInvalidAccessToken)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		issuer := newTestIssuer(t)
		past := time.Now().Add(-48 * time.Hour)
		issuer.WithClock(func() time.Time { return past })
		token, err := issuer.Issue(user.Email)
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}
		issuer.WithClock(time.Now)

		svc := NewAuthService(&mockUserRepository{t: t}, issuer, nil)
		if _, err := svc.IdentifyViewer(context.Background(), token); !errors.Is(err, ErrExpiredAccessToken) {
			t.Fatalf("IdentifyViewer() error = %v, want %v", err, ErrExpiredAccessToken)
		}
	})

	t.Run("token for deleted user is invalid", func(t *testing.T) {
		issuer := newTestIssuer(t)
		token, err := issuer.Issue(user.Email)
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}

		users := &mockUserRepository{
			t: t,
			getByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
				return nil, repository.ErrNotFound
			},
		}

		svc := NewAuthService(users, issuer, nil)
		if _, err := svc.IdentifyViewer(context.Background(), token); !errors.Is(err, ErrInvalidAccessToken) {
			t.Fatalf("IdentifyViewer() error = %v, want %v", err, ErrInvalidAccessToken)
		}
	})
}
