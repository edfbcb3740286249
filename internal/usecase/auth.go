package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/core/port"
	"github.com/arklim/social-platform-community/internal/infra/logger"
	"github.com/arklim/social-platform-community/internal/infra/security"
	"github.com/arklim/social-platform-community/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAccessToken indicates the provided access token is malformed or signature validation failed.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates the provided access token has expired.
	ErrExpiredAccessToken = errors.New("access token expired")
)

// AuthService authenticates users and resolves bearer tokens to viewers.
type AuthService struct {
	users  port.UserRepository
	issuer *security.TokenIssuer
	logger *zap.Logger
}

// NewAuthService constructs AuthService.
func NewAuthService(users port.UserRepository, issuer *security.TokenIssuer, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, issuer: issuer, logger: log}
}

// Login verifies the password for the given email and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		s.logger.Info("login rejected", zap.String("email", logger.MaskEmail(email)))
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// IdentifyViewer resolves a bearer token to an authenticated viewer. The
// subject claim carries the user email; a token for a missing or deleted
// user is treated as invalid.
func (s *AuthService) IdentifyViewer(ctx context.Context, token string) (domain.Viewer, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return domain.Anonymous, ErrExpiredAccessToken
		}
		return domain.Anonymous, ErrInvalidAccessToken
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Anonymous, ErrInvalidAccessToken
		}
		return domain.Anonymous, fmt.Errorf("resolve token subject: %w", err)
	}

	return domain.AuthenticatedViewer(user.ID), nil
}
