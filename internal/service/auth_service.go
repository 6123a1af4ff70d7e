package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/guest-service/internal/auth"
	"github.com/spec-kit/guest-service/internal/config"
	"github.com/spec-kit/guest-service/internal/domain"
	"github.com/spec-kit/guest-service/internal/events"
	"github.com/spec-kit/guest-service/internal/repository"
	apperrors "github.com/spec-kit/guest-service/pkg/util"
)

// AuthService coordinates registration, login and token lifecycle.
type AuthService struct {
	users      repository.UserRepository
	revoked    repository.RevocationRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RevocationRepo repository.RevocationRepository
	Dispatcher     events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		revoked:    deps.RevocationRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLHours),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Email          string
	FullName       string
	Password       string
	Role           domain.Role
	PrimaryPhone   string
	SecondaryPhone *string
}

// TokenPair bundles the issued access and refresh tokens.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Register creates a new account. All field-level violations are collected
// into a single validation error rather than failing on the first.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := input.Role
	if role == "" {
		role = domain.RoleGuest
	}

	details := map[string]any{}
	if email == "" {
		details["email"] = "email is required"
	}
	if strings.TrimSpace(input.FullName) == "" {
		details["full_name"] = "full name is required"
	}
	if input.Password == "" {
		details["password"] = "password is required"
	}
	if input.PrimaryPhone == "" {
		details["primary_phone"] = "primary phone is required"
	}
	if !role.Valid() {
		details["role"] = "role must be guest or employee"
	}

	if email != "" {
		exists, err := s.users.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			details["email"] = "this email is already registered"
		}
	}
	if input.PrimaryPhone != "" {
		exists, err := s.users.PhoneExists(ctx, input.PrimaryPhone)
		if err != nil {
			return nil, err
		}
		if exists {
			details["primary_phone"] = "this phone number is already registered"
		}
	}
	if input.SecondaryPhone != nil && *input.SecondaryPhone != "" {
		exists, err := s.users.PhoneExists(ctx, *input.SecondaryPhone)
		if err != nil {
			return nil, err
		}
		if exists {
			details["secondary_phone"] = "this phone number is already registered"
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("registration failed", details)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	secondary := input.SecondaryPhone
	if secondary != nil && *secondary == "" {
		secondary = nil
	}

	user := &domain.User{
		Email:          email,
		FullName:       input.FullName,
		PasswordHash:   hash,
		Role:           role,
		PrimaryPhone:   input.PrimaryPhone,
		SecondaryPhone: secondary,
		Active:         true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Role: user.Role})
	return user, nil
}

// Login authenticates by email and password and issues a token pair. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if !user.Active {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	access, accessExp, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	refresh, _, refreshExp, err := s.tokenMgr.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Logout adds the refresh token to the revocation set for the remainder of
// its lifetime. Malformed, expired or already-revoked tokens fail.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenMgr.ParseRefreshToken(refreshToken)
	if err != nil {
		return apperrors.NewValidationError("invalid refresh token", nil)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return apperrors.NewValidationError("invalid refresh token", nil)
	}

	revoked, err := s.revoked.Revoke(ctx, claims.ID, ttl)
	if err != nil {
		return err
	}
	if !revoked {
		return apperrors.NewValidationError("refresh token already invalidated", nil)
	}
	return nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid refresh token")
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", time.Time{}, err
	}
	if revoked {
		return "", time.Time{}, apperrors.NewUnauthorized("refresh token revoked")
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("invalid refresh token")
		}
		return "", time.Time{}, err
	}
	if !user.Active {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid refresh token")
	}

	return s.tokenMgr.GenerateAccessToken(user.ID, user.Role)
}

// ListEmployees returns all employee accounts ordered by creation.
func (s *AuthService) ListEmployees(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleEmployee)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        newEventID(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
