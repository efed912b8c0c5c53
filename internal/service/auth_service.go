package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/repository"
	"github.com/victorexecutive/ops-service/pkg/hash"
	"github.com/victorexecutive/ops-service/pkg/token"
)

// invalidCredentials is the only message bad logins ever see; it must not
// distinguish unknown emails from wrong passwords or disabled accounts.
const invalidCredentials = "Invalid credentials"

type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	codec     *token.Codec
	logger    *zap.Logger
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UserDTO struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"fullName"`
	Role     domain.Role `json:"role"`
}

type LoginResponse struct {
	domain.TokenPair
	User UserDTO `json:"user"`
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	codec *token.Codec,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		codec:     codec,
		logger:    logger,
	}
}

// Login authenticates a user and issues a fresh token pair. Any refresh
// tokens the user already held are revoked first, so a login on a second
// device invalidates the first device's session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if user == nil || user.Status != domain.UserStatusActive {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	if !hash.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	if err := s.tokenRepo.DeleteAllForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("revoke prior sessions: %w", err)
	}

	pair, err := s.issuePair(ctx, token.Payload{
		Subject: user.ID,
		Email:   user.Email,
		Role:    user.Role,
	})
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Not worth failing the login over.
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &LoginResponse{
		TokenPair: *pair,
		User: UserDTO{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// pair is issued. A token can therefore be used for renewal at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	record, err := s.tokenRepo.FindByValue(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh lookup: %w", err)
	}

	if record == nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		// Signature no longer verifies; the record is garbage, drop it.
		if _, delErr := s.tokenRepo.DeleteByValue(ctx, refreshToken); delErr != nil {
			s.logger.Warn("failed to delete stale refresh token", zap.Error(delErr))
		}
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	// The ledger's expiry is authoritative even while the signature still
	// verifies.
	if record.ExpiresAt.Before(time.Now()) {
		if _, delErr := s.tokenRepo.DeleteByValue(ctx, refreshToken); delErr != nil {
			s.logger.Warn("failed to delete expired refresh token", zap.Error(delErr))
		}
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	deleted, err := s.tokenRepo.DeleteByValue(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	if !deleted {
		// A concurrent refresh of the same token won the rotation.
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	return s.issuePair(ctx, token.Payload{
		Subject: subject,
		Email:   claims.Email,
		Role:    claims.Role,
	})
}

// Logout revokes the supplied refresh token. It is deliberately lenient: an
// empty or unknown token still logs out cleanly.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if _, err := s.tokenRepo.DeleteByValue(ctx, refreshToken); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// issuePair mints an access+refresh pair and records the refresh token in the
// ledger with its decoded expiry. Callers must have removed any token being
// rotated out before this runs.
func (s *AuthService) issuePair(ctx context.Context, payload token.Payload) (*domain.TokenPair, error) {
	accessToken, err := s.codec.SignAccess(payload)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := s.codec.SignRefresh(payload)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("decode refresh token: %w", err)
	}
	expiresAt := claims.ExpiresAt.Time

	record := &domain.RefreshTokenRecord{
		ID:        uuid.New(),
		UserID:    payload.Subject,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := s.tokenRepo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    token.ExpiresIn(expiresAt, time.Now()),
	}, nil
}
