package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/repository"
)

type QRPassService struct {
	passRepo   repository.QRPassRepository
	flightRepo repository.FlightRepository
}

type CreateQRPassInput struct {
	AccessLevel string  `json:"accessLevel" validate:"omitempty,oneof=PASSENGER CREW HANDLER AUTHORITY"`
	ExpiresAt   *string `json:"expiresAt" validate:"omitempty"`
}

type UpdateQRPassInput struct {
	Status    string  `json:"status" validate:"required,oneof=ACTIVE REVOKED EXPIRED"`
	ExpiresAt *string `json:"expiresAt" validate:"omitempty"`
	SentAt    *string `json:"sentAt" validate:"omitempty"`
}

func NewQRPassService(passRepo repository.QRPassRepository, flightRepo repository.FlightRepository) *QRPassService {
	return &QRPassService{passRepo: passRepo, flightRepo: flightRepo}
}

// CreatePass issues a gate pass for a passenger or crew member on a flight.
// The pass token is an opaque random value, unrelated to the JWT secrets.
func (s *QRPassService) CreatePass(
	ctx context.Context,
	flightID uuid.UUID,
	entityType domain.QRPassEntity,
	entityID uuid.UUID,
	input CreateQRPassInput,
) (*domain.QRPass, error) {
	if _, err := s.flightRepo.GetByID(ctx, flightID); err != nil {
		return nil, err
	}

	passToken, err := generatePassToken()
	if err != nil {
		return nil, fmt.Errorf("generate pass token: %w", err)
	}

	expiresAt, err := parseOptionalTime(input.ExpiresAt, "expiresAt")
	if err != nil {
		return nil, err
	}

	accessLevel := domain.QRPassAccessPassenger
	if input.AccessLevel != "" {
		accessLevel = domain.QRPassAccessLevel(input.AccessLevel)
	}

	now := time.Now()
	pass := &domain.QRPass{
		ID:          uuid.New(),
		FlightID:    flightID,
		EntityType:  entityType,
		EntityID:    entityID,
		Token:       passToken,
		AccessLevel: accessLevel,
		Status:      domain.QRPassStatusActive,
		IssuedAt:    now,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}

	if err := s.passRepo.Create(ctx, pass); err != nil {
		return nil, err
	}

	return pass, nil
}

// LookupPass resolves a pass by token for the public scan endpoint. Revoked
// and expired passes read as not found so the token leaks nothing.
func (s *QRPassService) LookupPass(ctx context.Context, passToken string) (*domain.QRPass, error) {
	pass, err := s.passRepo.GetByToken(ctx, passToken)
	if err != nil {
		return nil, err
	}

	if pass == nil || pass.Status != domain.QRPassStatusActive {
		return nil, apperror.NotFound("qr pass not found")
	}

	if pass.ExpiresAt != nil && pass.ExpiresAt.Before(time.Now()) {
		return nil, apperror.NotFound("qr pass not found")
	}

	return pass, nil
}

func (s *QRPassService) UpdatePass(ctx context.Context, id uuid.UUID, input UpdateQRPassInput) (*domain.QRPass, error) {
	pass, err := s.passRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pass.Status = domain.QRPassStatus(input.Status)

	if pass.ExpiresAt, err = parseOptionalTime(input.ExpiresAt, "expiresAt"); err != nil {
		return nil, err
	}
	if pass.SentAt, err = parseOptionalTime(input.SentAt, "sentAt"); err != nil {
		return nil, err
	}

	if err := s.passRepo.Update(ctx, pass); err != nil {
		return nil, err
	}

	return pass, nil
}

func generatePassToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
