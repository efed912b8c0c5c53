package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/domain"
)

type QRPassRepository interface {
	Create(ctx context.Context, pass *domain.QRPass) error
	// GetByToken returns (nil, nil) when no pass carries the token.
	GetByToken(ctx context.Context, tokenValue string) (*domain.QRPass, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QRPass, error)
	Update(ctx context.Context, pass *domain.QRPass) error
}
