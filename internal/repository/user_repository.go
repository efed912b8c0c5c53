package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByEmail looks a user up by case-normalized email. Returns
	// (nil, nil) when no user exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
