package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/domain"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flight, error)
	List(ctx context.Context) ([]*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id uuid.UUID) error
}
