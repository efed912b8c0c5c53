package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/domain"
)

// RefreshTokenRepository is the durable ledger of live refresh tokens. It is
// the sole revocation authority: a refresh token whose record is gone is dead
// regardless of its signature.
type RefreshTokenRepository interface {
	// Insert stores a freshly issued token record. Duplicate ids surface as
	// apperror.Conflict.
	Insert(ctx context.Context, record *domain.RefreshTokenRecord) error
	// FindByValue returns the record for a token value, or (nil, nil) when no
	// record exists.
	FindByValue(ctx context.Context, tokenValue string) (*domain.RefreshTokenRecord, error)
	// DeleteByValue removes the record for a token value. The returned flag
	// reports whether a row was actually deleted; concurrent rotations use it
	// to decide the winner. Deleting a missing token is not an error.
	DeleteByValue(ctx context.Context, tokenValue string) (bool, error)
	// DeleteAllForUser revokes every live session of a user. Idempotent.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}
