package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenRecord is the persisted side of a refresh token. A refresh token
// is usable only while its record exists and has not expired; deleting the
// record is the revocation mechanism.
type RefreshTokenRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
