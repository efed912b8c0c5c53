package domain

import (
	"time"

	"github.com/google/uuid"
)

type QRPassEntity string

const (
	QRPassEntityPassenger QRPassEntity = "PASSENGER"
	QRPassEntityCrew      QRPassEntity = "CREW"
)

type QRPassStatus string

const (
	QRPassStatusActive  QRPassStatus = "ACTIVE"
	QRPassStatusRevoked QRPassStatus = "REVOKED"
	QRPassStatusExpired QRPassStatus = "EXPIRED"
)

type QRPassAccessLevel string

const (
	QRPassAccessPassenger QRPassAccessLevel = "PASSENGER"
	QRPassAccessCrew      QRPassAccessLevel = "CREW"
	QRPassAccessHandler   QRPassAccessLevel = "HANDLER"
	QRPassAccessAuthority QRPassAccessLevel = "AUTHORITY"
)

// QRPass is an opaque gate pass for a passenger or crew member on a flight,
// looked up publicly by its token.
type QRPass struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	FlightID    uuid.UUID         `json:"flightId" db:"flight_id"`
	EntityType  QRPassEntity      `json:"entityType" db:"entity_type"`
	EntityID    uuid.UUID         `json:"entityId" db:"entity_id"`
	Token       string            `json:"token" db:"token"`
	AccessLevel QRPassAccessLevel `json:"accessLevel" db:"access_level"`
	Status      QRPassStatus      `json:"status" db:"status"`
	IssuedAt    time.Time         `json:"issuedAt" db:"issued_at"`
	ExpiresAt   *time.Time        `json:"expiresAt" db:"expires_at"`
	SentAt      *time.Time        `json:"sentAt" db:"sent_at"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
}
