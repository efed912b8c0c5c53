// Package token signs and verifies the two bearer token kinds. Access and
// refresh tokens use distinct HMAC secrets so a leaked refresh secret cannot
// mint access tokens and vice versa.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/domain"
)

var (
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
)

type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
}

func NewCodec(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration, issuer string) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
	}
}

// Payload is the identity embedded in both token kinds.
type Payload struct {
	Subject uuid.UUID
	Email   string
	Role    domain.Role
}

func (c *Codec) SignAccess(p Payload) (string, error) {
	return c.sign(p, domain.TokenTypeAccess, c.accessExpiry, c.accessSecret)
}

func (c *Codec) SignRefresh(p Payload) (string, error) {
	return c.sign(p, domain.TokenTypeRefresh, c.refreshExpiry, c.refreshSecret)
}

func (c *Codec) sign(p Payload, tokenType string, expiry time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   p.Subject.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Email:     p.Email,
		Role:      p.Role,
		TokenType: tokenType,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess parses and validates an access token. Any failure (bad
// signature, expired, wrong kind) comes back as ErrInvalidToken so callers
// cannot leak the reason.
func (c *Codec) VerifyAccess(tokenString string) (*domain.Claims, error) {
	return c.verify(tokenString, domain.TokenTypeAccess, c.accessSecret)
}

func (c *Codec) VerifyRefresh(tokenString string) (*domain.Claims, error) {
	return c.verify(tokenString, domain.TokenTypeRefresh, c.refreshSecret)
}

func (c *Codec) verify(tokenString, tokenType string, secret []byte) (*domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*domain.Claims)
	if !ok || !parsed.Valid || claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExpiresIn returns the whole seconds remaining until expiry, floored at 0.
func ExpiresIn(expiresAt time.Time, now time.Time) int64 {
	remaining := int64(expiresAt.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
