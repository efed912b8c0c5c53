package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/repository"
)

type qrPassRepository struct {
	db *sqlx.DB
}

// NewQRPassRepository creates a new PostgreSQL QR pass repository
func NewQRPassRepository(db *sqlx.DB) repository.QRPassRepository {
	return &qrPassRepository{db: db}
}

func (r *qrPassRepository) Create(ctx context.Context, pass *domain.QRPass) error {
	query := `
		INSERT INTO qr_passes (
			id, flight_id, entity_type, entity_id, token, access_level,
			status, issued_at, expires_at, sent_at, created_at
		) VALUES (
			:id, :flight_id, :entity_type, :entity_id, :token, :access_level,
			:status, :issued_at, :expires_at, :sent_at, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, pass)
	if err != nil {
		return fmt.Errorf("failed to create qr pass: %w", err)
	}

	return nil
}

func (r *qrPassRepository) GetByToken(ctx context.Context, tokenValue string) (*domain.QRPass, error) {
	query := `
		SELECT id, flight_id, entity_type, entity_id, token, access_level,
			   status, issued_at, expires_at, sent_at, created_at
		FROM qr_passes
		WHERE token = $1`

	var pass domain.QRPass
	err := r.db.GetContext(ctx, &pass, query, tokenValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get qr pass by token: %w", err)
	}

	return &pass, nil
}

func (r *qrPassRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QRPass, error) {
	query := `
		SELECT id, flight_id, entity_type, entity_id, token, access_level,
			   status, issued_at, expires_at, sent_at, created_at
		FROM qr_passes
		WHERE id = $1`

	var pass domain.QRPass
	err := r.db.GetContext(ctx, &pass, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("qr pass not found")
		}
		return nil, fmt.Errorf("failed to get qr pass by id: %w", err)
	}

	return &pass, nil
}

func (r *qrPassRepository) Update(ctx context.Context, pass *domain.QRPass) error {
	query := `
		UPDATE qr_passes
		SET status = :status,
			expires_at = :expires_at,
			sent_at = :sent_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, pass)
	if err != nil {
		return fmt.Errorf("failed to update qr pass: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return apperror.NotFound("qr pass not found")
	}

	return nil
}
