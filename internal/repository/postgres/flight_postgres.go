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

type flightRepository struct {
	db *sqlx.DB
}

// NewFlightRepository creates a new PostgreSQL flight repository
func NewFlightRepository(db *sqlx.DB) repository.FlightRepository {
	return &flightRepository{db: db}
}

func (r *flightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	query := `
		INSERT INTO flights (
			id, flight_number, operator, aircraft_type, registration,
			origin_airport, destination_airport, departure_date,
			scheduled_departure, scheduled_arrival, status, purpose,
			passenger_count, crew_count, remarks, created_by, created_at, updated_at
		) VALUES (
			:id, :flight_number, :operator, :aircraft_type, :registration,
			:origin_airport, :destination_airport, :departure_date,
			:scheduled_departure, :scheduled_arrival, :status, :purpose,
			:passenger_count, :crew_count, :remarks, :created_by, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, flight)
	if err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}

	return nil
}

func (r *flightRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	query := `
		SELECT id, flight_number, operator, aircraft_type, registration,
			   origin_airport, destination_airport, departure_date,
			   scheduled_departure, scheduled_arrival, status, purpose,
			   passenger_count, crew_count, remarks, created_by, created_at, updated_at
		FROM flights
		WHERE id = $1`

	var flight domain.Flight
	err := r.db.GetContext(ctx, &flight, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("flight not found")
		}
		return nil, fmt.Errorf("failed to get flight by id: %w", err)
	}

	return &flight, nil
}

func (r *flightRepository) List(ctx context.Context) ([]*domain.Flight, error) {
	query := `
		SELECT id, flight_number, operator, aircraft_type, registration,
			   origin_airport, destination_airport, departure_date,
			   scheduled_departure, scheduled_arrival, status, purpose,
			   passenger_count, crew_count, remarks, created_by, created_at, updated_at
		FROM flights
		ORDER BY departure_date DESC, created_at DESC`

	var flights []*domain.Flight
	err := r.db.SelectContext(ctx, &flights, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	return flights, nil
}

func (r *flightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	query := `
		UPDATE flights
		SET flight_number = :flight_number,
			operator = :operator,
			aircraft_type = :aircraft_type,
			registration = :registration,
			origin_airport = :origin_airport,
			destination_airport = :destination_airport,
			departure_date = :departure_date,
			scheduled_departure = :scheduled_departure,
			scheduled_arrival = :scheduled_arrival,
			status = :status,
			purpose = :purpose,
			passenger_count = :passenger_count,
			crew_count = :crew_count,
			remarks = :remarks,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, flight)
	if err != nil {
		return fmt.Errorf("failed to update flight: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return apperror.NotFound("flight not found")
	}

	return nil
}

func (r *flightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM flights WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return apperror.NotFound("flight not found")
	}

	return nil
}
