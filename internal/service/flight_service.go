package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/repository"
)

type FlightService struct {
	flightRepo repository.FlightRepository
}

type FlightInput struct {
	FlightNumber       string  `json:"flightNumber" validate:"max=24"`
	Operator           string  `json:"operator" validate:"required,max=160"`
	AircraftType       string  `json:"aircraftType" validate:"required,max=120"`
	Registration       string  `json:"registration" validate:"max=32"`
	OriginAirport      string  `json:"originAirport" validate:"required,max=160"`
	DestinationAirport string  `json:"destinationAirport" validate:"required,max=160"`
	DepartureDate      string  `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ScheduledDeparture *string `json:"scheduledDeparture" validate:"omitempty"`
	ScheduledArrival   *string `json:"scheduledArrival" validate:"omitempty"`
	Status             string  `json:"status" validate:"omitempty,oneof=PLANNED READY IN_PROGRESS COMPLETED CANCELLED"`
	Purpose            string  `json:"purpose" validate:"omitempty,oneof=COMMERCIAL PRIVATE CARGO OTHER"`
	PassengerCount     int     `json:"passengerCount" validate:"gte=0"`
	CrewCount          int     `json:"crewCount" validate:"gte=0"`
	Remarks            *string `json:"remarks"`
}

func NewFlightService(flightRepo repository.FlightRepository) *FlightService {
	return &FlightService{flightRepo: flightRepo}
}

func (s *FlightService) ListFlights(ctx context.Context) ([]*domain.Flight, error) {
	return s.flightRepo.List(ctx)
}

func (s *FlightService) GetFlight(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	return s.flightRepo.GetByID(ctx, id)
}

func (s *FlightService) CreateFlight(ctx context.Context, input FlightInput, createdBy uuid.UUID) (*domain.Flight, error) {
	flight, err := flightFromInput(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	flight.ID = uuid.New()
	flight.CreatedBy = &createdBy
	flight.CreatedAt = now
	flight.UpdatedAt = now

	if err := s.flightRepo.Create(ctx, flight); err != nil {
		return nil, err
	}

	return flight, nil
}

func (s *FlightService) UpdateFlight(ctx context.Context, id uuid.UUID, input FlightInput) (*domain.Flight, error) {
	existing, err := s.flightRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := flightFromInput(input)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.flightRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *FlightService) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	return s.flightRepo.Delete(ctx, id)
}

func flightFromInput(input FlightInput) (*domain.Flight, error) {
	departureDate, err := time.Parse("2006-01-02", input.DepartureDate)
	if err != nil {
		return nil, apperror.ValidationFailed("departureDate must be an ISO date", nil)
	}

	flight := &domain.Flight{
		FlightNumber:       input.FlightNumber,
		Operator:           input.Operator,
		AircraftType:       input.AircraftType,
		Registration:       input.Registration,
		OriginAirport:      input.OriginAirport,
		DestinationAirport: input.DestinationAirport,
		DepartureDate:      departureDate,
		Status:             domain.FlightStatusPlanned,
		Purpose:            domain.FlightPurposePrivate,
		PassengerCount:     input.PassengerCount,
		CrewCount:          input.CrewCount,
		Remarks:            input.Remarks,
	}

	if input.Status != "" {
		flight.Status = domain.FlightStatus(input.Status)
	}
	if input.Purpose != "" {
		flight.Purpose = domain.FlightPurpose(input.Purpose)
	}

	if flight.ScheduledDeparture, err = parseOptionalTime(input.ScheduledDeparture, "scheduledDeparture"); err != nil {
		return nil, err
	}
	if flight.ScheduledArrival, err = parseOptionalTime(input.ScheduledArrival, "scheduledArrival"); err != nil {
		return nil, err
	}

	return flight, nil
}

func parseOptionalTime(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, apperror.ValidationFailed(fmt.Sprintf("%s must be an ISO date time", field), nil)
	}

	return &t, nil
}
