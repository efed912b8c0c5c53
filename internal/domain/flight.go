package domain

import (
	"time"

	"github.com/google/uuid"
)

type FlightStatus string

const (
	FlightStatusPlanned    FlightStatus = "PLANNED"
	FlightStatusReady      FlightStatus = "READY"
	FlightStatusInProgress FlightStatus = "IN_PROGRESS"
	FlightStatusCompleted  FlightStatus = "COMPLETED"
	FlightStatusCancelled  FlightStatus = "CANCELLED"
)

type FlightPurpose string

const (
	FlightPurposeCommercial FlightPurpose = "COMMERCIAL"
	FlightPurposePrivate    FlightPurpose = "PRIVATE"
	FlightPurposeCargo      FlightPurpose = "CARGO"
	FlightPurposeOther      FlightPurpose = "OTHER"
)

type Flight struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	FlightNumber       string        `json:"flightNumber" db:"flight_number"`
	Operator           string        `json:"operator" db:"operator"`
	AircraftType       string        `json:"aircraftType" db:"aircraft_type"`
	Registration       string        `json:"registration" db:"registration"`
	OriginAirport      string        `json:"originAirport" db:"origin_airport"`
	DestinationAirport string        `json:"destinationAirport" db:"destination_airport"`
	DepartureDate      time.Time     `json:"departureDate" db:"departure_date"`
	ScheduledDeparture *time.Time    `json:"scheduledDeparture" db:"scheduled_departure"`
	ScheduledArrival   *time.Time    `json:"scheduledArrival" db:"scheduled_arrival"`
	Status             FlightStatus  `json:"status" db:"status"`
	Purpose            FlightPurpose `json:"purpose" db:"purpose"`
	PassengerCount     int           `json:"passengerCount" db:"passenger_count"`
	CrewCount          int           `json:"crewCount" db:"crew_count"`
	Remarks            *string       `json:"remarks" db:"remarks"`
	CreatedBy          *uuid.UUID    `json:"createdBy" db:"created_by"`
	CreatedAt          time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time     `json:"updatedAt" db:"updated_at"`
}
