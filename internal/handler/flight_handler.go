package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/internal/handler/middleware"
	"github.com/victorexecutive/ops-service/internal/service"
	"github.com/victorexecutive/ops-service/pkg/validator"
)

type FlightHandler struct {
	flightService *service.FlightService
	validator     *validator.Validator
}

func NewFlightHandler(flightService *service.FlightService, validator *validator.Validator) *FlightHandler {
	return &FlightHandler{
		flightService: flightService,
		validator:     validator,
	}
}

// ListFlights returns all flights
// GET /api/flights
func (h *FlightHandler) ListFlights(c *fiber.Ctx) error {
	flights, err := h.flightService.ListFlights(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"flights": flights,
	})
}

// GetFlight returns a single flight
// GET /api/flights/:id
func (h *FlightHandler) GetFlight(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	flight, err := h.flightService.GetFlight(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(flight)
}

// CreateFlight creates a flight
// POST /api/flights
func (h *FlightHandler) CreateFlight(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return apperror.Unauthorized("")
	}

	var input service.FlightInput
	if err := parseBody(c, h.validator, &input); err != nil {
		return err
	}

	flight, err := h.flightService.CreateFlight(c.Context(), input, identity.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(flight)
}

// UpdateFlight updates a flight
// PUT /api/flights/:id
func (h *FlightHandler) UpdateFlight(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input service.FlightInput
	if err := parseBody(c, h.validator, &input); err != nil {
		return err
	}

	flight, err := h.flightService.UpdateFlight(c.Context(), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(flight)
}

// DeleteFlight removes a flight
// DELETE /api/flights/:id
func (h *FlightHandler) DeleteFlight(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.flightService.DeleteFlight(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
