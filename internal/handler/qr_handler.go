package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/service"
	"github.com/victorexecutive/ops-service/pkg/validator"
)

type QRHandler struct {
	passService *service.QRPassService
	validator   *validator.Validator
}

func NewQRHandler(passService *service.QRPassService, validator *validator.Validator) *QRHandler {
	return &QRHandler{
		passService: passService,
		validator:   validator,
	}
}

// CreatePassengerPass issues a QR pass for a passenger
// POST /api/flights/:flightID/passengers/:entityID/qr-pass
func (h *QRHandler) CreatePassengerPass(c *fiber.Ctx) error {
	return h.createPass(c, domain.QRPassEntityPassenger)
}

// CreateCrewPass issues a QR pass for a crew member
// POST /api/flights/:flightID/crew/:entityID/qr-pass
func (h *QRHandler) CreateCrewPass(c *fiber.Ctx) error {
	return h.createPass(c, domain.QRPassEntityCrew)
}

func (h *QRHandler) createPass(c *fiber.Ctx, entityType domain.QRPassEntity) error {
	flightID, err := parseUUIDParam(c, "flightID")
	if err != nil {
		return err
	}

	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		return err
	}

	input := service.CreateQRPassInput{}
	if len(c.Body()) > 0 {
		if err := parseBody(c, h.validator, &input); err != nil {
			return err
		}
	}

	pass, err := h.passService.CreatePass(c.Context(), flightID, entityType, entityID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(pass)
}

// UpdatePass updates a QR pass status
// PUT /api/qr-pass/:id
func (h *QRHandler) UpdatePass(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input service.UpdateQRPassInput
	if err := parseBody(c, h.validator, &input); err != nil {
		return err
	}

	pass, err := h.passService.UpdatePass(c.Context(), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pass)
}

// LookupPass resolves a pass token for gate scanners; no auth required
// GET /api/qr-pass/:token
func (h *QRHandler) LookupPass(c *fiber.Ctx) error {
	pass, err := h.passService.LookupPass(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pass)
}
