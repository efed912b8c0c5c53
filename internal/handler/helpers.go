package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/victorexecutive/ops-service/internal/apperror"
	"github.com/victorexecutive/ops-service/pkg/validator"
)

// parseBody decodes and validates a JSON request body. Both malformed JSON
// and failed rules come back as 422 VALIDATION_FAILED.
func parseBody(c *fiber.Ctx, v *validator.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.ValidationFailed("Invalid request body", nil)
	}

	if err := v.Validate(out); err != nil {
		var validationErr *validator.ValidationError
		if errors.As(err, &validationErr) {
			return apperror.ValidationFailed("Validation failed", validationErr.Fields)
		}
		return apperror.ValidationFailed(err.Error(), nil)
	}

	return nil
}

// parseUUIDParam reads a route parameter as a UUID, failing 422 otherwise.
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperror.ValidationFailed(name+" must be a valid UUID", nil)
	}
	return id, nil
}
