package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/light-bringer/procat-admin/internal/app/product/controller"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
)

// mapErrorToStatus converts errors to an HTTP status and a notice.
// An empty notice means the controller already set one.
func mapErrorToStatus(err error) (int, string) {
	var vf *controller.ValidationFailure

	switch {
	case errors.As(err, &vf):
		return fiber.StatusUnprocessableEntity, ""

	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound, "Product not found."

	case errors.Is(err, domain.ErrOperationInFlight):
		return fiber.StatusConflict, "Another change is still in progress. Please wait."

	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "That action is not available right now."

	case errors.Is(err, domain.ErrNotAuthenticated):
		return fiber.StatusUnauthorized, "Please sign in."

	case errors.Is(err, domain.ErrRemoteFailure):
		return fiber.StatusBadGateway, ""

	default:
		return fiber.StatusInternalServerError, "Something went wrong."
	}
}
