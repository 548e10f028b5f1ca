package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/domain"
)

var validate = validator.New()

// parseBody faz o parse do corpo JSON e valida as tags do DTO.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.ErrInvalidInput
	}
	if err := validate.Struct(out); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// writeError mapeia erros de domínio para status HTTP e corpo padronizado.
// Transições inválidas devolvem o conjunto permitido no campo allowed.
func writeError(c *fiber.Ctx, err error) error {
	var transitionErr *domain.InvalidStatusTransitionError
	if errors.As(err, &transitionErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "INVALID_TRANSITION",
			Message: transitionErr.Error(),
			Allowed: transitionErr.Allowed,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrCancellationReasonRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "REASON_REQUIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"})
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrUnauthorizedStatusChange):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrServiceOrderNotFound),
		errors.Is(err, domain.ErrBudgetNotFound),
		errors.Is(err, domain.ErrStockItemNotFound),
		errors.Is(err, domain.ErrStockMovementNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrBudgetExpired),
		errors.Is(err, domain.ErrBudgetAlreadyApproved),
		errors.Is(err, domain.ErrBudgetAlreadyRejected),
		errors.Is(err, domain.ErrInvalidBudgetStatus),
		errors.Is(err, domain.ErrInvalidPriceMargin),
		errors.Is(err, domain.ErrInvalidStockAdjustment):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
