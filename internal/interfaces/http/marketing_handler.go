package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/application/marketing"
	"github.com/jhoicas/Distriops-api/internal/domain"
)

// MarketingHandler captura los insumos de reportes: ventas al cliente final y
// gastos publicitarios (protegido).
type MarketingHandler struct {
	uc *marketing.MarketingUseCase
}

// NewMarketingHandler construye el handler.
func NewMarketingHandler(uc *marketing.MarketingUseCase) *MarketingHandler {
	return &MarketingHandler{uc: uc}
}

func marketingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "marketer no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// CreatePurchase godoc
// @Summary      Registrar línea de venta al cliente final
// @Tags         marketing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "marketer_id, product_name, platform, quantity, total_price"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/marketing/purchases [post]
func (h *MarketingHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.RecordPurchase(c.Context(), in)
	if err != nil {
		return marketingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": p.ID})
}

// CreateAdSpend godoc
// @Summary      Registrar gasto publicitario
// @Tags         marketing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdSpendRequest  true  "marketer_id, platform, amount, spend_date"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/marketing/ad-spends [post]
func (h *MarketingHandler) CreateAdSpend(c *fiber.Ctx) error {
	var in dto.CreateAdSpendRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.RecordAdSpend(c.Context(), in)
	if err != nil {
		return marketingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": s.ID})
}
