package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/application/rewards"
	"github.com/jhoicas/Distriops-api/internal/domain"
)

// RewardsHandler maneja premios y comisiones (protegido).
type RewardsHandler struct {
	uc *rewards.RewardsUseCase
}

// NewRewardsHandler construye el handler.
func NewRewardsHandler(uc *rewards.RewardsUseCase) *RewardsHandler {
	return &RewardsHandler{uc: uc}
}

// RewardProgress godoc
// @Summary      Progreso de premiación de un actor en un período mensual
// @Tags         rewards
// @Security     Bearer
// @Produce      json
// @Param        actor_id  path   string  true  "ID del actor"
// @Param        month     query  int     true  "Mes (1-12)"
// @Param        year      query  int     true  "Año"
// @Success      200  {object}  dto.RewardProgressDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rewards/{actor_id} [get]
func (h *RewardsHandler) RewardProgress(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	out, err := h.uc.GetRewardProgress(c.Context(), c.Params("actor_id"), month, year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "actor no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Commission godoc
// @Summary      Comisión resuelta de un marketer para el rango
// @Tags         rewards
// @Security     Bearer
// @Produce      json
// @Param        actor_id    path   string  true   "ID del marketer"
// @Param        start_date  query  string  false  "Fecha inicial (2006-01-02; vacío = inicio de mes)"
// @Param        end_date    query  string  false  "Fecha final (2006-01-02; vacío = hoy)"
// @Success      200  {object}  dto.CommissionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rewards/{actor_id}/commission [get]
func (h *RewardsHandler) Commission(c *fiber.Ctx) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if s := c.Query("start_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido"})
		}
		from = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido"})
		}
		to = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}

	out, err := h.uc.GetCommission(c.Context(), c.Params("actor_id"), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "actor no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
