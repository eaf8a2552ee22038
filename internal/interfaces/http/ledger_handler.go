package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distriops-api/internal/application/catalog"
	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/application/ledger"
	"github.com/jhoicas/Distriops-api/internal/domain"
)

// LedgerHandler maneja las peticiones del libro de inventario (protegido).
type LedgerHandler struct {
	uc      *ledger.LedgerUseCase
	catalog *catalog.CatalogUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase, catalogUC *catalog.CatalogUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, catalog: catalogUC}
}

// ledgerError traduce los errores del motor de inventario a HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser un entero positivo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "actor, producto o movimiento no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrLedgerCorruption):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LEDGER_CORRUPTION", Message: "la reversión dejaría el saldo negativo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// parseDateOrNow interpreta la fecha 2006-01-02 del request; vacía = ahora.
func parseDateOrNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// Receive godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "actor_id, product_id, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *LedgerHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDateOrNow(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida (formato 2006-01-02)"})
	}
	err = h.uc.Receive(c.Context(), ledger.ReceiveInput{
		ActorID:     in.ActorID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Date:        date,
		Description: in.Description,
		CreatedBy:   GetUserID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "entrada registrada"})
}

// Issue godoc
// @Summary      Registrar salida de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueStockRequest  true  "actor_id, product_id, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/issue [post]
func (h *LedgerHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDateOrNow(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida (formato 2006-01-02)"})
	}
	err = h.uc.Issue(c.Context(), ledger.IssueInput{
		ActorID:     in.ActorID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Date:        date,
		Description: in.Description,
		CreatedBy:   GetUserID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "salida registrada"})
}

// Transfer godoc
// @Summary      Transferir stock entre actores de la red
// @Description  Debita el origen y acredita el destino atómicamente. Con bundle_id
//
//	expande el combo a sus productos. Si el destino es un nivel que compra
//	y hay precio, registra además la venta (orden COMPLETED + transacción).
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "from_actor_id, to_actor_id, product_id o bundle_id, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDateOrNow(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida (formato 2006-01-02)"})
	}
	err = h.uc.Transfer(c.Context(), ledger.TransferInput{
		FromActorID: in.FromActorID,
		ToActorID:   in.ToActorID,
		ProductID:   in.ProductID,
		BundleID:    in.BundleID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Date:        date,
		CreatedBy:   GetUserID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "transferencia registrada"})
}

// ReverseMovement godoc
// @Summary      Revertir un movimiento histórico
// @Description  Elimina el movimiento y aplica el ajuste de saldo inverso. Si el
//
//	inverso dejara el saldo negativo, falla con 409 y no muta nada.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *LedgerHandler) ReverseMovement(c *fiber.Ctx) error {
	if err := h.uc.ReverseMovement(c.Context(), c.Params("id")); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento revertido"})
}

// ListStock godoc
// @Summary      Saldos de inventario de un actor
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        actor_id  path  string  true  "ID del actor"
// @Success      200  {array}   dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{actor_id} [get]
func (h *LedgerHandler) ListStock(c *fiber.Ctx) error {
	stocks, err := h.catalog.ListStock(c.Context(), c.Params("actor_id"))
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.StockResponse{
			ActorID:   s.ActorID,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos de un actor
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        actor_id  path   string  true   "ID del actor"
// @Param        from      query  string  false  "Fecha inicial (2006-01-02)"
// @Param        to        query  string  false  "Fecha final (2006-01-02)"
// @Param        limit     query  int     false  "Límite de página"
// @Param        offset    query  int     false  "Offset de página"
// @Success      200  {array}   dto.StockMovementResponse
// @Router       /api/inventory/movements/{actor_id} [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		}
		to = &t
	}

	movements, err := h.catalog.ListMovements(c.Context(), c.Params("actor_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := dto.StockMovementResponse{
			ID:          m.ID,
			ActorID:     m.ActorID,
			ProductID:   m.ProductID,
			Quantity:    m.Quantity,
			Direction:   m.Direction,
			Description: m.Description,
			Date:        m.Date,
			CreatedAt:   m.CreatedAt,
			CreatedBy:   m.CreatedBy,
		}
		if m.CounterpartyID != nil {
			resp.CounterpartyID = *m.CounterpartyID
		}
		out = append(out, resp)
	}
	return c.JSON(out)
}
