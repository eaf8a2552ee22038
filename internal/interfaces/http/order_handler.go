package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/application/settlement"
	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// OrderHandler maneja el ciclo de vida de las órdenes (protegido).
type OrderHandler struct {
	uc *settlement.SettlementUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *settlement.SettlementUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// orderError traduce los errores del motor de liquidación a HTTP.
func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden, actor o combo no encontrado"})
	case errors.Is(err, domain.ErrOrderNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_NOT_PENDING", Message: "la orden ya fue liquidada o rechazada"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrPaymentGateway):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PAYMENT_GATEWAY", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          o.ID,
		BuyerID:     o.BuyerID,
		SellerID:    o.SellerID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		TotalPrice:  o.TotalPrice,
		Status:      o.Status,
		ReceiptURL:  o.ReceiptURL,
		Remarks:     o.Remarks,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.ProductID != nil {
		resp.ProductID = *o.ProductID
	}
	if o.BundleID != nil {
		resp.BundleID = *o.BundleID
	}
	if o.PaymentRef != nil {
		resp.PaymentRef = *o.PaymentRef
	}
	return resp
}

// Create godoc
// @Summary      Crear orden de compra (PENDING)
// @Description  Acepta JSON o multipart/form-data; en multipart el campo "receipt"
//
//	lleva el comprobante de pago (jpg, png o pdf).
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "buyer_id, product_id o bundle_id, quantity"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := settlement.CreateOrderInput{
		BuyerID:   in.BuyerID,
		ProductID: in.ProductID,
		BundleID:  in.BundleID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Remarks:   in.Remarks,
	}
	if in.PaymentRef != "" {
		input.PaymentRef = &in.PaymentRef
	}

	// Comprobante opcional en multipart.
	if file, err := c.FormFile("receipt"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RECEIPT", Message: "no se pudo leer el comprobante"})
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RECEIPT", Message: "no se pudo leer el comprobante"})
		}
		input.Receipt = data
		input.ReceiptExt = receiptExt(file.Filename)
	}

	order, err := h.uc.CreateOrder(c.Context(), input)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// Approve godoc
// @Summary      Aprobar y liquidar una orden PENDING
// @Description  Débito al vendedor, crédito al comprador y transacción, todo o nada
//
//	y exactamente una vez. Una segunda aprobación responde 409.
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.Approve(c.Context(), c.Params("id")); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden liquidada"})
}

// Reject godoc
// @Summary      Rechazar una orden PENDING
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reject [post]
func (h *OrderHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.Reject(c.Context(), c.Params("id")); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden rechazada"})
}

// RecheckPayment godoc
// @Summary      Reverificar el pago de una orden contra la pasarela
// @Description  Si la pasarela reporta COMPLETED y la orden no está liquidada,
//
//	re-ejecuta la liquidación. Una orden ya COMPLETED nunca se liquida dos veces.
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PaymentRecheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/recheck-payment [post]
func (h *OrderHandler) RecheckPayment(c *fiber.Ctx) error {
	orderID := c.Params("id")
	status, err := h.uc.RecheckPayment(c.Context(), orderID)
	if err != nil {
		return orderError(c, err)
	}
	order, err := h.uc.GetOrder(c.Context(), orderID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.PaymentRecheckResponse{
		OrderID:       orderID,
		GatewayStatus: status,
		OrderStatus:   order.Status,
	})
}

// GetByID godoc
// @Summary      Obtener una orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// ReceiptPDF godoc
// @Summary      Descargar el recibo PDF de una orden liquidada
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt.pdf [get]
func (h *OrderHandler) ReceiptPDF(c *fiber.Ctx) error {
	data, err := h.uc.ReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="recibo.pdf"`)
	return c.Send(data)
}

// receiptExt extensión normalizada del archivo del comprobante.
func receiptExt(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			ext := filename[i+1:]
			switch ext {
			case "png", "pdf", "jpg", "jpeg":
				if ext == "jpeg" {
					return "jpg"
				}
				return ext
			}
			return "jpg"
		}
	}
	return "jpg"
}
