package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest alta de una orden de compra en PENDING.
// product_id o bundle_id, exactamente uno. El comprobante viaja como multipart
// en el handler; aquí solo los campos del formulario.
type CreateOrderRequest struct {
	BuyerID    string           `json:"buyer_id" form:"buyer_id" validate:"required,uuid"`
	ProductID  string           `json:"product_id" form:"product_id" validate:"omitempty,uuid"`
	BundleID   string           `json:"bundle_id" form:"bundle_id" validate:"omitempty,uuid"`
	Quantity   decimal.Decimal  `json:"quantity" form:"quantity" validate:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price" form:"unit_price" validate:"omitempty"`
	PaymentRef string           `json:"payment_ref" form:"payment_ref" validate:"omitempty,max=100"`
	Remarks    string           `json:"remarks" form:"remarks" validate:"omitempty,max=500"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          string          `json:"id"`
	BuyerID     string          `json:"buyer_id"`
	SellerID    string          `json:"seller_id"`
	ProductID   string          `json:"product_id,omitempty"`
	BundleID    string          `json:"bundle_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      string          `json:"status"`
	PaymentRef  string          `json:"payment_ref,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PaymentRecheckResponse resultado de reverificar el pago contra la pasarela.
type PaymentRecheckResponse struct {
	OrderID       string `json:"order_id"`
	GatewayStatus string `json:"gateway_status"`
	OrderStatus   string `json:"order_status"`
}
