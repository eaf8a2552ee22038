package dto

import "github.com/shopspring/decimal"

// CreatePurchaseRequest línea de venta al cliente final (insumo de reportes).
// product_id puede ir vacío cuando la línea es un combo identificado por nombre
// ("SKU-A + SKU-B"). Las fechas son opcionales: sin fecha la línea no cae en la
// ventana de esa métrica.
type CreatePurchaseRequest struct {
	MarketerID     string          `json:"marketer_id" validate:"required,uuid"`
	ProductID      string          `json:"product_id" validate:"omitempty,uuid"`
	ProductName    string          `json:"product_name" validate:"required,min=1,max=300"`
	Platform       string          `json:"platform" validate:"required,oneof=StoreHub TikTok Shopee Online"`
	CustomerType   string          `json:"customer_type" validate:"required,oneof=NEW REPEAT"`
	DeliveryStatus string          `json:"delivery_status" validate:"required,oneof=PENDING SHIPPED DELIVERED RETURNED"`
	Quantity       decimal.Decimal `json:"quantity" validate:"required"`
	TotalPrice     decimal.Decimal `json:"total_price" validate:"required"`
	OrderDate      string          `json:"order_date" validate:"omitempty"`     // 2006-01-02
	ProcessedDate  string          `json:"processed_date" validate:"omitempty"` // 2006-01-02
	ReturnDate     string          `json:"return_date" validate:"omitempty"`    // 2006-01-02
}

// CreateAdSpendRequest gasto publicitario de un marketer.
type CreateAdSpendRequest struct {
	MarketerID string          `json:"marketer_id" validate:"required,uuid"`
	Platform   string          `json:"platform" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	SpendDate  string          `json:"spend_date" validate:"required"` // 2006-01-02
}
