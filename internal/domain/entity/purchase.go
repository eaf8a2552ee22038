package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plataformas de venta al cliente final.
const (
	PlatformStoreHub = "StoreHub"
	PlatformTikTok   = "TikTok"
	PlatformShopee   = "Shopee"
	PlatformOnline   = "Online"
)

// Tipos de cliente para los desgloses de mercadeo.
const (
	CustomerTypeNew    = "NEW"
	CustomerTypeRepeat = "REPEAT"
)

// Estados de entrega de una línea de compra.
const (
	DeliveryStatusPending   = "PENDING"
	DeliveryStatusShipped   = "SHIPPED"
	DeliveryStatusDelivered = "DELIVERED"
	DeliveryStatusReturned  = "RETURNED"
)

// CustomerPurchase línea de venta denormalizada al cliente final. Es insumo de los
// reportes (nunca del motor de liquidación). Cada métrica usa su propia fecha:
// OrderDate para ventas, ProcessedDate para despachos, ReturnDate para devoluciones.
// Fecha nil = el registro no cae en la ventana de esa métrica.
type CustomerPurchase struct {
	ID            string
	MarketerID    string
	ProductID     *string // nil cuando la línea es un combo identificado por nombre
	ProductName   string
	Platform      string
	CustomerType  string
	DeliveryStatus string
	Quantity      decimal.Decimal
	TotalPrice    decimal.Decimal
	OrderDate     *time.Time
	ProcessedDate *time.Time
	ReturnDate    *time.Time
}
