package repository

import (
	"time"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// PurchaseRepository puerto de líneas de venta al cliente final (insumo de reportes).
// Los filtros de fecha son amplios: el motor de agregación aplica la ventana exacta
// por métrica (fecha de orden, de despacho o de devolución).
type PurchaseRepository interface {
	Create(purchase *entity.CustomerPurchase) error
	ListByMarketer(marketerID string, from, to time.Time) ([]*entity.CustomerPurchase, error)
	ListAll(from, to time.Time) ([]*entity.CustomerPurchase, error)
}
