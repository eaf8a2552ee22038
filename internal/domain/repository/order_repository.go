package repository

import (
	"time"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// OrderRepository puerto de órdenes. GetForUpdate + UpdateStatusIf implementan el
// compare-and-set de estado que hace la liquidación segura bajo concurrencia.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Order, error)
	// UpdateStatusIf cambia el estado solo si el actual coincide con fromStatus.
	// Retorna false si ninguna fila cambió (otro operador ganó la carrera).
	UpdateStatusIf(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Order, error)
	ListByBuyer(buyerID string, from, to *time.Time, limit, offset int) ([]*entity.Order, error)
}
