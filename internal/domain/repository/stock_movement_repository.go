package repository

import (
	"time"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// StockMovementRepository puerto del rastro de auditoría de movimientos (append-only;
// Delete existe solo para la reversión, que aplica el ajuste compensatorio).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	Delete(id string) error
	ListByActor(actorID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
