package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// StockRepository puerto para consultar/actualizar el saldo por (actor, producto).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(actorID, productID string) (*entity.Stock, error)
	// Add aplica un delta sobre el saldo (negativo = débito). La escritura es
	// relativa en el almacén: dos transacciones que crean la primera fila del
	// par no se pisan entre sí, porque ninguna escribe un total absoluto.
	Add(actorID, productID string, delta decimal.Decimal) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Sin fila devuelve saldo cero (y no bloquea nada).
	GetForUpdate(actorID, productID string) (*entity.Stock, error)
	ListByActor(actorID string) ([]*entity.Stock, error)
}
