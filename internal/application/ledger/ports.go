package ledger

import (
	"context"

	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza la atomicidad del motor de inventario: un lector nunca
// observa stock que salió del origen sin llegar al destino.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}
