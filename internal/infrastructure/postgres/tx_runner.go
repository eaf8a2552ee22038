package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Distriops-api/internal/application/ledger"
	"github.com/jhoicas/Distriops-api/internal/application/settlement"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// Ensure TxRunner satisface los puertos de inventario y liquidación.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ settlement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	stockRepo := NewStockRepository(tx)
	orderRepo := NewOrderRepository(tx)
	txnRepo := NewTransactionRepository(tx)

	if err := fn(movRepo, stockRepo, orderRepo, txnRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
