package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// Estados reportados por la pasarela de pago externa.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// TxRunner ejecuta la liquidación completa (débito vendedor + crédito comprador +
// transacción + cambio de estado) dentro de una sola transacción de BD.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}

// InventoryEngine contrato mínimo del motor de inventario que necesita la liquidación.
// Lo implementa *ledger.LedgerUseCase; la interfaz evita el import circular.
type InventoryEngine interface {
	DebitInTx(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		actorID, productID string,
		qty decimal.Decimal,
		counterparty *string,
		description, createdBy string,
		now time.Time,
	) error
	CreditInTx(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		actorID, productID string,
		qty decimal.Decimal,
		counterparty *string,
		description, createdBy string,
		now time.Time,
	) error
}

// PaymentGateway colaborador externo de pagos: consulta el estado de una referencia.
type PaymentGateway interface {
	GetStatus(ctx context.Context, paymentRef string) (string, error)
}

// BlobStore almacén de archivos para recibos/guías. Upload retorna la URL pública.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

// ReceiptPDFGenerator genera la representación PDF del recibo de una orden liquidada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, buyer, seller *entity.Actor) ([]byte, error)
}
