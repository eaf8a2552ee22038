// Package settlement implementa el motor de liquidación de órdenes: transición del
// ciclo PENDING → COMPLETED/FAILED con débito de inventario del vendedor, crédito al
// comprador y registro de la transacción, todo o nada y exactamente una vez.
package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/pricing"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// Config identidad explícita de la sede central. El vendedor de una compra de agente
// maestro es HQ; para los demás niveles es el padre del comprador en la red.
// Se inyecta en lugar de buscar un registro singleton por rol en tiempo de llamada.
type Config struct {
	HQActorID string
}

// SettlementUseCase orquesta creación, aprobación, rechazo y reverificación de órdenes.
type SettlementUseCase struct {
	txRunner   TxRunner
	inventory  InventoryEngine
	actorRepo  repository.ActorRepository
	orderRepo  repository.OrderRepository
	bundleRepo repository.BundleRepository
	gateway    PaymentGateway
	blobStore  BlobStore
	pdfGen     ReceiptPDFGenerator
	cfg        Config
}

// NewSettlementUseCase construye el caso de uso. gateway, blobStore y pdfGen pueden
// ser nil si la instalación no integra esos colaboradores.
func NewSettlementUseCase(
	txRunner TxRunner,
	inventory InventoryEngine,
	actorRepo repository.ActorRepository,
	orderRepo repository.OrderRepository,
	bundleRepo repository.BundleRepository,
	gateway PaymentGateway,
	blobStore BlobStore,
	pdfGen ReceiptPDFGenerator,
	cfg Config,
) *SettlementUseCase {
	return &SettlementUseCase{
		txRunner:   txRunner,
		inventory:  inventory,
		actorRepo:  actorRepo,
		orderRepo:  orderRepo,
		bundleRepo: bundleRepo,
		gateway:    gateway,
		blobStore:  blobStore,
		pdfGen:     pdfGen,
		cfg:        cfg,
	}
}

// CreateOrderInput datos para crear una orden PENDING.
// ProductID o BundleID, exactamente uno. UnitPrice es obligatorio para producto suelto;
// para combo, si viene vacío se resuelve por el rol del comprador.
type CreateOrderInput struct {
	BuyerID    string
	ProductID  string
	BundleID   string
	Quantity   decimal.Decimal
	UnitPrice  *decimal.Decimal
	PaymentRef *string
	Remarks    string
	Receipt    []byte // comprobante de pago opcional (imagen/pdf)
	ReceiptExt string // extensión del comprobante: "jpg", "png", "pdf"
}

// CreateOrder valida comprador y precio, sube el comprobante si viene, y persiste la
// orden en PENDING. No toca inventario: eso ocurre en Approve.
func (uc *SettlementUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if !in.Quantity.IsPositive() || !in.Quantity.IsInteger() {
		return nil, domain.ErrInvalidQuantity
	}
	if (in.ProductID == "") == (in.BundleID == "") {
		return nil, domain.ErrInvalidInput
	}
	buyer, err := uc.actorRepo.GetByID(in.BuyerID)
	if err != nil || buyer == nil {
		return nil, domain.ErrNotFound
	}

	sellerID, err := uc.resolveSeller(buyer)
	if err != nil {
		return nil, err
	}

	var productRef, bundleRef *string
	var name string
	unitPrice := decimal.Zero
	if in.BundleID != "" {
		bundle, err := uc.bundleRepo.GetByID(in.BundleID)
		if err != nil || bundle == nil {
			return nil, domain.ErrNotFound
		}
		if !bundle.Active {
			return nil, domain.ErrInvalidInput
		}
		name = bundle.Name
		bundleRef = &bundle.ID
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		} else {
			unitPrice, err = pricing.UnitPriceForRole(bundle, buyer.Role)
			if err != nil {
				return nil, err
			}
		}
	} else {
		if in.UnitPrice == nil || !in.UnitPrice.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = *in.UnitPrice
		productRef = &in.ProductID
	}

	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		BuyerID:     in.BuyerID,
		SellerID:    sellerID,
		ProductID:   productRef,
		BundleID:    bundleRef,
		ProductName: name,
		Quantity:    in.Quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  in.Quantity.Mul(unitPrice),
		Status:      entity.OrderStatusPending,
		PaymentRef:  in.PaymentRef,
		Remarks:     in.Remarks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if len(in.Receipt) > 0 && uc.blobStore != nil {
		ext := in.ReceiptExt
		if ext == "" {
			ext = "jpg"
		}
		path := fmt.Sprintf("orders/%s/receipt.%s", order.ID, ext)
		url, err := uc.blobStore.Upload(ctx, path, in.Receipt, contentTypeFor(ext))
		if err != nil {
			return nil, fmt.Errorf("subir comprobante: %w", err)
		}
		order.ReceiptURL = url
	}

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Approve liquida una orden PENDING: en UNA transacción bloquea la orden, debita al
// vendedor (sin stock suficiente aborta todo), acredita al comprador, crea la
// transacción y hace compare-and-set PENDING→COMPLETED. Dos aprobaciones casi
// simultáneas liquidan exactamente una vez; la perdedora recibe ErrOrderNotPending.
func (uc *SettlementUseCase) Approve(ctx context.Context, orderID string) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		txnRepo repository.TransactionRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrOrderNotPending
		}
		return uc.settleLocked(movRepo, stockRepo, orderRepo, txnRepo, order, entity.OrderStatusPending)
	})
}

// Reject marca una orden PENDING como FAILED. Sin efectos de inventario.
func (uc *SettlementUseCase) Reject(ctx context.Context, orderID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
		_ repository.TransactionRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrOrderNotPending
		}
		ok, err := orderRepo.UpdateStatusIf(orderID, entity.OrderStatusPending, entity.OrderStatusFailed, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrOrderNotPending
		}
		return nil
	})
}

// RecheckPayment consulta la pasarela por la referencia de pago de una orden
// previamente fallida (o aún pendiente). Si la pasarela reporta pago COMPLETED,
// re-ejecuta la liquidación; si la orden ya está COMPLETED es un no-op (nunca
// liquidación duplicada). Errores de la pasarela no tocan el estado local y son
// seguros de reintentar. Retorna siempre el estado reportado por la pasarela.
func (uc *SettlementUseCase) RecheckPayment(ctx context.Context, orderID string) (string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", domain.ErrNotFound
	}
	if order.PaymentRef == nil || *order.PaymentRef == "" {
		return "", domain.ErrInvalidInput
	}
	if uc.gateway == nil {
		return "", domain.ErrPaymentGateway
	}

	status, err := uc.gateway.GetStatus(ctx, *order.PaymentRef)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}

	if order.Status == entity.OrderStatusCompleted || status != PaymentStatusCompleted {
		return status, nil
	}

	// La pasarela confirma el pago: liquidar desde el estado actual (PENDING o FAILED).
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		txnRepo repository.TransactionRepository,
	) error {
		locked, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.Status == entity.OrderStatusCompleted {
			return nil // otro operador liquidó primero: no-op
		}
		return uc.settleLocked(movRepo, stockRepo, orderRepo, txnRepo, locked, locked.Status)
	})
	if err != nil {
		return status, err
	}
	return status, nil
}

// settleLocked ejecuta los efectos de la liquidación sobre una orden ya bloqueada:
// débito vendedor, crédito comprador (expandiendo combos), transacción y CAS de estado.
func (uc *SettlementUseCase) settleLocked(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.TransactionRepository,
	order *entity.Order,
	fromStatus string,
) error {
	now := time.Now()

	lines, err := uc.orderLines(order)
	if err != nil {
		return err
	}
	desc := "liquidación orden " + order.ID
	for _, line := range lines {
		qty := order.Quantity.Mul(line.Quantity)
		if err := uc.inventory.DebitInTx(movRepo, stockRepo, order.SellerID, line.ProductID, qty, &order.BuyerID, desc, "", now); err != nil {
			return err
		}
		if err := uc.inventory.CreditInTx(movRepo, stockRepo, order.BuyerID, line.ProductID, qty, &order.SellerID, desc, "", now); err != nil {
			return err
		}
	}

	if err := txnRepo.Create(&entity.Transaction{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		ProductID:   order.ProductID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
		UnitPrice:   order.UnitPrice,
		TotalPrice:  order.TotalPrice,
		Type:        entity.TransactionTypePurchase,
		CreatedAt:   now,
	}); err != nil {
		return err
	}

	ok, err := orderRepo.UpdateStatusIf(order.ID, fromStatus, entity.OrderStatusCompleted, now)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOrderNotPending
	}
	return nil
}

// orderLines expande la orden a sus líneas físicas de producto.
func (uc *SettlementUseCase) orderLines(order *entity.Order) ([]entity.BundleItem, error) {
	if order.BundleID != nil {
		bundle, err := uc.bundleRepo.GetByID(*order.BundleID)
		if err != nil || bundle == nil {
			return nil, domain.ErrNotFound
		}
		return bundle.Items, nil
	}
	if order.ProductID == nil {
		return nil, domain.ErrInvalidInput
	}
	return []entity.BundleItem{{ProductID: *order.ProductID, Quantity: decimal.NewFromInt(1)}}, nil
}

// resolveSeller vendedor explícito por nivel: agente maestro compra a HQ; los demás
// a su padre en la red; sin padre, HQ.
func (uc *SettlementUseCase) resolveSeller(buyer *entity.Actor) (string, error) {
	if uc.cfg.HQActorID == "" {
		return "", domain.ErrInvalidInput
	}
	if buyer.Role == entity.RoleMasterAgent {
		return uc.cfg.HQActorID, nil
	}
	if buyer.ParentID != nil && *buyer.ParentID != "" {
		return *buyer.ParentID, nil
	}
	return uc.cfg.HQActorID, nil
}

// GetOrder obtiene una orden por ID.
func (uc *SettlementUseCase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ReceiptPDF genera el recibo PDF de una orden liquidada.
func (uc *SettlementUseCase) ReceiptPDF(ctx context.Context, orderID string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusCompleted {
		return nil, domain.ErrOrderNotPending
	}
	buyer, _ := uc.actorRepo.GetByID(order.BuyerID)
	seller, _ := uc.actorRepo.GetByID(order.SellerID)
	if buyer == nil || seller == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.GenerateReceiptPDF(ctx, order, buyer, seller)
}

func contentTypeFor(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
