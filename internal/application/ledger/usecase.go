// Package ledger implementa el motor de inventario multinivel: entradas, salidas,
// transferencias entre actores de la red y reversiones, de forma transaccional
// (SELECT FOR UPDATE + Commit/Rollback) con conservación de unidades y saldos no negativos.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/pricing"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos de stock manteniendo los invariantes:
// saldo >= 0 siempre (se rechaza, no se recorta) y conservación en transferencias.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	actorRepo   repository.ActorRepository
	bundleRepo  repository.BundleRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	actorRepo repository.ActorRepository,
	bundleRepo repository.BundleRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		actorRepo:   actorRepo,
		bundleRepo:  bundleRepo,
	}
}

// ReceiveInput entrada de stock externa (compra a proveedor, producción, etc.).
type ReceiveInput struct {
	ActorID     string
	ProductID   string
	Quantity    decimal.Decimal
	Date        time.Time
	Description string
	CreatedBy   string
}

// IssueInput salida de stock (venta directa, merma, despacho al cliente final).
type IssueInput struct {
	ActorID     string
	ProductID   string
	Quantity    decimal.Decimal
	Date        time.Time
	Description string
	CreatedBy   string
}

// TransferInput traslado entre dos actores de la red. ProductID o BundleID, no ambos.
// UnitPrice opcional: cuando el destino es un nivel que compra (agente maestro, agente,
// sucursal) y hay precio — explícito o configurado en el combo — la transferencia
// registra además una orden COMPLETED con su transacción, en la misma tx.
type TransferInput struct {
	FromActorID string
	ToActorID   string
	ProductID   string
	BundleID    string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
	Date        time.Time
	CreatedBy   string
}

// validQuantity las cantidades del libro son enteros positivos.
func validQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && q.IsInteger()
}

// Receive crea un movimiento IN y acredita el saldo del actor, en una transacción.
func (uc *LedgerUseCase) Receive(ctx context.Context, in ReceiveInput) error {
	if !validQuantity(in.Quantity) {
		return domain.ErrInvalidQuantity
	}
	if err := uc.checkActorAndProduct(in.ActorID, in.ProductID); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.OrderRepository,
		_ repository.TransactionRepository,
	) error {
		return uc.CreditInTx(movRepo, stockRepo, in.ActorID, in.ProductID, in.Quantity, nil, in.Description, in.CreatedBy, in.Date)
	})
}

// Issue verifica saldo suficiente y lo debita, en una transacción. Si el saldo es
// menor a lo solicitado falla con InsufficientStockError y no muta nada.
func (uc *LedgerUseCase) Issue(ctx context.Context, in IssueInput) error {
	if !validQuantity(in.Quantity) {
		return domain.ErrInvalidQuantity
	}
	if err := uc.checkActorAndProduct(in.ActorID, in.ProductID); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.OrderRepository,
		_ repository.TransactionRepository,
	) error {
		return uc.DebitInTx(movRepo, stockRepo, in.ActorID, in.ProductID, in.Quantity, nil, in.Description, in.CreatedBy, in.Date)
	})
}

// Transfer debita el origen y acredita el destino en una sola transacción: ambos
// efectos o ninguno. Con combo, expande los productos constituyentes. Si aplica
// precio de nivel, registra la venta (orden COMPLETED + transacción) en la misma tx.
func (uc *LedgerUseCase) Transfer(ctx context.Context, in TransferInput) error {
	if !validQuantity(in.Quantity) {
		return domain.ErrInvalidQuantity
	}
	if in.FromActorID == in.ToActorID {
		return domain.ErrInvalidInput
	}
	if (in.ProductID == "") == (in.BundleID == "") {
		return domain.ErrInvalidInput // exactamente uno de producto o combo
	}

	from, err := uc.actorRepo.GetByID(in.FromActorID)
	if err != nil || from == nil {
		return domain.ErrNotFound
	}
	to, err := uc.actorRepo.GetByID(in.ToActorID)
	if err != nil || to == nil {
		return domain.ErrNotFound
	}

	var bundle *entity.Bundle
	var product *entity.Product
	if in.BundleID != "" {
		bundle, err = uc.bundleRepo.GetByID(in.BundleID)
		if err != nil || bundle == nil {
			return domain.ErrNotFound
		}
	} else {
		product, err = uc.productRepo.GetByID(in.ProductID)
		if err != nil || product == nil {
			return domain.ErrNotFound
		}
	}

	unitPrice, saleName, productRef := uc.resolveSale(in, to, bundle, product)

	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		txnRepo repository.TransactionRepository,
	) error {
		// Mover cada línea física: el combo se expande a sus productos.
		lines := []entity.BundleItem{{ProductID: in.ProductID, Quantity: decimal.NewFromInt(1)}}
		if bundle != nil {
			lines = bundle.Items
		}
		for _, item := range lines {
			qty := in.Quantity.Mul(item.Quantity)
			if err := uc.DebitInTx(movRepo, stockRepo, in.FromActorID, item.ProductID, qty, &in.ToActorID, "transferencia a "+to.Name, in.CreatedBy, in.Date); err != nil {
				return err
			}
			if err := uc.CreditInTx(movRepo, stockRepo, in.ToActorID, item.ProductID, qty, &in.FromActorID, "transferencia de "+from.Name, in.CreatedBy, in.Date); err != nil {
				return err
			}
		}

		// Venta implícita del nivel: orden COMPLETED + transacción, misma tx.
		if unitPrice == nil {
			return nil
		}
		total := in.Quantity.Mul(*unitPrice)
		order := &entity.Order{
			ID:          uuid.New().String(),
			BuyerID:     in.ToActorID,
			SellerID:    in.FromActorID,
			ProductID:   productRef,
			ProductName: saleName,
			Quantity:    in.Quantity,
			UnitPrice:   *unitPrice,
			TotalPrice:  total,
			Status:      entity.OrderStatusCompleted,
			CreatedAt:   in.Date,
			UpdatedAt:   in.Date,
		}
		if bundle != nil {
			order.BundleID = &bundle.ID
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return txnRepo.Create(&entity.Transaction{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			BuyerID:     in.ToActorID,
			SellerID:    in.FromActorID,
			ProductID:   productRef,
			ProductName: saleName,
			Quantity:    in.Quantity,
			UnitPrice:   *unitPrice,
			TotalPrice:  total,
			Type:        entity.TransactionTypePurchase,
			CreatedAt:   in.Date,
		})
	})
}

// resolveSale determina si la transferencia registra una venta y a qué precio.
// Prioridad: precio explícito del request; si no, precio del combo según el rol destino.
func (uc *LedgerUseCase) resolveSale(in TransferInput, to *entity.Actor, bundle *entity.Bundle, product *entity.Product) (price *decimal.Decimal, name string, productRef *string) {
	payingRole := to.Role == entity.RoleMasterAgent || to.Role == entity.RoleAgent || to.Role == entity.RoleBranch
	if !payingRole {
		return nil, "", nil
	}
	if bundle != nil {
		name = bundle.Name
		if in.UnitPrice != nil {
			return in.UnitPrice, name, nil
		}
		if p, err := pricing.UnitPriceForRole(bundle, to.Role); err == nil {
			return &p, name, nil
		}
		return nil, "", nil
	}
	name = product.Name
	productRef = &product.ID
	if in.UnitPrice != nil {
		return in.UnitPrice, name, productRef
	}
	return nil, "", nil
}

// ReverseMovement elimina un movimiento histórico y aplica el ajuste de saldo inverso.
// Si el inverso dejara el saldo negativo, el libro ya estaba inconsistente:
// falla con ErrLedgerCorruption y no muta nada.
func (uc *LedgerUseCase) ReverseMovement(ctx context.Context, movementID string) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.OrderRepository,
		_ repository.TransactionRepository,
	) error {
		mov, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		stock, err := stockRepo.GetForUpdate(mov.ActorID, mov.ProductID)
		if err != nil {
			return err
		}
		var delta decimal.Decimal
		switch mov.Direction {
		case entity.DirectionIn:
			// Revertir una entrada resta: re-validar no-negatividad.
			if stock.Quantity.LessThan(mov.Quantity) {
				return domain.ErrLedgerCorruption
			}
			delta = mov.Quantity.Neg()
		case entity.DirectionOut:
			delta = mov.Quantity
		default:
			return domain.ErrInvalidInput
		}
		if err := stockRepo.Add(mov.ActorID, mov.ProductID, delta); err != nil {
			return err
		}
		return movRepo.Delete(movementID)
	})
}

// CreditInTx acredita saldo y crea el movimiento IN usando los repositorios del caller
// (misma transacción). Lo usa también el motor de liquidación.
//
// El crédito se escribe como delta, nunca como total calculado de una lectura:
// sobre un par (actor, producto) sin fila, un SELECT FOR UPDATE no bloquea nada
// y dos créditos concurrentes se pisarían el total del otro.
func (uc *LedgerUseCase) CreditInTx(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	actorID, productID string,
	qty decimal.Decimal,
	counterparty *string,
	description, createdBy string,
	now time.Time,
) error {
	if !validQuantity(qty) {
		return domain.ErrInvalidQuantity
	}
	if err := stockRepo.Add(actorID, productID, qty); err != nil {
		return err
	}
	return movRepo.Create(&entity.StockMovement{
		ID:             uuid.New().String(),
		ActorID:        actorID,
		ProductID:      productID,
		Quantity:       qty,
		Direction:      entity.DirectionIn,
		CounterpartyID: counterparty,
		Description:    description,
		Date:           now,
		CreatedAt:      now,
		CreatedBy:      createdBy,
	})
}

// DebitInTx verifica y debita saldo en una sola sección crítica (fila bloqueada por
// GetForUpdate): dos salidas concurrentes no pueden pasar ambas la verificación.
// Sin fila el saldo es cero y el débito falla antes de escribir, así que el caso
// de fila inexistente sin bloqueo solo existe para créditos.
func (uc *LedgerUseCase) DebitInTx(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	actorID, productID string,
	qty decimal.Decimal,
	counterparty *string,
	description, createdBy string,
	now time.Time,
) error {
	if !validQuantity(qty) {
		return domain.ErrInvalidQuantity
	}
	stock, err := stockRepo.GetForUpdate(actorID, productID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(qty) {
		return &domain.InsufficientStockError{
			ActorID:   actorID,
			ProductID: productID,
			Available: stock.Quantity,
			Requested: qty,
		}
	}
	if err := stockRepo.Add(actorID, productID, qty.Neg()); err != nil {
		return err
	}
	return movRepo.Create(&entity.StockMovement{
		ID:             uuid.New().String(),
		ActorID:        actorID,
		ProductID:      productID,
		Quantity:       qty,
		Direction:      entity.DirectionOut,
		CounterpartyID: counterparty,
		Description:    description,
		Date:           now,
		CreatedAt:      now,
		CreatedBy:      createdBy,
	})
}

// checkActorAndProduct valida existencia de actor y producto (lecturas fuera de la tx).
func (uc *LedgerUseCase) checkActorAndProduct(actorID, productID string) error {
	actor, err := uc.actorRepo.GetByID(actorID)
	if err != nil || actor == nil {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if !product.Active {
		return domain.ErrInvalidInput
	}
	return nil
}
