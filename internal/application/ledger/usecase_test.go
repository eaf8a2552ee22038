package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distriops-api/internal/application/ledger"
	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore emula la BD; memTxRunner emula la transacción con snapshot/restore:
// si la función retorna error se restaura el estado previo, como haría el
// Rollback de pgx. Con esto los tests verifican la atomicidad real del motor.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	stocks    map[string]*entity.Stock // key: actorID|productID
	movements map[string]*entity.StockMovement
	orders    map[string]*entity.Order
	txns      []*entity.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		stocks:    map[string]*entity.Stock{},
		movements: map[string]*entity.StockMovement{},
		orders:    map[string]*entity.Order{},
	}
}

func stockKey(actorID, productID string) string { return actorID + "|" + productID }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.stocks {
		cp := *v
		c.stocks[k] = &cp
	}
	for k, v := range s.movements {
		cp := *v
		c.movements[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	c.txns = append(c.txns, s.txns...)
	return c
}

func (s *memStore) balance(actorID, productID string) decimal.Decimal {
	if st, ok := s.stocks[stockKey(actorID, productID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

// ── Repos de stock/movimientos sobre memStore ─────────────────────────────────

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(actorID, productID string) (*entity.Stock, error) {
	return r.GetForUpdate(actorID, productID)
}

func (r *memStockRepo) GetForUpdate(actorID, productID string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[stockKey(actorID, productID)]; ok {
		cp := *st
		return &cp, nil
	}
	// Sin fila = saldo cero, igual que el repositorio Postgres.
	return &entity.Stock{ActorID: actorID, ProductID: productID, Quantity: decimal.Zero}, nil
}

// Add aplica el delta sobre el saldo almacenado, como el brazo de conflicto
// aditivo del repositorio Postgres.
func (r *memStockRepo) Add(actorID, productID string, delta decimal.Decimal) error {
	k := stockKey(actorID, productID)
	st, ok := r.s.stocks[k]
	if !ok {
		st = &entity.Stock{ActorID: actorID, ProductID: productID, Quantity: decimal.Zero}
		r.s.stocks[k] = st
	}
	st.Quantity = st.Quantity.Add(delta)
	st.UpdatedAt = time.Now()
	return nil
}

func (r *memStockRepo) ListByActor(actorID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.s.stocks {
		if st.ActorID == actorID {
			out = append(out, st)
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	if m, ok := r.s.movements[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *memMovementRepo) Delete(id string) error {
	delete(r.s.movements, id)
	return nil
}

func (r *memMovementRepo) ListByActor(actorID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ActorID == actorID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }

func (r *memOrderRepo) UpdateStatusIf(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error) {
	o, ok := r.s.orders[id]
	if !ok || o.Status != fromStatus {
		return false, nil
	}
	o.Status = toStatus
	o.UpdatedAt = updatedAt
	return true, nil
}

func (r *memOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListByBuyer(buyerID string, from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memTxnRepo struct{ s *memStore }

func (r *memTxnRepo) Create(txn *entity.Transaction) error {
	cp := *txn
	r.s.txns = append(r.s.txns, &cp)
	return nil
}

func (r *memTxnRepo) GetByOrderID(orderID string) (*entity.Transaction, error) {
	for _, t := range r.s.txns {
		if t.OrderID == orderID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTxnRepo) ListByBuyer(buyerID string, from, to time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.s.txns {
		if t.BuyerID == buyerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTxnRepo) ListBySeller(sellerID string, from, to time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.s.txns {
		if t.SellerID == sellerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTxnRepo) SumByBuyer(buyerID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	amount, qty := decimal.Zero, decimal.Zero
	for _, t := range r.s.txns {
		if t.BuyerID == buyerID {
			amount = amount.Add(t.TotalPrice)
			qty = qty.Add(t.Quantity)
		}
	}
	return amount, qty, nil
}

// memTxRunner ejecuta fn contra el store; ante error restaura el snapshot (rollback).
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.TransactionRepository,
) error) error {
	snap := r.s.clone()
	err := fn(&memMovementRepo{r.s}, &memStockRepo{r.s}, &memOrderRepo{r.s}, &memTxnRepo{r.s})
	if err != nil {
		*r.s = *snap
	}
	return err
}

// staleStockRepo simula el par (actor, producto) sin fila: un SELECT FOR UPDATE
// sobre una fila inexistente no bloquea nada y siempre reporta saldo cero, aunque
// otra transacción ya haya comprometido un saldo.
type staleStockRepo struct{ *memStockRepo }

func (r staleStockRepo) GetForUpdate(actorID, productID string) (*entity.Stock, error) {
	return &entity.Stock{ActorID: actorID, ProductID: productID, Quantity: decimal.Zero}, nil
}

// staleTxRunner como memTxRunner, pero con lecturas FOR UPDATE siempre en cero.
type staleTxRunner struct{ s *memStore }

func (r *staleTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.TransactionRepository,
) error) error {
	snap := r.s.clone()
	err := fn(&memMovementRepo{r.s}, staleStockRepo{&memStockRepo{r.s}}, &memOrderRepo{r.s}, &memTxnRepo{r.s})
	if err != nil {
		*r.s = *snap
	}
	return err
}

// ── Repos de catálogo ─────────────────────────────────────────────────────────

type memActorRepo struct{ actors map[string]*entity.Actor }

func (r *memActorRepo) Create(a *entity.Actor) error {
	r.actors[a.ID] = a
	return nil
}

func (r *memActorRepo) GetByID(id string) (*entity.Actor, error) {
	if a, ok := r.actors[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memActorRepo) ListByRole(role string) ([]*entity.Actor, error) {
	var out []*entity.Actor
	for _, a := range r.actors {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

type memProductRepo struct{ products map[string]*entity.Product }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) UpdateCost(id string, cost decimal.Decimal) error { return nil }
func (r *memProductRepo) SetActive(id string, active bool) error          { return nil }

type memBundleRepo struct{ bundles map[string]*entity.Bundle }

func (r *memBundleRepo) Create(b *entity.Bundle) error {
	r.bundles[b.ID] = b
	return nil
}

func (r *memBundleRepo) GetByID(id string) (*entity.Bundle, error) {
	if b, ok := r.bundles[id]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memBundleRepo) List(onlyActive bool) ([]*entity.Bundle, error) {
	var out []*entity.Bundle
	for _, b := range r.bundles {
		out = append(out, b)
	}
	return out, nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

const (
	hqID       = "actor-hq"
	masterID   = "actor-master"
	agentID    = "actor-agent"
	productAID = "prod-a"
	productBID = "prod-b"
	comboID    = "combo-1"
)

type fixture struct {
	store    *memStore
	uc       *ledger.LedgerUseCase
	actors   *memActorRepo
	products *memProductRepo
	bundles  *memBundleRepo
}

func newFixture() *fixture {
	store := newMemStore()
	actors := &memActorRepo{actors: map[string]*entity.Actor{
		hqID:     {ID: hqID, Name: "Sede Central", Role: entity.RoleHQ, Active: true},
		masterID: {ID: masterID, Name: "Agente Maestro Norte", Role: entity.RoleMasterAgent, Active: true},
		agentID:  {ID: agentID, Name: "Agente Medellín", Role: entity.RoleAgent, Active: true},
	}}
	products := &memProductRepo{products: map[string]*entity.Product{
		productAID: {ID: productAID, SKU: "SKU-A", Name: "Producto A", Active: true},
		productBID: {ID: productBID, SKU: "SKU-B", Name: "Producto B", Active: true},
	}}
	bundles := &memBundleRepo{bundles: map[string]*entity.Bundle{
		comboID: {
			ID:   comboID,
			Name: "SKU-A + SKU-B",
			Items: []entity.BundleItem{
				{ProductID: productAID, Quantity: decimal.NewFromInt(2)},
				{ProductID: productBID, Quantity: decimal.NewFromInt(1)},
			},
			MasterAgentPrice: decimal.NewFromInt(90),
			AgentPrice:       decimal.NewFromInt(100),
			Active:           true,
		},
	}}
	uc := ledger.NewLedgerUseCase(&memTxRunner{store}, products, actors, bundles)
	return &fixture{store: store, uc: uc, actors: actors, products: products, bundles: bundles}
}

func (f *fixture) seedStock(t *testing.T, actorID, productID string, qty int64) {
	t.Helper()
	err := f.uc.Receive(context.Background(), ledger.ReceiveInput{
		ActorID:   actorID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		Date:      time.Now(),
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive / Issue
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_AcreditaSaldoYCreaMovimiento(t *testing.T) {
	f := newFixture()

	err := f.uc.Receive(context.Background(), ledger.ReceiveInput{
		ActorID:     hqID,
		ProductID:   productAID,
		Quantity:    decimal.NewFromInt(100),
		Date:        time.Now(),
		Description: "compra a proveedor",
	})
	require.NoError(t, err)

	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(100)))
	require.Len(t, f.store.movements, 1)
	for _, m := range f.store.movements {
		assert.Equal(t, entity.DirectionIn, m.Direction)
		assert.True(t, m.Quantity.Equal(decimal.NewFromInt(100)))
	}
}

func TestReceive_CantidadInvalida(t *testing.T) {
	f := newFixture()

	casos := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-5),
		decimal.NewFromFloat(2.5),
	}
	for _, qty := range casos {
		err := f.uc.Receive(context.Background(), ledger.ReceiveInput{
			ActorID:   hqID,
			ProductID: productAID,
			Quantity:  qty,
			Date:      time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %s debe rechazarse", qty)
	}
	assert.Empty(t, f.store.movements, "ningún movimiento debe registrarse")
}

// Dos recepciones sobre un par (actor, producto) que aún no tiene fila: ambas
// leen saldo cero porque un FOR UPDATE sobre fila inexistente no bloquea nada.
// El crédito se escribe como delta en el almacén; si se escribiera el total
// calculado de la lectura, la segunda recepción pisaría la primera (7 en vez de 12).
func TestReceive_FilaNueva_CreditosNoSePisan(t *testing.T) {
	f := newFixture()
	uc := ledger.NewLedgerUseCase(&staleTxRunner{f.store}, f.products, f.actors, f.bundles)

	for _, qty := range []int64{5, 7} {
		err := uc.Receive(context.Background(), ledger.ReceiveInput{
			ActorID:   hqID,
			ProductID: productAID,
			Quantity:  decimal.NewFromInt(qty),
			Date:      time.Now(),
		})
		require.NoError(t, err)
	}

	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(12)),
		"cada crédito suma su delta sobre lo ya comprometido")
}

func TestIssue_SaldoInsuficiente_NoMutaNada(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 5)

	err := f.uc.Issue(context.Background(), ledger.IssueInput{
		ActorID:   hqID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(7),
		Date:      time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr, "el error debe llevar el detalle disponible/solicitado")
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, stockErr.Requested.Equal(decimal.NewFromInt(7)))

	// El saldo se rechaza, no se recorta: queda en 5 y solo existe el movimiento del seed.
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(5)))
	assert.Len(t, f.store.movements, 1)
}

func TestIssue_DebitaExacto(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 10)

	err := f.uc.Issue(context.Background(), ledger.IssueInput{
		ActorID:   hqID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(10),
		Date:      time.Now(),
	})
	require.NoError(t, err, "debitar el saldo exacto debe permitirse (queda en cero)")
	assert.True(t, f.store.balance(hqID, productAID).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_ConservaUnidades(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 100)

	err := f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   masterID,
		ProductID:   productAID,
		Quantity:    decimal.NewFromInt(30),
		Date:        time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(70)))
	assert.True(t, f.store.balance(masterID, productAID).Equal(decimal.NewFromInt(30)))

	// Conservación: la suma por producto no cambia con la transferencia.
	total := f.store.balance(hqID, productAID).Add(f.store.balance(masterID, productAID))
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestTransfer_OrigenSinSaldo_RollbackTotal(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 10)

	err := f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   masterID,
		ProductID:   productAID,
		Quantity:    decimal.NewFromInt(50),
		Date:        time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ambos efectos o ninguno: nada se movió.
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(10)))
	assert.True(t, f.store.balance(masterID, productAID).IsZero())
	assert.Len(t, f.store.movements, 1, "solo el movimiento del seed")
}

func TestTransfer_ComboExpandeConstituyentes(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 20)
	f.seedStock(t, hqID, productBID, 20)

	// 3 combos: cada uno lleva 2 de A y 1 de B.
	err := f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   masterID,
		BundleID:    comboID,
		Quantity:    decimal.NewFromInt(3),
		Date:        time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(14)))
	assert.True(t, f.store.balance(hqID, productBID).Equal(decimal.NewFromInt(17)))
	assert.True(t, f.store.balance(masterID, productAID).Equal(decimal.NewFromInt(6)))
	assert.True(t, f.store.balance(masterID, productBID).Equal(decimal.NewFromInt(3)))
}

func TestTransfer_ComboSinStockDeUnConstituyente_RollbackTotal(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 20)
	f.seedStock(t, hqID, productBID, 1) // alcanza para 1 combo, se piden 3

	err := f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   masterID,
		BundleID:    comboID,
		Quantity:    decimal.NewFromInt(3),
		Date:        time.Now(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El débito parcial de A debe haberse revertido.
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(20)))
	assert.True(t, f.store.balance(hqID, productBID).Equal(decimal.NewFromInt(1)))
	assert.True(t, f.store.balance(masterID, productAID).IsZero())
}

func TestTransfer_ComboANivelComprador_RegistraVenta(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 20)
	f.seedStock(t, hqID, productBID, 20)

	err := f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   masterID,
		BundleID:    comboID,
		Quantity:    decimal.NewFromInt(2),
		Date:        time.Now(),
	})
	require.NoError(t, err)

	// Precio de agente maestro (90) × 2 combos = 180, orden COMPLETED + transacción.
	require.Len(t, f.store.orders, 1)
	for _, o := range f.store.orders {
		assert.Equal(t, entity.OrderStatusCompleted, o.Status)
		assert.Equal(t, masterID, o.BuyerID)
		assert.Equal(t, hqID, o.SellerID)
		assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(180)))
	}
	require.Len(t, f.store.txns, 1)
	assert.True(t, f.store.txns[0].TotalPrice.Equal(decimal.NewFromInt(180)))
}

func TestTransfer_EntradasInvalidas(t *testing.T) {
	f := newFixture()

	// Mismo actor origen y destino.
	err := f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   hqID,
		ProductID:   productAID,
		Quantity:    decimal.NewFromInt(1),
		Date:        time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto y combo a la vez.
	err = f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   masterID,
		ProductID:   productAID,
		BundleID:    comboID,
		Quantity:    decimal.NewFromInt(1),
		Date:        time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ni producto ni combo.
	err = f.uc.Transfer(context.Background(), ledger.TransferInput{
		FromActorID: hqID,
		ToActorID:   masterID,
		Quantity:    decimal.NewFromInt(1),
		Date:        time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReverseMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestReverseMovement_EntradaYaConsumida_ErrLedgerCorruption(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 10)

	var seedMovementID string
	for id := range f.store.movements {
		seedMovementID = id
	}

	// Consumir 8 de las 10 unidades: revertir la entrada de 10 dejaría -8.
	require.NoError(t, f.uc.Issue(context.Background(), ledger.IssueInput{
		ActorID:   hqID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(8),
		Date:      time.Now(),
	}))

	err := f.uc.ReverseMovement(context.Background(), seedMovementID)
	require.ErrorIs(t, err, domain.ErrLedgerCorruption)

	// Nada mutó: el movimiento sigue y el saldo queda en 2.
	assert.Contains(t, f.store.movements, seedMovementID)
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(2)))
}

func TestReverseMovement_SalidaRestauraSaldo(t *testing.T) {
	f := newFixture()
	f.seedStock(t, hqID, productAID, 10)

	require.NoError(t, f.uc.Issue(context.Background(), ledger.IssueInput{
		ActorID:   hqID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(4),
		Date:      time.Now(),
	}))

	var outMovementID string
	for id, m := range f.store.movements {
		if m.Direction == entity.DirectionOut {
			outMovementID = id
		}
	}
	require.NotEmpty(t, outMovementID)

	require.NoError(t, f.uc.ReverseMovement(context.Background(), outMovementID))

	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(10)),
		"revertir la salida debe devolver el saldo a 10")
	assert.NotContains(t, f.store.movements, outMovementID, "el movimiento revertido se elimina")
}

func TestReverseMovement_NoExiste(t *testing.T) {
	f := newFixture()
	err := f.uc.ReverseMovement(context.Background(), "mov-inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
