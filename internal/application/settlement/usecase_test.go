package settlement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distriops-api/internal/application/ledger"
	"github.com/jhoicas/Distriops-api/internal/application/settlement"
	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo esquema que en el motor de inventario, con
// snapshot/restore en el TxRunner para emular el rollback de la transacción.
// El motor de inventario real (ledger.LedgerUseCase) se usa como colaborador,
// así los tests cubren la integración liquidación ↔ inventario de verdad.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	stocks    map[string]*entity.Stock
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

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(actorID, productID string) (*entity.Stock, error) {
	return r.GetForUpdate(actorID, productID)
}

func (r *memStockRepo) GetForUpdate(actorID, productID string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[stockKey(actorID, productID)]; ok {
		cp := *st
		return &cp, nil
	}
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

func (r *memStockRepo) ListByActor(actorID string) ([]*entity.Stock, error) { return nil, nil }

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
	return nil, nil
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
	return nil, nil
}

func (r *memOrderRepo) ListByBuyer(buyerID string, from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}

type memTxnRepo struct{ s *memStore }

func (r *memTxnRepo) Create(txn *entity.Transaction) error {
	// Unicidad por orden, como la constraint UNIQUE(order_id) en Postgres.
	for _, t := range r.s.txns {
		if t.OrderID == txn.OrderID {
			return domain.ErrDuplicate
		}
	}
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
	return nil, nil
}

func (r *memTxnRepo) ListBySeller(sellerID string, from, to time.Time) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *memTxnRepo) SumByBuyer(buyerID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}

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

type memActorRepo struct{ actors map[string]*entity.Actor }

func (r *memActorRepo) Create(a *entity.Actor) error { r.actors[a.ID] = a; return nil }

func (r *memActorRepo) GetByID(id string) (*entity.Actor, error) {
	if a, ok := r.actors[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memActorRepo) ListByRole(role string) ([]*entity.Actor, error) { return nil, nil }

type memProductRepo struct{ products map[string]*entity.Product }

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, domain.ErrNotFound }
func (r *memProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) UpdateCost(id string, cost decimal.Decimal) error { return nil }
func (r *memProductRepo) SetActive(id string, active bool) error           { return nil }

type memBundleRepo struct{ bundles map[string]*entity.Bundle }

func (r *memBundleRepo) Create(b *entity.Bundle) error { r.bundles[b.ID] = b; return nil }

func (r *memBundleRepo) GetByID(id string) (*entity.Bundle, error) {
	if b, ok := r.bundles[id]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memBundleRepo) List(onlyActive bool) ([]*entity.Bundle, error) { return nil, nil }

// fakeGateway pasarela de pago configurable por test.
type fakeGateway struct {
	status string
	err    error
	calls  int
}

func (g *fakeGateway) GetStatus(ctx context.Context, paymentRef string) (string, error) {
	g.calls++
	return g.status, g.err
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
	store   *memStore
	uc      *settlement.SettlementUseCase
	gateway *fakeGateway
}

func newFixture() *fixture {
	store := newMemStore()
	masterParent := masterID
	actors := &memActorRepo{actors: map[string]*entity.Actor{
		hqID:     {ID: hqID, Name: "Sede Central", Role: entity.RoleHQ, Active: true},
		masterID: {ID: masterID, Name: "Agente Maestro Norte", Role: entity.RoleMasterAgent, Active: true},
		agentID:  {ID: agentID, Name: "Agente Medellín", Role: entity.RoleAgent, ParentID: &masterParent, Active: true},
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

	txRunner := &memTxRunner{store}
	inventory := ledger.NewLedgerUseCase(txRunner, products, actors, bundles)
	gateway := &fakeGateway{status: settlement.PaymentStatusPending}

	uc := settlement.NewSettlementUseCase(
		txRunner, inventory,
		actors, &memOrderRepo{store}, bundles,
		gateway, nil, nil,
		settlement.Config{HQActorID: hqID},
	)
	return &fixture{store: store, uc: uc, gateway: gateway}
}

func (f *fixture) seedStock(actorID, productID string, qty int64) {
	f.store.stocks[stockKey(actorID, productID)] = &entity.Stock{
		ActorID:   actorID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UpdatedAt: time.Now(),
	}
}

func (f *fixture) createOrder(t *testing.T, in settlement.CreateOrderInput) *entity.Order {
	t.Helper()
	order, err := f.uc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	return order
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_AgenteMaestroCompraAHQ(t *testing.T) {
	f := newFixture()

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: ptr(decimal.NewFromInt(50)),
	})

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, hqID, order.SellerID, "el agente maestro siempre compra a la sede central")
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, f.store.txns, "crear la orden no liquida nada")
	assert.True(t, f.store.balance(hqID, productAID).IsZero(), "crear la orden no toca inventario")
}

func TestCreateOrder_AgenteCompraASuPadre(t *testing.T) {
	f := newFixture()

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:   agentID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(5),
		UnitPrice: ptr(decimal.NewFromInt(60)),
	})
	assert.Equal(t, masterID, order.SellerID, "el agente compra a su nivel superior en la red")
}

func TestCreateOrder_ComboResuelvePrecioPorRol(t *testing.T) {
	f := newFixture()

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:  masterID,
		BundleID: comboID,
		Quantity: decimal.NewFromInt(4),
	})
	assert.True(t, order.UnitPrice.Equal(decimal.NewFromInt(90)), "precio de agente maestro del combo")
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(360)))
	assert.Equal(t, "SKU-A + SKU-B", order.ProductName)
}

func TestCreateOrder_EntradasInvalidas(t *testing.T) {
	f := newFixture()

	// Cantidad fraccionaria.
	_, err := f.uc.CreateOrder(context.Background(), settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromFloat(1.5),
		UnitPrice: ptr(decimal.NewFromInt(10)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Producto suelto sin precio.
	_, err = f.uc.CreateOrder(context.Background(), settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto y combo a la vez.
	_, err = f.uc.CreateOrder(context.Background(), settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		BundleID:  comboID,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: ptr(decimal.NewFromInt(10)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve — liquidación exactamente una vez
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_LiquidaOrden(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 100)

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(30),
		UnitPrice: ptr(decimal.NewFromInt(50)),
	})

	require.NoError(t, f.uc.Approve(context.Background(), order.ID))

	// Débito al vendedor, crédito al comprador.
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(70)))
	assert.True(t, f.store.balance(masterID, productAID).Equal(decimal.NewFromInt(30)))

	// Transacción única y estado terminal.
	require.Len(t, f.store.txns, 1)
	assert.Equal(t, order.ID, f.store.txns[0].OrderID)
	assert.True(t, f.store.txns[0].TotalPrice.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, entity.OrderStatusCompleted, f.store.orders[order.ID].Status)
}

func TestApprove_SegundaAprobacion_ErrOrderNotPending(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 100)

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: ptr(decimal.NewFromInt(50)),
	})

	require.NoError(t, f.uc.Approve(context.Background(), order.ID))
	err := f.uc.Approve(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)

	// Exactamente una liquidación: una transacción y un solo débito de 10.
	assert.Len(t, f.store.txns, 1)
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(90)))
}

func TestApprove_VendedorSinStock_OrdenSiguePendiente(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 5)

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: ptr(decimal.NewFromInt(50)),
	})

	err := f.uc.Approve(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: la orden puede reintentarse después de reabastecer.
	assert.Equal(t, entity.OrderStatusPending, f.store.orders[order.ID].Status)
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(5)))
	assert.True(t, f.store.balance(masterID, productAID).IsZero())
	assert.Empty(t, f.store.txns)
}

func TestApprove_ComboDebitaConstituyentes(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 10)
	f.seedStock(hqID, productBID, 10)

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:  masterID,
		BundleID: comboID,
		Quantity: decimal.NewFromInt(3),
	})

	require.NoError(t, f.uc.Approve(context.Background(), order.ID))

	// 3 combos = 6 de A y 3 de B.
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(4)))
	assert.True(t, f.store.balance(hqID, productBID).Equal(decimal.NewFromInt(7)))
	assert.True(t, f.store.balance(masterID, productAID).Equal(decimal.NewFromInt(6)))
	assert.True(t, f.store.balance(masterID, productBID).Equal(decimal.NewFromInt(3)))
}

func TestApprove_OrdenInexistente(t *testing.T) {
	f := newFixture()
	err := f.uc.Approve(context.Background(), "orden-inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_MarcaFailedSinEfectos(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 100)

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: ptr(decimal.NewFromInt(50)),
	})

	require.NoError(t, f.uc.Reject(context.Background(), order.ID))

	assert.Equal(t, entity.OrderStatusFailed, f.store.orders[order.ID].Status)
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(100)), "rechazar no toca inventario")
	assert.Empty(t, f.store.txns)

	// Rechazar dos veces no es válido.
	err := f.uc.Reject(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecheckPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestRecheckPayment_PagoConfirmado_LiquidaOrdenFallida(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 100)

	ref := "PAY-123"
	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:    masterID,
		ProductID:  productAID,
		Quantity:   decimal.NewFromInt(10),
		UnitPrice:  ptr(decimal.NewFromInt(50)),
		PaymentRef: &ref,
	})
	require.NoError(t, f.uc.Reject(context.Background(), order.ID))

	// La pasarela reporta ahora el pago como COMPLETED: la orden fallida se liquida.
	f.gateway.status = settlement.PaymentStatusCompleted
	status, err := f.uc.RecheckPayment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, settlement.PaymentStatusCompleted, status)

	assert.Equal(t, entity.OrderStatusCompleted, f.store.orders[order.ID].Status)
	assert.True(t, f.store.balance(masterID, productAID).Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.store.txns, 1)
}

func TestRecheckPayment_OrdenYaLiquidada_NoOp(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 100)

	ref := "PAY-456"
	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:    masterID,
		ProductID:  productAID,
		Quantity:   decimal.NewFromInt(10),
		UnitPrice:  ptr(decimal.NewFromInt(50)),
		PaymentRef: &ref,
	})
	require.NoError(t, f.uc.Approve(context.Background(), order.ID))

	f.gateway.status = settlement.PaymentStatusCompleted
	status, err := f.uc.RecheckPayment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, settlement.PaymentStatusCompleted, status)

	// Nunca liquidación duplicada: una sola transacción, un solo débito.
	assert.Len(t, f.store.txns, 1)
	assert.True(t, f.store.balance(hqID, productAID).Equal(decimal.NewFromInt(90)))
}

func TestRecheckPayment_PagoPendiente_NoLiquida(t *testing.T) {
	f := newFixture()
	f.seedStock(hqID, productAID, 100)

	ref := "PAY-789"
	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:    masterID,
		ProductID:  productAID,
		Quantity:   decimal.NewFromInt(10),
		UnitPrice:  ptr(decimal.NewFromInt(50)),
		PaymentRef: &ref,
	})

	f.gateway.status = settlement.PaymentStatusPending
	status, err := f.uc.RecheckPayment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, settlement.PaymentStatusPending, status)
	assert.Equal(t, entity.OrderStatusPending, f.store.orders[order.ID].Status)
	assert.Empty(t, f.store.txns)
}

func TestRecheckPayment_PasarelaCaida_NoTocaEstado(t *testing.T) {
	f := newFixture()

	ref := "PAY-999"
	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:    masterID,
		ProductID:  productAID,
		Quantity:   decimal.NewFromInt(1),
		UnitPrice:  ptr(decimal.NewFromInt(50)),
		PaymentRef: &ref,
	})

	f.gateway.err = errors.New("timeout")
	_, err := f.uc.RecheckPayment(context.Background(), order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPaymentGateway, "el error de pasarela debe envolverse en el sentinel")
	assert.Equal(t, entity.OrderStatusPending, f.store.orders[order.ID].Status,
		"un fallo de la pasarela es seguro de reintentar: el estado local no cambia")
}

func TestRecheckPayment_SinReferenciaDePago(t *testing.T) {
	f := newFixture()

	order := f.createOrder(t, settlement.CreateOrderInput{
		BuyerID:   masterID,
		ProductID: productAID,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: ptr(decimal.NewFromInt(50)),
	})

	_, err := f.uc.RecheckPayment(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.gateway.calls, "sin referencia no se consulta la pasarela")
}
