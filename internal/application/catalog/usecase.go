// Package catalog administra las entidades maestras de la red: productos, combos
// y actores, más las consultas de saldo y movimientos para el panel.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// CatalogUseCase casos de uso de catálogo y consultas de inventario.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	bundleRepo  repository.BundleRepository
	actorRepo   repository.ActorRepository
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	bundleRepo repository.BundleRepository,
	actorRepo repository.ActorRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		bundleRepo:  bundleRepo,
		actorRepo:   actorRepo,
		stockRepo:   stockRepo,
		movRepo:     movRepo,
	}
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProduct da de alta un producto. ErrDuplicate si el SKU ya existe.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BaseCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       strings.TrimSpace(in.SKU),
		Name:      strings.TrimSpace(in.Name),
		BaseCost:  in.BaseCost,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListProducts lista productos paginados.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(onlyActive, limit, offset)
}

// UpdateProductCost actualiza el costo base de un producto.
func (uc *CatalogUseCase) UpdateProductCost(ctx context.Context, id string, cost decimal.Decimal) error {
	if cost.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.productRepo.UpdateCost(id, cost)
}

// SetProductActive activa/desactiva un producto.
func (uc *CatalogUseCase) SetProductActive(ctx context.Context, id string, active bool) error {
	return uc.productRepo.SetActive(id, active)
}

// ── Combos ────────────────────────────────────────────────────────────────────

// CreateBundle da de alta un combo. Valida que todos los productos existan y que
// las cantidades sean enteros positivos.
func (uc *CatalogUseCase) CreateBundle(ctx context.Context, in dto.CreateBundleRequest) (*entity.Bundle, error) {
	if strings.TrimSpace(in.Name) == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.MasterAgentPrice.IsPositive() || !in.AgentPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.BundleItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() || !it.Quantity.IsInteger() {
			return nil, domain.ErrInvalidQuantity
		}
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.BundleItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	now := time.Now()
	b := &entity.Bundle{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(in.Name),
		Items:            items,
		MasterAgentPrice: in.MasterAgentPrice,
		AgentPrice:       in.AgentPrice,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.bundleRepo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBundle obtiene un combo por ID.
func (uc *CatalogUseCase) GetBundle(ctx context.Context, id string) (*entity.Bundle, error) {
	b, err := uc.bundleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// ListBundles lista combos.
func (uc *CatalogUseCase) ListBundles(ctx context.Context, onlyActive bool) ([]*entity.Bundle, error) {
	return uc.bundleRepo.List(onlyActive)
}

// ── Actores ───────────────────────────────────────────────────────────────────

// CreateActor da de alta un actor de la red. El padre debe existir salvo para HQ.
func (uc *CatalogUseCase) CreateActor(ctx context.Context, in dto.CreateActorRequest) (*entity.Actor, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	var parentID *string
	if in.ParentID != "" {
		parent, err := uc.actorRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		parentID = &in.ParentID
	} else if in.Role != entity.RoleHQ {
		return nil, domain.ErrInvalidInput // todo nivel por debajo de HQ cuelga de un padre
	}
	a := &entity.Actor{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Role:      in.Role,
		ParentID:  parentID,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.actorRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetActor obtiene un actor por ID.
func (uc *CatalogUseCase) GetActor(ctx context.Context, id string) (*entity.Actor, error) {
	a, err := uc.actorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// ListActorsByRole lista actores activos de un rol.
func (uc *CatalogUseCase) ListActorsByRole(ctx context.Context, role string) ([]*entity.Actor, error) {
	return uc.actorRepo.ListByRole(role)
}

// ── Consultas de inventario ───────────────────────────────────────────────────

// ListStock saldos de todos los productos de un actor.
func (uc *CatalogUseCase) ListStock(ctx context.Context, actorID string) ([]*entity.Stock, error) {
	actor, err := uc.actorRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.ListByActor(actorID)
}

// ListMovements movimientos de un actor con rango de fechas opcional.
func (uc *CatalogUseCase) ListMovements(ctx context.Context, actorID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByActor(actorID, from, to, limit, offset)
}
