package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// ProductRepository puerto del catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	UpdateCost(id string, cost decimal.Decimal) error
	SetActive(id string, active bool) error
}
