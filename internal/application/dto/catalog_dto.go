package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=60"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	BaseCost decimal.Decimal `json:"base_cost" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	BaseCost  decimal.Decimal `json:"base_cost"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BundleItemRequest producto constituyente de un combo.
type BundleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateBundleRequest alta de combo con precios por nivel.
type CreateBundleRequest struct {
	Name             string              `json:"name" validate:"required,min=1,max=200"`
	Items            []BundleItemRequest `json:"items" validate:"required,min=1"`
	MasterAgentPrice decimal.Decimal     `json:"master_agent_price" validate:"required"`
	AgentPrice       decimal.Decimal     `json:"agent_price" validate:"required"`
}

// BundleResponse salida de un combo.
type BundleResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Items            []BundleItemRequest `json:"items"`
	MasterAgentPrice decimal.Decimal     `json:"master_agent_price"`
	AgentPrice       decimal.Decimal     `json:"agent_price"`
	Active           bool                `json:"active"`
	CreatedAt        time.Time           `json:"created_at"`
}

// CreateActorRequest alta de actor de la red.
type CreateActorRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=HQ MASTER_AGENT AGENT BRANCH MARKETER"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
}

// ActorResponse salida de un actor.
type ActorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ParentID  string    `json:"parent_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
