package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComboDelimiter separa los SKUs que componen el nombre de un combo.
// Una línea de venta sin product_id cuyo nombre contiene este delimitador
// se agrupa como entidad combo sintética en los reportes.
const ComboDelimiter = " + "

// BundleItem producto constituyente de un combo con su cantidad por unidad vendida.
type BundleItem struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Bundle agrupación fija de productos vendida como una sola unidad bajo un SKU sintético.
// Lleva precio por nivel de la red (agente maestro y agente).
type Bundle struct {
	ID               string
	Name             string
	Items            []BundleItem
	MasterAgentPrice decimal.Decimal
	AgentPrice       decimal.Decimal
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
