// Package pricing servicios de dominio puros para precios por nivel de la red.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// UnitPriceForRole resuelve el precio unitario de un combo según el rol del comprador.
// Las sucursales compran a precio de agente. Roles sin precio configurado retornan
// ErrInvalidInput: el precio debe venir explícito en la orden.
func UnitPriceForRole(b *entity.Bundle, buyerRole string) (decimal.Decimal, error) {
	switch buyerRole {
	case entity.RoleMasterAgent:
		return b.MasterAgentPrice, nil
	case entity.RoleAgent, entity.RoleBranch:
		return b.AgentPrice, nil
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
}

// WeightedAverageCost costo promedio ponderado al recibir unidades nuevas.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
