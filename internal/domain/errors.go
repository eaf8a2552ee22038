package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidQuantity    = errors.New("cantidad inválida: debe ser un entero positivo")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOrderNotPending    = errors.New("la orden no está en estado pendiente")
	ErrLedgerCorruption   = errors.New("inconsistencia en el libro de inventario: la reversión dejaría un saldo negativo")
	ErrPaymentGateway     = errors.New("pasarela de pago no disponible")
)

// InsufficientStockError lleva el detalle disponible vs. solicitado para mostrarlo al usuario.
// errors.Is(err, ErrInsufficientStock) retorna true para este tipo.
type InsufficientStockError struct {
	ActorID   string
	ProductID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s (actor %s, producto %s)",
		e.Available.String(), e.Requested.String(), e.ActorID, e.ProductID)
}

// Is permite comparar con el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
