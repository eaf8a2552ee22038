package repository

import (
	"time"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// AdSpendRepository puerto de gastos publicitarios por marketer.
type AdSpendRepository interface {
	Create(spend *entity.AdSpend) error
	ListByMarketer(marketerID string, from, to time.Time) ([]*entity.AdSpend, error)
	ListAll(from, to time.Time) ([]*entity.AdSpend, error)
}
