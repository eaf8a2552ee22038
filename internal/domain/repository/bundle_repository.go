package repository

import "github.com/jhoicas/Distriops-api/internal/domain/entity"

// BundleRepository puerto de combos (incluye sus productos constituyentes).
type BundleRepository interface {
	Create(bundle *entity.Bundle) error
	GetByID(id string) (*entity.Bundle, error)
	List(onlyActive bool) ([]*entity.Bundle, error)
}
