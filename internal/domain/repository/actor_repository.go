package repository

import "github.com/jhoicas/Distriops-api/internal/domain/entity"

// ActorRepository puerto de actores de la red (HQ, agentes maestros, agentes, sucursales, marketers).
type ActorRepository interface {
	Create(actor *entity.Actor) error
	GetByID(id string) (*entity.Actor, error)
	ListByRole(role string) ([]*entity.Actor, error)
}
