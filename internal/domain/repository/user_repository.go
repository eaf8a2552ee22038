package repository

import "github.com/jhoicas/Distriops-api/internal/domain/entity"

// UserRepository puerto de usuarios operadores del panel.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
