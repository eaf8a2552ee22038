package entity

import "time"

// Roles de usuario operador del panel.
const (
	UserRoleAdmin    = "admin"
	UserRoleOperator = "operador"
)

// User cuenta de operador del panel (login con bcrypt + JWT).
// ActorID enlaza al actor de la red que opera, si aplica.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	ActorID      *string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
