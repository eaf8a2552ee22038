package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.ActorRepository = (*ActorRepo)(nil)

// ActorRepo implementación de ActorRepository sobre PostgreSQL.
type ActorRepo struct {
	q Querier
}

// NewActorRepository construye el adaptador de actores. Pasar pool o tx (Querier).
func NewActorRepository(q Querier) *ActorRepo {
	return &ActorRepo{q: q}
}

// Create inserta un actor de la red.
func (r *ActorRepo) Create(a *entity.Actor) error {
	query := `
		INSERT INTO actors (id, name, role, parent_id, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Name, a.Role, a.ParentID, a.Active, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create actor: %w", err)
	}
	return nil
}

// GetByID obtiene un actor; nil si no existe.
func (r *ActorRepo) GetByID(id string) (*entity.Actor, error) {
	query := `SELECT id, name, role, parent_id, active, created_at FROM actors WHERE id = $1`
	var a entity.Actor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Name, &a.Role, &a.ParentID, &a.Active, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return &a, nil
}

// ListByRole lista actores activos de un rol.
func (r *ActorRepo) ListByRole(role string) ([]*entity.Actor, error) {
	query := `SELECT id, name, role, parent_id, active, created_at
		FROM actors WHERE role = $1 AND active = true ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, role)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	var out []*entity.Actor
	for rows.Next() {
		var a entity.Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.Role, &a.ParentID, &a.Active, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
