// seed-admin crea el usuario administrador inicial del panel.
//
// Uso: go run ./cmd/seed-admin <email> <password> [nombre]
// Idempotente: si el email ya existe no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Distriops-api/pkg/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed-admin <email> <password> [nombre]")
		os.Exit(1)
	}
	email := os.Args[1]
	password := os.Args[2]
	name := "Administrador"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "El password debe tener al menos 8 caracteres")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	if existing, err := userRepo.FindByEmail(email); err == nil && existing != nil {
		fmt.Printf("El usuario %s ya existe, nada que hacer\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash del password: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.UserRoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(user); err != nil {
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuario admin %s creado (id %s)\n", email, user.ID)
}
