package repository

import (
	"context"

	"github.com/invorya/mermas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios de la API.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
