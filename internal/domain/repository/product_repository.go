package repository

import (
	"context"

	"github.com/invorya/mermas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo de productos.
type ProductRepository interface {
	// GetByCode busca por código de negocio. Devuelve (nil, nil) si no existe
	// o está borrado (soft delete).
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	// List busca por prefijo de código o fragmento de nombre (search vacío = todos).
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
}
