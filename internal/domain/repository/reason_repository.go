package repository

import (
	"context"

	"github.com/invorya/mermas-api/internal/domain/entity"
)

// ReasonRepository define el puerto de lectura del catálogo de motivos.
// Los motivos se siembran por migración; los pipelines nunca los modifican.
type ReasonRepository interface {
	// ListActive devuelve los motivos activos ordenados por código.
	ListActive(ctx context.Context) ([]*entity.Reason, error)
	// GetByCode busca por código de display ("01".."08"). (nil, nil) si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Reason, error)
	// GetByID busca por identificador. (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Reason, error)
}
