package repository

import (
	"context"

	"github.com/invorya/mermas-api/internal/domain/entity"
)

// ImportLogRepository define el puerto de persistencia del historial de importaciones.
type ImportLogRepository interface {
	Create(ctx context.Context, log *entity.ImportLog) error
	// List devuelve corridas de importación de la más reciente a la más antigua.
	List(ctx context.Context, limit, offset int) ([]*entity.ImportLog, error)
}
