package postgres

import (
	"context"

	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

var _ repository.ImportLogRepository = (*ImportLogRepo)(nil)

// ImportLogRepo implementación del puerto ImportLogRepository sobre PostgreSQL.
type ImportLogRepo struct {
	q Querier
}

// NewImportLogRepository construye el adaptador de persistencia para el historial de importaciones.
func NewImportLogRepository(q Querier) *ImportLogRepo {
	return &ImportLogRepo{q: q}
}

// Create registra una corrida de importación en el historial.
func (r *ImportLogRepo) Create(ctx context.Context, log *entity.ImportLog) error {
	query := `
		INSERT INTO imports (id, file_name, total_lines, processed_lines, failed_lines, status, error_log, imported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.FileName, log.TotalLines, log.ProcessedLines, log.FailedLines,
		log.Status, log.ErrorLog, log.ImportedAt,
	)
	if err != nil {
		return wrapPersistence("insert import log", err)
	}
	return nil
}

// List devuelve corridas de importación de la más reciente a la más antigua.
func (r *ImportLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ImportLog, error) {
	query := `
		SELECT id, file_name, total_lines, processed_lines, failed_lines, status, error_log, imported_at
		FROM imports ORDER BY imported_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapPersistence("list import logs", err)
	}
	defer rows.Close()
	var list []*entity.ImportLog
	for rows.Next() {
		var l entity.ImportLog
		if err := rows.Scan(&l.ID, &l.FileName, &l.TotalLines, &l.ProcessedLines,
			&l.FailedLines, &l.Status, &l.ErrorLog, &l.ImportedAt); err != nil {
			return nil, wrapPersistence("scan import log", err)
		}
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list import logs", err)
	}
	return list, nil
}
