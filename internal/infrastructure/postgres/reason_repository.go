package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

var _ repository.ReasonRepository = (*ReasonRepo)(nil)

// ReasonRepo implementación del puerto ReasonRepository sobre PostgreSQL.
type ReasonRepo struct {
	q Querier
}

// NewReasonRepository construye el adaptador de persistencia para motivos de merma.
func NewReasonRepository(q Querier) *ReasonRepo {
	return &ReasonRepo{q: q}
}

// ListActive devuelve los motivos activos ordenados por código.
func (r *ReasonRepo) ListActive(ctx context.Context) ([]*entity.Reason, error) {
	query := `
		SELECT id, code, description, is_active, created_at, updated_at
		FROM reasons WHERE is_active = TRUE ORDER BY code ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapPersistence("list reasons", err)
	}
	defer rows.Close()
	var list []*entity.Reason
	for rows.Next() {
		var m entity.Reason
		if err := rows.Scan(&m.ID, &m.Code, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, wrapPersistence("scan reason", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list reasons", err)
	}
	return list, nil
}

// GetByCode obtiene un motivo por su código de display. Devuelve (nil, nil) si no existe.
func (r *ReasonRepo) GetByCode(ctx context.Context, code string) (*entity.Reason, error) {
	return r.get(ctx, `code = $1`, code)
}

// GetByID obtiene un motivo por ID. Devuelve (nil, nil) si no existe.
func (r *ReasonRepo) GetByID(ctx context.Context, id string) (*entity.Reason, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *ReasonRepo) get(ctx context.Context, where string, arg any) (*entity.Reason, error) {
	query := `
		SELECT id, code, description, is_active, created_at, updated_at
		FROM reasons WHERE ` + where
	var m entity.Reason
	err := r.q.QueryRow(ctx, query, arg).Scan(&m.ID, &m.Code, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapPersistence("get reason", err)
	}
	return &m, nil
}
