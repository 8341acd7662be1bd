package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación del puerto EntryRepository sobre PostgreSQL (usable con pool o tx).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador de persistencia para entradas de merma.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Insert persiste una nueva entrada y devuelve el ID generado.
func (r *EntryRepo) Insert(ctx context.Context, e *entity.Entry) (int64, error) {
	query := `
		INSERT INTO entries (product_code, product_name, reason_id, quantity, unit_cost, total_cost, notes, is_synchronized, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		e.ProductCode, e.ProductName, e.ReasonID, e.Quantity, e.UnitCost,
		e.TotalCost, e.Notes, e.IsSynchronized, e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, wrapPersistence("insert entry", err)
	}
	return id, nil
}

// FindUnsynchronizedByReason devuelve las entradas pendientes de un motivo en
// orden de captura (created_at, id). Trata NULL como no sincronizado.
func (r *EntryRepo) FindUnsynchronizedByReason(ctx context.Context, reasonID string) ([]*entity.Entry, error) {
	query := `
		SELECT id, product_code, product_name, reason_id, quantity, unit_cost, total_cost, notes, COALESCE(is_synchronized, FALSE), created_at
		FROM entries
		WHERE reason_id = $1 AND is_synchronized IS NOT TRUE
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, reasonID)
	if err != nil {
		return nil, wrapPersistence("find pending entries", err)
	}
	defer rows.Close()
	var list []*entity.Entry
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.ID, &e.ProductCode, &e.ProductName, &e.ReasonID, &e.Quantity,
			&e.UnitCost, &e.TotalCost, &e.Notes, &e.IsSynchronized, &e.CreatedAt); err != nil {
			return nil, wrapPersistence("scan entry", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("find pending entries", err)
	}
	return list, nil
}

// MarkSynchronized marca las entradas dadas como sincronizadas. IDs ya
// sincronizados o inexistentes se ignoran.
func (r *EntryRepo) MarkSynchronized(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`UPDATE entries SET is_synchronized = TRUE WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return wrapPersistence("mark synchronized", err)
	}
	return nil
}

// AggregateLossValue suma valor, cantidad y conteo de entradas del rango dado.
// Los extremos nil dejan el rango abierto por ese lado.
func (r *EntryRepo) AggregateLossValue(ctx context.Context, from, to *time.Time) (*repository.LossAggregate, error) {
	query := `
		SELECT COALESCE(SUM(quantity * COALESCE(unit_cost, 0)), 0),
		       COALESCE(SUM(quantity), 0),
		       COUNT(*)
		FROM entries
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)`
	agg := &repository.LossAggregate{}
	err := r.q.QueryRow(ctx, query, from, to).Scan(&agg.TotalValue, &agg.TotalQuantity, &agg.TotalEntries)
	if err != nil {
		return nil, wrapPersistence("aggregate loss value", err)
	}
	return agg, nil
}

// LossByReason agrupa pérdidas por motivo, ordenadas por valor descendente.
func (r *EntryRepo) LossByReason(ctx context.Context, from, to *time.Time) ([]repository.ReasonLoss, error) {
	query := `
		SELECT e.reason_id, m.code, m.description,
		       COUNT(*),
		       COALESCE(SUM(e.quantity), 0),
		       COALESCE(SUM(e.quantity * COALESCE(e.unit_cost, 0)), 0)
		FROM entries e
		JOIN reasons m ON m.id = e.reason_id
		WHERE ($1::timestamptz IS NULL OR e.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR e.created_at <= $2)
		GROUP BY e.reason_id, m.code, m.description
		ORDER BY 6 DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, wrapPersistence("loss by reason", err)
	}
	defer rows.Close()
	var list []repository.ReasonLoss
	for rows.Next() {
		var row repository.ReasonLoss
		if err := rows.Scan(&row.ReasonID, &row.ReasonCode, &row.Description,
			&row.EntryCount, &row.TotalQuantity, &row.TotalValue); err != nil {
			return nil, wrapPersistence("scan reason loss", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("loss by reason", err)
	}
	return list, nil
}

// List devuelve entradas paginadas, de la más reciente a la más antigua.
// reasonID vacío lista todos los motivos.
func (r *EntryRepo) List(ctx context.Context, reasonID string, limit, offset int) ([]*entity.Entry, error) {
	query := `
		SELECT id, product_code, product_name, reason_id, quantity, unit_cost, total_cost, notes, COALESCE(is_synchronized, FALSE), created_at
		FROM entries
		WHERE ($1 = '' OR reason_id::text = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, reasonID, limit, offset)
	if err != nil {
		return nil, wrapPersistence("list entries", err)
	}
	defer rows.Close()
	var list []*entity.Entry
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.ID, &e.ProductCode, &e.ProductName, &e.ReasonID, &e.Quantity,
			&e.UnitCost, &e.TotalCost, &e.Notes, &e.IsSynchronized, &e.CreatedAt); err != nil {
			return nil, wrapPersistence("scan entry", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list entries", err)
	}
	return list, nil
}

// wrapPersistence marca el error como fallo de persistencia conservando el detalle original.
func wrapPersistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrPersistence, err)
}
