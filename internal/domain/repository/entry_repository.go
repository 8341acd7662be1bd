package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/mermas-api/internal/domain/entity"
)

// LossAggregate resumen de pérdidas: valor total (cantidad × costo unitario),
// cantidad total y número de entradas. Un período sin filas produce un
// agregado en cero, no un error.
type LossAggregate struct {
	TotalValue    decimal.Decimal
	TotalQuantity decimal.Decimal
	TotalEntries  int64
}

// ReasonLoss pérdidas agrupadas por motivo, para reportes.
type ReasonLoss struct {
	ReasonID      string
	ReasonCode    string
	Description   string
	EntryCount    int64
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
}

// EntryRepository define el puerto de persistencia para las entradas de merma.
//
// El pipeline de exportación solo usa FindUnsynchronizedByReason y
// MarkSynchronized; el de importación solo Insert. Nadie más escribe el flag
// is_synchronized.
type EntryRepository interface {
	// Insert persiste una entrada nueva y devuelve su ID autoasignado.
	Insert(ctx context.Context, e *entity.Entry) (int64, error)

	// FindUnsynchronizedByReason devuelve las entradas del motivo con
	// is_synchronized false (o sin valor), ordenadas por created_at ascendente
	// e ID como desempate, para que el orden de exportación sea reproducible.
	FindUnsynchronizedByReason(ctx context.Context, reasonID string) ([]*entity.Entry, error)

	// MarkSynchronized marca como sincronizadas las entradas indicadas.
	// Idempotente: IDs ya marcados o inexistentes se ignoran; un slice vacío
	// es un no-op.
	MarkSynchronized(ctx context.Context, ids []int64) error

	// AggregateLossValue suma valor, cantidad y conteo de entradas,
	// opcionalmente acotado por rango de fechas (from/to en nil = sin cota).
	AggregateLossValue(ctx context.Context, from, to *time.Time) (*LossAggregate, error)

	// LossByReason agrupa las pérdidas por motivo, ordenadas por valor descendente.
	LossByReason(ctx context.Context, from, to *time.Time) ([]ReasonLoss, error)

	// List devuelve entradas paginadas, opcionalmente filtradas por motivo
	// (reasonID vacío = todas), de la más reciente a la más antigua.
	List(ctx context.Context, reasonID string, limit, offset int) ([]*entity.Entry, error)
}
