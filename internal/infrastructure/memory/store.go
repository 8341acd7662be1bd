// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Es la implementación de pruebas: mismo contrato que los adaptadores
// PostgreSQL, con campos de inyección de fallas para ejercitar el aislamiento
// de errores de los pipelines.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository     = (*EntryRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.ReasonRepository    = (*ReasonRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.ImportLogRepository = (*ImportLogRepo)(nil)
)

// ── Reasons ───────────────────────────────────────────────────────────────────

// ReasonRepo catálogo de motivos en memoria.
type ReasonRepo struct {
	mu      sync.Mutex
	reasons []*entity.Reason

	ListErr error // si no es nil, ListActive falla con este error
}

// NewReasonRepo construye el repo vacío.
func NewReasonRepo() *ReasonRepo { return &ReasonRepo{} }

// Seed agrega motivos al catálogo.
func (r *ReasonRepo) Seed(reasons ...*entity.Reason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reasons...)
}

// ListActive devuelve los motivos activos ordenados por código.
func (r *ReasonRepo) ListActive(ctx context.Context) ([]*entity.Reason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []*entity.Reason
	for _, rs := range r.reasons {
		if rs.IsActive {
			cp := *rs
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// GetByCode busca por código de display.
func (r *ReasonRepo) GetByCode(ctx context.Context, code string) (*entity.Reason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rs := range r.reasons {
		if rs.Code == code {
			cp := *rs
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID busca por identificador.
func (r *ReasonRepo) GetByID(ctx context.Context, id string) (*entity.Reason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rs := range r.reasons {
		if rs.ID == id {
			cp := *rs
			return &cp, nil
		}
	}
	return nil, nil
}

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product

	CreateErr error
	GetErr    error
}

// NewProductRepo construye el repo vacío.
func NewProductRepo() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product)}
}

// GetByCode devuelve (nil, nil) si no existe o está borrado.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	p, ok := r.products[code]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Create registra un producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	cp := *product
	r.products[product.Code] = &cp
	return nil
}

// Update reemplaza el producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.Code] = &cp
	return nil
}

// List busca por prefijo de código o fragmento de nombre.
func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Product
	for _, p := range r.products {
		if p.DeletedAt != nil {
			continue
		}
		if search != "" &&
			!strings.HasPrefix(p.Code, search) &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// ── Entries ───────────────────────────────────────────────────────────────────

// EntryRepo entradas de merma en memoria.
type EntryRepo struct {
	mu      sync.Mutex
	seq     int64
	entries map[int64]*entity.Entry
	reasons *ReasonRepo // para el desglose por motivo; puede ser nil

	InsertErr error
	FindErr   error
	MarkErr   error
}

// NewEntryRepo construye el repo. reasons se usa solo para LossByReason.
func NewEntryRepo(reasons *ReasonRepo) *EntryRepo {
	return &EntryRepo{entries: make(map[int64]*entity.Entry), reasons: reasons}
}

// Insert persiste una entrada y devuelve su ID.
func (r *EntryRepo) Insert(ctx context.Context, e *entity.Entry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.InsertErr != nil {
		return 0, r.InsertErr
	}
	r.seq++
	cp := *e
	cp.ID = r.seq
	r.entries[cp.ID] = &cp
	return cp.ID, nil
}

// FindUnsynchronizedByReason devuelve pendientes ordenados por created_at, id.
func (r *EntryRepo) FindUnsynchronizedByReason(ctx context.Context, reasonID string) ([]*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FindErr != nil {
		return nil, r.FindErr
	}
	var out []*entity.Entry
	for _, e := range r.entries {
		if e.ReasonID == reasonID && !e.IsSynchronized {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// MarkSynchronized marca los IDs existentes; los desconocidos se ignoran.
func (r *EntryRepo) MarkSynchronized(ctx context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.MarkErr != nil {
		return r.MarkErr
	}
	for _, id := range ids {
		if e, ok := r.entries[id]; ok {
			e.IsSynchronized = true
		}
	}
	return nil
}

// AggregateLossValue suma valor, cantidad y conteo del rango dado.
func (r *EntryRepo) AggregateLossValue(ctx context.Context, from, to *time.Time) (*repository.LossAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := &repository.LossAggregate{TotalValue: decimal.Zero, TotalQuantity: decimal.Zero}
	for _, e := range r.entries {
		if !inRange(e.CreatedAt, from, to) {
			continue
		}
		agg.TotalValue = agg.TotalValue.Add(e.Quantity.Mul(e.UnitCost))
		agg.TotalQuantity = agg.TotalQuantity.Add(e.Quantity)
		agg.TotalEntries++
	}
	return agg, nil
}

// LossByReason agrupa pérdidas por motivo, valor descendente.
func (r *EntryRepo) LossByReason(ctx context.Context, from, to *time.Time) ([]repository.ReasonLoss, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byReason := make(map[string]*repository.ReasonLoss)
	for _, e := range r.entries {
		if !inRange(e.CreatedAt, from, to) {
			continue
		}
		row, ok := byReason[e.ReasonID]
		if !ok {
			row = &repository.ReasonLoss{
				ReasonID:      e.ReasonID,
				ReasonCode:    e.ReasonID,
				TotalQuantity: decimal.Zero,
				TotalValue:    decimal.Zero,
			}
			byReason[e.ReasonID] = row
		}
		row.EntryCount++
		row.TotalQuantity = row.TotalQuantity.Add(e.Quantity)
		row.TotalValue = row.TotalValue.Add(e.Quantity.Mul(e.UnitCost))
	}
	var out []repository.ReasonLoss
	for _, row := range byReason {
		if r.reasons != nil {
			if reason, _ := r.reasons.GetByID(ctx, row.ReasonID); reason != nil {
				row.ReasonCode = reason.Code
				row.Description = reason.Description
			}
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalValue.GreaterThan(out[j].TotalValue) })
	return out, nil
}

// List devuelve entradas paginadas, de la más reciente a la más antigua.
func (r *EntryRepo) List(ctx context.Context, reasonID string, limit, offset int) ([]*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Entry
	for _, e := range r.entries {
		if reasonID != "" && e.ReasonID != reasonID {
			continue
		}
		cp := *e
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

// Get devuelve una entrada por ID (solo para aserciones en tests).
func (r *EntryRepo) Get(id int64) *entity.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		cp := *e
		return &cp
	}
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // por email
}

// NewUserRepo construye el repo vacío.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

// Create registra un usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

// FindByEmail devuelve (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// ── Import logs ───────────────────────────────────────────────────────────────

// ImportLogRepo historial de importaciones en memoria.
type ImportLogRepo struct {
	mu   sync.Mutex
	logs []*entity.ImportLog
}

// NewImportLogRepo construye el repo vacío.
func NewImportLogRepo() *ImportLogRepo { return &ImportLogRepo{} }

// Create agrega un registro al historial.
func (r *ImportLogRepo) Create(ctx context.Context, log *entity.ImportLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *log
	r.logs = append(r.logs, &cp)
	return nil
}

// List devuelve corridas de la más reciente a la más antigua.
func (r *ImportLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ImportLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.ImportLog, 0, len(r.logs))
	for _, l := range r.logs {
		cp := *l
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ImportedAt.After(all[j].ImportedAt) })
	return paginate(all, limit, offset), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
