package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByCode obtiene un producto por código de barras. Devuelve (nil, nil) si
// no existe o está marcado como borrado.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `
		SELECT code, name, unit_type, regular_price, club_price, created_at, updated_at, deleted_at
		FROM products WHERE code = $1 AND deleted_at IS NULL`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, code).Scan(
		&p.Code, &p.Name, &p.UnitType, &p.RegularPrice, &p.ClubPrice,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapPersistence("get product", err)
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (code, name, unit_type, regular_price, club_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.Code, product.Name, product.UnitType, product.RegularPrice,
		product.ClubPrice, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapPersistence("insert product", err)
	}
	return nil
}

// Update actualiza nombre, unidad y precios de un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, unit_type = $3, regular_price = $4, club_price = $5, updated_at = $6
		WHERE code = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		product.Code, product.Name, product.UnitType, product.RegularPrice,
		product.ClubPrice, product.UpdatedAt,
	)
	if err != nil {
		return wrapPersistence("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", product.Code, domain.ErrNotFound)
	}
	return nil
}

// List busca productos por prefijo de código o fragmento de nombre, con paginación.
func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT code, name, unit_type, regular_price, club_price, created_at, updated_at, deleted_at
		FROM products
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR code LIKE $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, wrapPersistence("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.UnitType, &p.RegularPrice, &p.ClubPrice,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, wrapPersistence("scan product", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list products", err)
	}
	return list, nil
}
