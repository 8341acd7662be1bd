package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de unidad del catálogo: por peso (KG) o por unidad (UN).
const (
	UnitKG = "KG"
	UnitUN = "UN"
)

// PlaceholderName es el nombre asignado a productos que no existen en el
// catálogo al momento de registrar o importar una entrada de merma.
const PlaceholderName = "PRODUCTO NO REGISTRADO"

// Product representa un producto del catálogo. Se sincroniza desde un sistema
// externo (read-mostly); los pipelines de merma solo lo consultan por código,
// salvo la importación que crea placeholders para códigos desconocidos.
type Product struct {
	Code         string // clave de negocio única (código de barras / SKU)
	Name         string
	UnitType     string           // KG | UN
	RegularPrice decimal.Decimal
	ClubPrice    *decimal.Decimal // precio club, opcional
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // soft delete
}

// IsPlaceholder indica si el producto fue creado como relleno por la importación.
func (p *Product) IsPlaceholder() bool {
	return p.Name == PlaceholderName
}
