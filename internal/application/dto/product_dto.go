package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para registrar un producto del catálogo.
type CreateProductRequest struct {
	Code         string           `json:"code" validate:"required,min=1,max=50"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	UnitType     string           `json:"unit_type" validate:"required,oneof=KG UN"`
	RegularPrice decimal.Decimal  `json:"regular_price"`
	ClubPrice    *decimal.Decimal `json:"club_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	UnitType     string           `json:"unit_type"`
	RegularPrice decimal.Decimal  `json:"regular_price"`
	ClubPrice    *decimal.Decimal `json:"club_price,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ReasonResponse salida de un motivo de merma.
type ReasonResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}
