package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest entrada para registrar una merma desde el formulario de captura.
type CreateEntryRequest struct {
	ProductCode string          `json:"product_code" validate:"required,min=1,max=50"`
	ReasonID    string          `json:"reason_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Notes       string          `json:"notes" validate:"max=500"`
}

// EntryResponse salida de una entrada de merma.
type EntryResponse struct {
	ID             int64           `json:"id"`
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	ReasonID       string          `json:"reason_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Notes          string          `json:"notes,omitempty"`
	IsSynchronized bool            `json:"is_synchronized"`
	CreatedAt      time.Time       `json:"created_at"`
}

// EntryListResponse lista paginada de entradas.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// LossSummaryResponse agregado de pérdidas del período consultado.
type LossSummaryResponse struct {
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalEntries  int64           `json:"total_entries"`
	From          *time.Time      `json:"from,omitempty"`
	To            *time.Time      `json:"to,omitempty"`
}
