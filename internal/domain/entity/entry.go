package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxNotesLen límite de caracteres para las notas de una entrada.
const MaxNotesLen = 500

// Entry es una entrada de merma: un producto perdido o dañado, con su motivo,
// cantidad y costo. ProductName es un snapshot desnormalizado al momento del
// registro; el producto puede no existir en el catálogo.
//
// IsSynchronized pasa de false a true exactamente una vez, únicamente cuando
// el pipeline de exportación escribió la línea de esta entrada en un archivo
// de forma durable. Nunca revierte. Fuera de ese flag, una entrada no se
// modifica después de creada.
type Entry struct {
	ID             int64
	ProductCode    string
	ProductName    string
	ReasonID       string
	Quantity       decimal.Decimal // > 0
	UnitCost       decimal.Decimal // >= 0, por defecto 0
	TotalCost      decimal.Decimal // Quantity * UnitCost, desnormalizado
	Notes          string
	IsSynchronized bool
	CreatedAt      time.Time
}
