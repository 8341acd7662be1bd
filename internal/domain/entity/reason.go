package entity

import "time"

// Reason es un motivo estandarizado de merma (vencido, dañado, hurto, etc.).
// El catálogo se siembra una sola vez vía migración y es inmutable para los
// pipelines; Code es el código corto de display ("01".."08") que además
// determina el nombre del archivo exportado.
type Reason struct {
	ID          string
	Code        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
