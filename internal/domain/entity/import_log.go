package entity

import (
	"encoding/json"
	"time"
)

// Estados de una corrida de importación.
const (
	ImportStatusCompleted = "completed"
	ImportStatusPartial   = "partial" // terminó con líneas fallidas
)

// ImportLog es el registro de auditoría de una corrida de importación:
// qué archivo se procesó, cuántas líneas entraron y el detalle de fallas.
type ImportLog struct {
	ID             string
	FileName       string
	TotalLines     int
	ProcessedLines int
	FailedLines    int
	Status         string
	ErrorLog       json.RawMessage // detalle de errores por línea, serializado
	ImportedAt     time.Time
}
