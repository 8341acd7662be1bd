package dto

import (
	"encoding/json"
	"time"
)

// ImportRequest petición de importación: ruta del archivo plano a procesar.
type ImportRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

// ImportLineError falla aislada de una línea durante la importación.
type ImportLineError struct {
	Line    int    `json:"line"` // número de línea en el archivo (base 1)
	Content string `json:"content"`
	Message string `json:"message"`
}

// ImportLogResponse corrida de importación registrada en el historial.
type ImportLogResponse struct {
	ID             string          `json:"id"`
	FileName       string          `json:"file_name"`
	TotalLines     int             `json:"total_lines"`
	ProcessedLines int             `json:"processed_lines"`
	FailedLines    int             `json:"failed_lines"`
	Status         string          `json:"status"`
	ErrorLog       json.RawMessage `json:"error_log,omitempty"`
	ImportedAt     time.Time       `json:"imported_at"`
}

// ImportResult resumen consolidado de una corrida de importación.
type ImportResult struct {
	FileName       string            `json:"file_name"`
	TotalLines     int               `json:"total_lines"`
	ProcessedLines int               `json:"processed_lines"`
	FailedLines    int               `json:"failed_lines"`
	Errors         []ImportLineError `json:"errors,omitempty"`
}
