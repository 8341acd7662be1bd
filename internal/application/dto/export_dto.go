package dto

// ExportedFile describe un archivo generado por una corrida de exportación.
type ExportedFile struct {
	Reason       string `json:"reason"`
	FileName     string `json:"file_name"`
	FilePath     string `json:"file_path"`
	EntriesCount int    `json:"entries_count"`
}

// ExportError falla aislada de un motivo durante la exportación.
type ExportError struct {
	Reason  string `json:"reason"`
	Code    string `json:"code"` // PERSISTENCE | PERMISSION | WRITE
	Message string `json:"message"`
}

// ExportResult resumen consolidado de una corrida de exportación.
// Una corrida sin entradas pendientes es un resultado válido con ceros,
// no un error.
type ExportResult struct {
	TotalReasons      int            `json:"total_reasons"`
	SuccessfulExports int            `json:"successful_exports"`
	FailedExports     int            `json:"failed_exports"`
	ExportedFiles     []ExportedFile `json:"exported_files"`
	Errors            []ExportError  `json:"errors,omitempty"`
}

// Pending indica si la corrida encontró algo que exportar.
func (r *ExportResult) Pending() bool {
	return r.SuccessfulExports > 0 || r.FailedExports > 0
}
