package export

import (
	"context"
	"time"
)

// FileInfo describe un archivo ya exportado en el destino.
type FileInfo struct {
	Reason   string    `json:"reason"` // código del motivo ("01")
	FileName string    `json:"file_name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
}

// FileStore puerto de escritura del destino de exportación (DIP).
//
// Write debe ser atómico: nunca debe quedar visible un archivo con parte de
// las líneas. La implementación de producción (infrastructure/fs) escribe un
// temporal en el mismo directorio y lo renombra.
type FileStore interface {
	// EnsureBase crea el directorio base (con intermedios) si no existe.
	// Idempotente.
	EnsureBase() error
	// Write escribe content en <base>/<relDir>/<fileName>, creando los
	// directorios intermedios, y devuelve la ruta final. Si el archivo ya
	// existe lo sobreescribe (re-exportación del mismo día).
	Write(ctx context.Context, relDir, fileName string, content []byte) (string, error)
	// List enumera los archivos exportados, ordenados por ruta (motivo y
	// fecha quedan agrupados de forma natural).
	List(ctx context.Context) ([]FileInfo, error)
}
