package importer

import "context"

// FileReader puerto de lectura del origen de importación (DIP).
type FileReader interface {
	// Read devuelve el contenido del archivo. Si la ruta no existe o no es un
	// archivo regular, el error envuelve domain.ErrNotFound.
	Read(ctx context.Context, path string) ([]byte, error)
}
