// Package fs implementa los puertos de archivos de los pipelines de
// exportación e importación sobre el sistema de archivos local.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/invorya/mermas-api/internal/application/export"
	"github.com/invorya/mermas-api/internal/application/importer"
	"github.com/invorya/mermas-api/internal/domain"
)

var (
	_ export.FileStore    = (*Store)(nil)
	_ importer.FileReader = (*Store)(nil)
)

// Store adaptador de archivos sobre un directorio base local.
type Store struct {
	base string
}

// NewStore construye el adaptador con el directorio base de exportación.
func NewStore(base string) *Store {
	return &Store{base: base}
}

// Base devuelve el directorio base configurado.
func (s *Store) Base() string { return s.base }

// EnsureBase crea el directorio base si no existe.
func (s *Store) EnsureBase() error {
	if err := os.MkdirAll(s.base, 0o755); err != nil {
		return wrapFSError("crear directorio base", err)
	}
	return nil
}

// Write escribe content en base/relDir/fileName de forma atómica: archivo
// temporal en el mismo directorio, fsync y rename. Si el destino ya existe se
// sobrescribe. Devuelve la ruta absoluta del archivo escrito.
func (s *Store) Write(ctx context.Context, relDir, fileName string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(s.base, relDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", wrapFSError("crear directorio de motivo", err)
	}

	tmp, err := os.CreateTemp(dir, fileName+".tmp*")
	if err != nil {
		return "", wrapFSError("crear archivo temporal", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}
	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return "", wrapFSError("escribir archivo", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", wrapFSError("sincronizar archivo", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", wrapFSError("cerrar archivo", err)
	}

	dest := filepath.Join(dir, fileName)
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", wrapFSError("publicar archivo", err)
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return dest, nil
	}
	return abs, nil
}

// List enumera los archivos exportados bajo base, agrupados por subdirectorio
// de motivo, ordenados por ruta. Un directorio base inexistente devuelve vacío.
func (s *Store) List(ctx context.Context) ([]export.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var files []export.FileInfo
	err := filepath.WalkDir(s.base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.base {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.base, path)
		if err != nil {
			return err
		}
		files = append(files, export.FileInfo{
			Reason:   reasonFromPath(rel),
			FileName: d.Name(),
			Path:     path,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, wrapFSError("listar archivos exportados", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Read lee un archivo para importación. Rutas relativas se resuelven contra el
// directorio base.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.base, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("archivo %s: %w", path, domain.ErrNotFound)
		}
		return nil, wrapFSError("leer archivo", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("archivo %s: no es un archivo regular: %w", path, domain.ErrNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapFSError("leer archivo", err)
	}
	return data, nil
}

// reasonFromPath extrae el código de motivo de una ruta relativa como
// "motivos/motivo01/motivo01_20250601.txt" devolviendo "01", igual que el
// campo Reason del resultado de exportación.
func reasonFromPath(rel string) string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimPrefix(parts[len(parts)-2], "motivo")
}

// wrapFSError clasifica errores del sistema de archivos: permisos se marcan
// con el sentinel propio, el resto se devuelve con contexto.
func wrapFSError(op string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrPermission, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
