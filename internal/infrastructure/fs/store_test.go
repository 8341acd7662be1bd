package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/mermas-api/internal/domain"
)

func TestStoreWriteEsAtomicoYSobrescribe(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.EnsureBase())

	path, err := store.Write(ctx, "motivos/motivo01", "motivo01_20250601.txt", []byte("linea1\n"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "linea1\n", string(data))

	// Re-exportar el mismo día reemplaza el contenido completo
	path2, err := store.Write(ctx, "motivos/motivo01", "motivo01_20250601.txt", []byte("linea1\nlinea2\n"))
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "linea1\nlinea2\n", string(data))

	// No deben quedar temporales en el directorio
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "el rename debe dejar un único archivo final")
}

func TestStoreListAgrupaPorMotivo(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.EnsureBase())

	_, err := store.Write(ctx, "motivos/motivo01", "motivo01_20250601.txt", []byte("a\n"))
	require.NoError(t, err)
	_, err = store.Write(ctx, "motivos/motivo02", "motivo02_20250601.txt", []byte("b\n"))
	require.NoError(t, err)

	files, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "01", files[0].Reason, "Reason lleva el código, no el segmento de directorio")
	assert.Equal(t, "motivo01_20250601.txt", files[0].FileName)
	assert.Equal(t, "02", files[1].Reason)
	assert.Positive(t, files[0].Size)
}

func TestStoreListBaseInexistenteDevuelveVacio(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "no-existe"))
	files, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStoreReadArchivoInexistente(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Read(context.Background(), "motivos/motivo01/nada.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreReadDirectorioNoEsArchivo(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.EnsureBase())
	_, err := store.Write(ctx, "motivos/motivo01", "motivo01_20250601.txt", []byte("a\n"))
	require.NoError(t, err)

	// Un directorio existente no es un archivo importable
	_, err = store.Read(ctx, "motivos/motivo01")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Read(ctx, store.Base())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreReadResuelveRutasRelativas(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.EnsureBase())
	abs, err := store.Write(ctx, "motivos/motivo03", "motivo03_20250601.txt", []byte("contenido\n"))
	require.NoError(t, err)

	data, err := store.Read(ctx, "motivos/motivo03/motivo03_20250601.txt")
	require.NoError(t, err)
	assert.Equal(t, "contenido\n", string(data))

	data, err = store.Read(ctx, abs)
	require.NoError(t, err)
	assert.Equal(t, "contenido\n", string(data))
}
