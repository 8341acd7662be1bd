package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/mermas-api/internal/application/export"
	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/infrastructure/fs"
	"github.com/invorya/mermas-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var exportDate = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func seedReasons(repo *memory.ReasonRepo, codes ...string) {
	for _, code := range codes {
		repo.Seed(&entity.Reason{
			ID:          "reason-" + code,
			Code:        code,
			Description: "Motivo " + code,
			IsActive:    true,
			CreatedAt:   exportDate,
			UpdatedAt:   exportDate,
		})
	}
}

func newEntry(reasonID, code, name string, qty, cost string, at time.Time) *entity.Entry {
	q, _ := decimal.NewFromString(qty)
	c, _ := decimal.NewFromString(cost)
	return &entity.Entry{
		ProductCode: code,
		ProductName: name,
		ReasonID:    reasonID,
		Quantity:    q,
		UnitCost:    c,
		TotalCost:   q.Mul(c),
		CreatedAt:   at,
	}
}

func buildPipeline(t *testing.T) (*export.UseCase, *memory.ReasonRepo, *memory.EntryRepo, *fs.Store) {
	t.Helper()
	reasons := memory.NewReasonRepo()
	entries := memory.NewEntryRepo(reasons)
	store := fs.NewStore(t.TempDir())
	uc := export.NewUseCase(reasons, entries, store)
	uc.Now = func() time.Time { return exportDate }
	return uc, reasons, entries, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Corrida feliz
// ──────────────────────────────────────────────────────────────────────────────

// Dos entradas pendientes del motivo 01 deben producir un único archivo con
// dos líneas en orden de captura, y quedar marcadas como sincronizadas.
func TestRun_ExportaMotivoConPendientes(t *testing.T) {
	uc, reasons, entries, store := buildPipeline(t)
	ctx := context.Background()
	seedReasons(reasons, "01")

	id1, err := entries.Insert(ctx, newEntry("reason-01", "7891234567890", "Arroz 5kg", "5", "2", exportDate.Add(-2*time.Hour)))
	require.NoError(t, err)
	id2, err := entries.Insert(ctx, newEntry("reason-01", "7891234567891", "Frijol 1kg", "2.5", "3.10", exportDate.Add(-time.Hour)))
	require.NoError(t, err)

	result, err := uc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalReasons)
	assert.Equal(t, 1, result.SuccessfulExports)
	assert.Equal(t, 0, result.FailedExports)
	assert.Empty(t, result.Errors)
	require.Len(t, result.ExportedFiles, 1)

	exported := result.ExportedFiles[0]
	assert.Equal(t, "01", exported.Reason)
	assert.Equal(t, "motivo01_20250601.txt", exported.FileName)
	assert.Equal(t, 2, exported.EntriesCount)

	data, err := os.ReadFile(exported.FilePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2, "una línea por entrada")
	assert.Equal(t, "7891234567890|Arroz 5kg|5|2.00|2025-06-01T16:00:00Z", lines[0])
	assert.Equal(t, "7891234567891|Frijol 1kg|2.5|3.10|2025-06-01T17:00:00Z", lines[1])
	assert.True(t, strings.HasSuffix(string(data), "\n"), "el archivo conserva el salto final")

	// El flag quedó en true para ambas entradas
	assert.True(t, entries.Get(id1).IsSynchronized)
	assert.True(t, entries.Get(id2).IsSynchronized)

	// El archivo quedó bajo motivos/motivo01/
	rel, err := filepath.Rel(store.Base(), exported.FilePath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("motivos", "motivo01", "motivo01_20250601.txt"), rel)
}

// Una segunda corrida inmediata no encuentra pendientes: resultado con ceros,
// sin archivos nuevos.
func TestRun_EsIdempotente(t *testing.T) {
	uc, reasons, entries, _ := buildPipeline(t)
	ctx := context.Background()
	seedReasons(reasons, "01")

	_, err := entries.Insert(ctx, newEntry("reason-01", "100", "Leche", "1", "1.50", exportDate))
	require.NoError(t, err)

	first, err := uc.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.SuccessfulExports)

	second, err := uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalReasons)
	assert.Equal(t, 0, second.SuccessfulExports)
	assert.Equal(t, 0, second.FailedExports)
	assert.Empty(t, second.ExportedFiles)
}

// Sin motivos con pendientes la corrida es un resultado válido con ceros.
func TestRun_SinPendientesDevuelveCeros(t *testing.T) {
	uc, reasons, _, _ := buildPipeline(t)
	seedReasons(reasons, "01", "02", "03")

	result, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalReasons)
	assert.Equal(t, 0, result.SuccessfulExports)
	assert.Equal(t, 0, result.FailedExports)
	assert.Empty(t, result.ExportedFiles)
	assert.False(t, result.Pending())
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento de fallas
// ──────────────────────────────────────────────────────────────────────────────

// failingStore falla la escritura de un subdirectorio específico y delega el
// resto en el store real.
type failingStore struct {
	*fs.Store
	failDir string
	err     error
}

func (f *failingStore) Write(ctx context.Context, relDir, fileName string, content []byte) (string, error) {
	if relDir == f.failDir {
		return "", f.err
	}
	return f.Store.Write(ctx, relDir, fileName, content)
}

// La falla de escritura de un motivo no impide exportar los demás, y las
// entradas del motivo fallido siguen pendientes para la próxima corrida.
func TestRun_FallaDeUnMotivoNoAbortaLosDemas(t *testing.T) {
	reasons := memory.NewReasonRepo()
	entries := memory.NewEntryRepo(reasons)
	store := &failingStore{
		Store:   fs.NewStore(t.TempDir()),
		failDir: "motivos/motivo01",
		err:     domain.ErrPermission,
	}
	uc := export.NewUseCase(reasons, entries, store)
	uc.Now = func() time.Time { return exportDate }

	ctx := context.Background()
	seedReasons(reasons, "01", "02")

	idFail, err := entries.Insert(ctx, newEntry("reason-01", "100", "Leche", "1", "1.00", exportDate))
	require.NoError(t, err)
	idOK, err := entries.Insert(ctx, newEntry("reason-02", "200", "Pan", "3", "0.50", exportDate))
	require.NoError(t, err)

	result, err := uc.Run(ctx)
	require.NoError(t, err, "la corrida no aborta por la falla de un motivo")

	assert.Equal(t, 2, result.TotalReasons)
	assert.Equal(t, 1, result.SuccessfulExports)
	assert.Equal(t, 1, result.FailedExports)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "01", result.Errors[0].Reason)
	assert.Equal(t, "PERMISSION", result.Errors[0].Code)

	// El motivo fallido queda pendiente; el exitoso quedó marcado
	assert.False(t, entries.Get(idFail).IsSynchronized)
	assert.True(t, entries.Get(idOK).IsSynchronized)
}

// Una falla al consultar pendientes se reporta con código PERSISTENCE.
func TestRun_FallaDePersistenciaSeClasifica(t *testing.T) {
	uc, reasons, entries, _ := buildPipeline(t)
	seedReasons(reasons, "01")
	entries.FindErr = domain.ErrPersistence

	result, err := uc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "PERSISTENCE", result.Errors[0].Code)
}

// Si no se pueden enumerar los motivos, la corrida completa aborta.
func TestRun_FallaEnumerandoMotivosAborta(t *testing.T) {
	uc, reasons, _, _ := buildPipeline(t)
	reasons.ListErr = errors.New("conexión perdida")

	_, err := uc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enumerar motivos")
}

// Si el marcado falla después de escribir, el motivo se reporta como falla y
// las entradas siguen pendientes (la próxima corrida re-exporta el archivo).
func TestRun_FallaAlMarcarDejaEntradasPendientes(t *testing.T) {
	uc, reasons, entries, _ := buildPipeline(t)
	ctx := context.Background()
	seedReasons(reasons, "01")

	id, err := entries.Insert(ctx, newEntry("reason-01", "100", "Leche", "1", "1.00", exportDate))
	require.NoError(t, err)
	entries.MarkErr = domain.ErrPersistence

	result, err := uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FailedExports)
	assert.False(t, entries.Get(id).IsSynchronized)

	// Al reponerse la persistencia, la siguiente corrida exporta de nuevo
	entries.MarkErr = nil
	result, err = uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessfulExports)
	assert.True(t, entries.Get(id).IsSynchronized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado de archivos
// ──────────────────────────────────────────────────────────────────────────────

func TestListFiles_EnumeraLoExportado(t *testing.T) {
	uc, reasons, entries, _ := buildPipeline(t)
	ctx := context.Background()
	seedReasons(reasons, "01", "02")

	_, err := entries.Insert(ctx, newEntry("reason-01", "100", "Leche", "1", "1.00", exportDate))
	require.NoError(t, err)
	_, err = entries.Insert(ctx, newEntry("reason-02", "200", "Pan", "2", "0.50", exportDate))
	require.NoError(t, err)

	_, err = uc.Run(ctx)
	require.NoError(t, err)

	files, err := uc.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "01", files[0].Reason, "mismo código que reporta la corrida de exportación")
	assert.Equal(t, "motivo01_20250601.txt", files[0].FileName)
	assert.Equal(t, "02", files[1].Reason)
}
