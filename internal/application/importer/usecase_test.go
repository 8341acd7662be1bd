package importer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/invorya/mermas-api/internal/application/export"
	"github.com/invorya/mermas-api/internal/application/importer"
	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/infrastructure/fs"
	"github.com/invorya/mermas-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var importDate = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type pipeline struct {
	uc       *importer.UseCase
	reasons  *memory.ReasonRepo
	entries  *memory.EntryRepo
	products *memory.ProductRepo
	logs     *memory.ImportLogRepo
	store    *fs.Store
}

func buildPipeline(t *testing.T) *pipeline {
	t.Helper()
	reasons := memory.NewReasonRepo()
	reasons.Seed(&entity.Reason{
		ID:          "reason-01",
		Code:        "01",
		Description: "Producto Vencido",
		IsActive:    true,
	})
	entries := memory.NewEntryRepo(reasons)
	products := memory.NewProductRepo()
	logs := memory.NewImportLogRepo()
	store := fs.NewStore(t.TempDir())
	uc := importer.NewUseCase(store, entries, products, reasons, logs, importer.Config{})
	uc.Now = func() time.Time { return importDate }
	return &pipeline{uc: uc, reasons: reasons, entries: entries, products: products, logs: logs, store: store}
}

// writeFile deja un archivo bajo el directorio base del store y devuelve su
// ruta absoluta.
func writeFile(t *testing.T, p *pipeline, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(p.store.Base(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// ──────────────────────────────────────────────────────────────────────────────
// Corrida feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestRunFromFile_ImportaArchivoValido(t *testing.T) {
	p := buildPipeline(t)
	ctx := context.Background()

	content := "7891234567890|Arroz 5kg|5|2.00|2025-06-01T14:30:00Z\n" +
		"7891234567891|Frijol 1kg|2.5|3.10|2025-06-01T15:00:00Z\n"
	path := writeFile(t, p, "motivo01_20250601.txt", []byte(content))

	result, err := p.uc.RunFromFile(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "motivo01_20250601.txt", result.FileName)
	assert.Equal(t, 2, result.TotalLines)
	assert.Equal(t, 2, result.ProcessedLines)
	assert.Equal(t, 0, result.FailedLines)
	assert.Empty(t, result.Errors)

	// Las entradas importadas nacen sincronizadas y con la fecha de la línea
	list, err := p.entries.List(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, e := range list {
		assert.True(t, e.IsSynchronized, "lo importado nunca se re-exporta")
		assert.Equal(t, "reason-01", e.ReasonID)
		assert.Equal(t, "Importado de motivo01_20250601.txt", e.Notes)
	}

	// Un producto desconocido se crea a partir del nombre de la línea
	product, err := p.products.GetByCode(ctx, "7891234567890")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Arroz 5kg", product.Name)
	assert.Equal(t, entity.UnitUN, product.UnitType)
	assert.True(t, product.RegularPrice.IsZero())

	// La corrida queda auditada como completada
	history, err := p.logs.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.ImportStatusCompleted, history[0].Status)
	assert.Equal(t, 2, history[0].ProcessedLines)
}

// Lo que exporta el pipeline de exportación debe poder importarse sin
// pérdidas: mismas cantidades, costos y fechas.
func TestRunFromFile_RoundTripConExportacion(t *testing.T) {
	p := buildPipeline(t)
	ctx := context.Background()

	capturedAt := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	qty := decimal.RequireFromString("5")
	cost := decimal.RequireFromString("2")
	_, err := p.entries.Insert(ctx, &entity.Entry{
		ProductCode: "7891234567890",
		ProductName: "Arroz 5kg",
		ReasonID:    "reason-01",
		Quantity:    qty,
		UnitCost:    cost,
		TotalCost:   qty.Mul(cost),
		CreatedAt:   capturedAt,
	})
	require.NoError(t, err)

	exportUC := export.NewUseCase(p.reasons, p.entries, p.store)
	exportUC.Now = func() time.Time { return capturedAt }
	exportResult, err := exportUC.Run(ctx)
	require.NoError(t, err)
	require.Len(t, exportResult.ExportedFiles, 1)

	importResult, err := p.uc.RunFromFile(ctx, exportResult.ExportedFiles[0].FilePath)
	require.NoError(t, err)
	assert.Equal(t, 1, importResult.ProcessedLines)
	assert.Equal(t, 0, importResult.FailedLines)

	list, err := p.entries.List(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2, "la original y la importada")
	imported := list[0]
	if !imported.IsSynchronized || imported.Notes == "" {
		imported = list[1]
	}
	assert.True(t, imported.Quantity.Equal(qty))
	assert.True(t, imported.UnitCost.Equal(cost))
	assert.True(t, imported.CreatedAt.Equal(capturedAt))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento por línea
// ──────────────────────────────────────────────────────────────────────────────

// Una línea malformada no aborta el lote y se reporta con su número original.
func TestRunFromFile_LineaMalformadaNoAbortaElLote(t *testing.T) {
	p := buildPipeline(t)
	ctx := context.Background()

	var content string
	for i := 1; i <= 5; i++ {
		content += fmt.Sprintf("code%d|Producto %d|1|1.00|2025-06-01T10:00:00Z\n", i, i)
	}
	content += "linea|rota\n" // línea 6: campos insuficientes
	for i := 6; i <= 10; i++ {
		content += fmt.Sprintf("code%d|Producto %d|1|1.00|2025-06-01T10:00:00Z\n", i, i)
	}
	path := writeFile(t, p, "lote.txt", []byte(content))

	result, err := p.uc.RunFromFile(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 11, result.TotalLines)
	assert.Equal(t, 10, result.ProcessedLines)
	assert.Equal(t, 1, result.FailedLines)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 6, result.Errors[0].Line, "el número de línea es el del archivo original")
	assert.Equal(t, "linea|rota", result.Errors[0].Content)

	// Con fallas, la corrida se audita como parcial
	history, err := p.logs.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.ImportStatusPartial, history[0].Status)
}

// El detalle de errores se acota a MaxErrorDetails pero FailedLines cuenta todo.
func TestRunFromFile_ErroresAcotadosPorConfig(t *testing.T) {
	p := buildPipeline(t)
	ctx := context.Background()

	uc := importer.NewUseCase(p.store, p.entries, p.products, p.reasons, nil, importer.Config{
		MaxErrorDetails: 3,
	})
	uc.Now = func() time.Time { return importDate }

	var content string
	for i := 0; i < 8; i++ {
		content += "rota\n"
	}
	content += "ok|Producto|1|1.00|2025-06-01T10:00:00Z\n"
	path := writeFile(t, p, "muchas_fallas.txt", []byte(content))

	result, err := uc.RunFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 8, result.FailedLines)
	assert.Equal(t, 1, result.ProcessedLines)
	assert.Len(t, result.Errors, 3, "el detalle se acota, el conteo no")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallas de preparación
// ──────────────────────────────────────────────────────────────────────────────

func TestRunFromFile_ArchivoInexistente(t *testing.T) {
	p := buildPipeline(t)
	_, err := p.uc.RunFromFile(context.Background(), "no/existe.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunFromFile_ArchivoVacio(t *testing.T) {
	p := buildPipeline(t)
	path := writeFile(t, p, "vacio.txt", []byte("\n\n  \n"))

	_, err := p.uc.RunFromFile(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestRunFromFile_MotivoPorDefectoAusente(t *testing.T) {
	p := buildPipeline(t)
	ctx := context.Background()

	uc := importer.NewUseCase(p.store, p.entries, p.products, p.reasons, nil, importer.Config{
		DefaultReasonCode: "99", // no sembrado
	})
	path := writeFile(t, p, "lote.txt", []byte("code|Producto|1|1.00|2025-06-01T10:00:00Z\n"))

	_, err := uc.RunFromFile(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Codificación
// ──────────────────────────────────────────────────────────────────────────────

// Archivos del sistema externo pueden venir en ISO-8859-1; los acentos deben
// sobrevivir la importación.
func TestRunFromFile_DecodificaLatin1(t *testing.T) {
	p := buildPipeline(t)
	ctx := context.Background()

	latin1, err := charmap.ISO8859_1.NewEncoder().String("7891|Azúcar Refinada|1|1.00|2025-06-01T10:00:00Z\n")
	require.NoError(t, err)
	path := writeFile(t, p, "latin1.txt", []byte(latin1))

	result, err := p.uc.RunFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProcessedLines)

	product, err := p.products.GetByCode(ctx, "7891")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Azúcar Refinada", product.Name)
}
