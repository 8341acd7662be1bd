// Package importer implementa el pipeline de importación: lee un archivo
// plano de mermas (el mismo formato que produce la exportación), valida cada
// línea de forma independiente y materializa entradas y productos faltantes.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/lossfile"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

// Config parámetros del pipeline de importación.
type Config struct {
	// DefaultReasonCode código del motivo asignado a toda entrada importada.
	DefaultReasonCode string
	// MaxErrorDetails tope de errores por línea retenidos en el resultado;
	// FailedLines siempre cuenta todas las fallas.
	MaxErrorDetails int
}

// UseCase pipeline de importación. Una corrida a la vez, igual que la
// exportación.
type UseCase struct {
	mu       sync.Mutex
	files    FileReader
	entries  repository.EntryRepository
	products repository.ProductRepository
	reasons  repository.ReasonRepository
	logs     repository.ImportLogRepository
	cfg      Config

	// Now inyectable para tests.
	Now func() time.Time
}

// NewUseCase construye el pipeline. logs puede ser nil (sin historial).
func NewUseCase(
	files FileReader,
	entries repository.EntryRepository,
	products repository.ProductRepository,
	reasons repository.ReasonRepository,
	logs repository.ImportLogRepository,
	cfg Config,
) *UseCase {
	if cfg.DefaultReasonCode == "" {
		cfg.DefaultReasonCode = "01"
	}
	if cfg.MaxErrorDetails <= 0 {
		cfg.MaxErrorDetails = 20
	}
	return &UseCase{
		files:    files,
		entries:  entries,
		products: products,
		reasons:  reasons,
		logs:     logs,
		cfg:      cfg,
		Now:      time.Now,
	}
}

// RunFromFile importa el archivo indicado.
//
// Fallas de preparación (archivo inexistente, archivo vacío, motivo por
// defecto ausente) abortan la corrida y se propagan. Fallas de una línea
// (formato, persistencia) se registran en el resultado y no abortan el lote.
//
// Las entradas importadas nacen con is_synchronized=true: la importación es
// terminal y nada de lo importado se vuelve a exportar.
func (uc *UseCase) RunFromFile(ctx context.Context, path string) (*dto.ImportResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	raw, err := uc.files.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	lines := splitLines(decode(raw))
	if len(lines) == 0 {
		return nil, fmt.Errorf("archivo vacío: %w", domain.ErrFormat)
	}

	reason, err := uc.reasons.GetByCode(ctx, uc.cfg.DefaultReasonCode)
	if err != nil {
		return nil, fmt.Errorf("resolver motivo por defecto: %w", err)
	}
	if reason == nil {
		return nil, fmt.Errorf("motivo por defecto %q no existe: %w", uc.cfg.DefaultReasonCode, domain.ErrNotFound)
	}

	fileName := filepath.Base(path)
	result := &dto.ImportResult{
		FileName:   fileName,
		TotalLines: len(lines),
	}
	for _, ln := range lines {
		if err := uc.processLine(ctx, ln.text, reason.ID, fileName); err != nil {
			result.FailedLines++
			if len(result.Errors) < uc.cfg.MaxErrorDetails {
				result.Errors = append(result.Errors, dto.ImportLineError{
					Line:    ln.number,
					Content: ln.text,
					Message: err.Error(),
				})
			}
			continue
		}
		result.ProcessedLines++
	}

	uc.recordLog(ctx, result)
	return result, nil
}

// processLine valida e inserta una línea: resuelve el producto por código
// (creándolo como placeholder si no existe) y persiste la entrada.
func (uc *UseCase) processLine(ctx context.Context, raw, reasonID, fileName string) error {
	line, err := lossfile.ParseLine(raw)
	if err != nil {
		return err
	}

	product, err := uc.products.GetByCode(ctx, line.ProductCode)
	if err != nil {
		return err
	}
	if product == nil {
		now := uc.Now()
		product = &entity.Product{
			Code:         line.ProductCode,
			Name:         line.ProductName,
			UnitType:     entity.UnitUN,
			RegularPrice: decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.products.Create(ctx, product); err != nil {
			return fmt.Errorf("crear producto %s: %w", line.ProductCode, err)
		}
	}

	createdAt := line.CreatedAt
	if createdAt.IsZero() {
		createdAt = uc.Now()
	}
	entry := &entity.Entry{
		ProductCode:    line.ProductCode,
		ProductName:    line.ProductName,
		ReasonID:       reasonID,
		Quantity:       line.Quantity,
		UnitCost:       line.UnitCost,
		TotalCost:      line.Quantity.Mul(line.UnitCost),
		Notes:          "Importado de " + fileName,
		IsSynchronized: true,
		CreatedAt:      createdAt,
	}
	if _, err := uc.entries.Insert(ctx, entry); err != nil {
		return err
	}
	return nil
}

// recordLog persiste el historial de la corrida; best effort, nunca falla la
// importación por no poder auditarse.
func (uc *UseCase) recordLog(ctx context.Context, result *dto.ImportResult) {
	if uc.logs == nil {
		return
	}
	status := entity.ImportStatusCompleted
	if result.FailedLines > 0 {
		status = entity.ImportStatusPartial
	}
	errorLog, _ := json.Marshal(result.Errors)
	_ = uc.logs.Create(ctx, &entity.ImportLog{
		ID:             uuid.New().String(),
		FileName:       result.FileName,
		TotalLines:     result.TotalLines,
		ProcessedLines: result.ProcessedLines,
		FailedLines:    result.FailedLines,
		Status:         status,
		ErrorLog:       errorLog,
		ImportedAt:     uc.Now(),
	})
}

// History devuelve corridas de importación registradas, de la más reciente a
// la más antigua. Sin repositorio de historial devuelve vacío.
func (uc *UseCase) History(ctx context.Context, page dto.PageRequest) ([]dto.ImportLogResponse, error) {
	if uc.logs == nil {
		return []dto.ImportLogResponse{}, nil
	}
	page.DefaultPage()
	list, err := uc.logs.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImportLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ImportLogResponse{
			ID:             l.ID,
			FileName:       l.FileName,
			TotalLines:     l.TotalLines,
			ProcessedLines: l.ProcessedLines,
			FailedLines:    l.FailedLines,
			Status:         l.Status,
			ErrorLog:       l.ErrorLog,
			ImportedAt:     l.ImportedAt,
		})
	}
	return out, nil
}

type numberedLine struct {
	number int // base 1, sobre el archivo original
	text   string
}

// splitLines separa el contenido en líneas no vacías conservando el número de
// línea original (para reportar fallas en la posición correcta).
func splitLines(content string) []numberedLine {
	var out []numberedLine
	for i, raw := range strings.Split(content, "\n") {
		text := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, numberedLine{number: i + 1, text: text})
	}
	return out
}

// decode interpreta el contenido como UTF-8 y, si no es válido, lo transcodifica
// desde ISO-8859-1 (archivos generados por sistemas legados).
func decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
