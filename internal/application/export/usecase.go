// Package export implementa el pipeline de exportación de mermas: un archivo
// plano por motivo con las entradas aún no sincronizadas, marcándolas como
// sincronizadas solo después de que su archivo quedó escrito de forma durable.
package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/lossfile"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

// UseCase pipeline de exportación. Una sola corrida a la vez: el mutex
// serializa invocaciones concurrentes para que el flag is_synchronized nunca
// se dispute entre corridas.
type UseCase struct {
	mu      sync.Mutex
	reasons repository.ReasonRepository
	entries repository.EntryRepository
	files   FileStore

	// Now inyectable para tests (nombres de archivo deterministas).
	Now func() time.Time
}

// NewUseCase construye el pipeline.
func NewUseCase(reasons repository.ReasonRepository, entries repository.EntryRepository, files FileStore) *UseCase {
	return &UseCase{reasons: reasons, entries: entries, files: files, Now: time.Now}
}

// Run ejecuta una corrida completa de exportación.
//
// Cada motivo se procesa de forma independiente: una falla de escritura o de
// persistencia en un motivo se registra en el resultado y no aborta los
// demás. Solo las fallas de preparación (enumerar motivos, crear el
// directorio base) abortan la corrida completa.
//
// Un motivo sin entradas pendientes no genera archivo y no cuenta como éxito
// ni como falla; una corrida donde ningún motivo tenía pendientes devuelve un
// resultado con ceros.
func (uc *UseCase) Run(ctx context.Context) (*dto.ExportResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	reasons, err := uc.reasons.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerar motivos: %w", err)
	}
	if err := uc.files.EnsureBase(); err != nil {
		return nil, fmt.Errorf("crear estructura de directorios: %w", err)
	}

	result := &dto.ExportResult{
		TotalReasons:  len(reasons),
		ExportedFiles: []dto.ExportedFile{},
	}
	for _, reason := range reasons {
		exported, err := uc.exportReason(ctx, reason)
		if err != nil {
			result.FailedExports++
			result.Errors = append(result.Errors, dto.ExportError{
				Reason:  reason.Code,
				Code:    errorCode(err),
				Message: err.Error(),
			})
			continue
		}
		if exported != nil {
			result.SuccessfulExports++
			result.ExportedFiles = append(result.ExportedFiles, *exported)
		}
	}
	return result, nil
}

// exportReason procesa un motivo: consulta pendientes, escribe el archivo y
// recién entonces marca las entradas. Devuelve (nil, nil) si no había
// pendientes.
//
// Si el proceso muere entre la escritura y el marcado, las entradas siguen
// no sincronizadas y la próxima corrida sobreescribe el archivo del día:
// una re-exportación inocua, nunca una pérdida.
func (uc *UseCase) exportReason(ctx context.Context, reason *entity.Reason) (*dto.ExportedFile, error) {
	pending, err := uc.entries.FindUnsynchronizedByReason(ctx, reason.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar pendientes del motivo %s: %w", reason.Code, err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	content := lossfile.Render(pending)
	fileName := lossfile.FileName(reason.Code, uc.Now())
	path, err := uc.files.Write(ctx, lossfile.ReasonDir(reason.Code), fileName, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("escribir %s: %w", fileName, err)
	}

	ids := make([]int64, len(pending))
	for i, e := range pending {
		ids[i] = e.ID
	}
	if err := uc.entries.MarkSynchronized(ctx, ids); err != nil {
		// El archivo quedó escrito pero las entradas siguen pendientes; se
		// reporta como falla del motivo y la próxima corrida re-exporta.
		return nil, fmt.Errorf("marcar %d entradas del motivo %s: %w", len(ids), reason.Code, err)
	}

	return &dto.ExportedFile{
		Reason:       reason.Code,
		FileName:     fileName,
		FilePath:     path,
		EntriesCount: len(pending),
	}, nil
}

// ListFiles enumera los archivos ya presentes en el destino de exportación.
func (uc *UseCase) ListFiles(ctx context.Context) ([]FileInfo, error) {
	return uc.files.List(ctx)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrPermission):
		return "PERMISSION"
	case errors.Is(err, domain.ErrPersistence):
		return "PERSISTENCE"
	default:
		return "WRITE"
	}
}
