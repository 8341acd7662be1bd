package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

// LossReportPDFGenerator puerto para la representación PDF del reporte de
// pérdidas (implementado en infrastructure/pdf con Maroto).
type LossReportPDFGenerator interface {
	GenerateLossReportPDF(ctx context.Context, report *dto.LossReportResponse) ([]byte, error)
}

// ReportUseCase reportes de pérdidas: agregado global y desglose por motivo,
// en JSON o PDF.
type ReportUseCase struct {
	entries repository.EntryRepository
	pdf     LossReportPDFGenerator
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si la app no
// expone el reporte PDF.
func NewReportUseCase(entries repository.EntryRepository, pdf LossReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{entries: entries, pdf: pdf}
}

// Loss construye el reporte de pérdidas del rango dado. Un rango sin
// entradas produce un reporte con ceros y desglose vacío.
func (uc *ReportUseCase) Loss(ctx context.Context, from, to *time.Time) (*dto.LossReportResponse, error) {
	agg, err := uc.entries.AggregateLossValue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		agg = &repository.LossAggregate{TotalValue: decimal.Zero, TotalQuantity: decimal.Zero}
	}
	rows, err := uc.entries.LossByReason(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byReason := make([]dto.ReasonLossRow, 0, len(rows))
	for _, r := range rows {
		byReason = append(byReason, dto.ReasonLossRow{
			ReasonCode:    r.ReasonCode,
			Description:   r.Description,
			EntryCount:    r.EntryCount,
			TotalQuantity: r.TotalQuantity,
			TotalValue:    r.TotalValue,
		})
	}
	return &dto.LossReportResponse{
		Summary: dto.LossSummaryResponse{
			TotalValue:    agg.TotalValue,
			TotalQuantity: agg.TotalQuantity,
			TotalEntries:  agg.TotalEntries,
		},
		ByReason: byReason,
		From:     from,
		To:       to,
	}, nil
}

// LossPDF genera la representación PDF del reporte del rango dado.
func (uc *ReportUseCase) LossPDF(ctx context.Context, from, to *time.Time) ([]byte, error) {
	report, err := uc.Loss(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateLossReportPDF(ctx, report)
}
