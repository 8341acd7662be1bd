package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/mermas-api/internal/application/usecase"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/infrastructure/memory"
)

func TestLoss_DesglosaPorMotivoDeMayorAMenor(t *testing.T) {
	reasons := memory.NewReasonRepo()
	reasons.Seed(
		&entity.Reason{ID: "reason-01", Code: "01", Description: "Producto Vencido", IsActive: true},
		&entity.Reason{ID: "reason-04", Code: "04", Description: "Robo/Hurto", IsActive: true},
	)
	entries := memory.NewEntryRepo(reasons)
	uc := usecase.NewReportUseCase(entries, nil)
	ctx := context.Background()

	insert := func(reasonID, qty, cost string) {
		q := decimal.RequireFromString(qty)
		c := decimal.RequireFromString(cost)
		_, err := entries.Insert(ctx, &entity.Entry{
			ProductCode: "100", ProductName: "Producto", ReasonID: reasonID,
			Quantity: q, UnitCost: c, TotalCost: q.Mul(c),
		})
		require.NoError(t, err)
	}
	insert("reason-01", "2", "1.00")  // valor 2.00
	insert("reason-04", "1", "50.00") // valor 50.00
	insert("reason-04", "1", "25.00") // valor 75.00 acumulado

	report, err := uc.Loss(ctx, nil, nil)
	require.NoError(t, err)

	assert.True(t, report.Summary.TotalValue.Equal(decimal.RequireFromString("77.00")))
	assert.EqualValues(t, 3, report.Summary.TotalEntries)

	require.Len(t, report.ByReason, 2)
	assert.Equal(t, "04", report.ByReason[0].ReasonCode, "el motivo de mayor pérdida va primero")
	assert.Equal(t, "Robo/Hurto", report.ByReason[0].Description)
	assert.True(t, report.ByReason[0].TotalValue.Equal(decimal.RequireFromString("75.00")))
	assert.EqualValues(t, 2, report.ByReason[0].EntryCount)
	assert.Equal(t, "01", report.ByReason[1].ReasonCode)
}

func TestLoss_SinEntradasDevuelveReporteVacio(t *testing.T) {
	reasons := memory.NewReasonRepo()
	entries := memory.NewEntryRepo(reasons)
	uc := usecase.NewReportUseCase(entries, nil)

	report, err := uc.Loss(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, report.Summary.TotalValue.IsZero())
	assert.Empty(t, report.ByReason)
}
