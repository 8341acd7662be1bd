package lossfile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/lossfile"
)

// ──────────────────────────────────────────────────────────────────────────────
// El formato de línea es un contrato de intercambio con sistemas externos:
// estos tests fijan el formato exacto (5 campos pipe, costo a 2 decimales,
// fecha RFC3339) y la relación formato/parseo como inversa.
// ──────────────────────────────────────────────────────────────────────────────

func testEntry() *entity.Entry {
	return &entity.Entry{
		ID:          1,
		ProductCode: "7891234567890",
		ProductName: "Arroz 5kg",
		ReasonID:    "r1",
		Quantity:    decimal.NewFromInt(5),
		UnitCost:    decimal.NewFromFloat(2),
		CreatedAt:   time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestFormatLine_ContratoExacto(t *testing.T) {
	got := lossfile.FormatLine(testEntry())
	assert.Equal(t, "7891234567890|Arroz 5kg|5|2.00|2025-06-01T14:30:00Z", got,
		"la línea debe tener exactamente los 5 campos del contrato")
}

func TestFormatLine_SanitizaDelimitador(t *testing.T) {
	e := testEntry()
	e.ProductName = "Queso|Azul"
	got := lossfile.FormatLine(e)
	parts := strings.Split(got, "|")
	assert.Len(t, parts, 5, "un nombre con pipe no debe romper el número de campos")
	assert.Equal(t, "Queso/Azul", parts[1])
}

func TestRender_SaltoDeLineaFinal(t *testing.T) {
	content := lossfile.Render([]*entity.Entry{testEntry(), testEntry()})
	assert.True(t, strings.HasSuffix(content, "\n"), "el archivo debe terminar en salto de línea")
	assert.Equal(t, 2, strings.Count(content, "\n"), "una línea por entrada")
}

func TestParseLine_InversaDeFormat(t *testing.T) {
	e := testEntry()
	line, err := lossfile.ParseLine(lossfile.FormatLine(e))
	require.NoError(t, err)
	assert.Equal(t, e.ProductCode, line.ProductCode)
	assert.Equal(t, e.ProductName, line.ProductName)
	assert.True(t, line.Quantity.Equal(e.Quantity), "cantidad debe sobrevivir el round-trip")
	assert.True(t, line.UnitCost.Equal(e.UnitCost), "costo debe sobrevivir el round-trip")
	assert.True(t, line.CreatedAt.Equal(e.CreatedAt))
}

func TestParseLine_Malformadas(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"menos de 5 campos", "123|Arroz|5"},
		{"más de 5 campos", "123|Arroz|5|2.00|2025-06-01|extra"},
		{"cantidad no numérica", "123|Arroz|abc|2.00|2025-06-01"},
		{"costo no numérico", "123|Arroz|5|xx|2025-06-01"},
		{"cantidad cero", "123|Arroz|0|2.00|2025-06-01"},
		{"costo negativo", "123|Arroz|5|-1.00|2025-06-01"},
		{"código vacío", "|Arroz|5|2.00|2025-06-01"},
		{"nombre vacío", "123||5|2.00|2025-06-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lossfile.ParseLine(tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat, "toda línea malformada debe envolver ErrFormat")
		})
	}
}

func TestParseLine_FechaTolerante(t *testing.T) {
	// Fecha corta AAAA-MM-DD es válida (archivos externos)
	line, err := lossfile.ParseLine("123|Arroz|5|2.00|2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, line.CreatedAt.Year())

	// Fecha ilegible no invalida la línea: queda en cero y decide el llamador
	line, err = lossfile.ParseLine("123|Arroz|5|2.00|ayer")
	require.NoError(t, err)
	assert.True(t, line.CreatedAt.IsZero())
}

func TestFileName_Determinista(t *testing.T) {
	date := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "motivo01_20250601.txt", lossfile.FileName("01", date))
	assert.Equal(t, "motivo01_20250601.txt", lossfile.FileName("1", date),
		"códigos de un dígito se rellenan con cero")
}

func TestReasonDir(t *testing.T) {
	assert.Equal(t, "motivos/motivo07", lossfile.ReasonDir("7"))
}
