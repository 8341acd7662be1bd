package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReasonLossRow pérdidas de un motivo en el reporte agrupado.
type ReasonLossRow struct {
	ReasonCode    string          `json:"reason_code"`
	Description   string          `json:"description"`
	EntryCount    int64           `json:"entry_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// LossReportResponse reporte de pérdidas: agregado global + desglose por motivo.
type LossReportResponse struct {
	Summary  LossSummaryResponse `json:"summary"`
	ByReason []ReasonLossRow     `json:"by_reason"`
	From     *time.Time          `json:"from,omitempty"`
	To       *time.Time          `json:"to,omitempty"`
}
