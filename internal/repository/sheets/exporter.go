package sheets

import (
	"context"
	"time"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// AnalysesRange is where summary rows are appended.
const AnalysesRange = "Analyses!A:J"

// Exporter publishes a summary of a stored analysis.
type Exporter interface {
	ExportAnalysis(ctx context.Context, record models.AnalysisRecord) error
}

// AnalysisExporter writes one summary row per analysis.
type AnalysisExporter struct {
	writer Writer
}

// NewAnalysisExporter wraps a sheet writer.
func NewAnalysisExporter(writer Writer) *AnalysisExporter {
	return &AnalysisExporter{writer: writer}
}

// ExportAnalysis appends the summary row of record to AnalysesRange.
func (e *AnalysisExporter) ExportAnalysis(ctx context.Context, record models.AnalysisRecord) error {
	return e.writer.WriteRow(ctx, AnalysesRange, SummaryRow(record))
}

// SummaryRow lays out date, tenant, name, city, price, total investment, NOI,
// net yield, cash-on-cash and payback. Undefined metrics are left blank.
func SummaryRow(record models.AnalysisRecord) []interface{} {
	return []interface{}{
		record.CreatedAt.UTC().Format(time.DateOnly),
		record.TenantID,
		record.Deal.Name,
		record.Deal.City,
		record.Deal.AskingPrice,
		record.Result.TotalInvestment,
		record.Result.NOI,
		record.Result.NetYieldPct,
		optional(record.Result.CashOnCashPct),
		optional(record.Result.PaybackYears),
	}
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// Noop discards exports when no spreadsheet is configured.
type Noop struct{}

// ExportAnalysis does nothing.
func (Noop) ExportAnalysis(context.Context, models.AnalysisRecord) error { return nil }
