package engine

import (
	"math"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// Returns are the headline metrics. CashOnCashPct is nil when equity is zero
// and PaybackYears is nil when the deal never pays back.
type Returns struct {
	GrossYieldPct  float64
	NetYieldPct    float64
	PreTaxCashFlow float64
	CashOnCashPct  *float64
	PaybackYears   *float64
}

// ComputeReturns combines income, acquisition and financing figures.
func ComputeReturns(d models.Deal, inc Income, acq Acquisition, fin Financing) Returns {
	cashFlow := inc.NOI - fin.AnnualDebtService

	out := Returns{
		GrossYieldPct:  inc.AnnualGrossRent / d.AskingPrice * 100,
		NetYieldPct:    inc.NOI / acq.TotalInvestment * 100,
		PreTaxCashFlow: cashFlow,
	}

	if fin.Equity != 0 {
		out.CashOnCashPct = finiteOrNil(cashFlow / fin.Equity * 100)
	}

	if cashFlow > 0 {
		out.PaybackYears = finiteOrNil(fin.Equity / cashFlow)
	}

	return out
}

// finiteOrNil drops ratios that overflowed, e.g. a payback over a
// vanishingly small cash flow.
func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
