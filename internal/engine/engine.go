// Package engine turns a proposed property acquisition into return metrics
// and a sensitivity table. It is a pure function of its input: no I/O, no
// clock, no shared state.
package engine

import "github.com/mamadbah2/dealyield/internal/domain/models"

// Evaluation holds the unrounded figures of one deal.
type Evaluation struct {
	Income      Income
	Acquisition Acquisition
	Financing   Financing
	Returns     Returns
}

// Evaluate runs income, acquisition, financing and returns for a deal that
// has already been validated.
func Evaluate(d models.Deal) Evaluation {
	inc := AggregateIncome(d)
	acq := AggregateAcquisition(d)
	fin := Finance(d, acq.TotalInvestment)
	return Evaluation{
		Income:      inc,
		Acquisition: acq,
		Financing:   fin,
		Returns:     ComputeReturns(d, inc, acq, fin),
	}
}

// Metric returns the unrounded value of m, or nil when it is undefined.
func (e Evaluation) Metric(m models.Metric) *float64 {
	var v float64
	switch m {
	case models.MetricCashOnCash:
		return e.Returns.CashOnCashPct
	case models.MetricPaybackYears:
		return e.Returns.PaybackYears
	case models.MetricNetYield:
		v = e.Returns.NetYieldPct
	case models.MetricGrossYield:
		v = e.Returns.GrossYieldPct
	case models.MetricPreTaxCashFlow:
		v = e.Returns.PreTaxCashFlow
	default:
		return nil
	}
	return &v
}

// Result rounds the evaluation into the outbound shape.
func (e Evaluation) Result() models.AnalysisResult {
	return models.AnalysisResult{
		AnnualGrossRent:        round2(e.Income.AnnualGrossRent),
		EffectiveGrossIncome:   round2(e.Income.EffectiveGrossIncome),
		TotalOperatingExpenses: round2(e.Income.OperatingExpenses),
		NOI:                    round2(e.Income.NOI),

		TotalTransactionCosts: round2(e.Acquisition.TransactionCosts),
		TotalCapex:            round2(e.Acquisition.Capex),
		TotalInvestment:       round2(e.Acquisition.TotalInvestment),

		LoanAmount:         round2(e.Financing.LoanAmount),
		OriginationFee:     round2(e.Financing.OriginationFee),
		EquityRequired:     round2(e.Financing.Equity),
		MonthlyPayment:     round2(e.Financing.MonthlyPayment),
		AnnualDebtService:  round2(e.Financing.AnnualDebtService),
		FirstYearInterest:  round2(e.Financing.FirstYearInterest),
		FirstYearPrincipal: round2(e.Financing.FirstYearPrincipal),

		PreTaxCashFlow: round2(e.Returns.PreTaxCashFlow),
		GrossYieldPct:  round2(e.Returns.GrossYieldPct),
		NetYieldPct:    round2(e.Returns.NetYieldPct),
		CashOnCashPct:  round2Ptr(e.Returns.CashOnCashPct),
		PaybackYears:   round2Ptr(e.Returns.PaybackYears),
	}
}

// Analyzer runs full analyses. The zero value is ready to use.
type Analyzer struct {
	workers int
}

// NewAnalyzer returns an Analyzer evaluating up to workers grid cells at once.
func NewAnalyzer(workers int) *Analyzer {
	return &Analyzer{workers: workers}
}

// Analyze normalizes the input, computes the metrics and the sensitivity
// table. A rejected deal or spec yields a *ValidationError and no result.
func (a *Analyzer) Analyze(in models.DealInput, spec models.SensitivitySpec) (models.AnalysisResult, error) {
	deal, err := BuildDeal(in)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return a.AnalyzeDeal(deal, spec)
}

// AnalyzeDeal is Analyze for an already normalized deal.
func (a *Analyzer) AnalyzeDeal(d models.Deal, spec models.SensitivitySpec) (models.AnalysisResult, error) {
	if err := ValidateDeal(d); err != nil {
		return models.AnalysisResult{}, err
	}
	if err := ValidateSpec(d, spec); err != nil {
		return models.AnalysisResult{}, err
	}

	eval := Evaluate(d)
	result := eval.Result()
	result.Sensitivity = a.table(d, eval, spec)
	return result, nil
}

// Analyze runs a default Analyzer.
func Analyze(in models.DealInput, spec models.SensitivitySpec) (models.AnalysisResult, error) {
	return NewAnalyzer(DefaultGridWorkers).Analyze(in, spec)
}
