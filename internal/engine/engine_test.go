package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

func TestAnalyze_ScenarioA(t *testing.T) {
	res, err := Analyze(scenarioA(), netYieldSpec())
	require.NoError(t, err)

	assert.Equal(t, 12000.0, res.AnnualGrossRent)
	assert.Equal(t, 200000.0, res.TotalInvestment)
	assert.Equal(t, 11400.0, res.NOI)
	assert.Equal(t, 6.0, res.GrossYieldPct)
	assert.Equal(t, 5.7, res.NetYieldPct)
	assert.Zero(t, res.LoanAmount)
	assert.Zero(t, res.MonthlyPayment)
	assert.Equal(t, 200000.0, res.EquityRequired)
	assert.Equal(t, 11400.0, res.PreTaxCashFlow)
	require.NotNil(t, res.CashOnCashPct)
	assert.Equal(t, 5.7, *res.CashOnCashPct)
	require.NotNil(t, res.PaybackYears)
	assert.Equal(t, 17.54, *res.PaybackYears)
}

func TestAnalyze_ScenarioB(t *testing.T) {
	res, err := Analyze(scenarioB(), cashOnCashSpec())
	require.NoError(t, err)

	assert.Equal(t, 140000.0, res.LoanAmount)
	assert.Equal(t, 923.94, res.MonthlyPayment)
	assert.Equal(t, 60000.0, res.EquityRequired)
	assert.Equal(t, 11087.26, res.AnnualDebtService)
	assert.Equal(t, 312.74, res.PreTaxCashFlow)
	require.NotNil(t, res.CashOnCashPct)
	assert.Equal(t, 0.52, *res.CashOnCashPct)
	require.NotNil(t, res.PaybackYears)
	assert.InDelta(t, 191.85, *res.PaybackYears, 0.01)
	assert.InDelta(t, res.AnnualDebtService, res.FirstYearInterest+res.FirstYearPrincipal, 0.02)
}

func TestAnalyze_OutputsAreInternallyConsistent(t *testing.T) {
	in := scenarioB()
	in.AskingPrice = 315000
	in.NotaryCost = 1800
	in.TransferTax = 18900
	in.RenovationCapex = 12000
	in.PropertyTax = 950
	in.Insurance = 420
	in.ManagementFeePct = 6
	in.RentRoll = append(in.RentRoll, models.RentRollEntry{Reference: "G", UnitType: models.UnitGarage, MonthlyRent: 120})

	res, err := Analyze(in, cashOnCashSpec())
	require.NoError(t, err)

	assert.InDelta(t, res.AnnualGrossRent/in.AskingPrice*100, res.GrossYieldPct, 0.02)
	assert.InDelta(t, res.NOI/res.TotalInvestment*100, res.NetYieldPct, 0.02)
	assert.InDelta(t, res.EffectiveGrossIncome-res.TotalOperatingExpenses, res.NOI, 0.02)
	assert.InDelta(t, in.AskingPrice+res.TotalTransactionCosts+res.TotalCapex, res.TotalInvestment, 0.02)
	assert.InDelta(t, res.NOI-res.AnnualDebtService, res.PreTaxCashFlow, 0.02)
	assert.InDelta(t, res.TotalInvestment-res.LoanAmount+res.OriginationFee, res.EquityRequired, 0.02)
}

func TestAnalyze_NonPositiveCashFlowNeverPaysBack(t *testing.T) {
	in := scenarioA()
	in.RentRoll[0].MonthlyRent = 100
	in.PropertyTax = 5000

	res, err := Analyze(in, netYieldSpec())
	require.NoError(t, err)

	assert.Equal(t, -3860.0, res.NOI)
	assert.Less(t, res.PreTaxCashFlow, 0.0)
	assert.Nil(t, res.PaybackYears)
	require.NotNil(t, res.CashOnCashPct)
	assert.Less(t, *res.CashOnCashPct, 0.0)
}

func TestAnalyze_ZeroEquityHasNoCashOnCash(t *testing.T) {
	in := scenarioB()
	in.LoanToValuePct = 100

	res, err := Analyze(in, cashOnCashSpec())
	require.NoError(t, err)

	assert.Zero(t, res.EquityRequired)
	assert.Nil(t, res.CashOnCashPct)
}

func TestAnalyze_NoFinancingForcesEquityToTotalInvestment(t *testing.T) {
	for _, price := range []float64{50000, 123456.78, 2500000} {
		in := scenarioA()
		in.AskingPrice = price
		in.NotaryCost = 900
		in.ContingencyCapex = nil
		in.InterestRatePct = 7

		res, err := Analyze(in, netYieldSpec())
		require.NoError(t, err)

		assert.Zero(t, res.LoanAmount)
		assert.Zero(t, res.MonthlyPayment)
		assert.Equal(t, res.TotalInvestment, res.EquityRequired)
	}
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	first, err := Analyze(scenarioB(), cashOnCashSpec())
	require.NoError(t, err)
	second, err := Analyze(scenarioB(), cashOnCashSpec())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_RejectsInvalidDealWithoutResult(t *testing.T) {
	in := scenarioA()
	in.RentRoll = nil

	res, err := Analyze(in, netYieldSpec())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.AnalysisResult{}, res)
}

func TestEvaluation_MetricUnknown(t *testing.T) {
	eval := Evaluate(mustBuild(scenarioA()))
	assert.Nil(t, eval.Metric("irr"))
}
