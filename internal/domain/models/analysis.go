package models

import "time"

// Metric names an output figure the sensitivity table can report.
type Metric string

// Supported metrics.
const (
	MetricCashOnCash     Metric = "cash_on_cash"
	MetricNetYield       Metric = "net_yield"
	MetricGrossYield     Metric = "gross_yield"
	MetricPreTaxCashFlow Metric = "pre_tax_cash_flow"
	MetricPaybackYears   Metric = "payback_years"
)

// ValidMetric reports whether m is one of the supported metrics.
func ValidMetric(m Metric) bool {
	switch m {
	case MetricCashOnCash, MetricNetYield, MetricGrossYield, MetricPreTaxCashFlow, MetricPaybackYears:
		return true
	}
	return false
}

// Parameter names a deal input that a sensitivity axis can perturb.
type Parameter string

// Supported parameters. ParamMonthlyRent scales every rent-roll entry.
const (
	ParamAskingPrice      Parameter = "asking_price"
	ParamMonthlyRent      Parameter = "monthly_rent"
	ParamInterestRate     Parameter = "interest_rate"
	ParamVacancyAllowance Parameter = "vacancy_allowance"
	ParamLoanToValue      Parameter = "loan_to_value"
)

// StepMode tells how an axis step is applied to the base value.
type StepMode string

const (
	// StepAbsolute adds the step in the parameter's own unit.
	StepAbsolute StepMode = "absolute"
	// StepRelative changes the base value by step percent. On a zero base
	// every step yields zero, so the axis collapses to a single value.
	StepRelative StepMode = "relative"
)

// Axis is one dimension of a sensitivity grid.
type Axis struct {
	Parameter Parameter `bson:"parameter" json:"parameter"`
	Mode      StepMode  `bson:"mode" json:"mode"`
	Steps     []float64 `bson:"steps" json:"steps"`
}

// SensitivitySpec describes the grid to compute around a base deal.
type SensitivitySpec struct {
	Metric  Metric `bson:"metric" json:"metric"`
	Rows    Axis   `bson:"rows" json:"rows"`
	Columns Axis   `bson:"columns" json:"columns"`
}

// AxisValues are the concrete perturbed values along one axis.
type AxisValues struct {
	Parameter Parameter `bson:"parameter" json:"parameter"`
	Values    []float64 `bson:"values" json:"values"`
}

// SensitivityTable is the recomputed metric for every (row, column) pair.
// A nil cell means the metric is undefined for that perturbation.
type SensitivityTable struct {
	Metric  Metric       `bson:"metric" json:"metric"`
	Base    *float64     `bson:"base" json:"base"`
	Rows    AxisValues   `bson:"rows" json:"rows"`
	Columns AxisValues   `bson:"columns" json:"columns"`
	Cells   [][]*float64 `bson:"cells" json:"cells"`
}

// AnalysisResult holds the return metrics of one deal. Currency and
// percentage figures are rounded to 2 decimals.
type AnalysisResult struct {
	AnnualGrossRent        float64 `bson:"annual_gross_rent" json:"annual_gross_rent"`
	EffectiveGrossIncome   float64 `bson:"effective_gross_income" json:"effective_gross_income"`
	TotalOperatingExpenses float64 `bson:"total_operating_expenses" json:"total_operating_expenses"`
	NOI                    float64 `bson:"noi" json:"noi"`

	TotalTransactionCosts float64 `bson:"total_transaction_costs" json:"total_transaction_costs"`
	TotalCapex            float64 `bson:"total_capex" json:"total_capex"`
	TotalInvestment       float64 `bson:"total_investment" json:"total_investment"`

	LoanAmount         float64 `bson:"loan_amount" json:"loan_amount"`
	OriginationFee     float64 `bson:"origination_fee" json:"origination_fee"`
	EquityRequired     float64 `bson:"equity_required" json:"equity_required"`
	MonthlyPayment     float64 `bson:"monthly_payment" json:"monthly_payment"`
	AnnualDebtService  float64 `bson:"annual_debt_service" json:"annual_debt_service"`
	FirstYearInterest  float64 `bson:"first_year_interest" json:"first_year_interest"`
	FirstYearPrincipal float64 `bson:"first_year_principal" json:"first_year_principal"`

	PreTaxCashFlow float64  `bson:"pre_tax_cash_flow" json:"pre_tax_cash_flow"`
	GrossYieldPct  float64  `bson:"gross_yield_pct" json:"gross_yield_pct"`
	NetYieldPct    float64  `bson:"net_yield_pct" json:"net_yield_pct"`
	CashOnCashPct  *float64 `bson:"cash_on_cash_pct" json:"cash_on_cash_pct"`
	PaybackYears   *float64 `bson:"payback_years" json:"payback_years"`

	Sensitivity *SensitivityTable `bson:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}

// AnalysisRequest is the body accepted by the analyses API.
type AnalysisRequest struct {
	Deal        DealInput        `json:"deal"`
	Sensitivity *SensitivitySpec `json:"sensitivity,omitempty"`
}

// AnalysisRecord is one persisted analysis, owned by a tenant.
type AnalysisRecord struct {
	ID          string          `bson:"_id" json:"id"`
	TenantID    string          `bson:"tenant_id" json:"tenant_id"`
	CreatedBy   string          `bson:"created_by" json:"created_by"`
	Fingerprint string          `bson:"fingerprint" json:"fingerprint"`
	Deal        Deal            `bson:"deal" json:"deal"`
	Sensitivity SensitivitySpec `bson:"sensitivity_spec" json:"sensitivity_spec"`
	Result      AnalysisResult  `bson:"result" json:"result"`
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
}

// Session identifies the caller resolved by the auth service.
type Session struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
}
