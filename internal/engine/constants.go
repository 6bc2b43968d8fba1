package engine

const (
	DefaultContingency         = 10.0 // absolute currency amount
	DefaultVacancyAllowancePct = 5.0

	// MaxAmount bounds every currency input so that totals stay finite.
	MaxAmount = 1e12
	// MinAskingPrice keeps yields on the price finite.
	MinAskingPrice = 1.0

	MaxPercent           = 100.0
	MaxInterestRatePct   = 30.0
	MaxOriginationFeePct = 10.0
	MinTermYears         = 1
	MaxTermYears         = 40

	monthsPerYear = 12

	// Sensitivity grid limits.
	MaxAxisSteps       = 15
	DefaultGridWorkers = 4
)
