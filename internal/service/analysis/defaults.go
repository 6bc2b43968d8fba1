package analysis

import "github.com/mamadbah2/dealyield/internal/domain/models"

const (
	// DefaultListLimit is used when a list request does not set a limit.
	DefaultListLimit = 20
	// MaxListLimit caps list requests.
	MaxListLimit = 100
)

// DefaultSpec returns the grid applied when a request carries none: interest
// rate by vacancy for financed deals, asking price by monthly rent otherwise.
func DefaultSpec(deal models.Deal, metric models.Metric) models.SensitivitySpec {
	if deal.Financing.UsesFinancing {
		return models.SensitivitySpec{
			Metric:  metric,
			Rows:    models.Axis{Parameter: models.ParamInterestRate, Mode: models.StepAbsolute, Steps: []float64{-1, -0.5, 0, 0.5, 1}},
			Columns: models.Axis{Parameter: models.ParamVacancyAllowance, Mode: models.StepAbsolute, Steps: []float64{-5, -2.5, 0, 2.5, 5}},
		}
	}
	return models.SensitivitySpec{
		Metric:  metric,
		Rows:    models.Axis{Parameter: models.ParamAskingPrice, Mode: models.StepRelative, Steps: []float64{-10, -5, 0, 5, 10}},
		Columns: models.Axis{Parameter: models.ParamMonthlyRent, Mode: models.StepRelative, Steps: []float64{-10, -5, 0, 5, 10}},
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
