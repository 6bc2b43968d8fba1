package engine

import "github.com/mamadbah2/dealyield/internal/domain/models"

func ptr(v float64) *float64 { return &v }

// scenarioA is a 200k unfinanced flat let at 1000/month with no acquisition
// costs.
func scenarioA() models.DealInput {
	return models.DealInput{
		Name:             "Calle Mayor 12",
		City:             "Madrid",
		AssetType:        "residential",
		AskingPrice:      200000,
		ContingencyCapex: ptr(0),
		RentRoll: []models.RentRollEntry{
			{UnitType: models.UnitHousing, Reference: "1A", MonthlyRent: 1000, Status: models.OccupancyLet},
		},
	}
}

// scenarioB is scenarioA financed at 70% LTV, 5% over 20 years.
func scenarioB() models.DealInput {
	in := scenarioA()
	in.UsesFinancing = true
	in.LoanToValuePct = 70
	in.InterestRatePct = 5
	in.TermYears = 20
	return in
}

func mustBuild(in models.DealInput) models.Deal {
	d, err := BuildDeal(in)
	if err != nil {
		panic(err)
	}
	return d
}

func netYieldSpec() models.SensitivitySpec {
	return models.SensitivitySpec{
		Metric:  models.MetricNetYield,
		Rows:    models.Axis{Parameter: models.ParamAskingPrice, Mode: models.StepRelative, Steps: []float64{-10, 0, 10}},
		Columns: models.Axis{Parameter: models.ParamMonthlyRent, Mode: models.StepRelative, Steps: []float64{-10, 0, 10}},
	}
}

func cashOnCashSpec() models.SensitivitySpec {
	return models.SensitivitySpec{
		Metric:  models.MetricCashOnCash,
		Rows:    models.Axis{Parameter: models.ParamInterestRate, Mode: models.StepAbsolute, Steps: []float64{-1, 0, 1}},
		Columns: models.Axis{Parameter: models.ParamVacancyAllowance, Mode: models.StepAbsolute, Steps: []float64{-5, 0, 5}},
	}
}
