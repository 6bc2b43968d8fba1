package engine

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

var validParameters = map[models.Parameter]bool{
	models.ParamAskingPrice:      true,
	models.ParamMonthlyRent:      true,
	models.ParamInterestRate:     true,
	models.ParamVacancyAllowance: true,
	models.ParamLoanToValue:      true,
}

// ValidateSpec checks a sensitivity spec against the deal it will perturb.
func ValidateSpec(d models.Deal, spec models.SensitivitySpec) error {
	var c collector

	if !models.ValidMetric(spec.Metric) {
		c.add("sensitivity.metric", "unknown metric %q", spec.Metric)
	}
	validateAxis(&c, "sensitivity.rows", d, spec.Rows)
	validateAxis(&c, "sensitivity.columns", d, spec.Columns)
	if spec.Rows.Parameter != "" && spec.Rows.Parameter == spec.Columns.Parameter {
		c.add("sensitivity.columns.parameter", "must differ from the rows parameter %q", spec.Rows.Parameter)
	}

	return c.err()
}

func validateAxis(c *collector, prefix string, d models.Deal, axis models.Axis) {
	if !validParameters[axis.Parameter] {
		c.add(prefix+".parameter", "unknown parameter %q", axis.Parameter)
	} else if isFinancingParam(axis.Parameter) && !d.Financing.UsesFinancing {
		c.add(prefix+".parameter", "%q requires a financed deal", axis.Parameter)
	}
	if axis.Mode != models.StepAbsolute && axis.Mode != models.StepRelative {
		c.add(prefix+".mode", "must be %q or %q", models.StepAbsolute, models.StepRelative)
	}
	if len(axis.Steps) == 0 || len(axis.Steps) > MaxAxisSteps {
		c.add(prefix+".steps", "must hold between 1 and %d steps, got %d", MaxAxisSteps, len(axis.Steps))
	}
	values := axisValues(d, axis)
	for i, step := range axis.Steps {
		field := fmt.Sprintf("%s.steps[%d]", prefix, i)
		if c.finite(field, step) && (math.IsInf(values[i], 0) || math.IsNaN(values[i])) {
			c.add(field, "moves %s out of the representable range", axis.Parameter)
		}
	}
}

func isFinancingParam(p models.Parameter) bool {
	return p == models.ParamInterestRate || p == models.ParamLoanToValue
}

// Sensitivity recomputes spec.Metric over the grid of perturbed deals. The
// base deal is never modified.
func (a *Analyzer) Sensitivity(d models.Deal, spec models.SensitivitySpec) (*models.SensitivityTable, error) {
	if err := ValidateDeal(d); err != nil {
		return nil, err
	}
	if err := ValidateSpec(d, spec); err != nil {
		return nil, err
	}
	return a.table(d, Evaluate(d), spec), nil
}

func (a *Analyzer) table(d models.Deal, base Evaluation, spec models.SensitivitySpec) *models.SensitivityTable {
	rows := axisValues(d, spec.Rows)
	cols := axisValues(d, spec.Columns)

	cells := make([][]*float64, len(rows))
	for i := range cells {
		cells[i] = make([]*float64, len(cols))
	}

	workers := a.workers
	if workers <= 0 {
		workers = DefaultGridWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, rv := range rows {
		for j, cv := range cols {
			g.Go(func() error {
				// A cell that panics is reported as null.
				defer func() {
					if recover() != nil {
						cells[i][j] = nil
					}
				}()
				cells[i][j] = cell(d, spec, rv, cv)
				return nil
			})
		}
	}
	_ = g.Wait()

	return &models.SensitivityTable{
		Metric:  spec.Metric,
		Base:    round2Ptr(base.Metric(spec.Metric)),
		Rows:    models.AxisValues{Parameter: spec.Rows.Parameter, Values: roundAll(rows)},
		Columns: models.AxisValues{Parameter: spec.Columns.Parameter, Values: roundAll(cols)},
		Cells:   cells,
	}
}

// cell evaluates one perturbed copy of d. Perturbations that leave the valid
// input range yield nil.
func cell(d models.Deal, spec models.SensitivitySpec, rowValue, colValue float64) *float64 {
	p := d.Clone()
	setParam(&p, spec.Rows.Parameter, rowValue)
	setParam(&p, spec.Columns.Parameter, colValue)
	if ValidateDeal(p) != nil {
		return nil
	}
	return round2Ptr(Evaluate(p).Metric(spec.Metric))
}

func axisValues(d models.Deal, axis models.Axis) []float64 {
	base := paramValue(d, axis.Parameter)
	out := make([]float64, len(axis.Steps))
	for i, step := range axis.Steps {
		if axis.Mode == models.StepRelative {
			out[i] = base * (1 + step/100)
		} else {
			out[i] = base + step
		}
	}
	return out
}

func paramValue(d models.Deal, p models.Parameter) float64 {
	switch p {
	case models.ParamAskingPrice:
		return d.AskingPrice
	case models.ParamMonthlyRent:
		return sum(monthlyRents(d)...).InexactFloat64()
	case models.ParamInterestRate:
		return d.Financing.InterestRatePct
	case models.ParamVacancyAllowance:
		return d.OperatingCosts.VacancyAllowancePct
	case models.ParamLoanToValue:
		return d.Financing.LoanToValuePct
	}
	return 0
}

func setParam(d *models.Deal, p models.Parameter, v float64) {
	switch p {
	case models.ParamAskingPrice:
		d.AskingPrice = v
	case models.ParamMonthlyRent:
		setTotalMonthlyRent(d, v)
	case models.ParamInterestRate:
		d.Financing.InterestRatePct = v
	case models.ParamVacancyAllowance:
		d.OperatingCosts.VacancyAllowancePct = v
	case models.ParamLoanToValue:
		d.Financing.LoanToValuePct = v
	}
}

// setTotalMonthlyRent rescales every entry so the rent roll totals v while
// keeping each unit's share. A zero-rent roll is split evenly.
func setTotalMonthlyRent(d *models.Deal, v float64) {
	total := sum(monthlyRents(*d)...)
	target := dec(v)
	if total.IsZero() {
		share := target.Div(dec(float64(len(d.RentRoll))))
		for i := range d.RentRoll {
			d.RentRoll[i].MonthlyRent = share.InexactFloat64()
		}
		return
	}
	for i := range d.RentRoll {
		d.RentRoll[i].MonthlyRent = dec(d.RentRoll[i].MonthlyRent).Mul(target).Div(total).InexactFloat64()
	}
}

func monthlyRents(d models.Deal) []float64 {
	out := make([]float64, len(d.RentRoll))
	for i, entry := range d.RentRoll {
		out[i] = entry.MonthlyRent
	}
	return out
}

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = round2(v)
	}
	return out
}
