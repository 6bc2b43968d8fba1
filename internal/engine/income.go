package engine

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// Income is the annual operating picture of a deal before financing.
type Income struct {
	AnnualGrossRent      float64
	EffectiveGrossIncome float64
	OperatingExpenses    float64
	NOI                  float64
}

// AggregateIncome rolls the rent roll and operating costs into NOI. Every
// rent-roll entry counts towards gross rent whatever its occupancy; vacancy
// is taken through the allowance percentage only.
func AggregateIncome(d models.Deal) Income {
	monthly := decimal.Zero
	for _, entry := range d.RentRoll {
		monthly = monthly.Add(dec(entry.MonthlyRent))
	}
	gross := monthly.Mul(decimal.NewFromInt(monthsPerYear))

	op := d.OperatingCosts
	egi := gross.Sub(pct(gross, op.VacancyAllowancePct))

	opex := sum(op.PropertyTax, op.Insurance, op.Maintenance, op.OtherAnnual).
		Add(dec(op.CommunityFeeMonthly).Mul(decimal.NewFromInt(monthsPerYear))).
		Add(pct(egi, op.ManagementFeePct)).
		Add(pct(egi, op.LeasingCommissionPct))

	return Income{
		AnnualGrossRent:      gross.InexactFloat64(),
		EffectiveGrossIncome: egi.InexactFloat64(),
		OperatingExpenses:    opex.InexactFloat64(),
		NOI:                  egi.Sub(opex).InexactFloat64(),
	}
}
