package engine

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// pct returns base × p/100.
func pct(base decimal.Decimal, p float64) decimal.Decimal {
	return base.Mul(dec(p)).Div(hundred)
}

func sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(dec(v))
	}
	return total
}

// round2 rounds half away from zero to 2 decimals. Only used when a figure
// leaves the engine.
func round2(v float64) float64 {
	return dec(v).Round(2).InexactFloat64()
}

func round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
