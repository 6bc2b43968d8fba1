package engine

import (
	"math"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// Financing is the debt side of a deal.
type Financing struct {
	LoanAmount         float64
	OriginationFee     float64
	Equity             float64
	MonthlyPayment     float64
	AnnualDebtService  float64
	FirstYearInterest  float64
	FirstYearPrincipal float64
}

// Finance sizes the loan against total investment and amortizes it. Without
// financing the whole investment is equity.
//
// The origination fee is paid in cash: it raises the equity required and is
// not added to the principal.
func Finance(d models.Deal, totalInvestment float64) Financing {
	f := d.Financing
	if !f.UsesFinancing {
		return Financing{Equity: totalInvestment}
	}

	total := dec(totalInvestment)
	loan := pct(total, f.LoanToValuePct)
	fee := pct(loan, f.OriginationFeePct)
	equity := total.Sub(loan).Add(fee)

	principal := loan.InexactFloat64()
	months := f.TermYears * monthsPerYear
	payment := MonthlyPayment(principal, f.InterestRatePct, months)
	interest, repaid := FirstYearSplit(principal, f.InterestRatePct, payment, months)

	return Financing{
		LoanAmount:         principal,
		OriginationFee:     fee.InexactFloat64(),
		Equity:             equity.InexactFloat64(),
		MonthlyPayment:     payment,
		AnnualDebtService:  payment * monthsPerYear,
		FirstYearInterest:  interest,
		FirstYearPrincipal: repaid,
	}
}

// MonthlyPayment returns the constant payment that amortizes principal over
// months at the given annual rate (percent). A zero rate repays linearly.
func MonthlyPayment(principal, annualRatePct float64, months int) float64 {
	if months <= 0 || principal == 0 {
		return 0
	}
	r := annualRatePct / 100 / monthsPerYear
	if r == 0 {
		return principal / float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return principal * r * growth / (growth - 1)
}

// FirstYearSplit amortizes month by month over the first twelve payments
// (fewer if the loan is shorter) and returns the interest and principal paid.
func FirstYearSplit(principal, annualRatePct, payment float64, months int) (interest, repaid float64) {
	r := annualRatePct / 100 / monthsPerYear
	balance := principal
	for m := 0; m < monthsPerYear && m < months && balance > 0; m++ {
		i := balance * r
		p := payment - i
		if p > balance {
			p = balance
		}
		interest += i
		repaid += p
		balance -= p
	}
	return interest, repaid
}
