package engine

import "github.com/mamadbah2/dealyield/internal/domain/models"

// Acquisition is the one-off capital needed to buy and prepare the asset.
type Acquisition struct {
	TransactionCosts float64
	Capex            float64
	TotalInvestment  float64
}

// AggregateAcquisition sums price, transaction costs and capex into Total
// Investment.
func AggregateAcquisition(d models.Deal) Acquisition {
	tc := d.TransactionCosts
	transaction := sum(tc.Notary, tc.Registry, tc.TransferTax, tc.AgencyCommission, tc.Other)
	capex := sum(d.Capex.Renovation, d.Capex.Contingency, d.Capex.Other)
	total := dec(d.AskingPrice).Add(transaction).Add(capex)

	return Acquisition{
		TransactionCosts: transaction.InexactFloat64(),
		Capex:            capex.InexactFloat64(),
		TotalInvestment:  total.InexactFloat64(),
	}
}
