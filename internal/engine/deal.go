package engine

import (
	"fmt"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

var validUnitTypes = map[models.UnitType]bool{
	models.UnitHousing: true,
	models.UnitGarage:  true,
	models.UnitRetail:  true,
	models.UnitStorage: true,
	models.UnitOffice:  true,
	models.UnitOther:   true,
}

var validOccupancy = map[models.OccupancyStatus]bool{
	models.OccupancyLet:             true,
	models.OccupancyVacant:          true,
	models.OccupancyUnderRenovation: true,
}

// BuildDeal normalizes a raw parameter bag into a Deal: documented defaults
// are applied, financing terms are cleared when financing is off, and the
// result is validated. The input is not modified.
func BuildDeal(in models.DealInput) (models.Deal, error) {
	deal := models.Deal{
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		AssetType:   in.AssetType,
		AskingPrice: in.AskingPrice,
		TransactionCosts: models.TransactionCosts{
			Notary:           in.NotaryCost,
			Registry:         in.RegistryCost,
			TransferTax:      in.TransferTax,
			AgencyCommission: in.AgencyCommission,
			Other:            in.OtherPurchase,
		},
		Capex: models.Capex{
			Renovation:  in.RenovationCapex,
			Contingency: valueOr(in.ContingencyCapex, DefaultContingency),
			Other:       in.OtherCapex,
		},
		OperatingCosts: models.OperatingCosts{
			PropertyTax:          in.PropertyTax,
			CommunityFeeMonthly:  in.CommunityFeeMonthly,
			Insurance:            in.Insurance,
			Maintenance:          in.Maintenance,
			ManagementFeePct:     in.ManagementFeePct,
			VacancyAllowancePct:  valueOr(in.VacancyAllowancePct, DefaultVacancyAllowancePct),
			LeasingCommissionPct: in.LeasingCommissionPct,
			OtherAnnual:          in.OtherAnnualCosts,
		},
	}

	if in.UsesFinancing {
		deal.Financing = models.Financing{
			UsesFinancing:     true,
			LoanToValuePct:    in.LoanToValuePct,
			InterestRatePct:   in.InterestRatePct,
			TermYears:         in.TermYears,
			OriginationFeePct: in.OriginationFeePct,
		}
	}

	deal.RentRoll = make([]models.RentRollEntry, 0, len(in.RentRoll))
	for _, entry := range in.RentRoll {
		if entry.UnitType == "" {
			entry.UnitType = models.UnitHousing
		}
		if entry.Status == "" {
			entry.Status = models.OccupancyLet
		}
		if entry.AreaSqm != nil {
			area := *entry.AreaSqm
			entry.AreaSqm = &area
		}
		deal.RentRoll = append(deal.RentRoll, entry)
	}

	if err := ValidateDeal(deal); err != nil {
		return models.Deal{}, err
	}
	return deal, nil
}

// ValidateDeal checks the structural and range constraints of a normalized
// deal. It returns a *ValidationError listing every violation.
func ValidateDeal(d models.Deal) error {
	var c collector

	if c.finite("asking_price", d.AskingPrice) {
		if d.AskingPrice <= 0 {
			c.add("asking_price", "must be > 0, got %g", d.AskingPrice)
		} else if d.AskingPrice < MinAskingPrice {
			c.add("asking_price", "must be at least %g, got %g", MinAskingPrice, d.AskingPrice)
		} else if d.AskingPrice > MaxAmount {
			c.add("asking_price", "must be at most %g, got %g", MaxAmount, d.AskingPrice)
		}
	}

	c.amount("notary_cost", d.TransactionCosts.Notary)
	c.amount("registry_cost", d.TransactionCosts.Registry)
	c.amount("transfer_tax", d.TransactionCosts.TransferTax)
	c.amount("agency_commission", d.TransactionCosts.AgencyCommission)
	c.amount("other_purchase_costs", d.TransactionCosts.Other)

	c.amount("renovation_capex", d.Capex.Renovation)
	c.amount("contingency_capex", d.Capex.Contingency)
	c.amount("other_capex", d.Capex.Other)

	op := d.OperatingCosts
	c.amount("property_tax", op.PropertyTax)
	c.amount("community_fee_monthly", op.CommunityFeeMonthly)
	c.amount("insurance", op.Insurance)
	c.amount("maintenance", op.Maintenance)
	c.within("management_fee_pct", op.ManagementFeePct, 0, MaxPercent)
	c.within("vacancy_allowance_pct", op.VacancyAllowancePct, 0, MaxPercent)
	c.within("leasing_commission_pct", op.LeasingCommissionPct, 0, MaxPercent)
	c.amount("other_annual_costs", op.OtherAnnual)

	if f := d.Financing; f.UsesFinancing {
		c.within("loan_to_value_pct", f.LoanToValuePct, 0, MaxPercent)
		c.within("interest_rate_pct", f.InterestRatePct, 0, MaxInterestRatePct)
		if f.TermYears < MinTermYears || f.TermYears > MaxTermYears {
			c.add("term_years", "must be between %d and %d, got %d", MinTermYears, MaxTermYears, f.TermYears)
		}
		c.within("origination_fee_pct", f.OriginationFeePct, 0, MaxOriginationFeePct)
	}

	if len(d.RentRoll) == 0 {
		c.add("rent_roll", "must contain at least one entry")
	}
	for i, entry := range d.RentRoll {
		prefix := fmt.Sprintf("rent_roll[%d]", i)
		if !validUnitTypes[entry.UnitType] {
			c.add(prefix+".unit_type", "unknown unit type %q", entry.UnitType)
		}
		if !validOccupancy[entry.Status] {
			c.add(prefix+".status", "unknown occupancy status %q", entry.Status)
		}
		c.amount(prefix+".monthly_rent", entry.MonthlyRent)
		if entry.AreaSqm != nil {
			c.nonNegative(prefix+".area_sqm", *entry.AreaSqm)
		}
	}

	return c.err()
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
