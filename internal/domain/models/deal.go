package models

// UnitType classifies a rent-roll line.
type UnitType string

const (
	UnitHousing UnitType = "housing"
	UnitGarage  UnitType = "garage"
	UnitRetail  UnitType = "retail"
	UnitStorage UnitType = "storage"
	UnitOffice  UnitType = "office"
	UnitOther   UnitType = "other"
)

// OccupancyStatus is informational; vacancy loss is modelled through the
// vacancy allowance, not by dropping units.
type OccupancyStatus string

const (
	OccupancyLet             OccupancyStatus = "let"
	OccupancyVacant          OccupancyStatus = "vacant"
	OccupancyUnderRenovation OccupancyStatus = "under_renovation"
)

// RentRollEntry is one income-producing sub-unit of a property.
type RentRollEntry struct {
	UnitType    UnitType        `bson:"unit_type" json:"unit_type"`
	Reference   string          `bson:"reference" json:"reference"`
	AreaSqm     *float64        `bson:"area_sqm,omitempty" json:"area_sqm,omitempty"`
	MonthlyRent float64         `bson:"monthly_rent" json:"monthly_rent"`
	Status      OccupancyStatus `bson:"status" json:"status"`
	Notes       string          `bson:"notes,omitempty" json:"notes,omitempty"`
}

// TransactionCosts are one-off purchase costs paid on top of the price.
type TransactionCosts struct {
	Notary           float64 `bson:"notary" json:"notary"`
	Registry         float64 `bson:"registry" json:"registry"`
	TransferTax      float64 `bson:"transfer_tax" json:"transfer_tax"`
	AgencyCommission float64 `bson:"agency_commission" json:"agency_commission"`
	Other            float64 `bson:"other" json:"other"`
}

// Capex groups capital expenditure planned at acquisition.
type Capex struct {
	Renovation  float64 `bson:"renovation" json:"renovation"`
	Contingency float64 `bson:"contingency" json:"contingency"`
	Other       float64 `bson:"other" json:"other"`
}

// OperatingCosts are recurring costs. Amounts are annual except
// CommunityFeeMonthly; *Pct fields are percentages in [0, 100].
type OperatingCosts struct {
	PropertyTax          float64 `bson:"property_tax" json:"property_tax"`
	CommunityFeeMonthly  float64 `bson:"community_fee_monthly" json:"community_fee_monthly"`
	Insurance            float64 `bson:"insurance" json:"insurance"`
	Maintenance          float64 `bson:"maintenance" json:"maintenance"`
	ManagementFeePct     float64 `bson:"management_fee_pct" json:"management_fee_pct"`
	VacancyAllowancePct  float64 `bson:"vacancy_allowance_pct" json:"vacancy_allowance_pct"`
	LeasingCommissionPct float64 `bson:"leasing_commission_pct" json:"leasing_commission_pct"`
	OtherAnnual          float64 `bson:"other_annual" json:"other_annual"`
}

// Financing holds the loan terms. Terms are zero when UsesFinancing is false.
type Financing struct {
	UsesFinancing     bool    `bson:"uses_financing" json:"uses_financing"`
	LoanToValuePct    float64 `bson:"loan_to_value_pct" json:"loan_to_value_pct"`
	InterestRatePct   float64 `bson:"interest_rate_pct" json:"interest_rate_pct"`
	TermYears         int     `bson:"term_years" json:"term_years"`
	OriginationFeePct float64 `bson:"origination_fee_pct" json:"origination_fee_pct"`
}

// Deal is the normalized, fully-defaulted input of one analysis run.
// Build it with engine.BuildDeal; treat it as a value.
type Deal struct {
	Name             string           `bson:"name" json:"name"`
	Address          string           `bson:"address" json:"address"`
	City             string           `bson:"city" json:"city"`
	AssetType        string           `bson:"asset_type" json:"asset_type"`
	AskingPrice      float64          `bson:"asking_price" json:"asking_price"`
	TransactionCosts TransactionCosts `bson:"transaction_costs" json:"transaction_costs"`
	Capex            Capex            `bson:"capex" json:"capex"`
	OperatingCosts   OperatingCosts   `bson:"operating_costs" json:"operating_costs"`
	Financing        Financing        `bson:"financing" json:"financing"`
	RentRoll         []RentRollEntry  `bson:"rent_roll" json:"rent_roll"`
}

// Clone returns a deep copy so perturbations never alias the original rent roll.
func (d Deal) Clone() Deal {
	out := d
	out.RentRoll = make([]RentRollEntry, len(d.RentRoll))
	for i, entry := range d.RentRoll {
		if entry.AreaSqm != nil {
			area := *entry.AreaSqm
			entry.AreaSqm = &area
		}
		out.RentRoll[i] = entry
	}
	return out
}

// DealInput is the raw parameter bag received from callers. Nil pointers
// mean "use the documented default".
type DealInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	AssetType string `json:"asset_type"`

	AskingPrice float64 `json:"asking_price"`

	NotaryCost       float64 `json:"notary_cost"`
	RegistryCost     float64 `json:"registry_cost"`
	TransferTax      float64 `json:"transfer_tax"`
	AgencyCommission float64 `json:"agency_commission"`
	OtherPurchase    float64 `json:"other_purchase_costs"`

	RenovationCapex  float64  `json:"renovation_capex"`
	ContingencyCapex *float64 `json:"contingency_capex"`
	OtherCapex       float64  `json:"other_capex"`

	PropertyTax          float64  `json:"property_tax"`
	CommunityFeeMonthly  float64  `json:"community_fee_monthly"`
	Insurance            float64  `json:"insurance"`
	Maintenance          float64  `json:"maintenance"`
	ManagementFeePct     float64  `json:"management_fee_pct"`
	VacancyAllowancePct  *float64 `json:"vacancy_allowance_pct"`
	LeasingCommissionPct float64  `json:"leasing_commission_pct"`
	OtherAnnualCosts     float64  `json:"other_annual_costs"`

	UsesFinancing     bool    `json:"uses_financing"`
	LoanToValuePct    float64 `json:"loan_to_value_pct"`
	InterestRatePct   float64 `json:"interest_rate_pct"`
	TermYears         int     `json:"term_years"`
	OriginationFeePct float64 `json:"origination_fee_pct"`

	RentRoll []RentRollEntry `json:"rent_roll"`
}
