package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PropertyVariant tags which detail payload a property carries.
type PropertyVariant string

const (
	VariantLTR PropertyVariant = "ltr" // long-term rental
	VariantSTR PropertyVariant = "str" // short-term rental
)

// ValidVariant reports whether v is a known variant tag.
func ValidVariant(v PropertyVariant) bool {
	switch v {
	case VariantLTR, VariantSTR:
		return true
	}
	return false
}

// ExpenseTiming says when a manual capital expense hits the investor.
type ExpenseTiming string

const (
	TimingImmediate ExpenseTiming = "immediate" // paid at or before closing
	TimingYear1     ExpenseTiming = "year_1"    // paid during the first year of ownership
)

// ManualExpense is a user-entered capital expenditure line item.
type ManualExpense struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	EstimatedCost float64       `json:"estimated_cost"`
	Timing        ExpenseTiming `json:"timing"`
}

// SharedDetails holds the acquisition and financing inputs common to every variant.
type SharedDetails struct {
	PurchasePrice    float64 `json:"purchase_price"`
	DownPayment      float64 `json:"down_payment"`
	LoanAmount       float64 `json:"loan_amount"`       // original loan principal
	RemainingBalance float64 `json:"remaining_balance"` // current principal; 0 means use LoanAmount
	InterestRate     float64 `json:"interest_rate"`     // annual %, 0-100
	LoanTermYears    int     `json:"loan_term_years"`
	ClosingCosts     float64 `json:"closing_costs"`
}

// LTRDetails holds long-term rental income and operating inputs.
type LTRDetails struct {
	MonthlyRentPerUnit         float64 `json:"monthly_rent_per_unit"`
	Units                      int     `json:"units"`
	PropertyManagementPct      float64 `json:"property_management_pct"`
	AnnualTax                  float64 `json:"annual_tax"`
	AnnualInsurance            float64 `json:"annual_insurance"`
	MonthlyRepairReserve       float64 `json:"monthly_repair_reserve"`
	VeteranOccupancyTargetPct  float64 `json:"veteran_occupancy_target_pct,omitempty"`
	VeteranOccupancyCurrentPct float64 `json:"veteran_occupancy_current_pct,omitempty"`
}

// STRDetails holds short-term rental income and operating inputs.
type STRDetails struct {
	NightlyRate          float64 `json:"nightly_rate"`
	DaysPerMonth         float64 `json:"days_per_month"`
	OccupancyRatePct     float64 `json:"occupancy_rate_pct"`
	CoHostFeePct         float64 `json:"co_host_fee_pct"`
	CleaningFeePerStay   float64 `json:"cleaning_fee_per_stay"`
	AverageStaysPerMonth float64 `json:"average_stays_per_month"`
	MonthlyUtilities     float64 `json:"monthly_utilities"`
	AnnualTax            float64 `json:"annual_tax"`
	AnnualInsurance      float64 `json:"annual_insurance"`
}

// Property is the engine input. Exactly one of LTR or STR is populated,
// selected by Variant.
type Property struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address,omitempty"`
	Variant        PropertyVariant `json:"variant"`
	Shared         SharedDetails   `json:"shared"`
	LTR            *LTRDetails     `json:"ltr,omitempty"`
	STR            *STRDetails     `json:"str,omitempty"`
	ManualExpenses []ManualExpense `json:"manual_expenses,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewLTRProperty builds a long-term rental property with the LTR payload set.
func NewLTRProperty(name string, shared SharedDetails, details LTRDetails) Property {
	return Property{Name: name, Variant: VariantLTR, Shared: shared, LTR: &details}
}

// NewSTRProperty builds a short-term rental property with the STR payload set.
func NewSTRProperty(name string, shared SharedDetails, details STRDetails) Property {
	return Property{Name: name, Variant: VariantSTR, Shared: shared, STR: &details}
}

// VariantDetails is the sealed set of per-variant payloads: *LTRDetails or *STRDetails.
type VariantDetails interface {
	variant() PropertyVariant
}

func (*LTRDetails) variant() PropertyVariant { return VariantLTR }
func (*STRDetails) variant() PropertyVariant { return VariantSTR }

// Details returns the payload matching the variant tag, or nil when the tag is
// unknown or its payload is missing.
func (p Property) Details() VariantDetails {
	switch p.Variant {
	case VariantLTR:
		if p.LTR != nil {
			return p.LTR
		}
	case VariantSTR:
		if p.STR != nil {
			return p.STR
		}
	}
	return nil
}

// Validate checks a property for negative, non-finite, or out-of-range inputs and
// for a variant tag that does not match its payload. The metrics engine does not
// call Validate; it is applied where properties enter the system.
func (p Property) Validate() error {
	if !ValidVariant(p.Variant) {
		return fmt.Errorf("invalid property variant %q: must be ltr or str", p.Variant)
	}
	if len(p.Name) > 200 {
		return fmt.Errorf("property name exceeds maximum length of 200 characters")
	}

	s := p.Shared
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"purchase_price", s.PurchasePrice},
		{"down_payment", s.DownPayment},
		{"loan_amount", s.LoanAmount},
		{"remaining_balance", s.RemainingBalance},
		{"closing_costs", s.ClosingCosts},
	} {
		if err := nonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if err := percent("interest_rate", s.InterestRate); err != nil {
		return err
	}
	if s.LoanTermYears < 0 {
		return fmt.Errorf("loan_term_years must be non-negative, got %d", s.LoanTermYears)
	}

	switch p.Variant {
	case VariantLTR:
		if p.LTR == nil {
			return fmt.Errorf("ltr details are required for an ltr property")
		}
		if p.STR != nil {
			return fmt.Errorf("str details must be empty for an ltr property")
		}
		if err := p.LTR.validate(); err != nil {
			return err
		}
	case VariantSTR:
		if p.STR == nil {
			return fmt.Errorf("str details are required for an str property")
		}
		if p.LTR != nil {
			return fmt.Errorf("ltr details must be empty for an str property")
		}
		if err := p.STR.validate(); err != nil {
			return err
		}
	}

	for i, e := range p.ManualExpenses {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("manual expense %d: name is required", i)
		}
		if err := nonNegative("estimated_cost", e.EstimatedCost); err != nil {
			return fmt.Errorf("manual expense %q: %w", e.Name, err)
		}
		if e.Timing != TimingImmediate && e.Timing != TimingYear1 {
			return fmt.Errorf("manual expense %q: invalid timing %q: must be immediate or year_1", e.Name, e.Timing)
		}
	}
	return nil
}

func (d *LTRDetails) validate() error {
	if d.Units < 0 {
		return fmt.Errorf("units must be non-negative, got %d", d.Units)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"monthly_rent_per_unit", d.MonthlyRentPerUnit},
		{"annual_tax", d.AnnualTax},
		{"annual_insurance", d.AnnualInsurance},
		{"monthly_repair_reserve", d.MonthlyRepairReserve},
	} {
		if err := nonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"property_management_pct", d.PropertyManagementPct},
		{"veteran_occupancy_target_pct", d.VeteranOccupancyTargetPct},
		{"veteran_occupancy_current_pct", d.VeteranOccupancyCurrentPct},
	} {
		if err := percent(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (d *STRDetails) validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"nightly_rate", d.NightlyRate},
		{"days_per_month", d.DaysPerMonth},
		{"cleaning_fee_per_stay", d.CleaningFeePerStay},
		{"average_stays_per_month", d.AverageStaysPerMonth},
		{"monthly_utilities", d.MonthlyUtilities},
		{"annual_tax", d.AnnualTax},
		{"annual_insurance", d.AnnualInsurance},
	} {
		if err := nonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if d.DaysPerMonth > 31 {
		return fmt.Errorf("days_per_month must be at most 31, got %.2f", d.DaysPerMonth)
	}
	if err := percent("occupancy_rate_pct", d.OccupancyRatePct); err != nil {
		return err
	}
	return percent("co_host_fee_pct", d.CoHostFeePct)
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if v < 0 {
		return fmt.Errorf("%s must be non-negative, got %.2f", name, v)
	}
	return nil
}

func percent(name string, v float64) error {
	if err := nonNegative(name, v); err != nil {
		return err
	}
	if v > 100 {
		return fmt.Errorf("%s must be at most 100, got %.2f", name, v)
	}
	return nil
}
