package structure

import "math"

// EnforcementStatus is the tax FSM's classification of an unpaid structure,
// driven off elapsed ticks since unpaid_since_tick (spec.md section 4.8).
type EnforcementStatus uint8

const (
	Current EnforcementStatus = iota
	InGrace
	UnderSeizureRisk
	Seize
)

func (e EnforcementStatus) String() string {
	switch e {
	case Current:
		return "CURRENT"
	case InGrace:
		return "IN_GRACE"
	case UnderSeizureRisk:
		return "UNDER_SEIZURE_RISK"
	case Seize:
		return "SEIZE"
	}
	return "UNKNOWN"
}

// TaxParams holds the FSM's tunable parameters (spec.md section 4.8
// defaults).
type TaxParams struct {
	Rate        float64 `yaml:"rate"`          // default 0.05
	CadenceDays int     `yaml:"cadence_days"`  // default 7
	GraceDays   int     `yaml:"grace_days"`    // default 14
	SeizureDays int     `yaml:"seizure_days"`  // default 21
	TicksPerDay uint64  `yaml:"ticks_per_day"`
}

// DefaultTaxParams returns spec.md section 4.8's named defaults.
func DefaultTaxParams(ticksPerDay uint64) TaxParams {
	return TaxParams{Rate: 0.05, CadenceDays: 7, GraceDays: 14, SeizureDays: 21, TicksPerDay: ticksPerDay}
}

// TaxRecord is the per-structure tax ledger (spec.md section 3).
type TaxRecord struct {
	StructureID     string
	LastTaxTick     uint64
	NextTaxDueTick  uint64
	TaxOwed         float64
	TaxPaid         float64
	UnpaidSinceTick *uint64
	TaxableIncome   float64
}

// Outstanding is tax_owed - tax_paid.
func (t *TaxRecord) Outstanding() float64 {
	return t.TaxOwed - t.TaxPaid
}

// ProcessCollection assesses one cadence period's tax against income,
// advancing next_due (spec.md section 4.8 step process_collection).
func (t *TaxRecord) ProcessCollection(income float64, now uint64, p TaxParams) {
	t.TaxableIncome = income
	t.TaxOwed += math.Floor(p.Rate * income)
	t.LastTaxTick = now
	t.NextTaxDueTick = now + uint64(p.CadenceDays)*p.TicksPerDay
}

// RecordPayment applies a payment, clearing unpaid_since_tick once the
// balance is fully settled (spec.md section 4.8 step record_payment).
func (t *TaxRecord) RecordPayment(amount float64) {
	t.TaxPaid += amount
	if t.Outstanding() <= 0 {
		t.UnpaidSinceTick = nil
	}
}

// UpdateEnforcement advances the FSM: the first time it observes the record
// unpaid with now >= next_due, it sets unpaid_since_tick to that next_due
// tick (not to now), then classifies the elapsed time since
// unpaid_since_tick into CURRENT/IN_GRACE/
// UNDER_SEIZURE_RISK/SEIZE per spec.md section 4.8 step update_enforcement.
func (t *TaxRecord) UpdateEnforcement(now uint64, p TaxParams) EnforcementStatus {
	if t.Outstanding() <= 0 {
		return Current
	}
	if now >= t.NextTaxDueTick && t.UnpaidSinceTick == nil {
		due := t.NextTaxDueTick
		t.UnpaidSinceTick = &due
	}
	if t.UnpaidSinceTick == nil {
		return Current
	}

	elapsed := now - *t.UnpaidSinceTick
	grace := uint64(p.GraceDays) * p.TicksPerDay
	seizure := uint64(p.SeizureDays) * p.TicksPerDay

	switch {
	case elapsed >= grace+seizure:
		return Seize
	case elapsed > grace:
		return UnderSeizureRisk
	case elapsed > 0:
		return InGrace
	default:
		return Current
	}
}
