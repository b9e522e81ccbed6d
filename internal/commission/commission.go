// Package commission computes platform fees. Two regimes exist: a
// tiered-by-value schedule used when reconciling receivables, and a
// percentage-by-delivery-mode lookup used at webhook time. Both keep
// 0 <= commission <= gross and net = gross - commission at two decimals.
package commission

import (
	"fmt"

	"github.com/and161185/paygate/internal/errs"
	"github.com/and161185/paygate/internal/model"
	"github.com/shopspring/decimal"
)

// Result is returned by both regimes. Tier is 1-based for the tiered
// schedule and 0 for the delivery-mode regime; it is persisted with the
// receivable so a later correction pass can tell which rule produced it.
type Result struct {
	Commission     decimal.Decimal
	Net            decimal.Decimal
	Tier           int
	AppliedPercent decimal.Decimal
}

// Tier is one bracket of the tiered schedule. MaxGross is the inclusive
// upper bound; a zero MaxGross marks the unbounded last tier.
type Tier struct {
	MaxGross decimal.Decimal
	Percent  decimal.Decimal
	FixedFee decimal.Decimal
	MinFee   decimal.Decimal
}

type TieredSchedule []Tier

// DefaultTieredSchedule is the reconciled schedule:
// up to 15 — 15% with a 0.50 floor, up to 50 — 10% plus 2, above — 6%.
func DefaultTieredSchedule() TieredSchedule {
	return TieredSchedule{
		{MaxGross: decimal.NewFromInt(15), Percent: decimal.NewFromInt(15), MinFee: decimal.RequireFromString("0.50")},
		{MaxGross: decimal.NewFromInt(50), Percent: decimal.NewFromInt(10), FixedFee: decimal.NewFromInt(2)},
		{Percent: decimal.NewFromInt(6)},
	}
}

// Validate checks that bounds strictly increase and only the last tier
// is unbounded.
func (s TieredSchedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty schedule: %w", errs.ErrBadSchedule)
	}
	prev := decimal.Zero
	for i, t := range s {
		last := i == len(s)-1
		if last {
			if !t.MaxGross.IsZero() {
				return fmt.Errorf("last tier must be unbounded: %w", errs.ErrBadSchedule)
			}
			continue
		}
		if t.MaxGross.IsZero() {
			return fmt.Errorf("tier %d unbounded before last: %w", i+1, errs.ErrBadSchedule)
		}
		if t.MaxGross.LessThanOrEqual(prev) {
			return fmt.Errorf("tier %d bound not increasing: %w", i+1, errs.ErrBadSchedule)
		}
		prev = t.MaxGross
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// round2 matches Math.round(x*100)/100: half-up on the cent value.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeTiered applies the tiered-by-value schedule to a gross amount.
func ComputeTiered(gross decimal.Decimal, schedule TieredSchedule) (Result, error) {
	if gross.LessThanOrEqual(decimal.Zero) {
		return Result{}, fmt.Errorf("gross %s: %w", gross, errs.ErrInvalidGross)
	}
	if err := schedule.Validate(); err != nil {
		return Result{}, err
	}

	for i, t := range schedule {
		if !t.MaxGross.IsZero() && gross.GreaterThan(t.MaxGross) {
			continue
		}

		fee := round2(gross.Mul(t.Percent).Div(hundred).Add(t.FixedFee))
		if t.MinFee.IsPositive() && fee.LessThan(t.MinFee) {
			fee = t.MinFee
		}
		if fee.GreaterThan(gross) {
			fee = gross
		}
		return Result{
			Commission:     fee,
			Net:            round2(gross.Sub(fee)),
			Tier:           i + 1,
			AppliedPercent: t.Percent,
		}, nil
	}

	// unreachable with a valid schedule
	return Result{}, errs.ErrBadSchedule
}

var maxModePercent = decimal.NewFromInt(50)

// ComputeByMode applies the delivery-mode percentage regime using the
// settings document. An unusable configured percentage (absent, negative
// or above 50) falls back to the configured flat default. The minimum
// floor is applied before the per-mode cap.
func ComputeByMode(gross decimal.Decimal, mode model.DeliveryMode, settings model.PaymentSettings) (Result, error) {
	if gross.LessThanOrEqual(decimal.Zero) {
		return Result{}, fmt.Errorf("gross %s: %w", gross, errs.ErrInvalidGross)
	}

	pct, ok := settings.ModePercents[mode]
	if !ok || pct.IsNegative() || pct.GreaterThan(maxModePercent) {
		pct = settings.FallbackPercent
	}
	if pct.IsNegative() || pct.GreaterThan(maxModePercent) {
		return Result{}, fmt.Errorf("fallback percent %s: %w", pct, errs.ErrBadSchedule)
	}

	fee := gross.Mul(pct).Div(hundred)
	if settings.CommissionMin.IsPositive() && fee.LessThan(settings.CommissionMin) {
		fee = settings.CommissionMin
	}
	if capAmt, ok := settings.ModeCaps[mode]; ok && capAmt.IsPositive() && fee.GreaterThan(capAmt) {
		fee = capAmt
	}
	if fee.GreaterThan(gross) {
		fee = gross
	}

	fee = round2(fee)
	return Result{
		Commission:     fee,
		Net:            round2(gross.Sub(fee)),
		Tier:           0,
		AppliedPercent: pct,
	}, nil
}
