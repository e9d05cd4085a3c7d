package participation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
)

var hundred = decimal.NewFromInt(100)

// PenaltyResult is the aggregated penalty output for one employee's
// quarter.
type PenaltyResult struct {
	// DiscountPercent is clamped to [0, 100].
	DiscountPercent decimal.Decimal
	PenaltyAmount   decimal.Decimal
	Items           []participation.DiscountItem
	// Warnings collects missing-rule indicators. They do not block
	// computation.
	Warnings []string
}

// penaltyIndicators pairs each penalized category with the indicator
// name its rules are registered under. Compensation never penalizes
// and maternity leave has its own flat adjustment.
var penaltyIndicators = []struct {
	indicator string
	tally     func(*participation.CategoryCounts) *participation.Tally
}{
	{string(event.TypeLateness), func(c *participation.CategoryCounts) *participation.Tally { return &c.Lateness }},
	{string(event.TypeEarlyDeparture), func(c *participation.CategoryCounts) *participation.Tally { return &c.EarlyDeparture }},
	{string(event.TypeMedicalCertificate), func(c *participation.CategoryCounts) *participation.Tally { return &c.MedicalCertificate }},
	{string(event.TypeExcusedAbsence), func(c *participation.CategoryCounts) *participation.Tally { return &c.ExcusedAbsence }},
	{string(event.TypeUnexcusedAbsence), func(c *participation.CategoryCounts) *participation.Tally { return &c.UnexcusedAbsence }},
	{string(event.TypeHalfDayAbsence), func(c *participation.CategoryCounts) *participation.Tally { return &c.HalfDayAbsence }},
	{string(event.TypeFullDayAbsence), func(c *participation.CategoryCounts) *participation.Tally { return &c.FullDayAbsence }},
	{string(event.TypeForgottenClock), func(c *participation.CategoryCounts) *participation.Tally { return &c.ForgottenClock }},
	{string(event.TypeWarning), func(c *participation.CategoryCounts) *participation.Tally { return &c.Warning }},
}

// AggregatePenalties converts classified occurrence counts into a
// percentage discount and a monetary penalty. For each indicator whose
// occurrences exceed the rule's tolerance:
//
//	excess   = occurrences - tolerance
//	penalty% = representativeness*excess + subsequent*max(excess-1, 0)
//
// Maternity leave, when present and ruled, adds its representativeness
// once, regardless of occurrence count. The total discount is clamped
// at 100%.
func AggregatePenalties(sum Summary, rules []rule.PenaltyRule, gross decimal.Decimal, reference time.Time) PenaltyResult {
	result := PenaltyResult{
		DiscountPercent: decimal.Zero,
		PenaltyAmount:   decimal.Zero,
	}

	for _, entry := range penaltyIndicators {
		tally := entry.tally(&sum.Counts)
		if tally.Total == 0 {
			continue
		}

		r := rule.Resolve(rules, entry.indicator, reference)
		if r == nil {
			result.Warnings = append(result.Warnings, "no penalty rule for indicator "+entry.indicator)
			continue
		}
		if tally.Total <= r.Tolerance {
			continue
		}

		excess := decimal.NewFromInt(int64(tally.Total - r.Tolerance))
		subsequent := decimal.NewFromInt(int64(max(tally.Total-r.Tolerance-1, 0)))
		percent := r.Representativeness.Mul(excess).Add(r.SubsequentValue.Mul(subsequent))

		amount := decimal.Zero
		if gross.IsPositive() {
			amount = gross.Mul(percent).Div(hundred).Round(2)
		}

		result.DiscountPercent = result.DiscountPercent.Add(percent)
		result.PenaltyAmount = result.PenaltyAmount.Add(amount)
		result.Items = append(result.Items, participation.DiscountItem{
			Reason: fmt.Sprintf("%s: %d occurrences, tolerance %d", entry.indicator, tally.Total, r.Tolerance),
			Value:  amount,
		})
	}

	if sum.Counts.MaternityLeave.Total > 0 {
		r := rule.Resolve(rules, string(event.TypeMaternityLeave), reference)
		if r == nil {
			result.Warnings = append(result.Warnings, "no penalty rule for indicator "+string(event.TypeMaternityLeave))
		} else {
			amount := decimal.Zero
			if gross.IsPositive() {
				amount = gross.Mul(r.Representativeness).Div(hundred).Round(2)
			}
			result.DiscountPercent = result.DiscountPercent.Add(r.Representativeness)
			result.PenaltyAmount = result.PenaltyAmount.Add(amount)
			result.Items = append(result.Items, participation.DiscountItem{
				Reason: fmt.Sprintf("%s adjustment", event.TypeMaternityLeave),
				Value:  amount,
			})
		}
	}

	if result.DiscountPercent.GreaterThan(hundred) {
		result.DiscountPercent = hundred
	}

	return result
}
