package participation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
)

func latenessRule(tolerance int, representativeness, subsequent float64) rule.PenaltyRule {
	return rule.PenaltyRule{
		ID:                 "lateness-rule",
		Indicator:          string(event.TypeLateness),
		Period:             rule.PeriodQuarterly,
		Tolerance:          tolerance,
		Representativeness: decimal.NewFromFloat(representativeness),
		SubsequentValue:    decimal.NewFromFloat(subsequent),
		StartDate:          date(2024, 1, 1),
	}
}

func latenessSummary(count int) Summary {
	events := make([]event.AttendanceEvent, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, ev(event.TypeLateness, date(2025, 1, 6+i), 7, false))
	}
	return Classify(events)
}

func TestAggregatePenaltiesNoEvents(t *testing.T) {
	result := AggregatePenalties(Classify(nil), []rule.PenaltyRule{latenessRule(5, 2, 1)}, decimal.NewFromInt(1000), date(2025, 1, 1))

	assert.True(t, result.DiscountPercent.IsZero())
	assert.True(t, result.PenaltyAmount.IsZero())
	assert.Empty(t, result.Items)
	assert.Empty(t, result.Warnings)
}

func TestAggregatePenaltiesWithinTolerance(t *testing.T) {
	result := AggregatePenalties(latenessSummary(5), []rule.PenaltyRule{latenessRule(5, 2, 1)}, decimal.NewFromInt(1000), date(2025, 1, 6))

	assert.True(t, result.DiscountPercent.IsZero())
	assert.Empty(t, result.Items)
}

func TestAggregatePenaltiesSingleExcess(t *testing.T) {
	// 6 occurrences over tolerance 5: excess 1, no subsequent term.
	result := AggregatePenalties(latenessSummary(6), []rule.PenaltyRule{latenessRule(5, 2, 1)}, decimal.NewFromInt(1000), date(2025, 1, 6))

	assert.True(t, result.DiscountPercent.Equal(decimal.NewFromInt(2)), "got %s", result.DiscountPercent)
	assert.True(t, result.PenaltyAmount.Equal(decimal.NewFromInt(20)), "got %s", result.PenaltyAmount)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "lateness: 6 occurrences, tolerance 5", result.Items[0].Reason)
	assert.True(t, result.Items[0].Value.Equal(decimal.NewFromInt(20)))
}

func TestAggregatePenaltiesSubsequentExcess(t *testing.T) {
	// 8 occurrences over tolerance 5: excess 3, subsequent applies to 2.
	result := AggregatePenalties(latenessSummary(8), []rule.PenaltyRule{latenessRule(5, 2, 1)}, decimal.NewFromInt(1000), date(2025, 1, 6))

	// 2*3 + 1*2 = 8%
	assert.True(t, result.DiscountPercent.Equal(decimal.NewFromInt(8)), "got %s", result.DiscountPercent)
	assert.True(t, result.PenaltyAmount.Equal(decimal.NewFromInt(80)), "got %s", result.PenaltyAmount)
}

func TestAggregatePenaltiesRoundsAmountsToCents(t *testing.T) {
	// 0.35% of 953 = 3.3355, itemized as 3.34.
	result := AggregatePenalties(latenessSummary(6), []rule.PenaltyRule{latenessRule(5, 0.35, 0)}, decimal.NewFromInt(953), date(2025, 1, 6))

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Value.Equal(decimal.NewFromFloat(3.34)), "got %s", result.Items[0].Value)
	assert.True(t, result.PenaltyAmount.Equal(decimal.NewFromFloat(3.34)), "got %s", result.PenaltyAmount)
}

func TestAggregatePenaltiesMonotonic(t *testing.T) {
	rules := []rule.PenaltyRule{latenessRule(3, 2, 1)}
	prev := decimal.Zero
	for n := 0; n <= 20; n++ {
		result := AggregatePenalties(latenessSummary(n), rules, decimal.NewFromInt(1000), date(2025, 1, 6))
		assert.True(t, result.DiscountPercent.GreaterThanOrEqual(prev), "discount decreased at n=%d", n)
		prev = result.DiscountPercent
	}
}

func TestAggregatePenaltiesClampedAt100(t *testing.T) {
	result := AggregatePenalties(latenessSummary(60), []rule.PenaltyRule{latenessRule(0, 5, 5)}, decimal.NewFromInt(1000), date(2025, 1, 6))

	assert.True(t, result.DiscountPercent.Equal(decimal.NewFromInt(100)), "got %s", result.DiscountPercent)
}

func TestAggregatePenaltiesMissingRuleWarns(t *testing.T) {
	result := AggregatePenalties(latenessSummary(10), nil, decimal.NewFromInt(1000), date(2025, 1, 6))

	assert.True(t, result.DiscountPercent.IsZero())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "lateness")
}

func TestAggregatePenaltiesZeroGross(t *testing.T) {
	result := AggregatePenalties(latenessSummary(6), []rule.PenaltyRule{latenessRule(5, 2, 1)}, decimal.Zero, date(2025, 1, 6))

	assert.True(t, result.DiscountPercent.Equal(decimal.NewFromInt(2)))
	assert.True(t, result.PenaltyAmount.IsZero())
}

func TestAggregatePenaltiesMaternityFlat(t *testing.T) {
	maternity := rule.PenaltyRule{
		ID:                 "maternity-rule",
		Indicator:          string(event.TypeMaternityLeave),
		Period:             rule.PeriodQuarterly,
		Tolerance:          0,
		Representativeness: decimal.NewFromInt(30),
		SubsequentValue:    decimal.Zero,
		StartDate:          date(2024, 1, 1),
	}
	events := []event.AttendanceEvent{
		ev(event.TypeMaternityLeave, date(2025, 1, 6), 0, false),
		ev(event.TypeMaternityLeave, date(2025, 2, 6), 0, false),
		ev(event.TypeMaternityLeave, date(2025, 3, 6), 0, false),
	}

	result := AggregatePenalties(Classify(events), []rule.PenaltyRule{maternity}, decimal.NewFromInt(1000), date(2025, 1, 6))

	// Flat representativeness once, not scaled by the three occurrences.
	assert.True(t, result.DiscountPercent.Equal(decimal.NewFromInt(30)), "got %s", result.DiscountPercent)
	assert.True(t, result.PenaltyAmount.Equal(decimal.NewFromInt(300)))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "maternity_leave adjustment", result.Items[0].Reason)
}

func TestAggregatePenaltiesRuleWindowSelection(t *testing.T) {
	old := latenessRule(5, 2, 1)
	old.StartDate = date(2023, 1, 1)
	current := latenessRule(5, 4, 2)
	current.StartDate = date(2025, 1, 1)

	result := AggregatePenalties(latenessSummary(6), []rule.PenaltyRule{old, current}, decimal.NewFromInt(1000), date(2025, 1, 6))

	// The 2025 rule wins for a 2025 reference date.
	assert.True(t, result.DiscountPercent.Equal(decimal.NewFromInt(4)), "got %s", result.DiscountPercent)
}
