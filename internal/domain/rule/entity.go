package rule

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
)

type PenaltyRule struct {
	ID string
	// Indicator ties the rule to an attendance event type. Matching is
	// case-insensitive.
	Indicator string
	Period    Period
	// Occurrences at or below Tolerance incur no penalty.
	Tolerance int
	// Penalty percentage applied per excess occurrence.
	Representativeness decimal.Decimal
	// Additional percentage per occurrence beyond the first excess.
	SubsequentValue decimal.Decimal
	StartDate       time.Time
	EndDate         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CoversDate reports whether the rule's validity window contains d.
func (r *PenaltyRule) CoversDate(d time.Time) bool {
	if r.StartDate.After(d) {
		return false
	}
	return r.EndDate == nil || !r.EndDate.Before(d)
}
