package rule

import (
	"strings"
	"time"
)

// Resolve picks the rule governing an indicator on a given date.
// Among rules whose validity window contains the date, the one with
// the latest start date wins. A nil result means no penalty applies
// for that indicator; callers log a warning and move on.
func Resolve(rules []PenaltyRule, indicator string, at time.Time) *PenaltyRule {
	var best *PenaltyRule
	for i := range rules {
		r := &rules[i]
		if !strings.EqualFold(r.Indicator, indicator) {
			continue
		}
		if !r.CoversDate(at) {
			continue
		}
		if best == nil || r.StartDate.After(best.StartDate) {
			best = r
		}
	}
	return best
}
