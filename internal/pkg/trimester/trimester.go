// Package trimester maps calendar dates to fiscal quarters ("YYYY-QN") and
// derives the canonical payout date for each quarter.
package trimester

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var quarterRegex = regexp.MustCompile(`^(\d{4})-Q([1-4])$`)

// Of returns the quarter identifier for a date, e.g. 2025-05-02 -> "2025-Q2".
func Of(date time.Time) string {
	quarter := (int(date.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", date.Year(), quarter)
}

// Parse splits a "YYYY-QN" identifier into year and quarter number.
func Parse(quarter string) (year int, q int, err error) {
	m := quarterRegex.FindStringSubmatch(quarter)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid quarter %q, expected YYYY-QN", quarter)
	}
	year, _ = strconv.Atoi(m[1])
	q, _ = strconv.Atoi(m[2])
	return year, q, nil
}

// IsValid reports whether quarter is a well-formed "YYYY-QN" identifier.
func IsValid(quarter string) bool {
	return quarterRegex.MatchString(quarter)
}

// PayoutDate returns the payout date for a quarter: Q1 pays Apr 15, Q2 Jul 15,
// Q3 Oct 15 and Q4 Jan 15 of the following year.
func PayoutDate(quarter string) (time.Time, error) {
	year, q, err := Parse(quarter)
	if err != nil {
		return time.Time{}, err
	}
	switch q {
	case 1:
		return time.Date(year, time.April, 15, 0, 0, 0, 0, time.UTC), nil
	case 2:
		return time.Date(year, time.July, 15, 0, 0, 0, 0, time.UTC), nil
	case 3:
		return time.Date(year, time.October, 15, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Date(year+1, time.January, 15, 0, 0, 0, 0, time.UTC), nil
	}
}

// Bounds returns the first and last calendar day of a quarter.
func Bounds(quarter string) (start, end time.Time, err error) {
	year, q, err := Parse(quarter)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the following month normalizes to the last day of this one.
	end = time.Date(year, time.Month(q*3+1), 0, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

// Compare orders two quarter identifiers: -1 when a precedes b, 0 when equal,
// +1 when a follows b. Malformed identifiers compare as zero values.
func Compare(a, b string) int {
	ay, aq, _ := Parse(a)
	by, bq, _ := Parse(b)
	switch {
	case ay != by:
		if ay < by {
			return -1
		}
		return 1
	case aq != bq:
		if aq < bq {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// MonthBucket returns the "YYYY-MM" bucket for a date.
func MonthBucket(date time.Time) string {
	return date.Format("2006-01")
}
