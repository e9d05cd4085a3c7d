package rule

import "errors"

var (
	ErrRuleNotFound      = errors.New("penalty rule not found")
	ErrRuleWindowOverlap = errors.New("rule window overlaps an existing rule for the same indicator")
)
