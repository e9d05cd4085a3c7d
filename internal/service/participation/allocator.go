package participation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
)

// GrossAllocation is the quarter's per-head gross split by sector
// class.
type GrossAllocation struct {
	PerHeadBase        decimal.Decimal
	RevenueSectorGross decimal.Decimal
	OtherSectorGross   decimal.Decimal
}

// AllocateGross derives the per-head gross values from the quarter's
// revenue configuration and the eligible headcounts. A zero headcount
// zeroes the corresponding share instead of dividing by it. Grosses
// above warnThreshold produce warnings, not errors.
func AllocateGross(cfg participation.RevenueConfig, eligible, revenueHeads, otherHeads int, warnThreshold decimal.Decimal) (GrossAllocation, []string) {
	baseNormal := cfg.NormalRevenue.Sub(cfg.NormalDeduction).Mul(cfg.NormalShare).Div(hundred)
	baseDifferentiated := cfg.DifferentiatedRevenue.Sub(cfg.DifferentiatedDeduction).Mul(cfg.DifferentiatedShare).Div(hundred)

	var alloc GrossAllocation
	var warnings []string

	perHead := decimal.Zero
	if eligible > 0 {
		perHead = baseNormal.Div(decimal.NewFromInt(int64(eligible)))
	} else {
		warnings = append(warnings, "no eligible employees, base share is zero")
	}
	alloc.PerHeadBase = perHead

	revenueExtra := decimal.Zero
	if revenueHeads > 0 {
		revenueExtra = baseDifferentiated.Mul(cfg.RevenueSectorShare).Div(hundred).Div(decimal.NewFromInt(int64(revenueHeads)))
	} else {
		warnings = append(warnings, "no eligible employees in revenue sectors")
	}

	otherExtra := decimal.Zero
	if otherHeads > 0 {
		otherExtra = baseDifferentiated.Mul(cfg.OtherSectorShare).Div(hundred).Div(decimal.NewFromInt(int64(otherHeads)))
	} else {
		warnings = append(warnings, "no eligible employees outside revenue sectors")
	}

	// Per-class gross is money, stored to cents.
	alloc.RevenueSectorGross = perHead.Add(revenueExtra).Round(2)
	alloc.OtherSectorGross = perHead.Add(otherExtra).Round(2)

	if alloc.RevenueSectorGross.GreaterThan(warnThreshold) {
		warnings = append(warnings, fmt.Sprintf("revenue sector gross %s exceeds threshold %s", alloc.RevenueSectorGross, warnThreshold))
	}
	if alloc.OtherSectorGross.GreaterThan(warnThreshold) {
		warnings = append(warnings, fmt.Sprintf("other sector gross %s exceeds threshold %s", alloc.OtherSectorGross, warnThreshold))
	}

	return alloc, warnings
}
