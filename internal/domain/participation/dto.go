package participation

import (
	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/trimester"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/validator"
)

var hundred = decimal.NewFromInt(100)

type UpsertRevenueConfigRequest struct {
	Quarter                 string          `json:"quarter"`
	NormalRevenue           decimal.Decimal `json:"normal_revenue"`
	DifferentiatedRevenue   decimal.Decimal `json:"differentiated_revenue"`
	NormalDeduction         decimal.Decimal `json:"normal_deduction"`
	DifferentiatedDeduction decimal.Decimal `json:"differentiated_deduction"`
	NormalShare             decimal.Decimal `json:"normal_share"`
	DifferentiatedShare     decimal.Decimal `json:"differentiated_share"`
	RevenueSectorShare      decimal.Decimal `json:"revenue_sector_share"`
	OtherSectorShare        decimal.Decimal `json:"other_sector_share"`
}

func (r *UpsertRevenueConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !trimester.IsValid(r.Quarter) {
		errs = append(errs, validator.ValidationError{Field: "quarter", Message: "must match YYYY-QN"})
	}
	for field, v := range map[string]decimal.Decimal{
		"normal_revenue":           r.NormalRevenue,
		"differentiated_revenue":   r.DifferentiatedRevenue,
		"normal_deduction":         r.NormalDeduction,
		"differentiated_deduction": r.DifferentiatedDeduction,
		"normal_share":             r.NormalShare,
		"differentiated_share":     r.DifferentiatedShare,
		"revenue_sector_share":     r.RevenueSectorShare,
		"other_sector_share":       r.OtherSectorShare,
	} {
		if v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	if !r.NormalShare.Add(r.DifferentiatedShare).Equal(hundred) {
		errs = append(errs, validator.ValidationError{Field: "normal_share", Message: "normal_share and differentiated_share must total 100"})
	}
	if !r.RevenueSectorShare.Add(r.OtherSectorShare).Equal(hundred) {
		errs = append(errs, validator.ValidationError{Field: "revenue_sector_share", Message: "revenue_sector_share and other_sector_share must total 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RevenueConfigResponse struct {
	ID                      string          `json:"id"`
	Quarter                 string          `json:"quarter"`
	NormalRevenue           decimal.Decimal `json:"normal_revenue"`
	DifferentiatedRevenue   decimal.Decimal `json:"differentiated_revenue"`
	NormalDeduction         decimal.Decimal `json:"normal_deduction"`
	DifferentiatedDeduction decimal.Decimal `json:"differentiated_deduction"`
	NormalShare             decimal.Decimal `json:"normal_share"`
	DifferentiatedShare     decimal.Decimal `json:"differentiated_share"`
	RevenueSectorShare      decimal.Decimal `json:"revenue_sector_share"`
	OtherSectorShare        decimal.Decimal `json:"other_sector_share"`
}

func ToRevenueConfigResponse(c *RevenueConfig) RevenueConfigResponse {
	return RevenueConfigResponse{
		ID:                      c.ID,
		Quarter:                 c.Quarter,
		NormalRevenue:           c.NormalRevenue,
		DifferentiatedRevenue:   c.DifferentiatedRevenue,
		NormalDeduction:         c.NormalDeduction,
		DifferentiatedDeduction: c.DifferentiatedDeduction,
		NormalShare:             c.NormalShare,
		DifferentiatedShare:     c.DifferentiatedShare,
		RevenueSectorShare:      c.RevenueSectorShare,
		OtherSectorShare:        c.OtherSectorShare,
	}
}

// UpdateRecordRequest edits the two operator-controlled record fields.
// Everything else is owned by the recomputation pipeline.
type UpdateRecordRequest struct {
	EmployeeID       string
	Quarter          string
	WorkedDays       *int             `json:"worked_days,omitempty"`
	ManualAdjustment *decimal.Decimal `json:"manual_adjustment,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !trimester.IsValid(r.Quarter) {
		errs = append(errs, validator.ValidationError{Field: "quarter", Message: "must match YYYY-QN"})
	}
	if r.WorkedDays != nil && (*r.WorkedDays < 0 || *r.WorkedDays > 90) {
		errs = append(errs, validator.ValidationError{Field: "worked_days", Message: "must be between 0 and 90"})
	}
	if r.WorkedDays == nil && r.ManualAdjustment == nil {
		errs = append(errs, validator.ValidationError{Field: "worked_days", Message: "nothing to update"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID                       string          `json:"id"`
	EmployeeID               string          `json:"employee_id"`
	EmployeeName             *string         `json:"employee_name,omitempty"`
	SectorID                 *string         `json:"sector_id,omitempty"`
	SectorName               *string         `json:"sector_name,omitempty"`
	Quarter                  string          `json:"quarter"`
	WorkedDays               int             `json:"worked_days"`
	WorkedDaysManuallyEdited bool            `json:"worked_days_manually_edited"`
	GrossValue               decimal.Decimal `json:"gross_value"`
	FinalValue               decimal.Decimal `json:"final_value"`
	DiscountTotal            decimal.Decimal `json:"discount_total"`
	PenaltyAmount            decimal.Decimal `json:"penalty_amount"`
	Counts                   CategoryCounts  `json:"counts"`
	ManualAdjustment         decimal.Decimal `json:"manual_adjustment"`
	ProportionalFactor       decimal.Decimal `json:"proportional_factor"`
	DiscountItems            []DiscountItem  `json:"discount_items"`
	Editable                 bool            `json:"editable"`
	PayoutDate               string          `json:"payout_date"`
}

func ToRecordResponse(rec *Record) RecordResponse {
	return RecordResponse{
		ID:                       rec.ID,
		EmployeeID:               rec.EmployeeID,
		EmployeeName:             rec.EmployeeName,
		SectorID:                 rec.SectorID,
		SectorName:               rec.SectorName,
		Quarter:                  rec.Quarter,
		WorkedDays:               rec.WorkedDays,
		WorkedDaysManuallyEdited: rec.WorkedDaysManuallyEdited,
		GrossValue:               rec.GrossValue,
		FinalValue:               rec.FinalValue,
		DiscountTotal:            rec.DiscountTotal,
		PenaltyAmount:            rec.PenaltyAmount,
		Counts:                   rec.Counts,
		ManualAdjustment:         rec.ManualAdjustment,
		ProportionalFactor:       rec.ProportionalFactor,
		DiscountItems:            rec.DiscountItems,
		Editable:                 rec.Editable,
		PayoutDate:               rec.PayoutDate.Format("2006-01-02"),
	}
}

type RecomputeQuarterResponse struct {
	Quarter  string   `json:"quarter"`
	Computed int      `json:"computed"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

type ApprovalResponse struct {
	ID         string         `json:"id"`
	SectorID   string         `json:"sector_id"`
	SectorName *string        `json:"sector_name,omitempty"`
	Quarter    string         `json:"quarter"`
	Status     ApprovalStatus `json:"status"`
	ApprovedBy *string        `json:"approved_by,omitempty"`
	ApprovedAt *string        `json:"approved_at,omitempty"`
}

func ToApprovalResponse(a *SectorApproval) ApprovalResponse {
	resp := ApprovalResponse{
		ID:         a.ID,
		SectorID:   a.SectorID,
		SectorName: a.SectorName,
		Quarter:    a.Quarter,
		Status:     a.Status,
		ApprovedBy: a.ApprovedBy,
	}
	if a.ApprovedAt != nil {
		s := a.ApprovedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ApprovedAt = &s
	}
	return resp
}
