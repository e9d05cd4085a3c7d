package participation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tally is an occurrence count with a per-month breakdown. Month keys
// use the "YYYY-MM" format.
type Tally struct {
	Total   int            `json:"total"`
	ByMonth map[string]int `json:"by_month,omitempty"`
}

// Add records one occurrence in the given month bucket.
func (t *Tally) Add(month string) {
	t.Total++
	if t.ByMonth == nil {
		t.ByMonth = make(map[string]int)
	}
	t.ByMonth[month]++
}

// CategoryCounts holds one tally per attendance event category. The
// shape is fixed so the classification contract stays statically
// checkable.
type CategoryCounts struct {
	Lateness           Tally `json:"lateness"`
	EarlyDeparture     Tally `json:"early_departure"`
	MedicalCertificate Tally `json:"medical_certificate"`
	ExcusedAbsence     Tally `json:"excused_absence"`
	UnexcusedAbsence   Tally `json:"unexcused_absence"`
	HalfDayAbsence     Tally `json:"half_day_absence"`
	FullDayAbsence     Tally `json:"full_day_absence"`
	ForgottenClock     Tally `json:"forgotten_clock"`
	Warning            Tally `json:"warning"`
	Compensation       Tally `json:"compensation"`
	MaternityLeave     Tally `json:"maternity_leave"`
}

// DiscountItem is one itemized line of the record's discount list.
// Bonuses appear as negative values.
type DiscountItem struct {
	Reason string          `json:"reason"`
	Value  decimal.Decimal `json:"value"`
}

type Record struct {
	ID         string
	EmployeeID string
	Quarter    string
	WorkedDays int
	// Sticky: once an operator hand-edits worked days, recomputation
	// keeps the edited value.
	WorkedDaysManuallyEdited bool
	GrossValue               decimal.Decimal
	FinalValue               decimal.Decimal
	// Fraction of gross discounted, 0 to 1.
	DiscountTotal decimal.Decimal
	PenaltyAmount decimal.Decimal
	Counts        CategoryCounts
	// Sticky manual delta applied after every other step.
	ManualAdjustment   decimal.Decimal
	ProportionalFactor decimal.Decimal
	DiscountItems      []DiscountItem
	Editable           bool
	PayoutDate         time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName *string
	SectorID     *string
	SectorName   *string
}

// RevenueConfig holds the quarter's revenue and deduction inputs plus
// the percentage splits that shape the gross allocation.
type RevenueConfig struct {
	ID                      string
	Quarter                 string
	NormalRevenue           decimal.Decimal
	DifferentiatedRevenue   decimal.Decimal
	NormalDeduction         decimal.Decimal
	DifferentiatedDeduction decimal.Decimal
	// Percentage splits. NormalShare + DifferentiatedShare must total
	// 100, likewise RevenueSectorShare + OtherSectorShare.
	NormalShare         decimal.Decimal
	DifferentiatedShare decimal.Decimal
	RevenueSectorShare  decimal.Decimal
	OtherSectorShare    decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusPaid     ApprovalStatus = "paid"
)

// SectorApproval locks a sector's quarter records once approved.
type SectorApproval struct {
	ID         string
	SectorID   string
	Quarter    string
	Status     ApprovalStatus
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	SectorName *string
}
