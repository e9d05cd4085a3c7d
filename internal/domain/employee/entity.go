package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccessLevel string

const (
	AccessManager    AccessLevel = "manager"
	AccessSuperAdmin AccessLevel = "super_admin"
)

type ParticipationType string

const (
	TypeNormal          ParticipationType = "normal"
	TypeProportional    ParticipationType = "proportional"
	TypeMinorApprentice ParticipationType = "minor_apprentice"
)

type BonusKind string

const (
	BonusFixed      BonusKind = "fixed"
	BonusPercentage BonusKind = "percentage"
)

type Employee struct {
	ID                 string
	UserID             *string
	Name               string
	RegistrationNumber string
	SectorID           *string
	AccessLevel        AccessLevel
	AdmissionDate      time.Time
	TerminationDate    *time.Time
	ParticipationType  ParticipationType
	// Percentage of the computed participation the employee receives,
	// 0 to 100, default 100.
	ParticipationPercentage decimal.Decimal
	// Fixed worked-days override for proportional employees, 0 to 90.
	// Zero means "derive from the calendar".
	ProportionalDays int
	// Quarter identifier ("YYYY-QN") before which no participation
	// accrues. Empty means no cutoff.
	ParticipationStartQuarter string
	BonusActive               bool
	BonusKind                 BonusKind
	BonusValue                decimal.Decimal
	CreatedAt                 time.Time
	UpdatedAt                 time.Time

	// DTO
	SectorName *string
}

// Active reports whether the employee had not been terminated before
// the given date.
func (e *Employee) Active(at time.Time) bool {
	return e.TerminationDate == nil || !e.TerminationDate.Before(at)
}
