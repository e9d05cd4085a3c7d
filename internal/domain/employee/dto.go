package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/trimester"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name                      string            `json:"name"`
	RegistrationNumber        string            `json:"registration_number"`
	SectorID                  *string           `json:"sector_id,omitempty"`
	AccessLevel               AccessLevel       `json:"access_level"`
	AdmissionDate             string            `json:"admission_date"`
	TerminationDate           *string           `json:"termination_date,omitempty"`
	ParticipationType         ParticipationType `json:"participation_type"`
	ParticipationPercentage   *decimal.Decimal  `json:"participation_percentage,omitempty"`
	ProportionalDays          *int              `json:"proportional_days,omitempty"`
	ParticipationStartQuarter *string           `json:"participation_start_quarter,omitempty"`
	BonusActive               *bool             `json:"bonus_active,omitempty"`
	BonusKind                 *BonusKind        `json:"bonus_kind,omitempty"`
	BonusValue                *decimal.Decimal  `json:"bonus_value,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.RegistrationNumber == "" {
		errs = append(errs, validator.ValidationError{Field: "registration_number", Message: "is required"})
	}
	if r.AccessLevel != "" && r.AccessLevel != AccessManager && r.AccessLevel != AccessSuperAdmin {
		errs = append(errs, validator.ValidationError{Field: "access_level", Message: "must be 'manager' or 'super_admin'"})
	}
	if _, err := time.Parse("2006-01-02", r.AdmissionDate); err != nil {
		errs = append(errs, validator.ValidationError{Field: "admission_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.TerminationDate != nil {
		if _, err := time.Parse("2006-01-02", *r.TerminationDate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "termination_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	switch r.ParticipationType {
	case "", TypeNormal, TypeProportional, TypeMinorApprentice:
	default:
		errs = append(errs, validator.ValidationError{Field: "participation_type", Message: "must be 'normal', 'proportional' or 'minor_apprentice'"})
	}
	if r.ParticipationPercentage != nil {
		if r.ParticipationPercentage.IsNegative() || r.ParticipationPercentage.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, validator.ValidationError{Field: "participation_percentage", Message: "must be between 0 and 100"})
		}
	}
	if r.ProportionalDays != nil && (*r.ProportionalDays < 0 || *r.ProportionalDays > 90) {
		errs = append(errs, validator.ValidationError{Field: "proportional_days", Message: "must be between 0 and 90"})
	}
	if r.ParticipationStartQuarter != nil && !trimester.IsValid(*r.ParticipationStartQuarter) {
		errs = append(errs, validator.ValidationError{Field: "participation_start_quarter", Message: "must match YYYY-QN"})
	}
	if r.BonusKind != nil && *r.BonusKind != BonusFixed && *r.BonusKind != BonusPercentage {
		errs = append(errs, validator.ValidationError{Field: "bonus_kind", Message: "must be 'fixed' or 'percentage'"})
	}
	if r.BonusValue != nil && r.BonusValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                        string
	Name                      *string            `json:"name,omitempty"`
	SectorID                  *string            `json:"sector_id,omitempty"`
	AccessLevel               *AccessLevel       `json:"access_level,omitempty"`
	AdmissionDate             *string            `json:"admission_date,omitempty"`
	TerminationDate           *string            `json:"termination_date,omitempty"`
	ParticipationType         *ParticipationType `json:"participation_type,omitempty"`
	ParticipationPercentage   *decimal.Decimal   `json:"participation_percentage,omitempty"`
	ProportionalDays          *int               `json:"proportional_days,omitempty"`
	ParticipationStartQuarter *string            `json:"participation_start_quarter,omitempty"`
	BonusActive               *bool              `json:"bonus_active,omitempty"`
	BonusKind                 *BonusKind         `json:"bonus_kind,omitempty"`
	BonusValue                *decimal.Decimal   `json:"bonus_value,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && *r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.AccessLevel != nil && *r.AccessLevel != AccessManager && *r.AccessLevel != AccessSuperAdmin {
		errs = append(errs, validator.ValidationError{Field: "access_level", Message: "must be 'manager' or 'super_admin'"})
	}
	if r.AdmissionDate != nil {
		if _, err := time.Parse("2006-01-02", *r.AdmissionDate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "admission_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.TerminationDate != nil && *r.TerminationDate != "" {
		if _, err := time.Parse("2006-01-02", *r.TerminationDate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "termination_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.ParticipationType != nil {
		switch *r.ParticipationType {
		case TypeNormal, TypeProportional, TypeMinorApprentice:
		default:
			errs = append(errs, validator.ValidationError{Field: "participation_type", Message: "must be 'normal', 'proportional' or 'minor_apprentice'"})
		}
	}
	if r.ParticipationPercentage != nil {
		if r.ParticipationPercentage.IsNegative() || r.ParticipationPercentage.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, validator.ValidationError{Field: "participation_percentage", Message: "must be between 0 and 100"})
		}
	}
	if r.ProportionalDays != nil && (*r.ProportionalDays < 0 || *r.ProportionalDays > 90) {
		errs = append(errs, validator.ValidationError{Field: "proportional_days", Message: "must be between 0 and 90"})
	}
	if r.ParticipationStartQuarter != nil && *r.ParticipationStartQuarter != "" && !trimester.IsValid(*r.ParticipationStartQuarter) {
		errs = append(errs, validator.ValidationError{Field: "participation_start_quarter", Message: "must match YYYY-QN"})
	}
	if r.BonusKind != nil && *r.BonusKind != BonusFixed && *r.BonusKind != BonusPercentage {
		errs = append(errs, validator.ValidationError{Field: "bonus_kind", Message: "must be 'fixed' or 'percentage'"})
	}
	if r.BonusValue != nil && r.BonusValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                        string            `json:"id"`
	Name                      string            `json:"name"`
	RegistrationNumber        string            `json:"registration_number"`
	SectorID                  *string           `json:"sector_id,omitempty"`
	SectorName                *string           `json:"sector_name,omitempty"`
	AccessLevel               AccessLevel       `json:"access_level"`
	AdmissionDate             string            `json:"admission_date"`
	TerminationDate           *string           `json:"termination_date,omitempty"`
	ParticipationType         ParticipationType `json:"participation_type"`
	ParticipationPercentage   decimal.Decimal   `json:"participation_percentage"`
	ProportionalDays          int               `json:"proportional_days"`
	ParticipationStartQuarter string            `json:"participation_start_quarter,omitempty"`
	BonusActive               bool              `json:"bonus_active"`
	BonusKind                 BonusKind         `json:"bonus_kind,omitempty"`
	BonusValue                decimal.Decimal   `json:"bonus_value"`
}

func ToResponse(e *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                        e.ID,
		Name:                      e.Name,
		RegistrationNumber:        e.RegistrationNumber,
		SectorID:                  e.SectorID,
		SectorName:                e.SectorName,
		AccessLevel:               e.AccessLevel,
		AdmissionDate:             e.AdmissionDate.Format("2006-01-02"),
		ParticipationType:         e.ParticipationType,
		ParticipationPercentage:   e.ParticipationPercentage,
		ProportionalDays:          e.ProportionalDays,
		ParticipationStartQuarter: e.ParticipationStartQuarter,
		BonusActive:               e.BonusActive,
		BonusKind:                 e.BonusKind,
		BonusValue:                e.BonusValue,
	}
	if e.TerminationDate != nil {
		s := e.TerminationDate.Format("2006-01-02")
		resp.TerminationDate = &s
	}
	return resp
}
