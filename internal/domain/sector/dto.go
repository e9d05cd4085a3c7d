package sector

import (
	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/validator"
)

type CreateSectorRequest struct {
	Name         string          `json:"name"`
	Class        Class           `json:"class"`
	BaseValue    decimal.Decimal `json:"base_value"`
	Participates bool            `json:"participates"`
}

func (r *CreateSectorRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Class != ClassRevenue && r.Class != ClassGeneral {
		errs = append(errs, validator.ValidationError{Field: "class", Message: "must be 'revenue' or 'general'"})
	}
	if r.BaseValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSectorRequest struct {
	ID           string
	Name         *string          `json:"name,omitempty"`
	Class        *Class           `json:"class,omitempty"`
	BaseValue    *decimal.Decimal `json:"base_value,omitempty"`
	Active       *bool            `json:"active,omitempty"`
	Participates *bool            `json:"participates,omitempty"`
}

func (r *UpdateSectorRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && *r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Class != nil && *r.Class != ClassRevenue && *r.Class != ClassGeneral {
		errs = append(errs, validator.ValidationError{Field: "class", Message: "must be 'revenue' or 'general'"})
	}
	if r.BaseValue != nil && r.BaseValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SectorResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Class         Class           `json:"class"`
	BaseValue     decimal.Decimal `json:"base_value"`
	Active        bool            `json:"active"`
	Participates  bool            `json:"participates"`
	EmployeeCount *int            `json:"employee_count,omitempty"`
}

func ToResponse(s *Sector) SectorResponse {
	return SectorResponse{
		ID:            s.ID,
		Name:          s.Name,
		Class:         s.Class,
		BaseValue:     s.BaseValue,
		Active:        s.Active,
		Participates:  s.Participates,
		EmployeeCount: s.EmployeeCount,
	}
}
