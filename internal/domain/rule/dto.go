package rule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/validator"
)

type CreateRuleRequest struct {
	Indicator          string          `json:"indicator"`
	Period             Period          `json:"period"`
	Tolerance          int             `json:"tolerance"`
	Representativeness decimal.Decimal `json:"representativeness"`
	SubsequentValue    decimal.Decimal `json:"subsequent_value"`
	StartDate          string          `json:"start_date"`
	EndDate            *string         `json:"end_date,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Indicator == "" {
		errs = append(errs, validator.ValidationError{Field: "indicator", Message: "is required"})
	}
	if r.Period != PeriodMonthly && r.Period != PeriodQuarterly {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be 'monthly' or 'quarterly'"})
	}
	if r.Tolerance < 0 {
		errs = append(errs, validator.ValidationError{Field: "tolerance", Message: "must be non-negative"})
	}
	if r.Representativeness.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "representativeness", Message: "must be non-negative"})
	}
	if r.SubsequentValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "subsequent_value", Message: "must be non-negative"})
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EndDate != nil {
		end, endErr := time.Parse("2006-01-02", *r.EndDate)
		if endErr != nil {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else if err == nil && end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRuleRequest struct {
	ID                 string
	Tolerance          *int             `json:"tolerance,omitempty"`
	Representativeness *decimal.Decimal `json:"representativeness,omitempty"`
	SubsequentValue    *decimal.Decimal `json:"subsequent_value,omitempty"`
	EndDate            *string          `json:"end_date,omitempty"`
}

func (r *UpdateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Tolerance != nil && *r.Tolerance < 0 {
		errs = append(errs, validator.ValidationError{Field: "tolerance", Message: "must be non-negative"})
	}
	if r.Representativeness != nil && r.Representativeness.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "representativeness", Message: "must be non-negative"})
	}
	if r.SubsequentValue != nil && r.SubsequentValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "subsequent_value", Message: "must be non-negative"})
	}
	if r.EndDate != nil && *r.EndDate != "" {
		if _, err := time.Parse("2006-01-02", *r.EndDate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RuleResponse struct {
	ID                 string          `json:"id"`
	Indicator          string          `json:"indicator"`
	Period             Period          `json:"period"`
	Tolerance          int             `json:"tolerance"`
	Representativeness decimal.Decimal `json:"representativeness"`
	SubsequentValue    decimal.Decimal `json:"subsequent_value"`
	StartDate          string          `json:"start_date"`
	EndDate            *string         `json:"end_date,omitempty"`
}

func ToResponse(r *PenaltyRule) RuleResponse {
	resp := RuleResponse{
		ID:                 r.ID,
		Indicator:          r.Indicator,
		Period:             r.Period,
		Tolerance:          r.Tolerance,
		Representativeness: r.Representativeness,
		SubsequentValue:    r.SubsequentValue,
		StartDate:          r.StartDate.Format("2006-01-02"),
	}
	if r.EndDate != nil {
		s := r.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
