package event

import (
	"strconv"
	"time"

	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/validator"
)

type CreateEventRequest struct {
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	Type        Type   `json:"type"`
	Minutes     int    `json:"minutes,omitempty"`
	Compensated bool   `json:"compensated,omitempty"`
	Note        string `json:"note,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is not a known event type"})
	}
	if r.Minutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "minutes", Message: "must be non-negative"})
	}
	if r.Type == TypeWarning && r.Note == "" {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "is required for warnings"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportRow is one normalized line of a timesheet import. The importer
// has already mapped raw spreadsheet columns onto event types.
type ImportRow struct {
	RegistrationNumber string `json:"registration_number"`
	Date               string `json:"date"`
	Type               Type   `json:"type"`
	Minutes            int    `json:"minutes,omitempty"`
	Compensated        bool   `json:"compensated,omitempty"`
}

type ImportEventsRequest struct {
	Quarter string      `json:"quarter"`
	Rows    []ImportRow `json:"rows"`
}

func (r *ImportEventsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Quarter == "" {
		errs = append(errs, validator.ValidationError{Field: "quarter", Message: "is required"})
	}
	for i, row := range r.Rows {
		if row.RegistrationNumber == "" {
			errs = append(errs, validator.ValidationError{Field: "rows[" + strconv.Itoa(i) + "].registration_number", Message: "is required"})
			break
		}
		if _, err := time.Parse("2006-01-02", row.Date); err != nil {
			errs = append(errs, validator.ValidationError{Field: "rows[" + strconv.Itoa(i) + "].date", Message: "must be a valid date (YYYY-MM-DD)"})
			break
		}
		if !row.Type.Valid() {
			errs = append(errs, validator.ValidationError{Field: "rows[" + strconv.Itoa(i) + "].type", Message: "is not a known event type"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Type         Type    `json:"type"`
	Minutes      int     `json:"minutes"`
	Compensated  bool    `json:"compensated"`
	Manual       bool    `json:"manual"`
	Note         string  `json:"note,omitempty"`
	Quarter      string  `json:"quarter"`
}

func ToResponse(e *AttendanceEvent) EventResponse {
	return EventResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Date:         e.Date.Format("2006-01-02"),
		Type:         e.Type,
		Minutes:      e.Minutes,
		Compensated:  e.Compensated,
		Manual:       e.Manual,
		Note:         e.Note,
		Quarter:      e.Quarter,
	}
}

type ImportSummaryResponse struct {
	Quarter  string `json:"quarter"`
	Imported int    `json:"imported"`
	Replaced int    `json:"replaced"`
	Skipped  int    `json:"skipped"`
}
