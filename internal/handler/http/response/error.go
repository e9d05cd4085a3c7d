package response

import (
	"errors"
	"net/http"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/sector"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/user"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already exists")

	// Sector errors
	case errors.Is(err, sector.ErrSectorNotFound):
		NotFound(w, "Sector not found")
	case errors.Is(err, sector.ErrSectorNameExists):
		Conflict(w, "Sector name already exists")
	case errors.Is(err, sector.ErrSectorInUse):
		Conflict(w, "Sector cannot be removed")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrRegistrationNumberExists):
		Conflict(w, "Registration number already exists")
	case errors.Is(err, employee.ErrEmployeeAlreadyLinked):
		Conflict(w, "Employee already linked to a login")
	case errors.Is(err, employee.ErrTerminationBeforeAdmission):
		BadRequest(w, "Termination date before admission date", nil)

	// Event errors
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Rule errors
	case errors.Is(err, rule.ErrRuleNotFound):
		NotFound(w, "Penalty rule not found")
	case errors.Is(err, rule.ErrRuleWindowOverlap):
		Conflict(w, "A rule for this indicator already starts on that date")

	// Participation errors
	case errors.Is(err, participation.ErrRecordNotFound):
		NotFound(w, "Participation record not found")
	case errors.Is(err, participation.ErrRecordNotEditable):
		Conflict(w, "Participation record is locked by an approval")
	case errors.Is(err, participation.ErrConfigNotFound):
		BadRequest(w, "Configure the quarter's revenue inputs first", nil)
	case errors.Is(err, participation.ErrNoParticipatingSectors):
		BadRequest(w, "Configure participating sectors first", nil)
	case errors.Is(err, participation.ErrApprovalNotFound):
		NotFound(w, "Sector approval not found")
	case errors.Is(err, participation.ErrNoRecordsToApprove):
		BadRequest(w, "No participation records to approve for this sector and quarter", nil)
	case errors.Is(err, participation.ErrAlreadyApproved):
		Conflict(w, "Sector already approved for this quarter")
	case errors.Is(err, participation.ErrNotApproved):
		Conflict(w, "Sector is not approved for this quarter")
	case errors.Is(err, participation.ErrQuarterPaidOut):
		Conflict(w, "Quarter payout date has passed")
	case errors.Is(err, participation.ErrSuperAdminRequired):
		Forbidden(w, "Super admin access required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
