package event

import (
	"time"
)

// Type enumerates the attendance event categories the engine
// understands. Imports must normalize raw timesheet rows into one of
// these before they reach the engine.
type Type string

const (
	TypeLateness           Type = "lateness"
	TypeEarlyDeparture     Type = "early_departure"
	TypeMedicalCertificate Type = "medical_certificate"
	TypeExcusedAbsence     Type = "excused_absence"
	TypeUnexcusedAbsence   Type = "unexcused_absence"
	TypeHalfDayAbsence     Type = "half_day_absence"
	TypeFullDayAbsence     Type = "full_day_absence"
	TypeForgottenClock     Type = "forgotten_clock"
	TypeWarning            Type = "warning"
	TypeCompensation       Type = "compensation"
	TypeMaternityLeave     Type = "maternity_leave"
)

// Types lists every valid event type.
var Types = []Type{
	TypeLateness,
	TypeEarlyDeparture,
	TypeMedicalCertificate,
	TypeExcusedAbsence,
	TypeUnexcusedAbsence,
	TypeHalfDayAbsence,
	TypeFullDayAbsence,
	TypeForgottenClock,
	TypeWarning,
	TypeCompensation,
	TypeMaternityLeave,
}

// Valid reports whether t is one of the known event types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

type AttendanceEvent struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Type       Type
	// Minutes late or left early. Meaningful only for lateness and
	// early departure events.
	Minutes int
	// Compensated events never generate penalties.
	Compensated bool
	// Manual events survive re-imports; imported ones are replaced
	// wholesale when a quarter is imported again.
	Manual bool
	// Note explains hand-entered events. Mandatory for warnings.
	Note      string
	Quarter   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
