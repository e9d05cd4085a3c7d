package participation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ev(t event.Type, d time.Time, minutes int, compensated bool) event.AttendanceEvent {
	return event.AttendanceEvent{
		Type:        t,
		Date:        d,
		Minutes:     minutes,
		Compensated: compensated,
	}
}

func TestClassifyEmpty(t *testing.T) {
	sum := Classify(nil)

	assert.False(t, sum.HasEvents())
	assert.Nil(t, sum.EarliestEvent)
	assert.Zero(t, sum.Counts.Lateness.Total)
}

func TestClassifyMinuteBands(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(event.TypeLateness, date(2025, 1, 6), 4, false),    // below threshold, ignored
		ev(event.TypeLateness, date(2025, 1, 7), 5, false),    // minor lateness
		ev(event.TypeLateness, date(2025, 1, 8), 10, false),   // minor lateness
		ev(event.TypeLateness, date(2025, 1, 9), 11, false),   // half-day
		ev(event.TypeLateness, date(2025, 1, 10), 240, false), // half-day
		ev(event.TypeLateness, date(2025, 1, 13), 241, false), // full-day
		ev(event.TypeLateness, date(2025, 1, 14), 30, true),   // compensated, ignored
	}

	sum := Classify(events)

	assert.Equal(t, 2, sum.Counts.Lateness.Total)
	assert.Equal(t, 2, sum.Counts.HalfDayAbsence.Total)
	assert.Equal(t, 1, sum.Counts.FullDayAbsence.Total)
	assert.Equal(t, map[string]int{"2025-01": 2}, sum.Counts.Lateness.ByMonth)

	// All seven dates land in the event-date set regardless of band.
	assert.Len(t, sum.EventDates, 7)
}

func TestClassifyEarlyDepartureKeepsOwnCategory(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(event.TypeEarlyDeparture, date(2025, 2, 3), 7, false),
		ev(event.TypeEarlyDeparture, date(2025, 2, 4), 100, false),
	}

	sum := Classify(events)

	assert.Equal(t, 1, sum.Counts.EarlyDeparture.Total)
	assert.Equal(t, 1, sum.Counts.HalfDayAbsence.Total)
	assert.Zero(t, sum.Counts.Lateness.Total)
}

func TestClassifyAbsenceDates(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(event.TypeUnexcusedAbsence, date(2025, 1, 6), 0, false),
		ev(event.TypeExcusedAbsence, date(2025, 1, 7), 0, false),
		ev(event.TypeMedicalCertificate, date(2025, 1, 8), 0, false),
		ev(event.TypeFullDayAbsence, date(2025, 1, 9), 0, false),
	}

	sum := Classify(events)

	assert.Equal(t, 1, sum.Counts.UnexcusedAbsence.Total)
	assert.Equal(t, 1, sum.Counts.ExcusedAbsence.Total)
	assert.Equal(t, 1, sum.Counts.MedicalCertificate.Total)
	assert.Equal(t, 1, sum.Counts.FullDayAbsence.Total)

	// Only excused and unexcused absences feed the absence-date set.
	assert.Len(t, sum.AbsenceDates, 2)
	assert.Contains(t, sum.AbsenceDates, "2025-01-06")
	assert.Contains(t, sum.AbsenceDates, "2025-01-07")
	assert.Len(t, sum.EventDates, 4)
}

func TestClassifyMonthBuckets(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(event.TypeWarning, date(2025, 1, 10), 0, false),
		ev(event.TypeWarning, date(2025, 2, 10), 0, false),
		ev(event.TypeWarning, date(2025, 2, 20), 0, false),
		ev(event.TypeMaternityLeave, date(2025, 3, 1), 0, false),
	}

	sum := Classify(events)

	assert.Equal(t, 3, sum.Counts.Warning.Total)
	assert.Equal(t, map[string]int{"2025-01": 1, "2025-02": 2}, sum.Counts.Warning.ByMonth)
	assert.Equal(t, 1, sum.Counts.MaternityLeave.Total)
}

func TestClassifyEarliestEvent(t *testing.T) {
	events := []event.AttendanceEvent{
		ev(event.TypeWarning, date(2025, 2, 10), 0, false),
		ev(event.TypeWarning, date(2025, 1, 3), 0, false),
		ev(event.TypeWarning, date(2025, 3, 1), 0, false),
	}

	sum := Classify(events)

	assert.NotNil(t, sum.EarliestEvent)
	assert.Equal(t, date(2025, 1, 3), *sum.EarliestEvent)
}
