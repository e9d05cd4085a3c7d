package participation

import (
	"time"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/trimester"
)

// Summary is the per-employee classification of one quarter's events.
type Summary struct {
	Counts participation.CategoryCounts
	// EventDates holds every event's date, absence events included.
	// Worked days for proportional employees are derived from the
	// calendar span minus AbsenceDates, so callers decide how to
	// combine the two sets.
	EventDates   map[string]struct{}
	AbsenceDates map[string]struct{}
	// EarliestEvent anchors rule resolution. Nil when the quarter has
	// no events.
	EarliestEvent *time.Time
}

// HasEvents reports whether any event was classified.
func (s *Summary) HasEvents() bool {
	return len(s.EventDates) > 0
}

const dateKey = "2006-01-02"

// Classify folds one employee's quarter events into category tallies.
// Minute thresholds apply to lateness and early departure only, and
// only when the event is not compensated and is at least 5 minutes:
// 5 to 10 minutes keep their own category, 11 to 240 minutes count as
// a half-day absence, anything longer as a full-day absence.
func Classify(events []event.AttendanceEvent) Summary {
	sum := Summary{
		EventDates:   make(map[string]struct{}),
		AbsenceDates: make(map[string]struct{}),
	}

	for i := range events {
		ev := &events[i]
		month := trimester.MonthBucket(ev.Date)

		sum.EventDates[ev.Date.Format(dateKey)] = struct{}{}
		if sum.EarliestEvent == nil || ev.Date.Before(*sum.EarliestEvent) {
			d := ev.Date
			sum.EarliestEvent = &d
		}

		switch ev.Type {
		case event.TypeLateness, event.TypeEarlyDeparture:
			if ev.Compensated || ev.Minutes < 5 {
				continue
			}
			switch {
			case ev.Minutes <= 10:
				if ev.Type == event.TypeLateness {
					sum.Counts.Lateness.Add(month)
				} else {
					sum.Counts.EarlyDeparture.Add(month)
				}
			case ev.Minutes <= 240:
				sum.Counts.HalfDayAbsence.Add(month)
			default:
				sum.Counts.FullDayAbsence.Add(month)
			}
		case event.TypeMedicalCertificate:
			sum.Counts.MedicalCertificate.Add(month)
		case event.TypeExcusedAbsence:
			sum.Counts.ExcusedAbsence.Add(month)
			sum.AbsenceDates[ev.Date.Format(dateKey)] = struct{}{}
		case event.TypeUnexcusedAbsence:
			sum.Counts.UnexcusedAbsence.Add(month)
			sum.AbsenceDates[ev.Date.Format(dateKey)] = struct{}{}
		case event.TypeHalfDayAbsence:
			sum.Counts.HalfDayAbsence.Add(month)
		case event.TypeFullDayAbsence:
			sum.Counts.FullDayAbsence.Add(month)
		case event.TypeForgottenClock:
			sum.Counts.ForgottenClock.Add(month)
		case event.TypeWarning:
			sum.Counts.Warning.Add(month)
		case event.TypeCompensation:
			sum.Counts.Compensation.Add(month)
		case event.TypeMaternityLeave:
			sum.Counts.MaternityLeave.Add(month)
		}
	}

	return sum
}
