package participation

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
)

func testService() *ParticipationServiceImpl {
	return &ParticipationServiceImpl{
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		grossWarnThreshold: decimal.NewFromInt(5000),
	}
}

func normalEmployee() *employee.Employee {
	return &employee.Employee{
		ID:                      "emp-1",
		Name:                    "Ana",
		AdmissionDate:           date(2020, 1, 1),
		ParticipationType:       employee.TypeNormal,
		ParticipationPercentage: decimal.NewFromInt(100),
	}
}

var (
	q1Start  = date(2025, 1, 1)
	q1End    = date(2025, 3, 31)
	q1Payout = date(2025, 4, 15)
)

func TestBuildRecordNoEventsFullQuarter(t *testing.T) {
	s := testService()
	o := outcome{
		emp:        normalEmployee(),
		summary:    Classify(nil),
		workedDays: 90,
	}

	rec, warnings := s.buildRecord(o, nil, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.Empty(t, warnings)
	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(1000)), "got %s", rec.FinalValue)
	assert.True(t, rec.DiscountTotal.IsZero())
	assert.True(t, rec.PenaltyAmount.IsZero())
	assert.Empty(t, rec.DiscountItems)
	assert.True(t, rec.Editable)
	assert.Equal(t, q1Payout, rec.PayoutDate)
	assert.True(t, rec.ProportionalFactor.Equal(decimal.NewFromInt(1)))
}

func TestBuildRecordLatenessPenalty(t *testing.T) {
	s := testService()
	o := outcome{
		emp:        normalEmployee(),
		summary:    latenessSummary(6),
		workedDays: 90,
	}
	rules := []rule.PenaltyRule{latenessRule(5, 2, 1)}

	rec, _ := s.buildRecord(o, rules, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(980)), "got %s", rec.FinalValue)
	assert.True(t, rec.PenaltyAmount.Equal(decimal.NewFromInt(20)))
	// Persisted discount is a fraction of 1, not a percentage.
	assert.True(t, rec.DiscountTotal.Equal(decimal.NewFromFloat(0.02)), "got %s", rec.DiscountTotal)
	assert.Equal(t, 6, rec.Counts.Lateness.Total)
}

func TestBuildRecordProportionalTruncation(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.ParticipationType = employee.TypeProportional
	o := outcome{
		emp:        emp,
		summary:    Classify([]event.AttendanceEvent{ev(event.TypeWarning, date(2025, 1, 10), 0, false)}),
		workedDays: 45,
	}

	rec, _ := s.buildRecord(o, nil, decimal.NewFromInt(900), "2025-Q1", q1Start, q1Payout)

	// (900/90)*45 = 450
	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(450)), "got %s", rec.FinalValue)
	assert.True(t, rec.ProportionalFactor.Equal(decimal.NewFromFloat(0.5)), "got %s", rec.ProportionalFactor)
	require.Len(t, rec.DiscountItems, 1)
	assert.Contains(t, rec.DiscountItems[0].Reason, "proportional tenure")
	assert.True(t, rec.DiscountItems[0].Value.Equal(decimal.NewFromInt(450)))
}

func TestBuildRecordPercentageBonus(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.BonusActive = true
	emp.BonusKind = employee.BonusPercentage
	emp.BonusValue = decimal.NewFromInt(10)
	o := outcome{
		emp:        emp,
		summary:    Classify(nil),
		workedDays: 90,
	}

	rec, _ := s.buildRecord(o, nil, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(1100)), "got %s", rec.FinalValue)
	require.Len(t, rec.DiscountItems, 1)
	assert.Equal(t, "bonus", rec.DiscountItems[0].Reason)
	assert.True(t, rec.DiscountItems[0].Value.Equal(decimal.NewFromInt(-100)), "got %s", rec.DiscountItems[0].Value)
}

func TestBuildRecordFixedBonus(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.BonusActive = true
	emp.BonusKind = employee.BonusFixed
	emp.BonusValue = decimal.NewFromInt(250)
	o := outcome{
		emp:        emp,
		summary:    Classify(nil),
		workedDays: 90,
	}

	rec, _ := s.buildRecord(o, nil, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(1250)), "got %s", rec.FinalValue)
}

func TestBuildRecordParticipationPercentage(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.ParticipationPercentage = decimal.NewFromInt(50)
	o := outcome{
		emp:        emp,
		summary:    Classify(nil),
		workedDays: 90,
	}

	rec, _ := s.buildRecord(o, nil, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(500)), "got %s", rec.FinalValue)
	require.Len(t, rec.DiscountItems, 1)
	assert.Contains(t, rec.DiscountItems[0].Reason, "participation percentage")
	assert.True(t, rec.DiscountItems[0].Value.Equal(decimal.NewFromInt(500)))
}

func TestBuildRecordManualAdjustmentSticky(t *testing.T) {
	s := testService()
	o := outcome{
		emp:        normalEmployee(),
		summary:    Classify(nil),
		workedDays: 90,
		existing: &participation.Record{
			ID:               "rec-1",
			ManualAdjustment: decimal.NewFromInt(-150),
			Editable:         true,
		},
	}

	rec, _ := s.buildRecord(o, nil, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.Equal(t, "rec-1", rec.ID)
	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(850)), "got %s", rec.FinalValue)
	assert.True(t, rec.ManualAdjustment.Equal(decimal.NewFromInt(-150)))
	require.Len(t, rec.DiscountItems, 1)
	assert.Equal(t, "manual adjustment", rec.DiscountItems[0].Reason)
}

func TestBuildRecordNeverNegative(t *testing.T) {
	s := testService()
	o := outcome{
		emp:        normalEmployee(),
		summary:    Classify(nil),
		workedDays: 90,
		existing: &participation.Record{
			ManualAdjustment: decimal.NewFromInt(-5000),
			Editable:         true,
		},
	}

	rec, _ := s.buildRecord(o, nil, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.True(t, rec.FinalValue.IsZero(), "got %s", rec.FinalValue)
}

func TestBuildRecordRoundsToWholeUnits(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.ParticipationPercentage = decimal.NewFromInt(33)
	o := outcome{
		emp:        emp,
		summary:    Classify(nil),
		workedDays: 90,
	}

	rec, _ := s.buildRecord(o, nil, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	// 330 exactly, but any fraction must round away.
	assert.True(t, rec.FinalValue.Equal(rec.FinalValue.Round(0)))
	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(330)), "got %s", rec.FinalValue)
}

func TestBuildRecordZeroReason(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.ParticipationType = employee.TypeMinorApprentice
	o := outcome{
		emp:        emp,
		summary:    latenessSummary(3),
		zeroReason: "minor apprentice, excluded from payout",
	}

	rec, warnings := s.buildRecord(o, nil, decimal.Zero, "2025-Q1", q1Start, q1Payout)

	assert.Empty(t, warnings)
	assert.True(t, rec.FinalValue.IsZero())
	assert.True(t, rec.GrossValue.IsZero())
	assert.Empty(t, rec.DiscountItems)
	// Classified counts still persist on zero records.
	assert.Equal(t, 3, rec.Counts.Lateness.Total)
}

func TestBuildRecordIdempotent(t *testing.T) {
	s := testService()
	o := outcome{
		emp:        normalEmployee(),
		summary:    latenessSummary(6),
		workedDays: 90,
	}
	rules := []rule.PenaltyRule{latenessRule(5, 2, 1)}

	first, _ := s.buildRecord(o, rules, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)
	o.existing = first
	second, _ := s.buildRecord(o, rules, decimal.NewFromInt(1000), "2025-Q1", q1Start, q1Payout)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.FinalValue.Equal(second.FinalValue))
	assert.True(t, first.DiscountTotal.Equal(second.DiscountTotal))
	assert.Equal(t, first.DiscountItems, second.DiscountItems)
}

func TestResolveWorkedDaysManualEditWins(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.ProportionalDays = 30
	existing := &participation.Record{
		WorkedDays:               77,
		WorkedDaysManuallyEdited: true,
	}

	days := s.resolveWorkedDays(emp, existing, Classify(nil), q1Start, q1End)

	assert.Equal(t, 77, days)
}

func TestResolveWorkedDaysProportionalOverride(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.ProportionalDays = 30

	days := s.resolveWorkedDays(emp, nil, Classify(nil), q1Start, q1End)

	assert.Equal(t, 30, days)
}

func TestResolveWorkedDaysCalendarSpan(t *testing.T) {
	s := testService()
	emp := normalEmployee()

	days := s.resolveWorkedDays(emp, nil, Classify(nil), q1Start, q1End)

	// Jan 1 through Mar 31 2025 inclusive.
	assert.Equal(t, 90, days)
}

func TestResolveWorkedDaysMidQuarterAdmission(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.AdmissionDate = date(2025, 2, 1)

	days := s.resolveWorkedDays(emp, nil, Classify(nil), q1Start, q1End)

	// Feb 1 through Mar 31.
	assert.Equal(t, 59, days)
}

func TestResolveWorkedDaysSubtractsAbsences(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	sum := Classify([]event.AttendanceEvent{
		ev(event.TypeUnexcusedAbsence, date(2025, 1, 6), 0, false),
		ev(event.TypeExcusedAbsence, date(2025, 1, 7), 0, false),
	})

	days := s.resolveWorkedDays(emp, nil, sum, q1Start, q1End)

	assert.Equal(t, 88, days)
}

func TestResolveWorkedDaysTerminationClipsSpan(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	term := date(2025, 1, 31)
	emp.TerminationDate = &term

	days := s.resolveWorkedDays(emp, nil, Classify(nil), q1Start, q1End)

	assert.Equal(t, 31, days)
}

func TestResolveWorkedDaysAdmissionAfterQuarter(t *testing.T) {
	s := testService()
	emp := normalEmployee()
	emp.AdmissionDate = date(2025, 5, 1)

	days := s.resolveWorkedDays(emp, nil, Classify(nil), q1Start, q1End)

	assert.Equal(t, 0, days)
}
