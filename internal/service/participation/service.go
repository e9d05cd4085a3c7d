package participation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/sector"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/trimester"
)

const (
	daysInQuarter       = 90
	minProportionalDays = 15
)

type ParticipationServiceImpl struct {
	runInTx      database.TxRunner
	logger       *slog.Logger
	recordRepo   participation.RecordRepository
	configRepo   participation.RevenueConfigRepository
	employeeRepo employee.EmployeeRepository
	sectorRepo   sector.SectorRepository
	eventRepo    event.EventRepository
	ruleRepo     rule.RuleRepository

	grossWarnThreshold decimal.Decimal
}

func NewParticipationService(
	runInTx database.TxRunner,
	logger *slog.Logger,
	recordRepo participation.RecordRepository,
	configRepo participation.RevenueConfigRepository,
	employeeRepo employee.EmployeeRepository,
	sectorRepo sector.SectorRepository,
	eventRepo event.EventRepository,
	ruleRepo rule.RuleRepository,
	grossWarnThreshold decimal.Decimal,
) participation.ParticipationService {
	return &ParticipationServiceImpl{
		runInTx:            runInTx,
		logger:             logger,
		recordRepo:         recordRepo,
		configRepo:         configRepo,
		employeeRepo:       employeeRepo,
		sectorRepo:         sectorRepo,
		eventRepo:          eventRepo,
		ruleRepo:           ruleRepo,
		grossWarnThreshold: grossWarnThreshold,
	}
}

// outcome is one employee's eligibility decision for the quarter.
type outcome struct {
	emp        *employee.Employee
	summary    Summary
	workedDays int
	// zeroReason non-empty means a zero-value record is written.
	zeroReason string
	// revenueSector selects which gross share applies.
	revenueSector bool
	existing      *participation.Record
}

func (s *ParticipationServiceImpl) RecomputeQuarter(ctx context.Context, quarter string) (participation.RecomputeQuarterResponse, error) {
	if !trimester.IsValid(quarter) {
		return participation.RecomputeQuarterResponse{}, fmt.Errorf("invalid quarter %q", quarter)
	}

	resp := participation.RecomputeQuarterResponse{Quarter: quarter}

	err := s.runInTx(ctx, func(txCtx context.Context) error {
		cfg, err := s.configRepo.GetByQuarter(txCtx, quarter)
		if err != nil {
			return err
		}

		outcomes, warnings, err := s.decideQuarter(txCtx, quarter)
		if err != nil {
			return err
		}
		resp.Warnings = append(resp.Warnings, warnings...)

		// Headcounts come from the full eligible set before any record
		// is finalized. Gross depends on them.
		var eligible, revenueHeads, otherHeads int
		for _, o := range outcomes {
			if o.zeroReason != "" {
				continue
			}
			eligible++
			if o.revenueSector {
				revenueHeads++
			} else {
				otherHeads++
			}
		}

		alloc, allocWarnings := AllocateGross(*cfg, eligible, revenueHeads, otherHeads, s.grossWarnThreshold)
		resp.Warnings = append(resp.Warnings, allocWarnings...)

		rules, err := s.ruleRepo.List(txCtx)
		if err != nil {
			return err
		}

		payoutDate, err := trimester.PayoutDate(quarter)
		if err != nil {
			return err
		}
		qStart, _, err := trimester.Bounds(quarter)
		if err != nil {
			return err
		}

		for _, o := range outcomes {
			if o.existing != nil && !o.existing.Editable {
				resp.Skipped++
				continue
			}

			gross := decimal.Zero
			if o.zeroReason == "" {
				if o.revenueSector {
					gross = alloc.RevenueSectorGross
				} else {
					gross = alloc.OtherSectorGross
				}
			}

			rec, recWarnings := s.buildRecord(o, rules, gross, quarter, qStart, payoutDate)
			resp.Warnings = append(resp.Warnings, recWarnings...)

			if err := s.recordRepo.Save(txCtx, rec); err != nil {
				return err
			}
			resp.Computed++
		}

		return nil
	})
	if err != nil {
		return participation.RecomputeQuarterResponse{}, err
	}

	for _, w := range resp.Warnings {
		s.logger.Warn("quarter recomputation", "quarter", quarter, "warning", w)
	}

	return resp, nil
}

// decideQuarter classifies every employee's events and resolves the
// eligibility branch for each. Employees terminated before the payout
// date or assigned to a non-participating sector are left out entirely.
func (s *ParticipationServiceImpl) decideQuarter(ctx context.Context, quarter string) ([]outcome, []string, error) {
	payoutDate, err := trimester.PayoutDate(quarter)
	if err != nil {
		return nil, nil, err
	}
	qStart, qEnd, err := trimester.Bounds(quarter)
	if err != nil {
		return nil, nil, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	sectors, err := s.sectorRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	sectorClass := make(map[string]sector.Class, len(sectors))
	excluded := make(map[string]bool)
	participating := 0
	for i := range sectors {
		sectorClass[sectors[i].ID] = sectors[i].Class
		if sectors[i].Participates {
			participating++
		} else {
			excluded[sectors[i].ID] = true
		}
	}
	if participating == 0 {
		return nil, nil, participation.ErrNoParticipatingSectors
	}

	events, err := s.eventRepo.ListByQuarter(ctx, quarter)
	if err != nil {
		return nil, nil, err
	}
	byEmployee := make(map[string][]event.AttendanceEvent)
	for _, ev := range events {
		byEmployee[ev.EmployeeID] = append(byEmployee[ev.EmployeeID], ev)
	}

	var outcomes []outcome
	var warnings []string

	for i := range employees {
		emp := &employees[i]

		if !emp.Active(payoutDate) {
			continue
		}
		if emp.SectorID != nil && excluded[*emp.SectorID] {
			continue
		}

		existing, err := s.recordRepo.GetByEmployeeAndQuarter(ctx, emp.ID, quarter)
		if err != nil && !errors.Is(err, participation.ErrRecordNotFound) {
			return nil, nil, err
		}

		o := outcome{
			emp:      emp,
			summary:  Classify(byEmployee[emp.ID]),
			existing: existing,
		}
		if emp.SectorID != nil {
			o.revenueSector = sectorClass[*emp.SectorID] == sector.ClassRevenue
		}

		switch {
		case emp.ParticipationStartQuarter != "" && trimester.Compare(emp.ParticipationStartQuarter, quarter) > 0:
			o.zeroReason = "participation starts in a later quarter"
		case emp.ParticipationType == employee.TypeMinorApprentice:
			o.zeroReason = "minor apprentice, excluded from payout"
		default:
			o.workedDays = s.resolveWorkedDays(emp, existing, o.summary, qStart, qEnd)
			switch {
			case emp.ParticipationType == employee.TypeProportional && o.workedDays < minProportionalDays:
				o.zeroReason = "proportional employee with insufficient worked days"
			case emp.ParticipationType != employee.TypeProportional && o.workedDays == 0 && !o.summary.HasEvents():
				o.zeroReason = "no worked days and no events"
			}
		}

		if o.zeroReason != "" {
			warnings = append(warnings, fmt.Sprintf("employee %s: %s", emp.Name, o.zeroReason))
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, warnings, nil
}

// resolveWorkedDays applies the worked-days priority chain: a manual
// edit on the existing record wins, then a configured proportional
// override, then the calendar span minus absence dates.
func (s *ParticipationServiceImpl) resolveWorkedDays(emp *employee.Employee, existing *participation.Record, sum Summary, qStart, qEnd time.Time) int {
	if existing != nil && existing.WorkedDaysManuallyEdited && existing.WorkedDays > 0 {
		return existing.WorkedDays
	}
	if emp.ProportionalDays > 0 {
		return emp.ProportionalDays
	}

	start := qStart
	if emp.AdmissionDate.After(start) {
		start = emp.AdmissionDate
	}
	end := qEnd
	if emp.TerminationDate != nil && emp.TerminationDate.Before(end) {
		end = *emp.TerminationDate
	}
	if end.Before(start) {
		return 0
	}

	days := int(end.Sub(start).Hours()/24) + 1
	days -= len(sum.AbsenceDates)
	if days < 0 {
		return 0
	}
	return days
}

// buildRecord runs the finalization steps for one employee and fills
// the record to persist. Sticky inputs (manual worked-days flag and
// manual adjustment) carry over from the existing record.
func (s *ParticipationServiceImpl) buildRecord(o outcome, rules []rule.PenaltyRule, gross decimal.Decimal, quarter string, qStart, payoutDate time.Time) (*participation.Record, []string) {
	rec := &participation.Record{
		ID:         uuid.NewString(),
		EmployeeID: o.emp.ID,
		Quarter:    quarter,
		Editable:   true,
		PayoutDate: payoutDate,
	}
	if o.existing != nil {
		rec.ID = o.existing.ID
		rec.WorkedDaysManuallyEdited = o.existing.WorkedDaysManuallyEdited
		rec.ManualAdjustment = o.existing.ManualAdjustment
		rec.Editable = o.existing.Editable
	}

	rec.Counts = o.summary.Counts
	rec.WorkedDays = o.workedDays
	rec.GrossValue = gross

	if o.zeroReason != "" {
		rec.FinalValue = decimal.Zero
		rec.DiscountTotal = decimal.Zero
		rec.PenaltyAmount = decimal.Zero
		rec.ProportionalFactor = decimal.Zero
		rec.DiscountItems = nil
		return rec, nil
	}

	reference := qStart
	if o.summary.EarliestEvent != nil {
		reference = *o.summary.EarliestEvent
	}

	penalty := AggregatePenalties(o.summary, rules, gross, reference)
	items := penalty.Items
	net := gross.Mul(hundred.Sub(penalty.DiscountPercent)).Div(hundred)
	netAfterPenalty := net

	if o.emp.ParticipationPercentage.LessThan(hundred) {
		reduced := net.Mul(o.emp.ParticipationPercentage).Div(hundred)
		items = append(items, participation.DiscountItem{
			Reason: fmt.Sprintf("participation percentage %s%%", o.emp.ParticipationPercentage),
			Value:  net.Sub(reduced).Round(2),
		})
		net = reduced
	}

	if o.emp.ParticipationType == employee.TypeProportional && o.workedDays < daysInQuarter {
		proportional := gross.Div(decimal.NewFromInt(daysInQuarter)).Mul(decimal.NewFromInt(int64(o.workedDays)))
		items = append(items, participation.DiscountItem{
			Reason: fmt.Sprintf("proportional tenure, %d of %d days", o.workedDays, daysInQuarter),
			Value:  netAfterPenalty.Sub(proportional).Round(2),
		})
		net = proportional
	}

	if o.emp.BonusActive {
		bonus := o.emp.BonusValue
		if o.emp.BonusKind == employee.BonusPercentage {
			bonus = gross.Mul(o.emp.BonusValue).Div(hundred)
		}
		bonus = bonus.Round(2)
		items = append(items, participation.DiscountItem{
			Reason: "bonus",
			Value:  bonus.Neg(),
		})
		net = net.Add(bonus)
	}

	if !rec.ManualAdjustment.IsZero() {
		items = append(items, participation.DiscountItem{
			Reason: "manual adjustment",
			Value:  rec.ManualAdjustment.Neg(),
		})
		net = net.Add(rec.ManualAdjustment)
	}

	net = net.Round(0)
	if net.IsNegative() {
		net = decimal.Zero
	}

	factor := decimal.NewFromInt(int64(o.workedDays)).Div(decimal.NewFromInt(daysInQuarter))
	if factor.GreaterThan(decimal.NewFromInt(1)) {
		factor = decimal.NewFromInt(1)
	}

	rec.FinalValue = net
	rec.DiscountTotal = penalty.DiscountPercent.Div(hundred)
	rec.PenaltyAmount = penalty.PenaltyAmount
	rec.ProportionalFactor = factor
	rec.DiscountItems = items

	return rec, penalty.Warnings
}

func (s *ParticipationServiceImpl) RecomputeEmployee(ctx context.Context, employeeID, quarter string) (participation.RecordResponse, error) {
	if !trimester.IsValid(quarter) {
		return participation.RecordResponse{}, fmt.Errorf("invalid quarter %q", quarter)
	}

	var result *participation.Record

	err := s.runInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.recomputeEmployeeTx(txCtx, employeeID, quarter)
		if err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return participation.RecordResponse{}, err
	}

	return participation.ToRecordResponse(result), nil
}

// recomputeEmployeeTx recomputes one record reusing its stored gross,
// so the quarter's headcount-dependent allocation is not disturbed.
// It requires an existing record from a prior quarter computation.
func (s *ParticipationServiceImpl) recomputeEmployeeTx(ctx context.Context, employeeID, quarter string) (*participation.Record, error) {
	existing, err := s.recordRepo.GetByEmployeeAndQuarter(ctx, employeeID, quarter)
	if err != nil {
		return nil, err
	}
	if !existing.Editable {
		return nil, participation.ErrRecordNotEditable
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	payoutDate, err := trimester.PayoutDate(quarter)
	if err != nil {
		return nil, err
	}
	qStart, qEnd, err := trimester.Bounds(quarter)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByEmployeeAndQuarter(ctx, employeeID, quarter)
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	o := outcome{
		emp:      emp,
		summary:  Classify(events),
		existing: existing,
	}

	switch {
	case emp.ParticipationStartQuarter != "" && trimester.Compare(emp.ParticipationStartQuarter, quarter) > 0:
		o.zeroReason = "participation starts in a later quarter"
	case emp.ParticipationType == employee.TypeMinorApprentice:
		o.zeroReason = "minor apprentice, excluded from payout"
	default:
		o.workedDays = s.resolveWorkedDays(emp, existing, o.summary, qStart, qEnd)
		switch {
		case emp.ParticipationType == employee.TypeProportional && o.workedDays < minProportionalDays:
			o.zeroReason = "proportional employee with insufficient worked days"
		case emp.ParticipationType != employee.TypeProportional && o.workedDays == 0 && !o.summary.HasEvents():
			o.zeroReason = "no worked days and no events"
		}
	}

	gross := decimal.Zero
	if o.zeroReason == "" {
		gross = existing.GrossValue
	}

	rec, warnings := s.buildRecord(o, rules, gross, quarter, qStart, payoutDate)
	for _, w := range warnings {
		s.logger.Warn("employee recomputation", "employee_id", employeeID, "quarter", quarter, "warning", w)
	}

	if err := s.recordRepo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ParticipationServiceImpl) GetRecord(ctx context.Context, employeeID, quarter string) (participation.RecordResponse, error) {
	rec, err := s.recordRepo.GetByEmployeeAndQuarter(ctx, employeeID, quarter)
	if err != nil {
		return participation.RecordResponse{}, err
	}
	return participation.ToRecordResponse(rec), nil
}

func (s *ParticipationServiceImpl) ListByQuarter(ctx context.Context, quarter string) ([]participation.RecordResponse, error) {
	records, err := s.recordRepo.ListByQuarter(ctx, quarter)
	if err != nil {
		return nil, err
	}
	responses := make([]participation.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, participation.ToRecordResponse(&records[i]))
	}
	return responses, nil
}

func (s *ParticipationServiceImpl) ListBySectorAndQuarter(ctx context.Context, sectorID, quarter string) ([]participation.RecordResponse, error) {
	records, err := s.recordRepo.ListBySectorAndQuarter(ctx, sectorID, quarter)
	if err != nil {
		return nil, err
	}
	responses := make([]participation.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, participation.ToRecordResponse(&records[i]))
	}
	return responses, nil
}

func (s *ParticipationServiceImpl) UpdateRecord(ctx context.Context, req participation.UpdateRecordRequest) (participation.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return participation.RecordResponse{}, err
	}

	var result *participation.Record

	err := s.runInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.recordRepo.GetByEmployeeAndQuarter(txCtx, req.EmployeeID, req.Quarter)
		if err != nil {
			return err
		}
		if !rec.Editable {
			return participation.ErrRecordNotEditable
		}

		if req.WorkedDays != nil {
			rec.WorkedDays = *req.WorkedDays
			rec.WorkedDaysManuallyEdited = true
		}
		if req.ManualAdjustment != nil {
			rec.ManualAdjustment = *req.ManualAdjustment
		}
		if err := s.recordRepo.Save(txCtx, rec); err != nil {
			return err
		}

		updated, err := s.recomputeEmployeeTx(txCtx, req.EmployeeID, req.Quarter)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return participation.RecordResponse{}, err
	}

	return participation.ToRecordResponse(result), nil
}

func (s *ParticipationServiceImpl) UpsertRevenueConfig(ctx context.Context, req participation.UpsertRevenueConfigRequest) (participation.RevenueConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return participation.RevenueConfigResponse{}, err
	}

	cfg := &participation.RevenueConfig{
		ID:                      uuid.NewString(),
		Quarter:                 req.Quarter,
		NormalRevenue:           req.NormalRevenue,
		DifferentiatedRevenue:   req.DifferentiatedRevenue,
		NormalDeduction:         req.NormalDeduction,
		DifferentiatedDeduction: req.DifferentiatedDeduction,
		NormalShare:             req.NormalShare,
		DifferentiatedShare:     req.DifferentiatedShare,
		RevenueSectorShare:      req.RevenueSectorShare,
		OtherSectorShare:        req.OtherSectorShare,
	}

	existing, err := s.configRepo.GetByQuarter(ctx, req.Quarter)
	if err != nil && !errors.Is(err, participation.ErrConfigNotFound) {
		return participation.RevenueConfigResponse{}, err
	}
	if existing != nil {
		cfg.ID = existing.ID
	}

	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return participation.RevenueConfigResponse{}, err
	}

	// Revenue inputs shape every gross value, so the quarter is
	// recomputed right away.
	if _, err := s.RecomputeQuarter(ctx, req.Quarter); err != nil {
		return participation.RevenueConfigResponse{}, err
	}

	return participation.ToRevenueConfigResponse(cfg), nil
}

func (s *ParticipationServiceImpl) GetRevenueConfig(ctx context.Context, quarter string) (participation.RevenueConfigResponse, error) {
	cfg, err := s.configRepo.GetByQuarter(ctx, quarter)
	if err != nil {
		return participation.RevenueConfigResponse{}, err
	}
	return participation.ToRevenueConfigResponse(cfg), nil
}

func (s *ParticipationServiceImpl) ListRevenueConfigs(ctx context.Context) ([]participation.RevenueConfigResponse, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]participation.RevenueConfigResponse, 0, len(configs))
	for i := range configs {
		responses = append(responses, participation.ToRevenueConfigResponse(&configs[i]))
	}
	return responses, nil
}
