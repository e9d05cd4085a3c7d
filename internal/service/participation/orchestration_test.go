package participation

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/rule"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/sector"
)

// passthroughTx satisfies the runner without a database: the fakes
// below have no isolation to manage.
func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRecordRepo struct {
	records map[string]*participation.Record
	// sectorOf stands in for the employee join the SQL queries do.
	sectorOf map[string]string
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{
		records:  make(map[string]*participation.Record),
		sectorOf: make(map[string]string),
	}
}

func recordKey(employeeID, quarter string) string {
	return employeeID + "|" + quarter
}

func (m *memRecordRepo) GetByEmployeeAndQuarter(_ context.Context, employeeID, quarter string) (*participation.Record, error) {
	rec, ok := m.records[recordKey(employeeID, quarter)]
	if !ok {
		return nil, participation.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memRecordRepo) ListByQuarter(_ context.Context, quarter string) ([]participation.Record, error) {
	var out []participation.Record
	for _, rec := range m.records {
		if rec.Quarter == quarter {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memRecordRepo) ListBySectorAndQuarter(_ context.Context, sectorID, quarter string) ([]participation.Record, error) {
	var out []participation.Record
	for _, rec := range m.records {
		if rec.Quarter == quarter && m.sectorOf[rec.EmployeeID] == sectorID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memRecordRepo) Save(_ context.Context, rec *participation.Record) error {
	cp := *rec
	m.records[recordKey(rec.EmployeeID, rec.Quarter)] = &cp
	return nil
}

func (m *memRecordRepo) SetEditable(_ context.Context, sectorID, quarter string, editable bool) (int, error) {
	touched := 0
	for _, rec := range m.records {
		if rec.Quarter == quarter && m.sectorOf[rec.EmployeeID] == sectorID {
			rec.Editable = editable
			touched++
		}
	}
	return touched, nil
}

type memConfigRepo struct {
	configs map[string]*participation.RevenueConfig
}

func (m *memConfigRepo) GetByQuarter(_ context.Context, quarter string) (*participation.RevenueConfig, error) {
	cfg, ok := m.configs[quarter]
	if !ok {
		return nil, participation.ErrConfigNotFound
	}
	cp := *cfg
	return &cp, nil
}

func (m *memConfigRepo) Upsert(_ context.Context, cfg *participation.RevenueConfig) error {
	cp := *cfg
	m.configs[cfg.Quarter] = &cp
	return nil
}

func (m *memConfigRepo) List(_ context.Context) ([]participation.RevenueConfig, error) {
	var out []participation.RevenueConfig
	for _, cfg := range m.configs {
		out = append(out, *cfg)
	}
	return out, nil
}

type memApprovalRepo struct {
	approvals map[string]*participation.SectorApproval
}

func (m *memApprovalRepo) GetBySectorAndQuarter(_ context.Context, sectorID, quarter string) (*participation.SectorApproval, error) {
	a, ok := m.approvals[sectorID+"|"+quarter]
	if !ok {
		return nil, participation.ErrApprovalNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memApprovalRepo) ListByQuarter(_ context.Context, quarter string) ([]participation.SectorApproval, error) {
	var out []participation.SectorApproval
	for _, a := range m.approvals {
		if a.Quarter == quarter {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memApprovalRepo) Upsert(_ context.Context, a *participation.SectorApproval) error {
	cp := *a
	m.approvals[a.SectorID+"|"+a.Quarter] = &cp
	return nil
}

type memEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (m *memEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return m.employees, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	for i := range m.employees {
		if m.employees[i].ID == id {
			cp := m.employees[i]
			return &cp, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

type memSectorRepo struct {
	sector.SectorRepository
	sectors []sector.Sector
}

func (m *memSectorRepo) List(_ context.Context) ([]sector.Sector, error) {
	return m.sectors, nil
}

type memEventRepo struct {
	event.EventRepository
	events []event.AttendanceEvent
}

func (m *memEventRepo) ListByQuarter(_ context.Context, quarter string) ([]event.AttendanceEvent, error) {
	var out []event.AttendanceEvent
	for _, ev := range m.events {
		if ev.Quarter == quarter {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memEventRepo) ListByEmployeeAndQuarter(_ context.Context, employeeID, quarter string) ([]event.AttendanceEvent, error) {
	var out []event.AttendanceEvent
	for _, ev := range m.events {
		if ev.EmployeeID == employeeID && ev.Quarter == quarter {
			out = append(out, ev)
		}
	}
	return out, nil
}

type memRuleRepo struct {
	rule.RuleRepository
	rules []rule.PenaltyRule
}

func (m *memRuleRepo) List(_ context.Context) ([]rule.PenaltyRule, error) {
	return m.rules, nil
}

type quarterFixture struct {
	service   *ParticipationServiceImpl
	approvals *ApprovalServiceImpl
	records   *memRecordRepo
	configs   *memConfigRepo
	employees *memEmployeeRepo
	sectors   *memSectorRepo
}

func newQuarterFixture(now time.Time) *quarterFixture {
	records := newMemRecordRepo()
	configs := &memConfigRepo{configs: make(map[string]*participation.RevenueConfig)}
	approvals := &memApprovalRepo{approvals: make(map[string]*participation.SectorApproval)}
	employees := &memEmployeeRepo{}
	sectors := &memSectorRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := &ParticipationServiceImpl{
		runInTx:            passthroughTx,
		logger:             logger,
		recordRepo:         records,
		configRepo:         configs,
		employeeRepo:       employees,
		sectorRepo:         sectors,
		eventRepo:          &memEventRepo{},
		ruleRepo:           &memRuleRepo{},
		grossWarnThreshold: decimal.NewFromInt(5000),
	}
	appr := &ApprovalServiceImpl{
		runInTx:      passthroughTx,
		logger:       logger,
		approvalRepo: approvals,
		recordRepo:   records,
		now:          func() time.Time { return now },
	}

	return &quarterFixture{
		service:   svc,
		approvals: appr,
		records:   records,
		configs:   configs,
		employees: employees,
		sectors:   sectors,
	}
}

func (f *quarterFixture) addSector(id string, participates bool) {
	f.sectors.sectors = append(f.sectors.sectors, sector.Sector{
		ID:           id,
		Name:         id,
		Class:        sector.ClassGeneral,
		Active:       true,
		Participates: participates,
	})
}

func (f *quarterFixture) addEmployee(id, sectorID string) {
	f.employees.employees = append(f.employees.employees, employee.Employee{
		ID:                      id,
		Name:                    id,
		SectorID:                &sectorID,
		AdmissionDate:           date(2020, 1, 1),
		ParticipationType:       employee.TypeNormal,
		ParticipationPercentage: decimal.NewFromInt(100),
	})
	f.records.sectorOf[id] = sectorID
}

func (f *quarterFixture) setConfig(quarter string, normalRevenue int64) {
	f.configs.configs[quarter] = &participation.RevenueConfig{
		ID:                  "cfg-" + quarter,
		Quarter:             quarter,
		NormalRevenue:       decimal.NewFromInt(normalRevenue),
		NormalShare:         decimal.NewFromInt(100),
		DifferentiatedShare: decimal.NewFromInt(100),
		RevenueSectorShare:  decimal.NewFromInt(70),
		OtherSectorShare:    decimal.NewFromInt(30),
	}
}

func TestRecomputeQuarterHeadcountBeforeFinalization(t *testing.T) {
	f := newQuarterFixture(date(2025, 2, 1))
	f.addSector("sector-1", true)
	f.addEmployee("emp-1", "sector-1")
	f.addEmployee("emp-2", "sector-1")
	f.setConfig("2025-Q1", 2000)

	// emp-2's record is locked by an approval: it is skipped for
	// writing but still counts toward the gross headcount.
	require.NoError(t, f.records.Save(context.Background(), &participation.Record{
		ID:         "rec-2",
		EmployeeID: "emp-2",
		Quarter:    "2025-Q1",
		Editable:   false,
	}))

	resp, err := f.service.RecomputeQuarter(context.Background(), "2025-Q1")

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Computed)
	assert.Equal(t, 1, resp.Skipped)

	rec, err := f.records.GetByEmployeeAndQuarter(context.Background(), "emp-1", "2025-Q1")
	require.NoError(t, err)
	// 2000 base over 2 eligible heads, not over the 1 writable record.
	assert.True(t, rec.GrossValue.Equal(decimal.NewFromInt(1000)), "got %s", rec.GrossValue)
	assert.True(t, rec.FinalValue.Equal(decimal.NewFromInt(1000)), "got %s", rec.FinalValue)

	locked, err := f.records.GetByEmployeeAndQuarter(context.Background(), "emp-2", "2025-Q1")
	require.NoError(t, err)
	assert.False(t, locked.Editable)
	assert.True(t, locked.GrossValue.IsZero())
}

func TestRecomputeQuarterNoParticipatingSectors(t *testing.T) {
	f := newQuarterFixture(date(2025, 2, 1))
	f.addSector("sector-1", false)
	f.addEmployee("emp-1", "sector-1")
	f.setConfig("2025-Q1", 2000)

	_, err := f.service.RecomputeQuarter(context.Background(), "2025-Q1")

	assert.ErrorIs(t, err, participation.ErrNoParticipatingSectors)
}

func TestApproveLocksAndRevokeRestores(t *testing.T) {
	f := newQuarterFixture(date(2025, 2, 1))
	f.addSector("sector-1", true)
	f.addEmployee("emp-1", "sector-1")
	f.addEmployee("emp-2", "sector-1")
	f.setConfig("2025-Q1", 2000)

	_, err := f.service.RecomputeQuarter(context.Background(), "2025-Q1")
	require.NoError(t, err)

	ctx := contextWithClaims(t, "user-1", employee.AccessManager)
	approval, err := f.approvals.Approve(ctx, "sector-1", "2025-Q1")
	require.NoError(t, err)
	assert.Equal(t, participation.StatusApproved, approval.Status)

	for _, id := range []string{"emp-1", "emp-2"} {
		rec, err := f.records.GetByEmployeeAndQuarter(context.Background(), id, "2025-Q1")
		require.NoError(t, err)
		assert.False(t, rec.Editable, "record %s still editable after approval", id)
	}

	// Mutating a locked record is a conflict, not a silent overwrite.
	days := 30
	_, err = f.service.UpdateRecord(context.Background(), participation.UpdateRecordRequest{
		EmployeeID: "emp-1",
		Quarter:    "2025-Q1",
		WorkedDays: &days,
	})
	assert.ErrorIs(t, err, participation.ErrRecordNotEditable)

	superCtx := contextWithClaims(t, "user-2", employee.AccessSuperAdmin)
	revoked, err := f.approvals.Revoke(superCtx, "sector-1", "2025-Q1")
	require.NoError(t, err)
	assert.Equal(t, participation.StatusPending, revoked.Status)
	assert.Nil(t, revoked.ApprovedBy)

	for _, id := range []string{"emp-1", "emp-2"} {
		rec, err := f.records.GetByEmployeeAndQuarter(context.Background(), id, "2025-Q1")
		require.NoError(t, err)
		assert.True(t, rec.Editable, "record %s not restored after revocation", id)
	}
}

func TestApproveTwiceConflicts(t *testing.T) {
	f := newQuarterFixture(date(2025, 2, 1))
	f.addSector("sector-1", true)
	f.addEmployee("emp-1", "sector-1")
	f.setConfig("2025-Q1", 2000)

	_, err := f.service.RecomputeQuarter(context.Background(), "2025-Q1")
	require.NoError(t, err)

	ctx := contextWithClaims(t, "user-1", employee.AccessManager)
	_, err = f.approvals.Approve(ctx, "sector-1", "2025-Q1")
	require.NoError(t, err)

	_, err = f.approvals.Approve(ctx, "sector-1", "2025-Q1")
	assert.ErrorIs(t, err, participation.ErrAlreadyApproved)
}
