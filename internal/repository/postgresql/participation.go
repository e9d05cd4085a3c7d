package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) participation.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) GetByEmployeeAndQuarter(ctx context.Context, employeeID, quarter string) (*participation.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.employee_id, pr.quarter, pr.worked_days, pr.worked_days_manually_edited,
			   pr.gross_value, pr.final_value, pr.discount_total, pr.penalty_amount,
			   pr.counts, pr.manual_adjustment, pr.proportional_factor, pr.discount_items,
			   pr.editable, pr.payout_date, pr.created_at, pr.updated_at,
			   e.name, e.sector_id, s.name
		FROM participation_records pr
		JOIN employees e ON e.id = pr.employee_id
		LEFT JOIN sectors s ON s.id = e.sector_id
		WHERE pr.employee_id = $1 AND pr.quarter = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, quarter))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, participation.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get participation record: %w", err)
	}

	return rec, nil
}

func scanRecord(row pgx.Row) (*participation.Record, error) {
	var rec participation.Record
	var countsJSON, itemsJSON []byte

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Quarter, &rec.WorkedDays, &rec.WorkedDaysManuallyEdited,
		&rec.GrossValue, &rec.FinalValue, &rec.DiscountTotal, &rec.PenaltyAmount,
		&countsJSON, &rec.ManualAdjustment, &rec.ProportionalFactor, &itemsJSON,
		&rec.Editable, &rec.PayoutDate, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.SectorID, &rec.SectorName,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(countsJSON, &rec.Counts); err != nil {
		return nil, fmt.Errorf("failed to decode counts: %w", err)
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &rec.DiscountItems); err != nil {
			return nil, fmt.Errorf("failed to decode discount items: %w", err)
		}
	}

	return &rec, nil
}

func (r *recordRepository) ListByQuarter(ctx context.Context, quarter string) ([]participation.Record, error) {
	return r.list(ctx, `
		SELECT pr.id, pr.employee_id, pr.quarter, pr.worked_days, pr.worked_days_manually_edited,
			   pr.gross_value, pr.final_value, pr.discount_total, pr.penalty_amount,
			   pr.counts, pr.manual_adjustment, pr.proportional_factor, pr.discount_items,
			   pr.editable, pr.payout_date, pr.created_at, pr.updated_at,
			   e.name, e.sector_id, s.name
		FROM participation_records pr
		JOIN employees e ON e.id = pr.employee_id
		LEFT JOIN sectors s ON s.id = e.sector_id
		WHERE pr.quarter = $1
		ORDER BY e.name
	`, quarter)
}

func (r *recordRepository) ListBySectorAndQuarter(ctx context.Context, sectorID, quarter string) ([]participation.Record, error) {
	return r.list(ctx, `
		SELECT pr.id, pr.employee_id, pr.quarter, pr.worked_days, pr.worked_days_manually_edited,
			   pr.gross_value, pr.final_value, pr.discount_total, pr.penalty_amount,
			   pr.counts, pr.manual_adjustment, pr.proportional_factor, pr.discount_items,
			   pr.editable, pr.payout_date, pr.created_at, pr.updated_at,
			   e.name, e.sector_id, s.name
		FROM participation_records pr
		JOIN employees e ON e.id = pr.employee_id
		LEFT JOIN sectors s ON s.id = e.sector_id
		WHERE e.sector_id = $1 AND pr.quarter = $2
		ORDER BY e.name
	`, sectorID, quarter)
}

func (r *recordRepository) list(ctx context.Context, query string, args ...interface{}) ([]participation.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participation records: %w", err)
	}
	defer rows.Close()

	var records []participation.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participation record: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func (r *recordRepository) Save(ctx context.Context, rec *participation.Record) error {
	q := GetQuerier(ctx, r.db)

	countsJSON, err := json.Marshal(rec.Counts)
	if err != nil {
		return fmt.Errorf("failed to encode counts: %w", err)
	}
	itemsJSON, err := json.Marshal(rec.DiscountItems)
	if err != nil {
		return fmt.Errorf("failed to encode discount items: %w", err)
	}

	query := `
		INSERT INTO participation_records (
			id, employee_id, quarter, worked_days, worked_days_manually_edited,
			gross_value, final_value, discount_total, penalty_amount,
			counts, manual_adjustment, proportional_factor, discount_items,
			editable, payout_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (employee_id, quarter) DO UPDATE SET
			worked_days = EXCLUDED.worked_days,
			worked_days_manually_edited = EXCLUDED.worked_days_manually_edited,
			gross_value = EXCLUDED.gross_value,
			final_value = EXCLUDED.final_value,
			discount_total = EXCLUDED.discount_total,
			penalty_amount = EXCLUDED.penalty_amount,
			counts = EXCLUDED.counts,
			manual_adjustment = EXCLUDED.manual_adjustment,
			proportional_factor = EXCLUDED.proportional_factor,
			discount_items = EXCLUDED.discount_items,
			editable = EXCLUDED.editable,
			payout_date = EXCLUDED.payout_date,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Quarter, rec.WorkedDays, rec.WorkedDaysManuallyEdited,
		rec.GrossValue, rec.FinalValue, rec.DiscountTotal, rec.PenaltyAmount,
		countsJSON, rec.ManualAdjustment, rec.ProportionalFactor, itemsJSON,
		rec.Editable, rec.PayoutDate,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save participation record: %w", err)
	}

	return nil
}

func (r *recordRepository) SetEditable(ctx context.Context, sectorID, quarter string, editable bool) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE participation_records pr
		SET editable = $3, updated_at = NOW()
		FROM employees e
		WHERE e.id = pr.employee_id AND e.sector_id = $1 AND pr.quarter = $2
	`

	tag, err := q.Exec(ctx, query, sectorID, quarter, editable)
	if err != nil {
		return 0, fmt.Errorf("failed to set record editability: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

type revenueConfigRepository struct {
	db *database.DB
}

func NewRevenueConfigRepository(db *database.DB) participation.RevenueConfigRepository {
	return &revenueConfigRepository{db: db}
}

func (r *revenueConfigRepository) GetByQuarter(ctx context.Context, quarter string) (*participation.RevenueConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, quarter, normal_revenue, differentiated_revenue,
			   normal_deduction, differentiated_deduction,
			   normal_share, differentiated_share, revenue_sector_share, other_sector_share,
			   created_at, updated_at
		FROM quarter_revenue_configs
		WHERE quarter = $1
	`

	var cfg participation.RevenueConfig
	err := q.QueryRow(ctx, query, quarter).Scan(
		&cfg.ID, &cfg.Quarter, &cfg.NormalRevenue, &cfg.DifferentiatedRevenue,
		&cfg.NormalDeduction, &cfg.DifferentiatedDeduction,
		&cfg.NormalShare, &cfg.DifferentiatedShare, &cfg.RevenueSectorShare, &cfg.OtherSectorShare,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, participation.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get revenue config: %w", err)
	}

	return &cfg, nil
}

func (r *revenueConfigRepository) Upsert(ctx context.Context, cfg *participation.RevenueConfig) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO quarter_revenue_configs (
			id, quarter, normal_revenue, differentiated_revenue,
			normal_deduction, differentiated_deduction,
			normal_share, differentiated_share, revenue_sector_share, other_sector_share
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (quarter) DO UPDATE SET
			normal_revenue = EXCLUDED.normal_revenue,
			differentiated_revenue = EXCLUDED.differentiated_revenue,
			normal_deduction = EXCLUDED.normal_deduction,
			differentiated_deduction = EXCLUDED.differentiated_deduction,
			normal_share = EXCLUDED.normal_share,
			differentiated_share = EXCLUDED.differentiated_share,
			revenue_sector_share = EXCLUDED.revenue_sector_share,
			other_sector_share = EXCLUDED.other_sector_share,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cfg.ID, cfg.Quarter, cfg.NormalRevenue, cfg.DifferentiatedRevenue,
		cfg.NormalDeduction, cfg.DifferentiatedDeduction,
		cfg.NormalShare, cfg.DifferentiatedShare, cfg.RevenueSectorShare, cfg.OtherSectorShare,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert revenue config: %w", err)
	}

	return nil
}

func (r *revenueConfigRepository) List(ctx context.Context) ([]participation.RevenueConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, quarter, normal_revenue, differentiated_revenue,
			   normal_deduction, differentiated_deduction,
			   normal_share, differentiated_share, revenue_sector_share, other_sector_share,
			   created_at, updated_at
		FROM quarter_revenue_configs
		ORDER BY quarter DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue configs: %w", err)
	}
	defer rows.Close()

	var configs []participation.RevenueConfig
	for rows.Next() {
		var cfg participation.RevenueConfig
		err := rows.Scan(
			&cfg.ID, &cfg.Quarter, &cfg.NormalRevenue, &cfg.DifferentiatedRevenue,
			&cfg.NormalDeduction, &cfg.DifferentiatedDeduction,
			&cfg.NormalShare, &cfg.DifferentiatedShare, &cfg.RevenueSectorShare, &cfg.OtherSectorShare,
			&cfg.CreatedAt, &cfg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revenue config: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

type approvalRepository struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) participation.ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) GetBySectorAndQuarter(ctx context.Context, sectorID, quarter string) (*participation.SectorApproval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sa.id, sa.sector_id, sa.quarter, sa.status, sa.approved_by, sa.approved_at,
			   sa.created_at, sa.updated_at, s.name
		FROM sector_approvals sa
		JOIN sectors s ON s.id = sa.sector_id
		WHERE sa.sector_id = $1 AND sa.quarter = $2
	`

	var a participation.SectorApproval
	err := q.QueryRow(ctx, query, sectorID, quarter).Scan(
		&a.ID, &a.SectorID, &a.Quarter, &a.Status, &a.ApprovedBy, &a.ApprovedAt,
		&a.CreatedAt, &a.UpdatedAt, &a.SectorName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, participation.ErrApprovalNotFound
		}
		return nil, fmt.Errorf("failed to get sector approval: %w", err)
	}

	return &a, nil
}

func (r *approvalRepository) ListByQuarter(ctx context.Context, quarter string) ([]participation.SectorApproval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sa.id, sa.sector_id, sa.quarter, sa.status, sa.approved_by, sa.approved_at,
			   sa.created_at, sa.updated_at, s.name
		FROM sector_approvals sa
		JOIN sectors s ON s.id = sa.sector_id
		WHERE sa.quarter = $1
		ORDER BY s.name
	`

	rows, err := q.Query(ctx, query, quarter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sector approvals: %w", err)
	}
	defer rows.Close()

	var approvals []participation.SectorApproval
	for rows.Next() {
		var a participation.SectorApproval
		err := rows.Scan(
			&a.ID, &a.SectorID, &a.Quarter, &a.Status, &a.ApprovedBy, &a.ApprovedAt,
			&a.CreatedAt, &a.UpdatedAt, &a.SectorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sector approval: %w", err)
		}
		approvals = append(approvals, a)
	}

	return approvals, rows.Err()
}

func (r *approvalRepository) Upsert(ctx context.Context, a *participation.SectorApproval) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sector_approvals (id, sector_id, quarter, status, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sector_id, quarter) DO UPDATE SET
			status = EXCLUDED.status,
			approved_by = EXCLUDED.approved_by,
			approved_at = EXCLUDED.approved_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.SectorID, a.Quarter, a.Status, a.ApprovedBy, a.ApprovedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert sector approval: %w", err)
	}

	return nil
}
