package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/sector"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
)

type sectorRepository struct {
	db *database.DB
}

func NewSectorRepository(db *database.DB) sector.SectorRepository {
	return &sectorRepository{db: db}
}

func (r *sectorRepository) Create(ctx context.Context, s *sector.Sector) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sectors (id, name, class, base_value, active, participates)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.Name, s.Class, s.BaseValue, s.Active, s.Participates).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_sectors_name") {
			return sector.ErrSectorNameExists
		}
		return fmt.Errorf("failed to create sector: %w", err)
	}

	return nil
}

func (r *sectorRepository) GetByID(ctx context.Context, id string) (*sector.Sector, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, class, base_value, active, participates, created_at, updated_at
		FROM sectors
		WHERE id = $1
	`

	var s sector.Sector
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Class, &s.BaseValue, &s.Active, &s.Participates, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, sector.ErrSectorNotFound
		}
		return nil, fmt.Errorf("failed to get sector: %w", err)
	}

	return &s, nil
}

func (r *sectorRepository) GetByName(ctx context.Context, name string) (*sector.Sector, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, class, base_value, active, participates, created_at, updated_at
		FROM sectors
		WHERE name = $1
	`

	var s sector.Sector
	err := q.QueryRow(ctx, query, name).Scan(&s.ID, &s.Name, &s.Class, &s.BaseValue, &s.Active, &s.Participates, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, sector.ErrSectorNotFound
		}
		return nil, fmt.Errorf("failed to get sector by name: %w", err)
	}

	return &s, nil
}

func (r *sectorRepository) List(ctx context.Context) ([]sector.Sector, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.name, s.class, s.base_value, s.active, s.participates, s.created_at, s.updated_at,
			   COUNT(e.id) AS employee_count
		FROM sectors s
		LEFT JOIN employees e ON e.sector_id = s.id
		GROUP BY s.id
		ORDER BY s.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	defer rows.Close()

	var sectors []sector.Sector
	for rows.Next() {
		var s sector.Sector
		var count int
		if err := rows.Scan(&s.ID, &s.Name, &s.Class, &s.BaseValue, &s.Active, &s.Participates, &s.CreatedAt, &s.UpdatedAt, &count); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		s.EmployeeCount = &count
		sectors = append(sectors, s)
	}

	return sectors, rows.Err()
}

func (r *sectorRepository) Update(ctx context.Context, s *sector.Sector) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sectors
		SET name = $2, class = $3, base_value = $4, active = $5, participates = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.Name, s.Class, s.BaseValue, s.Active, s.Participates).Scan(&s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return sector.ErrSectorNotFound
		}
		if strings.Contains(err.Error(), "uk_sectors_name") {
			return sector.ErrSectorNameExists
		}
		return fmt.Errorf("failed to update sector: %w", err)
	}

	return nil
}

func (r *sectorRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sectors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sector: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sector.ErrSectorNotFound
	}

	return nil
}

func (r *sectorRepository) CountEmployees(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE sector_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sector employees: %w", err)
	}

	return count, nil
}
