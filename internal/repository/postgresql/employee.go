package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.name, e.registration_number, e.sector_id, e.access_level,
	e.admission_date, e.termination_date, e.participation_type,
	e.participation_percentage, e.proportional_days, e.participation_start_quarter,
	e.bonus_active, e.bonus_kind, e.bonus_value, e.created_at, e.updated_at
`

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &e.RegistrationNumber, &e.SectorID, &e.AccessLevel,
		&e.AdmissionDate, &e.TerminationDate, &e.ParticipationType,
		&e.ParticipationPercentage, &e.ProportionalDays, &e.ParticipationStartQuarter,
		&e.BonusActive, &e.BonusKind, &e.BonusValue, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, user_id, name, registration_number, sector_id, access_level,
			admission_date, termination_date, participation_type,
			participation_percentage, proportional_days, participation_start_quarter,
			bonus_active, bonus_kind, bonus_value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.UserID, e.Name, e.RegistrationNumber, e.SectorID, e.AccessLevel,
		e.AdmissionDate, e.TerminationDate, e.ParticipationType,
		e.ParticipationPercentage, e.ProportionalDays, e.ParticipationStartQuarter,
		e.BonusActive, e.BonusKind, e.BonusValue,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_registration_number") {
			return employee.ErrRegistrationNumberExists
		}
		if strings.Contains(err.Error(), "uk_employees_user_id") {
			return employee.ErrEmployeeAlreadyLinked
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByRegistrationNumber(ctx context.Context, number string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.registration_number = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, number))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by registration number: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.user_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by user: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, `
		SELECT `+employeeColumns+`, s.name
		FROM employees e
		LEFT JOIN sectors s ON s.id = e.sector_id
		ORDER BY e.name
	`)
}

func (r *employeeRepository) ListBySector(ctx context.Context, sectorID string) ([]employee.Employee, error) {
	return r.list(ctx, `
		SELECT `+employeeColumns+`, s.name
		FROM employees e
		LEFT JOIN sectors s ON s.id = e.sector_id
		WHERE e.sector_id = $1
		ORDER BY e.name
	`, sectorID)
}

func (r *employeeRepository) list(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID, &e.UserID, &e.Name, &e.RegistrationNumber, &e.SectorID, &e.AccessLevel,
			&e.AdmissionDate, &e.TerminationDate, &e.ParticipationType,
			&e.ParticipationPercentage, &e.ProportionalDays, &e.ParticipationStartQuarter,
			&e.BonusActive, &e.BonusKind, &e.BonusValue, &e.CreatedAt, &e.UpdatedAt,
			&e.SectorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET user_id = $2, name = $3, sector_id = $4, access_level = $5,
			admission_date = $6, termination_date = $7, participation_type = $8,
			participation_percentage = $9, proportional_days = $10,
			participation_start_quarter = $11, bonus_active = $12,
			bonus_kind = $13, bonus_value = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.UserID, e.Name, e.SectorID, e.AccessLevel,
		e.AdmissionDate, e.TerminationDate, e.ParticipationType,
		e.ParticipationPercentage, e.ProportionalDays,
		e.ParticipationStartQuarter, e.BonusActive,
		e.BonusKind, e.BonusValue,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) ReassignSector(ctx context.Context, fromSectorID, toSectorID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE employees SET sector_id = $2, updated_at = NOW() WHERE sector_id = $1`,
		fromSectorID, toSectorID,
	)
	if err != nil {
		return fmt.Errorf("failed to reassign sector: %w", err)
	}

	return nil
}
