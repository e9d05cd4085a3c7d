package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *event.AttendanceEvent) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, employee_id, date, type, minutes, compensated, manual, note, quarter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.EmployeeID, e.Date, e.Type, e.Minutes, e.Compensated, e.Manual, e.Note, e.Quarter,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create attendance event: %w", err)
	}

	return nil
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []event.AttendanceEvent) error {
	if len(events) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, employee_id, date, type, minutes, compensated, manual, note, quarter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i := range events {
		e := &events[i]
		if _, err := q.Exec(ctx, query,
			e.ID, e.EmployeeID, e.Date, e.Type, e.Minutes, e.Compensated, e.Manual, e.Note, e.Quarter,
		); err != nil {
			return fmt.Errorf("failed to insert attendance event batch: %w", err)
		}
	}

	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, type, minutes, compensated, manual, note, quarter, created_at, updated_at
		FROM attendance_events
		WHERE id = $1
	`

	var e event.AttendanceEvent
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.EmployeeID, &e.Date, &e.Type, &e.Minutes, &e.Compensated, &e.Manual, &e.Note, &e.Quarter,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get attendance event: %w", err)
	}

	return &e, nil
}

func (r *eventRepository) ListByQuarter(ctx context.Context, quarter string) ([]event.AttendanceEvent, error) {
	return r.list(ctx, `
		SELECT ae.id, ae.employee_id, ae.date, ae.type, ae.minutes, ae.compensated, ae.manual, ae.note, ae.quarter,
			   ae.created_at, ae.updated_at, e.name
		FROM attendance_events ae
		JOIN employees e ON e.id = ae.employee_id
		WHERE ae.quarter = $1
		ORDER BY ae.date, e.name
	`, quarter)
}

func (r *eventRepository) ListByEmployeeAndQuarter(ctx context.Context, employeeID, quarter string) ([]event.AttendanceEvent, error) {
	return r.list(ctx, `
		SELECT ae.id, ae.employee_id, ae.date, ae.type, ae.minutes, ae.compensated, ae.manual, ae.note, ae.quarter,
			   ae.created_at, ae.updated_at, e.name
		FROM attendance_events ae
		JOIN employees e ON e.id = ae.employee_id
		WHERE ae.employee_id = $1 AND ae.quarter = $2
		ORDER BY ae.date
	`, employeeID, quarter)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...interface{}) ([]event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []event.AttendanceEvent
	for rows.Next() {
		var e event.AttendanceEvent
		err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Date, &e.Type, &e.Minutes, &e.Compensated, &e.Manual, &e.Note, &e.Quarter,
			&e.CreatedAt, &e.UpdatedAt, &e.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) DeleteImportedByQuarter(ctx context.Context, quarter string) (int, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM attendance_events WHERE quarter = $1 AND manual = FALSE`,
		quarter,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete imported events: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
