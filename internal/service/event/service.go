package event

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/trimester"
	"github.com/astek-sistemas/participacao-backend-go/internal/repository/postgresql"
)

type EventServiceImpl struct {
	db                   *database.DB
	logger               *slog.Logger
	eventRepo            event.EventRepository
	employeeRepo         employee.EmployeeRepository
	participationService participation.ParticipationService
}

func NewEventService(
	db *database.DB,
	logger *slog.Logger,
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
	participationService participation.ParticipationService,
) event.EventService {
	return &EventServiceImpl{
		db:                   db,
		logger:               logger,
		eventRepo:            eventRepo,
		employeeRepo:         employeeRepo,
		participationService: participationService,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, req event.CreateEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return event.EventResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	ev := &event.AttendanceEvent{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		Date:        date,
		Type:        req.Type,
		Minutes:     req.Minutes,
		Compensated: req.Compensated,
		Manual:      true,
		Note:        req.Note,
		Quarter:     trimester.Of(date),
	}
	if err := s.eventRepo.Create(ctx, ev); err != nil {
		return event.EventResponse{}, err
	}

	s.recomputeEmployee(ctx, ev.EmployeeID, ev.Quarter)

	return event.ToResponse(ev), nil
}

func (s *EventServiceImpl) ListByQuarter(ctx context.Context, quarter string) ([]event.EventResponse, error) {
	events, err := s.eventRepo.ListByQuarter(ctx, quarter)
	if err != nil {
		return nil, err
	}
	responses := make([]event.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, event.ToResponse(&events[i]))
	}
	return responses, nil
}

func (s *EventServiceImpl) ListByEmployeeAndQuarter(ctx context.Context, employeeID, quarter string) ([]event.EventResponse, error) {
	events, err := s.eventRepo.ListByEmployeeAndQuarter(ctx, employeeID, quarter)
	if err != nil {
		return nil, err
	}
	responses := make([]event.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, event.ToResponse(&events[i]))
	}
	return responses, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id string) error {
	ev, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recomputeEmployee(ctx, ev.EmployeeID, ev.Quarter)
	return nil
}

// Import replaces the quarter's imported events wholesale. Manual
// events persist across re-imports. Rows for unknown registration
// numbers are skipped with a warning.
func (s *EventServiceImpl) Import(ctx context.Context, req event.ImportEventsRequest) (event.ImportSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return event.ImportSummaryResponse{}, err
	}
	if !trimester.IsValid(req.Quarter) {
		return event.ImportSummaryResponse{}, errors.New("invalid quarter identifier")
	}

	summary := event.ImportSummaryResponse{Quarter: req.Quarter}

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		replaced, err := s.eventRepo.DeleteImportedByQuarter(txCtx, req.Quarter)
		if err != nil {
			return err
		}
		summary.Replaced = replaced

		employees, err := s.employeeRepo.List(txCtx)
		if err != nil {
			return err
		}
		byRegistration := make(map[string]string, len(employees))
		for i := range employees {
			byRegistration[employees[i].RegistrationNumber] = employees[i].ID
		}

		batch := make([]event.AttendanceEvent, 0, len(req.Rows))
		for _, row := range req.Rows {
			employeeID, ok := byRegistration[row.RegistrationNumber]
			if !ok {
				s.logger.Warn("import row skipped, unknown registration number",
					"registration_number", row.RegistrationNumber, "quarter", req.Quarter)
				summary.Skipped++
				continue
			}

			date, _ := time.Parse("2006-01-02", row.Date)
			if trimester.Of(date) != req.Quarter {
				s.logger.Warn("import row skipped, date outside quarter",
					"date", row.Date, "quarter", req.Quarter)
				summary.Skipped++
				continue
			}

			batch = append(batch, event.AttendanceEvent{
				ID:          uuid.NewString(),
				EmployeeID:  employeeID,
				Date:        date,
				Type:        row.Type,
				Minutes:     row.Minutes,
				Compensated: row.Compensated,
				Manual:      false,
				Quarter:     req.Quarter,
			})
		}

		if err := s.eventRepo.CreateBatch(txCtx, batch); err != nil {
			return err
		}
		summary.Imported = len(batch)
		return nil
	})
	if err != nil {
		return event.ImportSummaryResponse{}, err
	}

	// The event stream changed, so every record of the quarter is
	// stale. A missing revenue config only defers the recomputation.
	if _, err := s.participationService.RecomputeQuarter(ctx, req.Quarter); err != nil {
		if errors.Is(err, participation.ErrConfigNotFound) {
			s.logger.Warn("quarter imported without revenue config, records not recomputed", "quarter", req.Quarter)
		} else {
			return event.ImportSummaryResponse{}, err
		}
	}

	return summary, nil
}

func (s *EventServiceImpl) recomputeEmployee(ctx context.Context, employeeID, quarter string) {
	if _, err := s.participationService.RecomputeEmployee(ctx, employeeID, quarter); err != nil &&
		!errors.Is(err, participation.ErrRecordNotFound) &&
		!errors.Is(err, participation.ErrRecordNotEditable) {
		s.logger.Error("recomputation after event change failed",
			"employee_id", employeeID, "quarter", quarter, "error", err)
	}
}
