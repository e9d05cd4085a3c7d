package employee

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/trimester"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	// participationService recomputes the current quarter when payout
	// inputs on the employee change.
	participationService participation.ParticipationService
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	participationService participation.ParticipationService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:         employeeRepo,
		participationService: participationService,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByRegistrationNumber(ctx, req.RegistrationNumber)
	if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, err
	}
	if existing != nil {
		return employee.EmployeeResponse{}, employee.ErrRegistrationNumberExists
	}

	admission, _ := time.Parse("2006-01-02", req.AdmissionDate)

	emp := &employee.Employee{
		ID:                      uuid.NewString(),
		Name:                    req.Name,
		RegistrationNumber:      req.RegistrationNumber,
		SectorID:                req.SectorID,
		AccessLevel:             employee.AccessManager,
		AdmissionDate:           admission,
		ParticipationType:       employee.TypeNormal,
		ParticipationPercentage: decimal.NewFromInt(100),
		BonusKind:               employee.BonusFixed,
	}
	if req.AccessLevel != "" {
		emp.AccessLevel = req.AccessLevel
	}
	if req.TerminationDate != nil {
		term, _ := time.Parse("2006-01-02", *req.TerminationDate)
		if term.Before(admission) {
			return employee.EmployeeResponse{}, employee.ErrTerminationBeforeAdmission
		}
		emp.TerminationDate = &term
	}
	if req.ParticipationType != "" {
		emp.ParticipationType = req.ParticipationType
	}
	if req.ParticipationPercentage != nil {
		emp.ParticipationPercentage = *req.ParticipationPercentage
	}
	if req.ProportionalDays != nil {
		emp.ProportionalDays = *req.ProportionalDays
	}
	if req.ParticipationStartQuarter != nil {
		emp.ParticipationStartQuarter = *req.ParticipationStartQuarter
	}
	if req.BonusActive != nil {
		emp.BonusActive = *req.BonusActive
	}
	if req.BonusKind != nil {
		emp.BonusKind = *req.BonusKind
	}
	if req.BonusValue != nil {
		emp.BonusValue = *req.BonusValue
	}

	if err := s.employeeRepo.Create(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employee.ToResponse(&employees[i]))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) ListBySector(ctx context.Context, sectorID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListBySector(ctx, sectorID)
	if err != nil {
		return nil, err
	}
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employee.ToResponse(&employees[i]))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	payoutChanged := false

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.SectorID != nil {
		emp.SectorID = req.SectorID
		payoutChanged = true
	}
	if req.AccessLevel != nil {
		emp.AccessLevel = *req.AccessLevel
	}
	if req.AdmissionDate != nil {
		admission, _ := time.Parse("2006-01-02", *req.AdmissionDate)
		emp.AdmissionDate = admission
		payoutChanged = true
	}
	if req.TerminationDate != nil {
		if *req.TerminationDate == "" {
			emp.TerminationDate = nil
		} else {
			term, _ := time.Parse("2006-01-02", *req.TerminationDate)
			if term.Before(emp.AdmissionDate) {
				return employee.EmployeeResponse{}, employee.ErrTerminationBeforeAdmission
			}
			emp.TerminationDate = &term
		}
		payoutChanged = true
	}
	if req.ParticipationType != nil {
		emp.ParticipationType = *req.ParticipationType
		payoutChanged = true
	}
	if req.ParticipationPercentage != nil {
		emp.ParticipationPercentage = *req.ParticipationPercentage
		payoutChanged = true
	}
	if req.ProportionalDays != nil {
		emp.ProportionalDays = *req.ProportionalDays
		payoutChanged = true
	}
	if req.ParticipationStartQuarter != nil {
		emp.ParticipationStartQuarter = *req.ParticipationStartQuarter
		payoutChanged = true
	}
	if req.BonusActive != nil {
		emp.BonusActive = *req.BonusActive
		payoutChanged = true
	}
	if req.BonusKind != nil {
		emp.BonusKind = *req.BonusKind
		payoutChanged = true
	}
	if req.BonusValue != nil {
		emp.BonusValue = *req.BonusValue
		payoutChanged = true
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Payout inputs changed, so the current quarter's record is stale.
	// A missing or locked record is fine here.
	if payoutChanged {
		quarter := trimester.Of(time.Now())
		if _, err := s.participationService.RecomputeEmployee(ctx, emp.ID, quarter); err != nil &&
			!errors.Is(err, participation.ErrRecordNotFound) &&
			!errors.Is(err, participation.ErrRecordNotEditable) {
			return employee.EmployeeResponse{}, err
		}
	}

	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}
