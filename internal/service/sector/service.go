package sector

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/sector"
)

type SectorServiceImpl struct {
	sectorRepo   sector.SectorRepository
	employeeRepo employee.EmployeeRepository
}

func NewSectorService(
	sectorRepo sector.SectorRepository,
	employeeRepo employee.EmployeeRepository,
) sector.SectorService {
	return &SectorServiceImpl{
		sectorRepo:   sectorRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *SectorServiceImpl) Create(ctx context.Context, req sector.CreateSectorRequest) (sector.SectorResponse, error) {
	if err := req.Validate(); err != nil {
		return sector.SectorResponse{}, err
	}

	existing, err := s.sectorRepo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, sector.ErrSectorNotFound) {
		return sector.SectorResponse{}, err
	}
	if existing != nil {
		return sector.SectorResponse{}, sector.ErrSectorNameExists
	}

	sec := &sector.Sector{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Class:        req.Class,
		BaseValue:    req.BaseValue,
		Active:       true,
		Participates: req.Participates,
	}
	if err := s.sectorRepo.Create(ctx, sec); err != nil {
		return sector.SectorResponse{}, err
	}

	return sector.ToResponse(sec), nil
}

func (s *SectorServiceImpl) GetByID(ctx context.Context, id string) (sector.SectorResponse, error) {
	sec, err := s.sectorRepo.GetByID(ctx, id)
	if err != nil {
		return sector.SectorResponse{}, err
	}

	count, err := s.sectorRepo.CountEmployees(ctx, id)
	if err != nil {
		return sector.SectorResponse{}, err
	}
	sec.EmployeeCount = &count

	return sector.ToResponse(sec), nil
}

func (s *SectorServiceImpl) List(ctx context.Context) ([]sector.SectorResponse, error) {
	sectors, err := s.sectorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]sector.SectorResponse, 0, len(sectors))
	for i := range sectors {
		responses = append(responses, sector.ToResponse(&sectors[i]))
	}
	return responses, nil
}

func (s *SectorServiceImpl) Update(ctx context.Context, req sector.UpdateSectorRequest) (sector.SectorResponse, error) {
	if err := req.Validate(); err != nil {
		return sector.SectorResponse{}, err
	}

	sec, err := s.sectorRepo.GetByID(ctx, req.ID)
	if err != nil {
		return sector.SectorResponse{}, err
	}

	if req.Name != nil && *req.Name != sec.Name {
		existing, err := s.sectorRepo.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, sector.ErrSectorNotFound) {
			return sector.SectorResponse{}, err
		}
		if existing != nil {
			return sector.SectorResponse{}, sector.ErrSectorNameExists
		}
		sec.Name = *req.Name
	}
	if req.Class != nil {
		sec.Class = *req.Class
	}
	if req.BaseValue != nil {
		sec.BaseValue = *req.BaseValue
	}
	if req.Participates != nil {
		sec.Participates = *req.Participates
	}
	if req.Active != nil {
		sec.Active = *req.Active
		// A deactivated sector never participates.
		if !sec.Active {
			sec.Participates = false
		}
	}

	if err := s.sectorRepo.Update(ctx, sec); err != nil {
		return sector.SectorResponse{}, err
	}

	return sector.ToResponse(sec), nil
}

// Delete moves the sector's employees to the default sector before
// removing it.
func (s *SectorServiceImpl) Delete(ctx context.Context, id string) error {
	sec, err := s.sectorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sec.Name == sector.DefaultSectorName {
		return sector.ErrSectorInUse
	}

	fallback, err := s.GetOrCreateDefault(ctx)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.ReassignSector(ctx, id, fallback.ID); err != nil {
		return err
	}

	return s.sectorRepo.Delete(ctx, id)
}

func (s *SectorServiceImpl) GetOrCreateDefault(ctx context.Context) (*sector.Sector, error) {
	existing, err := s.sectorRepo.GetByName(ctx, sector.DefaultSectorName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sector.ErrSectorNotFound) {
		return nil, err
	}

	fallback := &sector.Sector{
		ID:           uuid.NewString(),
		Name:         sector.DefaultSectorName,
		Class:        sector.ClassGeneral,
		Active:       true,
		Participates: true,
	}
	if err := s.sectorRepo.Create(ctx, fallback); err != nil {
		return nil, err
	}
	return fallback, nil
}
