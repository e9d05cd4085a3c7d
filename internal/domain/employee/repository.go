package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByRegistrationNumber(ctx context.Context, number string) (*Employee, error)
	GetByUserID(ctx context.Context, userID string) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListBySector(ctx context.Context, sectorID string) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	ReassignSector(ctx context.Context, fromSectorID, toSectorID string) error
}
