package sector

import "context"

type SectorRepository interface {
	Create(ctx context.Context, s *Sector) error
	GetByID(ctx context.Context, id string) (*Sector, error)
	GetByName(ctx context.Context, name string) (*Sector, error)
	List(ctx context.Context) ([]Sector, error)
	Update(ctx context.Context, s *Sector) error
	Delete(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, id string) (int, error)
}
