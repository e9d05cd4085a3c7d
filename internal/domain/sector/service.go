package sector

import "context"

type SectorService interface {
	Create(ctx context.Context, req CreateSectorRequest) (SectorResponse, error)
	GetByID(ctx context.Context, id string) (SectorResponse, error)
	List(ctx context.Context) ([]SectorResponse, error)
	Update(ctx context.Context, req UpdateSectorRequest) (SectorResponse, error)
	Delete(ctx context.Context, id string) error

	// GetOrCreateDefault returns the fallback sector, creating it when
	// it does not exist yet.
	GetOrCreateDefault(ctx context.Context) (*Sector, error)
}
