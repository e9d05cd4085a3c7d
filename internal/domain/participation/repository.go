package participation

import "context"

type RecordRepository interface {
	GetByEmployeeAndQuarter(ctx context.Context, employeeID, quarter string) (*Record, error)
	ListByQuarter(ctx context.Context, quarter string) ([]Record, error)
	ListBySectorAndQuarter(ctx context.Context, sectorID, quarter string) ([]Record, error)
	// Save inserts or fully overwrites the record keyed by
	// (employee, quarter).
	Save(ctx context.Context, rec *Record) error
	// SetEditable flips the editable flag on every record of the
	// sector's quarter and returns how many were touched.
	SetEditable(ctx context.Context, sectorID, quarter string, editable bool) (int, error)
}

type RevenueConfigRepository interface {
	GetByQuarter(ctx context.Context, quarter string) (*RevenueConfig, error)
	Upsert(ctx context.Context, cfg *RevenueConfig) error
	List(ctx context.Context) ([]RevenueConfig, error)
}

type ApprovalRepository interface {
	GetBySectorAndQuarter(ctx context.Context, sectorID, quarter string) (*SectorApproval, error)
	ListByQuarter(ctx context.Context, quarter string) ([]SectorApproval, error)
	Upsert(ctx context.Context, a *SectorApproval) error
}
