package participation

import "context"

type ParticipationService interface {
	// RecomputeQuarter reruns the whole pipeline for every employee of
	// the quarter inside one transaction. Quarter-wide aggregates are
	// computed once before any record is finalized.
	RecomputeQuarter(ctx context.Context, quarter string) (RecomputeQuarterResponse, error)
	// RecomputeEmployee recomputes one employee's record reusing the
	// quarter's stored gross values.
	RecomputeEmployee(ctx context.Context, employeeID, quarter string) (RecordResponse, error)
	GetRecord(ctx context.Context, employeeID, quarter string) (RecordResponse, error)
	ListByQuarter(ctx context.Context, quarter string) ([]RecordResponse, error)
	ListBySectorAndQuarter(ctx context.Context, sectorID, quarter string) ([]RecordResponse, error)
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)

	UpsertRevenueConfig(ctx context.Context, req UpsertRevenueConfigRequest) (RevenueConfigResponse, error)
	GetRevenueConfig(ctx context.Context, quarter string) (RevenueConfigResponse, error)
	ListRevenueConfigs(ctx context.Context) ([]RevenueConfigResponse, error)
}

type ApprovalService interface {
	Approve(ctx context.Context, sectorID, quarter string) (ApprovalResponse, error)
	Revoke(ctx context.Context, sectorID, quarter string) (ApprovalResponse, error)
	ListByQuarter(ctx context.Context, quarter string) ([]ApprovalResponse, error)
}
