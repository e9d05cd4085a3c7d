package event

import "context"

type EventRepository interface {
	Create(ctx context.Context, e *AttendanceEvent) error
	CreateBatch(ctx context.Context, events []AttendanceEvent) error
	GetByID(ctx context.Context, id string) (*AttendanceEvent, error)
	ListByQuarter(ctx context.Context, quarter string) ([]AttendanceEvent, error)
	ListByEmployeeAndQuarter(ctx context.Context, employeeID, quarter string) ([]AttendanceEvent, error)
	Delete(ctx context.Context, id string) error
	// DeleteImportedByQuarter removes every non-manual event of the
	// quarter. Manual events are kept.
	DeleteImportedByQuarter(ctx context.Context, quarter string) (int, error)
}
