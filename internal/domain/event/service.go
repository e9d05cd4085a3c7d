package event

import "context"

type EventService interface {
	Create(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	ListByQuarter(ctx context.Context, quarter string) ([]EventResponse, error)
	ListByEmployeeAndQuarter(ctx context.Context, employeeID, quarter string) ([]EventResponse, error)
	Delete(ctx context.Context, id string) error
	// Import replaces the quarter's imported events with the given
	// rows and triggers a full recomputation of the quarter.
	Import(ctx context.Context, req ImportEventsRequest) (ImportSummaryResponse, error)
}
