package availability

import "context"

// Store defines the persistence operations for availability rows.
type Store interface {
	Add(ctx context.Context, row Row) (Row, error)
	Update(ctx context.Context, id, startTime, endTime string) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Row, error)
	// ListFrom returns rows dated on or after fromDate in insertion order.
	ListFrom(ctx context.Context, fromDate string) ([]Row, error)
	PurgeBefore(ctx context.Context, date string) (int64, error)
}
