package booking

import (
	"context"
	"time"
)

// Store defines the persistence operations for court bookings.
type Store interface {
	// Set upserts a booked court.
	Set(ctx context.Context, b Booking) error
	Delete(ctx context.Context, date string, hour, switchIndex int) error
	ListFrom(ctx context.Context, fromDate string) ([]Booking, error)
	// PurgeBefore removes bookings whose start lies before now.
	PurgeBefore(ctx context.Context, now time.Time) (int64, error)
}
