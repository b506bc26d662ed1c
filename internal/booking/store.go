package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/changefeed"
)

const dateLayout = "2006-01-02"

// NewStore creates a booking Store. Writes are announced on feed.
func NewStore(db *sql.DB, feed *changefeed.Feed) Store {
	return &store{
		db:   db,
		feed: feed,
	}
}

func (s *store) Set(ctx context.Context, b Booking) error {
	if err := validate(b.Date, b.Hour, b.SwitchIndex); err != nil {
		return err
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = time.Now()
	}

	s.mu.Lock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (date, hour, switch_index, booked, updated_by, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(date, hour, switch_index) DO UPDATE SET
			booked = 1,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at
	`, b.Date, b.Hour, b.SwitchIndex, b.UpdatedBy, b.UpdatedAt.UnixMilli())
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to upsert booking: %w", err)
	}

	log.Info("Court booked", "date", b.Date, "hour", b.Hour, "switch", b.SwitchIndex, "by", b.UpdatedBy)
	s.feed.Publish(changefeed.TopicBookings)
	return nil
}

func (s *store) Delete(ctx context.Context, date string, hour, switchIndex int) error {
	s.mu.Lock()
	res, err := s.db.ExecContext(ctx, "DELETE FROM bookings WHERE date = ? AND hour = ? AND switch_index = ?", date, hour, switchIndex)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	log.Info("Court unbooked", "date", date, "hour", hour, "switch", switchIndex)
	s.feed.Publish(changefeed.TopicBookings)
	return nil
}

func (s *store) ListFrom(ctx context.Context, fromDate string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, hour, switch_index, booked, updated_by, updated_at
		FROM bookings
		WHERE date >= ? AND booked = 1
		ORDER BY date ASC, hour ASC, switch_index ASC
	`, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var (
			b         Booking
			updatedBy sql.NullString
			updatedAt int64
		)
		if err := rows.Scan(&b.Date, &b.Hour, &b.SwitchIndex, &b.Booked, &updatedBy, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.UpdatedBy = updatedBy.String
		b.UpdatedAt = time.UnixMilli(updatedAt)
		out = append(out, b)
	}
	return out, rows.Err()
}

// PurgeBefore deletes every booking whose date and hour lie before now.
// A booking starting exactly at now is kept.
func (s *store) PurgeBefore(ctx context.Context, now time.Time) (int64, error) {
	today := now.Format(dateLayout)
	cutoff := now.Hour()
	if now.Minute() > 0 || now.Second() > 0 || now.Nanosecond() > 0 {
		cutoff++
	}

	s.mu.Lock()
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM bookings
		WHERE date < ? OR (date = ? AND hour < ?)
	`, today, today, cutoff)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to purge bookings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		log.Info("Purged past bookings", "before", now, "count", n)
		s.feed.Publish(changefeed.TopicBookings)
	}
	return n, nil
}

func validate(date string, hour, switchIndex int) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidBooking, date)
	}
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidBooking, hour)
	}
	if switchIndex < 0 {
		return fmt.Errorf("%w: switch index %d", ErrInvalidBooking, switchIndex)
	}
	return nil
}
