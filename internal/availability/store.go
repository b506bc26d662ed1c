package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/changefeed"
)

const dateLayout = "2006-01-02"

// New creates an availability Store. Writes are announced on feed.
func New(db *sql.DB, feed *changefeed.Feed) Store {
	return &store{
		db:   db,
		feed: feed,
	}
}

// Add validates and stores a new availability row.
func (s *store) Add(ctx context.Context, row Row) (Row, error) {
	if row.UID == "" {
		return Row{}, fmt.Errorf("%w: missing uid", ErrInvalidRow)
	}
	if err := validateRange(row.Date, row.StartTime, row.EndTime); err != nil {
		return Row{}, err
	}

	s.mu.Lock()
	row.ID = uuid.New().String()
	row.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO availability (id, uid, name, date, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.UID, row.Name, row.Date, row.StartTime, row.EndTime, row.CreatedAt.UnixMilli())
	s.mu.Unlock()
	if err != nil {
		return Row{}, fmt.Errorf("failed to insert availability: %w", err)
	}

	log.Info("Added availability", "id", row.ID, "uid", row.UID, "date", row.Date, "from", row.StartTime, "to", row.EndTime)
	s.feed.Publish(changefeed.TopicAvailability)
	return row, nil
}

// Update changes the time window of an existing row.
func (s *store) Update(ctx context.Context, id, startTime, endTime string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := validateRange(existing.Date, startTime, endTime); err != nil {
		return err
	}

	s.mu.Lock()
	_, err = s.db.ExecContext(ctx, "UPDATE availability SET start_time = ?, end_time = ? WHERE id = ?", startTime, endTime, id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}

	log.Info("Updated availability", "id", id, "from", startTime, "to", endTime)
	s.feed.Publish(changefeed.TopicAvailability)
	return nil
}

// Delete removes a row. Deleting an unknown id is not an error.
func (s *store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	res, err := s.db.ExecContext(ctx, "DELETE FROM availability WHERE id = ?", id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Debug("No availability found to delete", "id", id)
		return nil
	}

	log.Info("Deleted availability", "id", id)
	s.feed.Publish(changefeed.TopicAvailability)
	return nil
}

// Get returns a single row by id.
func (s *store) Get(ctx context.Context, id string) (*Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, uid, name, date, start_time, end_time, created_at
		FROM availability WHERE id = ?
	`, id)
	r, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return r, nil
}

// ListFrom returns every row dated on or after fromDate, oldest insert first.
func (s *store) ListFrom(ctx context.Context, fromDate string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, uid, name, date, start_time, end_time, created_at
		FROM availability
		WHERE date >= ?
		ORDER BY created_at ASC, rowid ASC
	`, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// PurgeBefore deletes rows dated strictly before date.
func (s *store) PurgeBefore(ctx context.Context, date string) (int64, error) {
	s.mu.Lock()
	res, err := s.db.ExecContext(ctx, "DELETE FROM availability WHERE date < ?", date)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to purge availability: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		log.Info("Purged past availability", "before", date, "count", n)
		s.feed.Publish(changefeed.TopicAvailability)
	}
	return n, nil
}

func scanRow(scanner interface{ Scan(...any) error }) (*Row, error) {
	var r Row
	var createdAt int64
	if err := scanner.Scan(&r.ID, &r.UID, &r.Name, &r.Date, &r.StartTime, &r.EndTime, &createdAt); err != nil {
		return nil, err
	}
	r.CreatedAt = time.UnixMilli(createdAt)
	return &r, nil
}

func validateRange(date, startTime, endTime string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidRow, date)
	}
	start, ok := parseClock(startTime)
	if !ok {
		return fmt.Errorf("%w: start time %q", ErrInvalidRow, startTime)
	}
	end, ok := parseClock(endTime)
	if !ok {
		return fmt.Errorf("%w: end time %q", ErrInvalidRow, endTime)
	}
	if start >= end {
		return fmt.Errorf("%w: %s is not before %s", ErrInvalidRow, startTime, endTime)
	}
	return nil
}

// parseClock returns minutes since midnight for "HH:mm", allowing "24:00".
func parseClock(t string) (int, bool) {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	if h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, false
	}
	return h*60 + m, true
}
