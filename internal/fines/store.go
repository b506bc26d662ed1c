package fines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// New creates a fines Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// CreateFine adds a fine to the catalog. Its id is the slug of its name.
func (s *store) CreateFine(ctx context.Context, f Fine) (Fine, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := validateFine(f); err != nil {
		return Fine{}, err
	}
	f.ID = slug.Make(f.Name)
	if f.ID == "" {
		return Fine{}, fmt.Errorf("%w: name %q has no usable characters", ErrInvalidFine, f.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO fines (id, name, description, price, multiply)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, f.ID, f.Name, f.Description, f.Price, f.Multiply)
	if err != nil {
		return Fine{}, fmt.Errorf("failed to insert fine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Fine{}, fmt.Errorf("%w: %s", ErrFineExists, f.ID)
	}

	log.Info("Fine created", "id", f.ID, "price", f.Price, "multiply", f.Multiply)
	return f, nil
}

func (s *store) UpdateFine(ctx context.Context, f Fine) error {
	f.Name = strings.TrimSpace(f.Name)
	if err := validateFine(f); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE fines SET name = ?, description = ?, price = ?, multiply = ? WHERE id = ?
	`, f.Name, f.Description, f.Price, f.Multiply, f.ID)
	if err != nil {
		return fmt.Errorf("failed to update fine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFineNotFound
	}
	log.Info("Fine updated", "id", f.ID)
	return nil
}

func (s *store) DeleteFine(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	removed, err := tx.ExecContext(ctx, "DELETE FROM user_fines WHERE fine_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete assignments of fine %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM fines WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete fine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFineNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fine deletion: %w", err)
	}
	n, _ := removed.RowsAffected()
	log.Info("Fine deleted", "id", id, "assignments", n)
	return nil
}

func (s *store) GetFine(ctx context.Context, id string) (*Fine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getFine(ctx, s.db, id)
}

func (s *store) getFine(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, id string) (*Fine, error) {
	var f Fine
	err := q.QueryRowContext(ctx, "SELECT id, name, description, price, multiply FROM fines WHERE id = ?", id).
		Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Multiply)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fine %s: %w", id, err)
	}
	return &f, nil
}

func (s *store) ListFines(ctx context.Context) ([]Fine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, description, price, multiply FROM fines ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query fines: %w", err)
	}
	defer rows.Close()

	var out []Fine
	for rows.Next() {
		var f Fine
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Multiply); err != nil {
			return nil, fmt.Errorf("failed to scan fine: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Assign gives a member a fine from the catalog. Fines that cannot be
// multiplied are always assigned once.
func (s *store) Assign(ctx context.Context, userID, userName, fineID string, multiplier int) (UserFine, error) {
	if userID == "" {
		return UserFine{}, fmt.Errorf("%w: missing user", ErrInvalidFine)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserFine{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	fine, err := s.getFine(ctx, tx, fineID)
	if err != nil {
		return UserFine{}, err
	}
	if !fine.Multiply {
		multiplier = 1
	}
	if multiplier < 1 {
		return UserFine{}, fmt.Errorf("%w: %d", ErrInvalidMultiplier, multiplier)
	}

	uf := UserFine{
		ID:         uuid.New().String(),
		UserID:     userID,
		UserName:   userName,
		FineID:     fine.ID,
		FineName:   fine.Name,
		BasePrice:  fine.Price,
		Multiplier: multiplier,
		TotalPrice: fine.Price * multiplier,
		AssignedAt: time.Now(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_fines (id, user_id, user_name, fine_id, base_price, multiplier, total_price, assigned_at, paid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`, uf.ID, uf.UserID, uf.UserName, uf.FineID, uf.BasePrice, uf.Multiplier, uf.TotalPrice, uf.AssignedAt.UnixMilli())
	if err != nil {
		return UserFine{}, fmt.Errorf("failed to assign fine: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return UserFine{}, fmt.Errorf("failed to commit fine assignment: %w", err)
	}

	log.Info("Fine assigned", "userID", userID, "fineID", fineID, "multiplier", multiplier, "total", uf.TotalPrice)
	return uf, nil
}

func (s *store) MarkPaid(ctx context.Context, userID, userFineID string, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE user_fines SET paid = ? WHERE id = ? AND user_id = ?", paid, userFineID, userID)
	if err != nil {
		return fmt.Errorf("failed to update fine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFineNotFound
	}
	log.Info("Fine payment updated", "userID", userID, "userFineID", userFineID, "paid", paid)
	return nil
}

func (s *store) RemoveUserFine(ctx context.Context, userID, userFineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM user_fines WHERE id = ? AND user_id = ?", userFineID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove fine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFineNotFound
	}
	log.Info("Fine removed", "userID", userID, "userFineID", userFineID)
	return nil
}

// ListUserFines returns a member's fines, newest first.
func (s *store) ListUserFines(ctx context.Context, userID string) ([]UserFine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT uf.id, uf.user_id, uf.user_name, uf.fine_id, f.name, uf.base_price, uf.multiplier, uf.total_price, uf.assigned_at, uf.paid
		FROM user_fines uf
		JOIN fines f ON f.id = uf.fine_id
		WHERE uf.user_id = ?
		ORDER BY uf.assigned_at DESC, uf.rowid DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user fines: %w", err)
	}
	defer rows.Close()

	var out []UserFine
	for rows.Next() {
		var (
			uf         UserFine
			assignedAt int64
		)
		if err := rows.Scan(&uf.ID, &uf.UserID, &uf.UserName, &uf.FineID, &uf.FineName, &uf.BasePrice, &uf.Multiplier, &uf.TotalPrice, &assignedAt, &uf.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan user fine: %w", err)
		}
		uf.AssignedAt = time.UnixMilli(assignedAt)
		out = append(out, uf)
	}
	return out, rows.Err()
}

// Totals sums the fines of every member, most unpaid first.
func (s *store) Totals(ctx context.Context) ([]Total, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, MAX(user_name),
			SUM(total_price),
			SUM(CASE WHEN paid = 0 THEN total_price ELSE 0 END),
			COUNT(*)
		FROM user_fines
		GROUP BY user_id
		ORDER BY 4 DESC, 2 ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fine totals: %w", err)
	}
	defer rows.Close()

	var out []Total
	for rows.Next() {
		var t Total
		if err := rows.Scan(&t.UserID, &t.UserName, &t.Total, &t.Unpaid, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan fine total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func validateFine(f Fine) error {
	if f.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidFine)
	}
	if f.Price < 0 {
		return fmt.Errorf("%w: negative price %d", ErrInvalidFine, f.Price)
	}
	return nil
}
