package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const userColumns = `id, kick_id, username, COALESCE(avatar_url, ''), points_balance, created_at, updated_at`

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.KickID, &u.Username, &u.AvatarURL, &u.PointsBalance, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.scanUser(row)
}

func (s *Store) GetUserByKickID(ctx context.Context, kickID string) (*User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE kick_id = $1`, kickID)
	return s.scanUser(row)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return s.scanUser(row)
}

// DebitPoints removes amount from the user's balance and records a ledger
// entry, in one transaction. The balance guard lives in the UPDATE predicate
// so two concurrent debits cannot both pass a stale read; zero affected rows
// maps to ErrInsufficientPoints (or ErrNotFound when the user is absent).
func (s *Store) DebitPoints(ctx context.Context, userID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("debit amount must be non-negative, got %d", amount)
	}
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newBal int64
	row := tx.QueryRowContext(ctx, `
		UPDATE users
		SET points_balance = points_balance - $1, updated_at = now()
		WHERE id = $2 AND points_balance >= $1
		RETURNING points_balance`, amount, userID)
	if err := row.Scan(&newBal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, s.classifyMissedBalanceGuard(ctx, tx, userID)
		}
		return 0, err
	}
	if err := insertLedgerEntry(ctx, tx, userID, entryType, -amount, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBal, nil
}

// CreditPoints is the compensating counterpart of DebitPoints; no guard.
func (s *Store) CreditPoints(ctx context.Context, userID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit amount must be non-negative, got %d", amount)
	}
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newBal int64
	row := tx.QueryRowContext(ctx, `
		UPDATE users
		SET points_balance = points_balance + $1, updated_at = now()
		WHERE id = $2
		RETURNING points_balance`, amount, userID)
	if err := row.Scan(&newBal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if err := insertLedgerEntry(ctx, tx, userID, entryType, amount, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBal, nil
}

// SetPointsBalance overwrites the balance and returns the previous value.
// The admin_set ledger entry carries the delta, keeping SUM(amount) over the
// ledger consistent with the balance column.
func (s *Store) SetPointsBalance(ctx context.Context, userID string, balance int64) (int64, error) {
	if balance < 0 {
		return 0, fmt.Errorf("balance must be non-negative, got %d", balance)
	}
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var prev int64
	row := tx.QueryRowContext(ctx, `SELECT points_balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err := row.Scan(&prev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET points_balance = $1, updated_at = now() WHERE id = $2`, balance, userID); err != nil {
		return 0, err
	}
	if err := insertLedgerEntry(ctx, tx, userID, EntryAdminSet, balance-prev, "admin", userID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return prev, nil
}

func (s *Store) ListTopBalances(ctx context.Context, limit, offset int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT username, COALESCE(avatar_url, ''), points_balance
		FROM users
		ORDER BY points_balance DESC, username ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.AvatarURL, &r.PointsBalance); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// classifyMissedBalanceGuard tells a missing user apart from a failed
// balance predicate after a zero-row conditional debit.
func (s *Store) classifyMissedBalanceGuard(ctx context.Context, tx *sql.Tx, userID string) error {
	var exists bool
	row := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInsufficientPoints
}
