package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const raffleColumns = `id, title, COALESCE(description, ''), status, entry_type, ticket_price, ends_at, created_at`

func (s *Store) GetRaffle(ctx context.Context, id string) (*Raffle, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+raffleColumns+` FROM raffles WHERE id = $1`, id)
	var r Raffle
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.Status, &r.EntryType, &r.TicketPrice, &r.EndsAt, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// RaffleWithEntries pairs a raffle with its current entry count for the
// public listing.
type RaffleWithEntries struct {
	Raffle
	EntryCount int64
}

func (s *Store) ListRaffles(ctx context.Context, status string, limit, offset int) ([]RaffleWithEntries, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `
		SELECT r.id, r.title, COALESCE(r.description, ''), r.status, r.entry_type, r.ticket_price, r.ends_at, r.created_at,
		       COUNT(e.id) AS entry_count
		FROM raffles r
		LEFT JOIN raffle_entries e ON e.raffle_id = r.id`
	args := []any{limit, offset}
	if status != "" {
		q += ` WHERE r.status = $3`
		args = append(args, status)
	}
	q += ` GROUP BY r.id ORDER BY r.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RaffleWithEntries, 0, limit)
	for rows.Next() {
		var r RaffleWithEntries
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Status, &r.EntryType, &r.TicketPrice, &r.EndsAt, &r.CreatedAt, &r.EntryCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) HasRaffleEntry(ctx context.Context, raffleID, userID string) (bool, error) {
	var exists bool
	row := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM raffle_entries WHERE raffle_id = $1 AND user_id = $2)`,
		raffleID, userID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// InsertRaffleEntry appends one ticket for (raffle, user). The table's
// unique constraint on that pair is the last line of defense against a
// double entry; a violation surfaces as ErrDuplicate.
func (s *Store) InsertRaffleEntry(ctx context.Context, raffleID, userID, username string) (string, error) {
	id := NewID()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO raffle_entries (id, raffle_id, user_id, username, tickets_purchased)
		VALUES ($1, $2, $3, $4, 1)`,
		id, raffleID, userID, username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return "", ErrDuplicate
		}
		return "", err
	}
	return id, nil
}

func (s *Store) ListRaffleEntries(ctx context.Context, raffleID string, limit, offset int) ([]RaffleEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, raffle_id, user_id, username, tickets_purchased, created_at
		FROM raffle_entries
		WHERE raffle_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`, raffleID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RaffleEntry, 0, limit)
	for rows.Next() {
		var e RaffleEntry
		if err := rows.Scan(&e.ID, &e.RaffleID, &e.UserID, &e.Username, &e.TicketsPurchased, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ListRaffleEntriesByUser(ctx context.Context, userID string, limit, offset int) ([]RaffleEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, raffle_id, user_id, username, tickets_purchased, created_at
		FROM raffle_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RaffleEntry, 0, limit)
	for rows.Next() {
		var e RaffleEntry
		if err := rows.Scan(&e.ID, &e.RaffleID, &e.UserID, &e.Username, &e.TicketsPurchased, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
