package store

import (
	"context"
	"database/sql"
	"errors"
)

const itemColumns = `id, name, COALESCE(description, ''), COALESCE(image_url, ''), cost, quantity, is_available, created_at`

func (s *Store) GetStoreItem(ctx context.Context, id string) (*StoreItem, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM store_items WHERE id = $1`, id)
	var it StoreItem
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.ImageURL, &it.Cost, &it.Quantity, &it.IsAvailable, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (s *Store) ListAvailableStoreItems(ctx context.Context) ([]StoreItem, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM store_items
		WHERE is_available
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoreItem
	for rows.Next() {
		var it StoreItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.ImageURL, &it.Cost, &it.Quantity, &it.IsAvailable, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// TakeStoreItemStock decrements quantity by one. The stock guard is part of
// the UPDATE predicate; zero affected rows means sold out (or no such item).
func (s *Store) TakeStoreItemStock(ctx context.Context, itemID string) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE store_items
		SET quantity = quantity - 1
		WHERE id = $1 AND quantity > 0`, itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		row := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM store_items WHERE id = $1)`, itemID)
		if err := row.Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrOutOfStock
	}
	return nil
}

// RestoreStoreItemStock undoes TakeStoreItemStock during compensation.
func (s *Store) RestoreStoreItemStock(ctx context.Context, itemID string) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE store_items
		SET quantity = quantity + 1
		WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) InsertRedemption(ctx context.Context, userID, itemID, itemName string, cost int64) (string, error) {
	id := NewID()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO redemptions (id, user_id, item_id, item_name, cost, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, userID, itemID, itemName, cost, RedemptionPending)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListRedemptionsByUser(ctx context.Context, userID string, limit, offset int) ([]Redemption, error) {
	return s.listRedemptions(ctx, `WHERE user_id = $1`, []any{userID}, limit, offset)
}

func (s *Store) ListRedemptions(ctx context.Context, limit, offset int) ([]Redemption, error) {
	return s.listRedemptions(ctx, ``, nil, limit, offset)
}

func (s *Store) listRedemptions(ctx context.Context, where string, args []any, limit, offset int) ([]Redemption, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT id, user_id, item_id, item_name, cost, status, created_at FROM redemptions ` + where
	switch len(args) {
	case 0:
		q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	case 1:
		q += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, offset)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Redemption, 0, limit)
	for rows.Next() {
		var r Redemption
		if err := rows.Scan(&r.ID, &r.UserID, &r.ItemID, &r.ItemName, &r.Cost, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRedemptionStatus(ctx context.Context, id, status string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE redemptions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
