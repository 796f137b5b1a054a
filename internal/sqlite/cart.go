package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// GetCartItems returns every cart line in insertion order. Ids are
// auto-generated increasing integers, so id order is insertion order.
func (s *Store) GetCartItems(ctx context.Context) ([]types.CartLine, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id, item_id, name, filling, quantity, price_per_plate FROM cart ORDER BY id")
	if err != nil {
		return nil, storageError("listing cart", err)
	}
	defer rows.Close()

	var lines []types.CartLine
	for rows.Next() {
		var l types.CartLine
		if err := rows.Scan(&l.ID, &l.ItemID, &l.Name, &l.Filling, &l.Quantity, &l.PricePerPlate); err != nil {
			return nil, storageError("scanning cart line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing cart", err)
	}
	return lines, nil
}

// AddCartItem inserts a new line and returns the id the store assigned.
// Any id on the given line is ignored.
func (s *Store) AddCartItem(ctx context.Context, line types.CartLine) (int64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageError("adding cart line", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO cart (item_id, name, filling, quantity, price_per_plate)
		 VALUES (?, ?, ?, ?, ?)`,
		line.ItemID, line.Name, line.Filling, line.Quantity, line.PricePerPlate,
	)
	if err != nil {
		return 0, storageError("adding cart line", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("reading generated id", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, storageError("adding cart line", err)
	}
	return id, nil
}

// UpdateCartItem replaces only the quantity of the line with the given id,
// preserving every other field. The read and write share one transaction.
// Returns ErrNotFound when no line has that id.
func (s *Store) UpdateCartItem(ctx context.Context, id int64, quantity int) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("updating cart line", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, "SELECT quantity FROM cart WHERE id = ?", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return storageError("reading cart line", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE cart SET quantity = ? WHERE id = ?", quantity, id); err != nil {
		return storageError("updating cart line", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError("updating cart line", err)
	}
	return nil
}

// DeleteCartItem removes the line with the given id. Deleting an absent
// line succeeds; callers treat delete as idempotent.
func (s *Store) DeleteCartItem(ctx context.Context, id int64) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("deleting cart line", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart WHERE id = ?", id); err != nil {
		return storageError("deleting cart line", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError("deleting cart line", err)
	}
	return nil
}

// ClearCart removes every cart line in one transaction. Called after a
// successful order submission, never before.
func (s *Store) ClearCart(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("clearing cart", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart"); err != nil {
		return storageError("clearing cart", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError("clearing cart", err)
	}
	return nil
}
