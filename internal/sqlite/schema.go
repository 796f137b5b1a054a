package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema DDL. The cart uses AUTOINCREMENT so line ids are unique and
// monotonic for the lifetime of the store, never reused after deletion.
const (
	createProfile = `CREATE TABLE IF NOT EXISTS profile (
    key TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    delivery_address TEXT NOT NULL DEFAULT '',
    picture_path TEXT NOT NULL DEFAULT ''
);`

	createCart = `CREATE TABLE IF NOT EXISTS cart (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    item_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    filling TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    price_per_plate REAL NOT NULL
);`
)

// applySchema creates both collections and stamps the schema version.
// Transactional: a partially created schema is rolled back.
func applySchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range []string{createProfile, createCart} {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}

	return tx.Commit()
}
