package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// SaveProfile upserts the singleton profile snapshot under the fixed
// sentinel key. Full replace: fields absent from the given profile are
// overwritten with their zero values.
func (s *Store) SaveProfile(ctx context.Context, profile types.Profile) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("saving profile", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profile (key, name, phone, delivery_address, picture_path)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   name = excluded.name,
		   phone = excluded.phone,
		   delivery_address = excluded.delivery_address,
		   picture_path = excluded.picture_path`,
		types.ProfileKey, profile.Name, profile.Phone, profile.DeliveryAddress, profile.PicturePath,
	)
	if err != nil {
		return storageError("saving profile", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError("saving profile", err)
	}
	return nil
}

// GetProfile returns the singleton snapshot, or ErrProfileNotFound if no
// snapshot was ever saved.
func (s *Store) GetProfile(ctx context.Context) (types.Profile, error) {
	db, err := s.handle()
	if err != nil {
		return types.Profile{}, err
	}

	var p types.Profile
	err = db.QueryRowContext(ctx,
		"SELECT name, phone, delivery_address, picture_path FROM profile WHERE key = ?",
		types.ProfileKey,
	).Scan(&p.Name, &p.Phone, &p.DeliveryAddress, &p.PicturePath)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Profile{}, types.ErrProfileNotFound
	}
	if err != nil {
		return types.Profile{}, storageError("getting profile", err)
	}
	return p, nil
}
