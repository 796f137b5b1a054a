package types

import (
	"context"
	"errors"
)

// Store is the local persistence contract: a browser-style offline cache
// with two collections, the singleton profile snapshot and the cart. Every
// operation is atomic with respect to its own collection and survives
// restarts independent of network connectivity.
type Store interface {
	// Open prepares the store, creating the database on first run.
	// Idempotent: concurrent callers before the first successful open all
	// share the same outcome. Returns ErrStorageUnavailable if the
	// platform denies access.
	Open(ctx context.Context) error

	// Close releases the store. Operations after Close return ErrStoreClosed.
	Close() error

	// SaveProfile upserts the singleton profile snapshot. Full replace,
	// not a merge.
	SaveProfile(ctx context.Context, profile Profile) error

	// GetProfile returns the snapshot, or ErrProfileNotFound if none was
	// ever saved.
	GetProfile(ctx context.Context) (Profile, error)

	// GetCartItems returns all cart lines in insertion order (id ascending).
	GetCartItems(ctx context.Context) ([]CartLine, error)

	// AddCartItem inserts a new line and returns its generated id. Ids are
	// unique and increase monotonically.
	AddCartItem(ctx context.Context, line CartLine) (int64, error)

	// UpdateCartItem replaces only the quantity of the line with the given
	// id, preserving every other field, in one transaction. Returns
	// ErrNotFound if no such line exists.
	UpdateCartItem(ctx context.Context, id int64, quantity int) error

	// DeleteCartItem removes the line with the given id. A no-op when the
	// line is absent; callers do not rely on an error here.
	DeleteCartItem(ctx context.Context, id int64) error

	// ClearCart removes all cart lines atomically.
	ClearCart(ctx context.Context) error

	// Reset drops all local state, both collections included.
	Reset(ctx context.Context) error
}

// Store lifecycle and operation errors.
var (
	ErrStorageUnavailable = errors.New("local storage unavailable")
	ErrStorage            = errors.New("local storage failure")
	ErrStoreClosed        = errors.New("store is closed")
	ErrNotFound           = errors.New("item not found")
	ErrProfileNotFound    = errors.New("profile not saved")
)

// Order placement precondition errors, checked in this order by the
// reconciler: sign-in, profile completeness, cart contents.
var (
	ErrAuthRequired      = errors.New("sign in required")
	ErrProfileIncomplete = errors.New("profile missing phone or delivery address")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMenuItemUnknown   = errors.New("menu item not found")
)

// ErrRemote wraps any failure talking to the backend. Local state is never
// mutated speculatively, so a failed remote call leaves the cart and
// profile as they were.
var ErrRemote = errors.New("remote request failed")
