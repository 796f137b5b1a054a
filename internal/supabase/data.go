package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// Backend table names.
const (
	tableMenuItems = "menu_items"
	tableUsers     = "users"
	tableOrders    = "product_placement"
)

// pgrstObject asks PostgREST to return exactly one object instead of an
// array, failing the call when zero or many rows match.
var pgrstObject = map[string]string{"Accept": "application/vnd.pgrst.object+json"}

// QueryMenu returns the available menu, featured items first, then stable
// id order.
func (c *Client) QueryMenu(ctx context.Context) ([]types.MenuItem, error) {
	body, err := c.request(ctx, http.MethodGet, "/rest/v1/"+tableMenuItems,
		"select=*&is_available=eq.true&order=is_featured.desc,id.asc", "", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying menu: %w", err)
	}

	var items []types.MenuItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: decoding menu: %v", types.ErrRemote, err)
	}
	return items, nil
}

// FetchProfile returns the authoritative users row for the given user.
func (c *Client) FetchProfile(ctx context.Context, session types.Session, userID string) (types.User, error) {
	body, err := c.request(ctx, http.MethodGet, "/rest/v1/"+tableUsers,
		"select=*&id=eq."+userID, session.AccessToken, nil, pgrstObject)
	if err != nil {
		return types.User{}, fmt.Errorf("fetching profile: %w", err)
	}

	var user types.User
	if err := json.Unmarshal(body, &user); err != nil {
		return types.User{}, fmt.Errorf("%w: decoding profile: %v", types.ErrRemote, err)
	}
	return user, nil
}

// UpdateProfile patches the user's row and returns the updated profile as
// the backend now holds it. Only the editable columns in
// types.ProfileUpdate are sent; the backend rejects anything else.
func (c *Client) UpdateProfile(ctx context.Context, session types.Session, userID string, fields types.ProfileUpdate) (types.User, error) {
	headers := map[string]string{
		"Accept": pgrstObject["Accept"],
		"Prefer": "return=representation",
	}
	body, err := c.request(ctx, http.MethodPatch, "/rest/v1/"+tableUsers,
		"id=eq."+userID, session.AccessToken, fields, headers)
	if err != nil {
		return types.User{}, fmt.Errorf("updating profile: %w", err)
	}

	var user types.User
	if err := json.Unmarshal(body, &user); err != nil {
		return types.User{}, fmt.Errorf("%w: decoding updated profile: %v", types.ErrRemote, err)
	}
	return user, nil
}

// SubmitOrder inserts a completed order. A client-side reference id is
// generated when the order has none, so a resubmitted order is
// distinguishable server-side.
func (c *Client) SubmitOrder(ctx context.Context, session types.Session, order types.Order) error {
	if order.Reference == "" {
		order.Reference = uuid.NewString()
	}
	_, err := c.request(ctx, http.MethodPost, "/rest/v1/"+tableOrders,
		"", session.AccessToken, []types.Order{order}, nil)
	if err != nil {
		return fmt.Errorf("submitting order: %w", err)
	}
	return nil
}

// FetchOrders returns the user's order history, newest first. Row-level
// security already scopes rows to the caller; the filter keeps the query
// explicit.
func (c *Client) FetchOrders(ctx context.Context, session types.Session, userID string) ([]types.Order, error) {
	body, err := c.request(ctx, http.MethodGet, "/rest/v1/"+tableOrders,
		"select=*&user_id=eq."+userID+"&order=created_at.desc", session.AccessToken, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching orders: %w", err)
	}

	var orders []types.Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("%w: decoding orders: %v", types.ErrRemote, err)
	}
	return orders, nil
}

// DeleteCurrentAccount invokes the privileged delete-user edge function.
// The caller must be authenticated; the function derives the account to
// delete from the access token.
func (c *Client) DeleteCurrentAccount(ctx context.Context, session types.Session) error {
	_, err := c.request(ctx, http.MethodPost, "/functions/v1/delete-user",
		"", session.AccessToken, nil, nil)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return nil
}
