// Package cart implements the cart and order workflows by composing the
// local store with the remote gateway: items are added and adjusted
// locally, and an order submission is the only point where the two meet.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// Session is the slice of session state the reconciler reads and updates.
type Session interface {
	CurrentUser() (types.User, bool)
	Session() (types.Session, bool)
	Menu() []types.MenuItem
	SetUser(user types.User)
}

// Gateway is the slice of the remote backend the reconciler calls.
type Gateway interface {
	SubmitOrder(ctx context.Context, session types.Session, order types.Order) error
	UpdateProfile(ctx context.Context, session types.Session, userID string, fields types.ProfileUpdate) (types.User, error)
	DeleteCurrentAccount(ctx context.Context, session types.Session) error
	SignOut(ctx context.Context, session types.Session) error
}

// Reconciler merges local cart/profile state with the authoritative
// backend. All remote failures leave local state untouched: nothing is
// mutated speculatively, and no operation retries on its own.
type Reconciler struct {
	store   types.Store
	gateway Gateway
	session Session
	log     zerolog.Logger
}

// New creates a Reconciler over the given collaborators.
func New(store types.Store, gateway Gateway, session Session, log zerolog.Logger) *Reconciler {
	return &Reconciler{store: store, gateway: gateway, session: session, log: log}
}

// Items returns the current cart in insertion order.
func (r *Reconciler) Items(ctx context.Context) ([]types.CartLine, error) {
	return r.store.GetCartItems(ctx)
}

// AddItem puts a menu item into the cart, denormalizing its name and the
// price for the chosen filling from the menu snapshot. quantity is
// persisted as given; form-level validation is the caller's job. Returns
// the stored line, id included.
func (r *Reconciler) AddItem(ctx context.Context, menuItemID int64, filling string, quantity int) (types.CartLine, error) {
	item, ok := types.FindMenuItem(r.session.Menu(), menuItemID)
	if !ok {
		return types.CartLine{}, fmt.Errorf("item %d: %w", menuItemID, types.ErrMenuItemUnknown)
	}
	price, ok := item.PriceFor(filling)
	if !ok {
		return types.CartLine{}, fmt.Errorf("item %d has no filling %q: %w", menuItemID, filling, types.ErrMenuItemUnknown)
	}

	line := types.CartLine{
		ItemID:        item.ID,
		Name:          item.Name,
		Filling:       filling,
		Quantity:      quantity,
		PricePerPlate: price,
	}
	id, err := r.store.AddCartItem(ctx, line)
	if err != nil {
		return types.CartLine{}, fmt.Errorf("adding %q to cart: %w", item.Name, err)
	}
	line.ID = id
	return line, nil
}

// ChangeQuantity adjusts a line's quantity by delta. When the result drops
// to zero or below the line is removed entirely. The read and the write
// are two store calls; the UI serializes user actions, so no other local
// mutator runs between them.
func (r *Reconciler) ChangeQuantity(ctx context.Context, id int64, delta int) error {
	lines, err := r.store.GetCartItems(ctx)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line.ID != id {
			continue
		}
		if newQuantity := line.Quantity + delta; newQuantity > 0 {
			return r.store.UpdateCartItem(ctx, id, newQuantity)
		}
		return r.store.DeleteCartItem(ctx, id)
	}
	return fmt.Errorf("cart line %d: %w", id, types.ErrNotFound)
}

// RemoveItem deletes a line outright. Removing an absent line succeeds.
func (r *Reconciler) RemoveItem(ctx context.Context, id int64) error {
	return r.store.DeleteCartItem(ctx, id)
}

// PlaceOrder validates, submits, and on success clears the cart.
// Preconditions are checked in order and the first failure short-circuits
// without mutating anything: ErrAuthRequired, then ErrProfileIncomplete,
// then ErrEmptyCart. A submission failure leaves the cart exactly as it
// was; the user re-triggers the order, nothing retries automatically.
func (r *Reconciler) PlaceOrder(ctx context.Context) (types.Order, error) {
	user, ok := r.session.CurrentUser()
	if !ok {
		return types.Order{}, types.ErrAuthRequired
	}
	if !user.CanOrder() {
		return types.Order{}, types.ErrProfileIncomplete
	}

	lines, err := r.store.GetCartItems(ctx)
	if err != nil {
		return types.Order{}, err
	}
	if len(lines) == 0 {
		return types.Order{}, types.ErrEmptyCart
	}

	session, ok := r.session.Session()
	if !ok {
		return types.Order{}, types.ErrAuthRequired
	}

	order := types.Order{
		UserID:          user.ID,
		CustomerName:    user.Name,
		CustomerPhone:   user.Phone,
		DeliveryAddress: user.DeliveryAddress,
		TotalPrice:      types.CartTotal(lines),
		Items:           lines,
	}
	if err := r.gateway.SubmitOrder(ctx, session, order); err != nil {
		return types.Order{}, err
	}

	if err := r.store.ClearCart(ctx); err != nil {
		// The order went through; only the local cleanup failed.
		r.log.Warn().Err(err).Msg("order placed but cart not cleared")
		return order, err
	}
	return order, nil
}

// SaveProfile pushes the edited fields to the backend and, on success,
// shallow-merges them into the in-memory user so no refetch is needed.
func (r *Reconciler) SaveProfile(ctx context.Context, fields types.ProfileUpdate) (types.User, error) {
	user, ok := r.session.CurrentUser()
	if !ok {
		return types.User{}, types.ErrAuthRequired
	}
	session, ok := r.session.Session()
	if !ok {
		return types.User{}, types.ErrAuthRequired
	}

	updated, err := r.gateway.UpdateProfile(ctx, session, user.ID, fields)
	if err != nil {
		return types.User{}, err
	}
	r.session.SetUser(updated)
	return updated, nil
}

// SetPicture records a locally selected profile image path in the local
// snapshot. The image is never uploaded; it exists only on this client.
func (r *Reconciler) SetPicture(ctx context.Context, path string) error {
	profile, err := r.store.GetProfile(ctx)
	if err != nil && !errors.Is(err, types.ErrProfileNotFound) {
		return err
	}
	profile.PicturePath = path
	return r.store.SaveProfile(ctx, profile)
}

// MergedProfile returns the profile as it should be displayed: the local
// snapshot with the authoritative user's fields layered on top. The
// local-only picture path survives the merge. An absent snapshot is not an
// error; the authoritative fields alone are returned.
func (r *Reconciler) MergedProfile(ctx context.Context) (types.Profile, error) {
	profile, err := r.store.GetProfile(ctx)
	if err != nil && !errors.Is(err, types.ErrProfileNotFound) {
		return types.Profile{}, err
	}
	if user, ok := r.session.CurrentUser(); ok {
		profile = profile.MergeUser(user)
	}
	return profile, nil
}

// DeleteAccount invokes the privileged server-side deletion for the
// current account, then signs out and resets all local state. The remote
// deletion must succeed before anything local is touched.
func (r *Reconciler) DeleteAccount(ctx context.Context) error {
	session, ok := r.session.Session()
	if !ok {
		return types.ErrAuthRequired
	}
	if err := r.gateway.DeleteCurrentAccount(ctx, session); err != nil {
		return err
	}
	if err := r.gateway.SignOut(ctx, session); err != nil {
		// The account is gone; a failed token revoke is not fatal.
		r.log.Debug().Err(err).Msg("sign-out after account deletion failed")
	}
	return r.store.Reset(ctx)
}
