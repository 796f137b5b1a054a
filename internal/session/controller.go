// Package session owns the client's session state: the current user, the
// menu snapshot, and the single live order-update subscription. State is
// held in one controller object and handed to collaborators explicitly;
// nothing here is package-global.
//
// Authentication transitions arrive as typed events on a channel and are
// consumed by one dispatch loop, so transitions and live order updates are
// processed one at a time in arrival order per channel.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// Gateway is the slice of the remote backend the controller needs.
type Gateway interface {
	QueryMenu(ctx context.Context) ([]types.MenuItem, error)
	FetchProfile(ctx context.Context, session types.Session, userID string) (types.User, error)
	FetchOrders(ctx context.Context, session types.Session, userID string) ([]types.Order, error)
	SubscribeOrderUpdates(ctx context.Context, userID string, events chan<- types.OrderEvent) (types.Subscription, error)
}

// HistoryView is the order-history surface of the presentation layer. When
// it reports itself visible, the live listener refreshes it after each
// status notification so the list catches up with the event just shown.
type HistoryView interface {
	Visible() bool
	ShowOrders(orders []types.Order)
}

// statusMessages holds the user-facing text per recognized order status.
// Statuses missing from types.StatusCategory produce no notification.
var statusMessages = map[string]string{
	types.StatusConfirmed:      "Your order #%d has been confirmed!",
	types.StatusCooking:        "We've started preparing your order #%d.",
	types.StatusOutForDelivery: "Your order #%d is on its way!",
	types.StatusDelivered:      "Your order #%d has been delivered. Enjoy!",
	types.StatusCancelled:      "Your order #%d has been cancelled.",
	types.StatusFailed:         "Delivery for order #%d failed. Please contact us.",
}

// Controller reacts to auth-state transitions and live order updates. It
// is the only component allowed to change the logged-in/logged-out state.
type Controller struct {
	gateway  Gateway
	notifier types.Notifier
	history  HistoryView
	log      zerolog.Logger

	authCh  chan types.AuthEvent
	orderCh chan types.OrderEvent

	mu      sync.RWMutex
	session *types.Session
	user    *types.User
	menu    []types.MenuItem
	sub     types.Subscription
}

// New creates a Controller. history may be nil when no order-history view
// exists; notifier must not be nil.
func New(gateway Gateway, notifier types.Notifier, history HistoryView, log zerolog.Logger) *Controller {
	return &Controller{
		gateway:  gateway,
		notifier: notifier,
		history:  history,
		log:      log,
		authCh:   make(chan types.AuthEvent, 1),
		orderCh:  make(chan types.OrderEvent, 8),
	}
}

// AuthEvents is the channel the auth collaborator pushes state transitions
// into. A nil Session means signed out. The initial state is signed out
// until the first event arrives.
func (c *Controller) AuthEvents() chan<- types.AuthEvent {
	return c.authCh
}

// Run consumes auth and order events until ctx is cancelled, then tears
// down any live subscription. Call from exactly one goroutine.
func (c *Controller) Run(ctx context.Context) {
	defer c.closeSubscription()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.authCh:
			c.handleAuth(ctx, ev)
		case ev := <-c.orderCh:
			c.handleOrderUpdate(ctx, ev)
		}
	}
}

// Apply processes one auth event synchronously, for the startup case
// where a cached session is known before the dispatch loop runs.
func (c *Controller) Apply(ctx context.Context, ev types.AuthEvent) {
	c.handleAuth(ctx, ev)
}

// Shutdown closes any live subscription. For callers that never run the
// dispatch loop; Run performs the same teardown itself.
func (c *Controller) Shutdown() {
	c.closeSubscription()
}

// LoadMenu fetches the menu snapshot for this session. The snapshot is
// read-only afterwards; a reload replaces it wholesale.
func (c *Controller) LoadMenu(ctx context.Context) error {
	menu, err := c.gateway.QueryMenu(ctx)
	if err != nil {
		return fmt.Errorf("loading menu: %w", err)
	}
	c.mu.Lock()
	c.menu = menu
	c.mu.Unlock()
	return nil
}

// Menu returns the current menu snapshot.
func (c *Controller) Menu() []types.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.menu
}

// CurrentUser returns the authoritative profile for the logged-in user.
// The second return value is false when logged out, and also when the
// profile fetch failed on login: that session stays authenticated and
// subscribed, but has no user for profile purposes.
func (c *Controller) CurrentUser() (types.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return types.User{}, false
	}
	return *c.user, true
}

// Session returns the active backend session, if any.
func (c *Controller) Session() (types.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return types.Session{}, false
	}
	return *c.session, true
}

// SetUser replaces the in-memory user after a successful profile update,
// avoiding a refetch. Ignored when logged out.
func (c *Controller) SetUser(user types.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return
	}
	c.user = &user
}

// handleAuth applies one auth-state transition.
func (c *Controller) handleAuth(ctx context.Context, ev types.AuthEvent) {
	if ev.Session == nil {
		c.mu.Lock()
		c.session = nil
		c.user = nil
		c.mu.Unlock()
		c.closeSubscription()
		c.log.Debug().Msg("signed out")
		return
	}

	session := *ev.Session

	user, err := c.gateway.FetchProfile(ctx, session, session.UserID)
	c.mu.Lock()
	c.session = &session
	if err != nil {
		// Stay signed in but profile-less: ordering will demand sign-in
		// state be completed, and the subscription still opens below.
		c.user = nil
	} else {
		c.user = &user
	}
	c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Msg("profile fetch failed on login")
	}

	c.openSubscription(ctx, session.UserID)
}

// openSubscription replaces any live subscription with a fresh one for the
// given user. At most one subscription exists at a time.
func (c *Controller) openSubscription(ctx context.Context, userID string) {
	c.closeSubscription()

	sub, err := c.gateway.SubscribeOrderUpdates(ctx, userID, c.orderCh)
	if err != nil {
		c.log.Warn().Err(err).Msg("order subscription failed")
		return
	}
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
	c.log.Debug().Str("user", userID).Msg("order subscription open")
}

// closeSubscription tears down the live subscription if one is open.
func (c *Controller) closeSubscription() {
	c.mu.Lock()
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()
	if sub != nil {
		if err := sub.Close(); err != nil {
			c.log.Debug().Err(err).Msg("closing order subscription")
		}
	}
}

// handleOrderUpdate maps a live status change to a toast, then refreshes
// the order-history view when it is visible. Unrecognized statuses are
// ignored without error.
func (c *Controller) handleOrderUpdate(ctx context.Context, ev types.OrderEvent) {
	category, ok := types.StatusCategory(ev.Order.Status)
	if !ok {
		c.log.Debug().Str("status", ev.Order.Status).Msg("ignoring unrecognized order status")
		return
	}

	c.notifier.Notify(types.Toast{
		Message:  fmt.Sprintf(statusMessages[ev.Order.Status], ev.Order.OrderID),
		Category: category,
	})

	if c.history == nil || !c.history.Visible() {
		return
	}
	session, ok := c.Session()
	if !ok {
		return
	}
	orders, err := c.gateway.FetchOrders(ctx, session, session.UserID)
	if err != nil {
		c.log.Debug().Err(err).Msg("order history refresh failed")
		return
	}
	c.history.ShowOrders(orders)
}
