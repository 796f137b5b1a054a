package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishna-stha/MOMO/internal/sqlite"
	"github.com/krishna-stha/MOMO/pkg/types"
)

// fakeSession is a Session with settable state.
type fakeSession struct {
	user    *types.User
	session *types.Session
	menu    []types.MenuItem
}

func (f *fakeSession) CurrentUser() (types.User, bool) {
	if f.user == nil {
		return types.User{}, false
	}
	return *f.user, true
}

func (f *fakeSession) Session() (types.Session, bool) {
	if f.session == nil {
		return types.Session{}, false
	}
	return *f.session, true
}

func (f *fakeSession) Menu() []types.MenuItem { return f.menu }
func (f *fakeSession) SetUser(u types.User)   { f.user = &u }

// fakeGateway records calls and fails on demand.
type fakeGateway struct {
	submitErr  error
	submitted  []types.Order
	updated    *types.ProfileUpdate
	updateErr  error
	deleted    bool
	deleteErr  error
	signedOut  bool
	signOutErr error
}

func (f *fakeGateway) SubmitOrder(_ context.Context, _ types.Session, order types.Order) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, order)
	return nil
}

func (f *fakeGateway) UpdateProfile(_ context.Context, _ types.Session, _ string, fields types.ProfileUpdate) (types.User, error) {
	if f.updateErr != nil {
		return types.User{}, f.updateErr
	}
	f.updated = &fields
	return types.User{ID: "u1", Name: fields.Name, Phone: fields.Phone, DeliveryAddress: fields.DeliveryAddress}, nil
}

func (f *fakeGateway) DeleteCurrentAccount(_ context.Context, _ types.Session) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
	return nil
}

func (f *fakeGateway) SignOut(_ context.Context, _ types.Session) error {
	f.signedOut = true
	return f.signOutErr
}

func testMenu() []types.MenuItem {
	return []types.MenuItem{
		{ID: 1, Name: "Steam Momo", Prices: map[string]float64{"chicken": 250, "veg": 180}},
		{ID: 2, Name: "Fried Momo", Prices: map[string]float64{"buff": 300}},
	}
}

// setup builds a reconciler over a real store, a fake gateway, and a
// logged-in session with a complete profile.
func setup(t *testing.T) (*Reconciler, *sqlite.Store, *fakeGateway, *fakeSession) {
	t.Helper()
	store := sqlite.New(t.TempDir())
	require.NoError(t, store.Open(context.Background()))
	t.Cleanup(func() { store.Close() })

	gw := &fakeGateway{}
	sess := &fakeSession{
		user:    &types.User{ID: "u1", Name: "Krishna", Phone: "98000000", DeliveryAddress: "Lakeside"},
		session: &types.Session{UserID: "u1", AccessToken: "tok"},
		menu:    testMenu(),
	}
	return New(store, gw, sess, zerolog.Nop()), store, gw, sess
}

func TestAddItemDenormalizes(t *testing.T) {
	r, _, _, _ := setup(t)
	ctx := context.Background()

	added, err := r.AddItem(ctx, 1, "veg", 2)
	require.NoError(t, err)
	assert.NotZero(t, added.ID)
	assert.Equal(t, "Steam Momo", added.Name)
	assert.InDelta(t, 180, added.PricePerPlate, 1e-9)

	items, err := r.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, added, items[0])
}

func TestAddItemUnknown(t *testing.T) {
	r, _, _, _ := setup(t)
	ctx := context.Background()

	_, err := r.AddItem(ctx, 99, "chicken", 1)
	assert.ErrorIs(t, err, types.ErrMenuItemUnknown)

	_, err = r.AddItem(ctx, 1, "buff", 1)
	assert.ErrorIs(t, err, types.ErrMenuItemUnknown, "unknown filling on a known item")
}

func TestChangeQuantity(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		delta    int
		wantQty  int
		wantGone bool
	}{
		{"increment", 1, 1, 2, false},
		{"decrement above zero", 3, -1, 2, false},
		{"decrement to zero removes", 1, -1, 0, true},
		{"decrement below zero removes", 2, -5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, _ := setup(t)
			ctx := context.Background()

			added, err := r.AddItem(ctx, 1, "chicken", tt.start)
			require.NoError(t, err)

			require.NoError(t, r.ChangeQuantity(ctx, added.ID, tt.delta))

			items, err := r.Items(ctx)
			require.NoError(t, err)
			if tt.wantGone {
				assert.Empty(t, items)
			} else {
				require.Len(t, items, 1)
				assert.Equal(t, tt.wantQty, items[0].Quantity)
			}
		})
	}
}

func TestChangeQuantityMissingLine(t *testing.T) {
	r, _, _, _ := setup(t)
	err := r.ChangeQuantity(context.Background(), 42, 1)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPlaceOrderPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, r *Reconciler, sess *fakeSession)
		wantErr error
	}{
		{
			name: "logged out",
			prepare: func(t *testing.T, r *Reconciler, sess *fakeSession) {
				sess.user = nil
			},
			wantErr: types.ErrAuthRequired,
		},
		{
			name: "incomplete profile",
			prepare: func(t *testing.T, r *Reconciler, sess *fakeSession) {
				sess.user = &types.User{ID: "u1", Name: "Krishna", Phone: "98000000"}
			},
			wantErr: types.ErrProfileIncomplete,
		},
		{
			name:    "empty cart",
			prepare: func(t *testing.T, r *Reconciler, sess *fakeSession) {},
			wantErr: types.ErrEmptyCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, gw, sess := setup(t)
			tt.prepare(t, r, sess)

			_, err := r.PlaceOrder(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, gw.submitted, "nothing submitted")
		})
	}
}

func TestPlaceOrderPreconditionLeavesCart(t *testing.T) {
	r, _, _, sess := setup(t)
	ctx := context.Background()

	_, err := r.AddItem(ctx, 1, "chicken", 2)
	require.NoError(t, err)
	sess.user = nil

	_, err = r.PlaceOrder(ctx)
	assert.ErrorIs(t, err, types.ErrAuthRequired)

	items, err := r.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "cart untouched by precondition failure")
}

func TestPlaceOrderSuccess(t *testing.T) {
	r, _, gw, _ := setup(t)
	ctx := context.Background()

	_, err := r.AddItem(ctx, 1, "chicken", 2) // 2 * 250
	require.NoError(t, err)
	_, err = r.AddItem(ctx, 2, "buff", 1) // 1 * 300
	require.NoError(t, err)

	order, err := r.PlaceOrder(ctx)
	require.NoError(t, err)

	require.Len(t, gw.submitted, 1, "exactly one order submitted")
	assert.InDelta(t, 800, gw.submitted[0].TotalPrice, 1e-9)
	assert.InDelta(t, 800, order.TotalPrice, 1e-9)
	assert.Equal(t, "u1", gw.submitted[0].UserID)
	assert.Equal(t, "Krishna", gw.submitted[0].CustomerName)
	assert.Equal(t, "98000000", gw.submitted[0].CustomerPhone)
	assert.Equal(t, "Lakeside", gw.submitted[0].DeliveryAddress)
	assert.Len(t, gw.submitted[0].Items, 2, "full line list included")

	items, err := r.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "cart cleared after success")
}

func TestPlaceOrderSubmissionFailure(t *testing.T) {
	r, _, gw, _ := setup(t)
	ctx := context.Background()

	_, err := r.AddItem(ctx, 1, "chicken", 2)
	require.NoError(t, err)
	before, err := r.Items(ctx)
	require.NoError(t, err)

	gw.submitErr = errors.New("backend down")
	_, err = r.PlaceOrder(ctx)
	require.Error(t, err)

	after, err := r.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "no partial clear on submission failure")
}

func TestSaveProfileMergesIntoSession(t *testing.T) {
	r, _, gw, sess := setup(t)

	updated, err := r.SaveProfile(context.Background(), types.ProfileUpdate{
		Name: "Krishna S", Phone: "98111111", DeliveryAddress: "Damside",
	})
	require.NoError(t, err)
	require.NotNil(t, gw.updated)

	assert.Equal(t, "Krishna S", updated.Name)
	user, ok := sess.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "98111111", user.Phone, "session user replaced without refetch")
}

func TestSaveProfileRemoteFailure(t *testing.T) {
	r, _, gw, sess := setup(t)
	gw.updateErr = errors.New("backend down")

	_, err := r.SaveProfile(context.Background(), types.ProfileUpdate{Name: "X"})
	require.Error(t, err)

	user, ok := sess.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Krishna", user.Name, "session user untouched on failure")
}

func TestMergedProfile(t *testing.T) {
	r, store, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, types.Profile{Name: "Old", PicturePath: "/tmp/me.png"}))

	merged, err := r.MergedProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Krishna", merged.Name, "authoritative name wins")
	assert.Equal(t, "/tmp/me.png", merged.PicturePath, "local-only picture preserved")
}

func TestMergedProfileNoSnapshot(t *testing.T) {
	r, _, _, _ := setup(t)

	merged, err := r.MergedProfile(context.Background())
	require.NoError(t, err, "absent snapshot is not an error")
	assert.Equal(t, "Krishna", merged.Name)
}

func TestSetPicture(t *testing.T) {
	r, store, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, r.SetPicture(ctx, "/tmp/first.png"))
	require.NoError(t, r.SetPicture(ctx, "/tmp/second.png"))

	profile, err := store.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/second.png", profile.PicturePath)
}

func TestDeleteAccount(t *testing.T) {
	r, store, gw, _ := setup(t)
	ctx := context.Background()

	_, err := r.AddItem(ctx, 1, "chicken", 1)
	require.NoError(t, err)

	require.NoError(t, r.DeleteAccount(ctx))
	assert.True(t, gw.deleted)
	assert.True(t, gw.signedOut)

	items, err := store.GetCartItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "local state reset")
}

func TestDeleteAccountRemoteFailure(t *testing.T) {
	r, store, gw, _ := setup(t)
	ctx := context.Background()

	_, err := r.AddItem(ctx, 1, "chicken", 1)
	require.NoError(t, err)

	gw.deleteErr = errors.New("function error")
	require.Error(t, r.DeleteAccount(ctx))
	assert.False(t, gw.signedOut, "no sign-out when deletion failed")

	items, err := store.GetCartItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "local state untouched")
}
