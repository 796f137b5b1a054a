package types

import "time"

// Session is an authenticated backend session: the access token presented
// on privileged calls and the identity decoded from it.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session's access token has expired.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// AuthEvent signals an authentication-state transition. A nil Session means
// signed out. The session controller is the only consumer.
type AuthEvent struct {
	Session *Session
}

// OrderEvent is one live update to an order belonging to the current user,
// pushed by the backend change feed.
type OrderEvent struct {
	Order Order
}

// Subscription is a handle to a live order-update feed. Close tears the
// feed down; events already being processed are not cancelled, but no
// further events are delivered.
type Subscription interface {
	Close() error
}
