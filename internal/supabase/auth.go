package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// SignUpParams carries the credentials and the profile metadata for a new
// account. The metadata is handed to the backend's signup trigger, which
// creates the public users row.
type SignUpParams struct {
	Email           string
	Password        string
	Name            string
	Phone           string
	DeliveryAddress string
}

// tokenResponse is the session payload the auth endpoints return.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignUp registers a new account and returns the session the backend
// opened for it.
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (types.Session, error) {
	payload := map[string]any{
		"email":    params.Email,
		"password": params.Password,
		"data": map[string]any{
			"name":             params.Name,
			"phone":            params.Phone,
			"delivery_address": params.DeliveryAddress,
		},
	}
	body, err := c.request(ctx, http.MethodPost, "/auth/v1/signup", "", "", payload, nil)
	if err != nil {
		return types.Session{}, fmt.Errorf("signing up: %w", err)
	}
	return c.decodeSession(body)
}

// SignIn authenticates with email and password and returns the session.
func (c *Client) SignIn(ctx context.Context, email, password string) (types.Session, error) {
	payload := map[string]string{"email": email, "password": password}
	body, err := c.request(ctx, http.MethodPost, "/auth/v1/token", "grant_type=password", "", payload, nil)
	if err != nil {
		return types.Session{}, fmt.Errorf("signing in: %w", err)
	}
	return c.decodeSession(body)
}

// SignOut revokes the session's tokens. The local session cache is the
// caller's to discard; a revocation failure still means signed out locally.
func (c *Client) SignOut(ctx context.Context, session types.Session) error {
	_, err := c.request(ctx, http.MethodPost, "/auth/v1/logout", "", session.AccessToken, nil, nil)
	if err != nil {
		return fmt.Errorf("signing out: %w", err)
	}
	return nil
}

// decodeSession turns an auth token response into a Session, preferring
// the identity claims inside the access token over the response envelope.
func (c *Client) decodeSession(body []byte) (types.Session, error) {
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return types.Session{}, fmt.Errorf("%w: decoding session: %v", types.ErrRemote, err)
	}
	if tr.AccessToken == "" {
		// Signup with email confirmation enabled returns a user but no
		// session until the address is verified.
		return types.Session{}, fmt.Errorf("%w: no session returned; confirm your email and sign in", types.ErrRemote)
	}

	session := types.Session{
		UserID:       tr.User.ID,
		Email:        tr.User.Email,
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	if sub, exp, err := tokenClaims(tr.AccessToken); err == nil {
		if sub != "" {
			session.UserID = sub
		}
		if !exp.IsZero() {
			session.ExpiresAt = exp
		}
	}
	if session.UserID == "" {
		return types.Session{}, fmt.Errorf("%w: session has no user id", types.ErrRemote)
	}
	return session, nil
}

// tokenClaims extracts the subject and expiry from a backend access token.
// The token is not signature-checked: the client never holds the JWT
// secret, and the backend re-validates every request anyway.
func tokenClaims(token string) (sub string, exp time.Time, err error) {
	claims := jwt.MapClaims{}
	if _, _, err = jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("parsing access token: %w", err)
	}
	sub, _ = claims.GetSubject()
	if expires, cerr := claims.GetExpirationTime(); cerr == nil && expires != nil {
		exp = expires.Time
	}
	return sub, exp, nil
}
