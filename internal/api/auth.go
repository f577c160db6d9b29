// ABOUTME: Registration, login, and identity resolution against the backend
// ABOUTME: Login uses the form-encoded password grant the backend expects

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// RegisterRequest is the body of POST /api/register/.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// Register creates a new account. The backend issues no session here; the
// caller is expected to log in separately afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, c.apiURL("/api/register/"), "", req, nil)
}

// Login exchanges credentials for a bearer token. The body is
// form-url-encoded, not JSON: the backend implements the OAuth2 password
// grant shape and rejects JSON bodies on this endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp TokenResponse
	if err := c.doForm(ctx, c.apiURL("/api/token/"), "", form, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("backend returned an empty access token")
	}
	return resp.AccessToken, nil
}

// UserInfo resolves the identity behind a token. A malformed token is
// refused locally (ErrMalformedToken) without a backend round-trip.
func (c *Client) UserInfo(ctx context.Context, token string) (*UserInfo, error) {
	var info UserInfo
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/userinfo/"), token, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
