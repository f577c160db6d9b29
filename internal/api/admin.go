// ABOUTME: Admin operations: user management and per-user credit records
// ABOUTME: Every call requires an admin bearer token; the backend enforces the role

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ListUsers returns every registered user.
func (c *Client) ListUsers(ctx context.Context, token string) ([]UserSummary, error) {
	var users []UserSummary
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/admin/users/"), token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindUser looks a user up in the admin list by id. The backend has no
// single-user endpoint, so this mirrors what the browser UI did: fetch the
// list and pick the row.
func (c *Client) FindUser(ctx context.Context, token string, id int64) (*UserSummary, error) {
	users, err := c.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, &Error{StatusCode: http.StatusNotFound, Detail: fmt.Sprintf("user %d not found", id)}
}

// MakeAdmin promotes a user. Promoting an already-admin user is treated as
// success: the terminal state is the same and surfacing the backend's
// "already an administrator" complaint as a failure helps nobody. Any
// other 400 still propagates.
func (c *Client) MakeAdmin(ctx context.Context, token string, userID int64) error {
	err := c.doJSON(ctx, http.MethodPut, c.apiURL("/api/admin/users/%d/make_admin", userID), token, nil, nil)
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && alreadyAdminDetail(apiErr.Detail) {
		return nil
	}
	return err
}

// alreadyAdminDetail reports whether a 400 detail is the backend's
// already-an-administrator complaint. The backend localizes details, so
// both the English and Russian renderings are recognized.
func alreadyAdminDetail(detail string) bool {
	d := strings.ToLower(detail)
	if strings.Contains(d, "already") && strings.Contains(d, "admin") {
		return true
	}
	return strings.Contains(d, "уже является администратором")
}

// DeleteUser removes a user and everything the backend cascades with it.
func (c *Client) DeleteUser(ctx context.Context, token string, userID int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.apiURL("/api/admin/users/%d", userID), token, nil, nil)
}

// UserCredits returns every credit record for the given user.
func (c *Client) UserCredits(ctx context.Context, token string, userID int64) ([]CreditRecord, error) {
	var credits []CreditRecord
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/admin/credits/%d", userID), token, nil, &credits); err != nil {
		return nil, err
	}
	return credits, nil
}

// CreateCredit stores a new credit record for the user named in the body.
func (c *Client) CreateCredit(ctx context.Context, token string, credit CreditCreate) error {
	return c.doJSON(ctx, http.MethodPost, c.apiURL("/api/admin/credits/"), token, credit, nil)
}

// UpdateCredit replaces a stored credit record in place. The body is the
// same full record shape as CreateCredit; the backend does no merging.
func (c *Client) UpdateCredit(ctx context.Context, token string, creditID int64, credit CreditCreate) error {
	return c.doJSON(ctx, http.MethodPut, c.apiURL("/api/admin/credits/%d", creditID), token, credit, nil)
}

// DeleteCredit removes a single credit record.
func (c *Client) DeleteCredit(ctx context.Context, token string, creditID int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.apiURL("/api/admin/credits/%d", creditID), token, nil, nil)
}

// SampleCredit fetches a backend-generated example record whose outcome
// matches the given label, with fallback defaults applied for any optional
// fields the sample omits.
func (c *Client) SampleCredit(ctx context.Context, token string, label int) (*SampleCredit, error) {
	var sample SampleCredit
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/sample_credit/%d", label), token, nil, &sample); err != nil {
		return nil, err
	}
	sample.ApplyDefaults()
	return &sample, nil
}
