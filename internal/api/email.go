// ABOUTME: Email confirmation endpoints: status, update, send and redeem tokens
// ABOUTME: Confirmation links arrive by mail, so redeeming one needs no session

package api

import (
	"context"
	"net/http"
	"net/url"
)

// EmailStatus is the account's email state. An empty Email means no
// address has been set yet.
type EmailStatus struct {
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// EmailStatus fetches the email state of the token's owner.
func (c *Client) EmailStatus(ctx context.Context, token string) (*EmailStatus, error) {
	var status EmailStatus
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/email-status/"), token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UpdateEmail sets a new address for the token's owner. The backend
// resets the confirmed flag and mails a fresh confirmation link. The
// address goes over as a form field, not JSON.
func (c *Client) UpdateEmail(ctx context.Context, token, newEmail string) error {
	form := url.Values{}
	form.Set("new_email", newEmail)
	return c.doForm(ctx, c.apiURL("/api/update-email/"), token, form, nil)
}

// SendConfirmation asks the backend to re-send the confirmation mail.
// A 404 means no address is on file.
func (c *Client) SendConfirmation(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, c.apiURL("/api/send-confirmation/"), token, nil, nil)
}

// ConfirmEmail redeems a confirmation token from a mailed link. The link
// is followed outside any session, so no bearer token is sent; the
// confirmation token itself travels as a query parameter.
func (c *Client) ConfirmEmail(ctx context.Context, confirmToken string) error {
	rawURL := c.apiURL("/api/confirm-email/") + "?token=" + url.QueryEscape(confirmToken)
	return c.doJSON(ctx, http.MethodGet, rawURL, "", nil, nil)
}
