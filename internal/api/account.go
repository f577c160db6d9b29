// ABOUTME: Self-service endpoints: own credits, applicant profile, password, rates
// ABOUTME: These operate on the identity behind the token, never on other users

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// MyCredits returns the credit records belonging to the token's owner.
func (c *Client) MyCredits(ctx context.Context, token string) ([]CreditRecord, error) {
	var credits []CreditRecord
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/credits/"), token, nil, &credits); err != nil {
		return nil, err
	}
	return credits, nil
}

// CreditApplication is the body of POST /api/credits/.
type CreditApplication struct {
	LoanAmount   float64 `json:"loan_amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
	Status       string  `json:"status"`
	Hash         string  `json:"hash"`
}

// ApplyCredit submits a credit application for the token's owner. The
// backend deduplicates on the application hash and answers 409 for repeats.
func (c *Client) ApplyCredit(ctx context.Context, token string, app CreditApplication) error {
	return c.doJSON(ctx, http.MethodPost, c.apiURL("/api/credits/"), token, app, nil)
}

// PersonalData fetches the applicant profile of the token's owner.
// A 404 means no profile has been saved yet.
func (c *Client) PersonalData(ctx context.Context, token string) (*PersonalData, error) {
	var data PersonalData
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/personal-data/"), token, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SavePersonalData creates or replaces the applicant profile.
func (c *Client) SavePersonalData(ctx context.Context, token string, data PersonalData) error {
	return c.doJSON(ctx, http.MethodPost, c.apiURL("/api/personal-data/"), token, data, nil)
}

// UpdatePassword changes the account password. The backend expects the
// old and new passwords as form fields, not JSON.
func (c *Client) UpdatePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	form := url.Values{}
	form.Set("old_password", oldPassword)
	form.Set("new_password", newPassword)
	return c.doForm(ctx, c.apiURL("/api/update-password/"), token, form, nil)
}

// Offer search filters accepted by FindCredits.
const (
	FilterAll  = "ALL"
	FilterBest = "BEST"
)

// OfferPrediction is the caller's own approval prediction attached to a
// matched offer.
type OfferPrediction struct {
	PredictionLabel float64 `json:"prediction_label"`
	PredictionScore float64 `json:"prediction_score"`
}

// CreditOffer is one historical credit matched by the offer search.
// Numeric fields may be absent in the dataset, hence the pointers.
// ClientPrediction is a prediction object on success but a bare error
// string when the backend failed to score that row; Prediction hides
// the distinction.
type CreditOffer struct {
	LoanAmount       float64         `json:"loan_amnt"`
	InterestRate     *float64        `json:"loan_int_rate"`
	LoanIntent       string          `json:"loan_intent"`
	LoanGrade        string          `json:"loan_grade"`
	LoanAmountKZT    *float64        `json:"loan_amnt_kzt"`
	IncomeKZTMonthly *float64        `json:"person_income_kzt_monthly"`
	ClientPrediction json.RawMessage `json:"client_prediction"`
}

// Prediction decodes the per-offer prediction, or nil when the backend
// replaced it with a scoring-error string.
func (o *CreditOffer) Prediction() *OfferPrediction {
	var p OfferPrediction
	if len(o.ClientPrediction) == 0 || json.Unmarshal(o.ClientPrediction, &p) != nil {
		return nil
	}
	return &p
}

// FindCreditsResponse is the offer-search envelope. TotalFound is zero
// and Message set when nothing matched.
type FindCreditsResponse struct {
	Message             string        `json:"message"`
	TotalFound          int           `json:"total_found"`
	ClientIncomeMonthly float64       `json:"client_income_tenge_month"`
	ClientIncomeAnnual  float64       `json:"client_income_tenge_annual"`
	ClientIncomeUSD     float64       `json:"client_income_usd_annual"`
	Credits             []CreditOffer `json:"credits"`
}

// FindCredits searches historical credits similar to the given applicant
// profile and scores each match with the caller's own data. filter is
// FilterAll or FilterBest; empty defaults to FilterAll.
func (c *Client) FindCredits(ctx context.Context, token string, data PersonalData, filter string) (*FindCreditsResponse, error) {
	if filter == "" {
		filter = FilterAll
	}
	rawURL := c.apiURL("/api/find-credits/") + "?filter_type=" + url.QueryEscape(filter)
	var res FindCreditsResponse
	if err := c.doJSON(ctx, http.MethodPost, rawURL, token, data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CurrencyRates returns the exchange rates the backend tracks.
func (c *Client) CurrencyRates(ctx context.Context) ([]CurrencyRate, error) {
	var rates []CurrencyRate
	if err := c.doJSON(ctx, http.MethodGet, c.apiURL("/api/currency-rates/"), "", nil, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}
