// ABOUTME: Prediction calls and the label/ratio conventions around them
// ABOUTME: The model service scores batches; a single record still travels as a list

package api

import (
	"context"
	"math"
	"net/http"
)

// LabelApproved is the canonical prediction label meaning "credit approved".
// Every other label value renders as rejected.
const LabelApproved = 1

// Approved reports whether this prediction means approval.
func (p Prediction) Approved() bool {
	return p.PredictionLabel == LabelApproved
}

// LoanPercentIncome computes the loan-to-income ratio rounded to two
// decimal places, half away from zero. Returns 0 when income is zero to
// keep a bad form value from producing Inf on the wire.
func LoanPercentIncome(loanAmount, personIncome float64) float64 {
	if personIncome == 0 {
		return 0
	}
	ratio := loanAmount / personIncome
	return math.Round(ratio*100) / 100
}

// Predict scores a batch of applicant records against the model service.
// The wire contract is a list in both directions even for one record.
func (c *Client) Predict(ctx context.Context, token string, records []ApplicantFeatures) (*PredictResponse, error) {
	var resp PredictResponse
	if err := c.doJSON(ctx, http.MethodPost, c.modelURL+"/predict/", token, records, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PredictOne wraps a single record in the batch contract and unwraps the
// single result.
func (c *Client) PredictOne(ctx context.Context, token string, record ApplicantFeatures) (*Prediction, error) {
	resp, err := c.Predict(ctx, token, []ApplicantFeatures{record})
	if err != nil {
		return nil, err
	}
	if len(resp.Predictions) == 0 {
		return nil, &Error{StatusCode: http.StatusBadGateway, Detail: "model service returned no predictions"}
	}
	return &resp.Predictions[0], nil
}

// userPrediction is the envelope of POST /api/predict/{user_id}.
type userPrediction struct {
	Prediction Prediction `json:"prediction"`
}

// PredictForUser asks the backend to score the stored profile of one user.
func (c *Client) PredictForUser(ctx context.Context, token string, userID int64) (*Prediction, error) {
	var resp userPrediction
	if err := c.doJSON(ctx, http.MethodPost, c.apiURL("/api/predict/%d", userID), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Prediction, nil
}
