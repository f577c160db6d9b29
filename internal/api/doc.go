// Package api implements the HTTP client for the Nesie credit-scoring backend.
//
// # Overview
//
// The backend owns every entity (users, credits, predictions); this package
// only moves them over the wire. All methods take a context and, where the
// endpoint requires authentication, the bearer token to present. No token is
// cached here; session persistence lives in the session package.
//
// # Endpoints
//
// Authentication:
//
//   - Register: POST /api/register/ (JSON body)
//   - Login: POST /api/token/ (form-encoded, OAuth2 password grant shape)
//   - UserInfo: GET /api/userinfo/ (bearer)
//
// Admin:
//
//   - ListUsers, MakeAdmin, DeleteUser
//   - UserCredits, CreateCredit, UpdateCredit, DeleteCredit
//   - SampleCredit
//
// Self-service:
//
//   - MyCredits, ApplyCredit, PersonalData, SavePersonalData,
//     UpdatePassword, CurrencyRates, FindCredits
//   - EmailStatus, UpdateEmail, SendConfirmation, ConfirmEmail
//
// Prediction:
//
//   - Predict: POST /predict/ against the model service (batch contract:
//     the body is always a JSON list, even for a single record)
//   - PredictForUser: POST /api/predict/{user_id}
//
// # Errors
//
// Non-2xx responses carrying a JSON {"detail": "..."} body surface the
// detail verbatim via *Error. Non-JSON error bodies fall back to the HTTP
// status text instead of failing the decode. Transport errors are wrapped
// and returned as-is. The client never retries; every failure is terminal
// for the call that produced it.
package api
