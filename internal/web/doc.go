// Package web provides the browser-facing credit scoring interface.
//
// # Overview
//
// Every page is server-rendered from embedded templates:
//
//   - Sign in / registration against the backend REST API, plus the
//     public email-confirmation landing route
//   - Dashboard: scoring form, the caller's credit summary, and an
//     exchange-rates widget
//   - My Credits: the caller's records and a new application form
//   - Offers: historical credits matched to the stored profile
//   - Profile: applicant data, email address, and password change
//   - Admin: user list, user detail, promotion, deletion, credit records
//
// # Authentication
//
// The backend issues a bearer token on login. The token never reaches the
// browser: it lives in a server-side session (internal/session) keyed by
// the nesie_session cookie. Every guarded page loads the session, and a
// 401 from the backend on any call destroys it and redirects to /login.
// There is no local credential verification of any kind.
//
// # CSRF
//
// Mutating routes use the double-submit pattern: a random token in the
// nesie_csrf cookie must match the csrf_token form field.
//
// # Error handling
//
// Backend {"detail": ...} messages are surfaced verbatim in the page.
// Transport errors and non-JSON failures are logged and replaced with a
// generic message. Pages with several data sources (dashboard, user
// detail) degrade per section rather than failing whole.
package web
