// ABOUTME: Tests for the web UI handlers: auth flow, guards, admin actions, scoring
// ABOUTME: The backend is a httptest stub; sessions live in an in-memory store

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Timaska20/Nesie/internal/api"
	"github.com/Timaska20/Nesie/internal/session"
)

// memSessions is an in-memory session.Store for handler tests.
type memSessions struct {
	mu sync.Mutex
	m  map[string]*session.Session
}

func newMemSessions() *memSessions {
	return &memSessions{m: make(map[string]*session.Session)}
}

func (s *memSessions) Create(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.ID] = sess
	return nil
}

func (s *memSessions) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *memSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func (s *memSessions) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

func (s *memSessions) Close() error { return nil }

const testToken = "head.claims.sig"

// newTestHandler builds a Handler against the given backend URL.
func newTestHandler(backendURL string, sessions session.Store) *Handler {
	return New(api.New(backendURL), sessions, Config{SessionTTL: time.Hour})
}

// seedSession stores a ready session and returns it.
func seedSession(t *testing.T, store session.Store, isAdmin bool) *session.Session {
	t.Helper()
	id, err := session.NewID()
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	sess := &session.Session{
		ID:        id,
		Token:     testToken,
		UserID:    7,
		Username:  "bob",
		IsAdmin:   isAdmin,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Create(context.Background(), sess); err != nil {
		t.Fatalf("Create session failed: %v", err)
	}
	return sess
}

// postForm builds an authenticated POST request with a matching CSRF
// cookie and form token.
func postForm(target string, sess *session.Session, values url.Values) *http.Request {
	values.Set("csrf_token", "csrf-test-token")
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "csrf-test-token"})
	if sess != nil {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	}
	return req
}

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func TestRequireSession_RedirectsWithoutCookie(t *testing.T) {
	h := newTestHandler("http://backend.invalid", newMemSessions())
	mux := newMux(h)

	for _, target := range []string{"/", "/credits", "/profile", "/admin/users"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s: status = %d, want 303", target, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s: Location = %q, want /login", target, loc)
		}
	}
}

func TestRequireAdmin_RedirectsRegularUser(t *testing.T) {
	sessions := newMemSessions()
	h := newTestHandler("http://backend.invalid", sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestLogin_Success(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/":
			json.NewEncoder(w).Encode(map[string]string{"access_token": testToken})
		case "/api/userinfo/":
			json.NewEncoder(w).Encode(map[string]any{"user_id": 7, "username": "bob", "is_admin": true})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)

	req := postForm("/login", nil, url.Values{"username": {"bob"}, "password": {"x"}})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}

	sess, err := sessions.Get(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if sess.Token != testToken {
		t.Errorf("stored token = %q, want %q", sess.Token, testToken)
	}
	if !sess.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
}

func TestLogin_BackendDetailSurfaced(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	}))
	defer backend.Close()

	h := newTestHandler(backend.URL, newMemSessions())
	mux := newMux(h)

	req := postForm("/login", nil, url.Values{"username": {"bob"}, "password": {"wrong"}})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Incorrect username or password") {
		t.Error("backend detail message not surfaced in page")
	}
}

func TestLogin_MissingCSRF(t *testing.T) {
	h := newTestHandler("http://backend.invalid", newMemSessions())
	mux := newMux(h)

	form := url.Values{"username": {"bob"}, "password": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid request") {
		t.Error("CSRF failure message not rendered")
	}
}

func TestStaleToken_DestroysSession(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, true)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	if _, err := sessions.Get(context.Background(), sess.ID); err == nil {
		t.Error("session still present after backend 401")
	}
}

func TestUserDetail_AcceptsBothQueryParams(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/users/":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 2, "username": "alice", "is_admin": false},
			})
		case "/api/admin/credits/2":
			json.NewEncoder(w).Encode([]map[string]any{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, true)

	for _, target := range []string{"/admin/user?user_id=2", "/admin/user?id=2"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "alice") {
			t.Errorf("GET %s: user not rendered", target)
		}
	}
}

func TestUserDetail_SectionsDegradeIndependently(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/users/":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 2, "username": "alice", "is_admin": false},
			})
		case "/api/admin/credits/2":
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "credit backend down"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, true)

	req := httptest.NewRequest(http.MethodGet, "/admin/user?user_id=2", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alice") {
		t.Error("user section missing despite credits failure")
	}
	if !strings.Contains(body, "credit backend down") {
		t.Error("credits section error not rendered")
	}
}

func TestPromoteUser_RedirectsToDetail(t *testing.T) {
	var promoted bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/api/admin/users/2/make_admin" {
			promoted = true
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
			return
		}
		http.NotFound(w, r)
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, true)

	req := postForm("/admin/users/2/promote", sess, url.Values{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if !promoted {
		t.Error("promote call never reached the backend")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/admin/user?user_id=2") {
		t.Errorf("Location = %q, want the detail page", loc)
	}
}

func TestPredict_RendersVerdict(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict/" {
			http.NotFound(w, r)
			return
		}
		var records []api.ApplicantFeatures
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil || len(records) != 1 {
			t.Errorf("model body is not a one-element list: %v", err)
		}
		if records[0].LoanPercentIncome != 0.25 {
			t.Errorf("loan_percent_income = %v, want 0.25", records[0].LoanPercentIncome)
		}
		if records[0].DefaultOnFile != "N" {
			t.Errorf("cb_person_default_on_file = %q, want N", records[0].DefaultOnFile)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"predictions": []map[string]any{
				{"prediction_label": 1, "prediction_score": 0.9173},
			},
		})
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := postForm("/predict", sess, url.Values{
		"person_age":                 {"25"},
		"person_income":              {"40000"},
		"person_home_ownership":      {"RENT"},
		"person_emp_length":          {"4"},
		"loan_intent":                {"EDUCATION"},
		"loan_grade":                 {"B"},
		"loan_amnt":                  {"10000"},
		"loan_int_rate":              {"12.5"},
		"cb_person_cred_hist_length": {"3"},
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Approved") {
		t.Error("verdict not rendered")
	}
	if !strings.Contains(body, "0.92") {
		t.Error("score not rendered to two decimal places")
	}
}

func TestPredict_InvalidFormValue(t *testing.T) {
	sessions := newMemSessions()
	h := newTestHandler("http://backend.invalid", sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := postForm("/predict", sess, url.Values{
		"person_age":    {"not-a-number"},
		"person_income": {"40000"},
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "person_age") {
		t.Error("validation error not rendered")
	}
}

func TestDashboard_ShowsCreditsSummary(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/credits/":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "user_id": 7, "loan_amount": 12345.67, "interest_rate": 11.0, "term_months": 36, "status": "active"},
			})
		case "/api/currency-rates/":
			json.NewEncoder(w).Encode([]map[string]any{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "My Credits") {
		t.Error("credits summary card missing from dashboard")
	}
	if !strings.Contains(body, "12345.67") {
		t.Error("credit amount not rendered in dashboard summary")
	}
}

func TestDashboard_CreditsSectionDegrades(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/credits/":
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "credit backend down"})
		case "/api/currency-rates/":
			json.NewEncoder(w).Encode([]map[string]any{
				{"currency": "USD", "rate": 478.12, "date": "2025-11-03"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Your credit records are unavailable") {
		t.Error("credits section did not degrade with a note")
	}
	if !strings.Contains(body, "USD") {
		t.Error("rates widget missing despite credits failure")
	}
}

func TestDeleteCredit_FailureCarriesDetail(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/admin/credits/5":
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "credit is locked"})
		case r.URL.Path == "/api/admin/users/":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 2, "username": "alice", "is_admin": false},
			})
		case r.URL.Path == "/api/admin/credits/2":
			json.NewEncoder(w).Encode([]map[string]any{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, true)

	req := postForm("/admin/credits/5/delete", sess, url.Values{"user_id": {"2"}})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/admin/user?user_id=2") {
		t.Fatalf("Location = %q, want the detail page", loc)
	}
	if !strings.Contains(loc, "error=credit+is+locked") {
		t.Errorf("Location = %q, backend detail not carried over", loc)
	}

	// Following the redirect shows the message on the detail page.
	req = httptest.NewRequest(http.MethodGet, loc, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("detail page status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "credit is locked") {
		t.Error("backend detail not rendered after the redirect")
	}
}

func TestProfile_ShowsEmailStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/personal-data/":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "no personal data"})
		case "/api/email-status/":
			json.NewEncoder(w).Encode(map[string]any{"email": "bob@example.com", "email_confirmed": false})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "bob@example.com") {
		t.Error("email address not rendered")
	}
	if !strings.Contains(body, "not confirmed") {
		t.Error("unconfirmed state not rendered")
	}
	if !strings.Contains(body, "Resend Confirmation") {
		t.Error("resend control missing for an unconfirmed address")
	}
}

func TestConfirmEmail_PublicLink(t *testing.T) {
	var gotToken string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/confirm-email/" {
			http.NotFound(w, r)
			return
		}
		gotToken = r.URL.Query().Get("token")
		json.NewEncoder(w).Encode(map[string]string{"message": "email confirmed"})
	}))
	defer backend.Close()

	h := newTestHandler(backend.URL, newMemSessions())
	mux := newMux(h)

	// No session cookie: the link arrives by mail.
	req := httptest.NewRequest(http.MethodGet, "/confirm-email?token=mail-token-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotToken != "mail-token-1" {
		t.Errorf("confirmation token = %q, want mail-token-1", gotToken)
	}
	if !strings.Contains(rec.Body.String(), "Email confirmed") {
		t.Error("confirmation outcome not rendered")
	}
}

func TestOffers_RendersMatches(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/personal-data/":
			json.NewEncoder(w).Encode(map[string]any{
				"person_age": 30, "person_income": 300000.0,
				"person_home_ownership": "RENT", "person_emp_length": 5,
			})
		case "/api/find-credits/":
			json.NewEncoder(w).Encode(map[string]any{
				"total_found": 1,
				"credits": []map[string]any{
					{
						"loan_amnt":     5000.0,
						"loan_int_rate": 11.5,
						"loan_intent":   "EDUCATION",
						"loan_grade":    "B",
						"client_prediction": map[string]any{
							"prediction_label": 0.0,
							"prediction_score": 0.91,
						},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/offers", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "EDUCATION") {
		t.Error("matched offer not rendered")
	}
	if !strings.Contains(body, "0.91") {
		t.Error("per-offer score not rendered")
	}
}

func TestOffers_WithoutProfilePointsAtProfile(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "no personal data"})
	}))
	defer backend.Close()

	sessions := newMemSessions()
	h := newTestHandler(backend.URL, sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := httptest.NewRequest(http.MethodGet, "/offers", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Save your applicant profile first") {
		t.Error("missing-profile hint not rendered")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	sessions := newMemSessions()
	h := newTestHandler("http://backend.invalid", sessions)
	mux := newMux(h)
	sess := seedSession(t, sessions, false)

	req := postForm("/logout", sess, url.Values{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if _, err := sessions.Get(context.Background(), sess.ID); err == nil {
		t.Error("session still present after logout")
	}
}
