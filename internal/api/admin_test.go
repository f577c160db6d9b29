// ABOUTME: Tests for admin user and credit operations against a stub backend
// ABOUTME: Covers promote idempotency, delete visibility, and sample defaults

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "head.claims.sig"

// stubBackend is a minimal stateful stand-in for the scoring backend's
// admin surface: a mutable user set with promote and delete.
type stubBackend struct {
	mu    sync.Mutex
	users map[int64]*UserSummary
}

func newStubBackend() *stubBackend {
	return &stubBackend{users: map[int64]*UserSummary{
		1: {ID: 1, Username: "root", IsAdmin: true},
		2: {ID: 2, Username: "bob", IsAdmin: false},
		3: {ID: 3, Username: "carol", IsAdmin: false},
	}}
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/admin/users/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := make([]UserSummary, 0, len(b.users))
		for _, u := range b.users {
			list = append(list, *u)
		}
		json.NewEncoder(w).Encode(list)
	})

	mux.HandleFunc("PUT /api/admin/users/{id}/make_admin", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var id int64
		fmt.Sscanf(r.PathValue("id"), "%d", &id)
		u, ok := b.users[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "user not found"})
			return
		}
		if u.IsAdmin {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "user is already an administrator"})
			return
		}
		u.IsAdmin = true
		json.NewEncoder(w).Encode(map[string]string{"message": "user promoted"})
	})

	mux.HandleFunc("DELETE /api/admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var id int64
		fmt.Sscanf(r.PathValue("id"), "%d", &id)
		if _, ok := b.users[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "user not found"})
			return
		}
		delete(b.users, id)
		json.NewEncoder(w).Encode(map[string]string{"message": "user deleted"})
	})

	return mux
}

func TestDeleteUser_GoneFromSubsequentList(t *testing.T) {
	backend := newStubBackend()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := New(srv.URL)
	ctx := context.Background()

	require.NoError(t, client.DeleteUser(ctx, testToken, 2))

	users, err := client.ListUsers(ctx, testToken)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, int64(2), u.ID, "deleted user must not appear in the list")
	}
}

func TestMakeAdmin_Idempotent(t *testing.T) {
	backend := newStubBackend()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := New(srv.URL)
	ctx := context.Background()

	// First promotion flips the flag
	require.NoError(t, client.MakeAdmin(ctx, testToken, 2))

	u, err := client.FindUser(ctx, testToken, 2)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	// Second promotion hits the backend's "already an administrator"
	// complaint; the terminal state is identical, so it succeeds.
	require.NoError(t, client.MakeAdmin(ctx, testToken, 2))

	u, err = client.FindUser(ctx, testToken, 2)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestMakeAdmin_OtherBadRequestPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "user id must be positive"})
	}))
	defer srv.Close()

	client := New(srv.URL)
	err := client.MakeAdmin(context.Background(), testToken, 2)
	require.Error(t, err, "a 400 that is not the already-admin complaint must surface")
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "user id must be positive")
}

func TestMakeAdmin_LocalizedAlreadyAdminDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Пользователь уже является администратором"})
	}))
	defer srv.Close()

	client := New(srv.URL)
	require.NoError(t, client.MakeAdmin(context.Background(), testToken, 2))
}

func TestMakeAdmin_UnknownUser(t *testing.T) {
	backend := newStubBackend()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := New(srv.URL)
	err := client.MakeAdmin(context.Background(), testToken, 99)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestFindUser(t *testing.T) {
	backend := newStubBackend()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := New(srv.URL)

	u, err := client.FindUser(context.Background(), testToken, 3)
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Username)

	_, err = client.FindUser(context.Background(), testToken, 42)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestCreateCredit_Body(t *testing.T) {
	var got CreditCreate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/admin/credits/", r.URL.Path)
		require.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"id": 10})
	}))
	defer srv.Close()

	client := New(srv.URL)
	credit := CreditCreate{
		UserID:              2,
		LoanAmount:          10000,
		InterestRate:        12.5,
		TermMonths:          36,
		Status:              "active",
		PersonAge:           30,
		PersonIncome:        40000,
		PersonHomeOwnership: "RENT",
		PersonEmpLength:     5,
		LoanIntent:          "EDUCATION",
		LoanGrade:           "A",
		LoanPercentIncome:   0.25,
		DefaultOnFile:       true,
		CreditHistoryLength: 4,
	}
	require.NoError(t, client.CreateCredit(context.Background(), testToken, credit))
	assert.Equal(t, credit, got)
}

func TestUpdateCredit_Body(t *testing.T) {
	var gotPath string
	var got CreditCreate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"id": 17})
	}))
	defer srv.Close()

	client := New(srv.URL)
	credit := CreditCreate{
		UserID:       2,
		LoanAmount:   7500,
		InterestRate: 10.1,
		TermMonths:   24,
		Status:       "closed",
	}
	require.NoError(t, client.UpdateCredit(context.Background(), testToken, 17, credit))
	assert.Equal(t, "/api/admin/credits/17", gotPath)
	assert.Equal(t, credit, got)
}

func TestUserCredits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/credits/2", r.URL.Path)
		json.NewEncoder(w).Encode([]CreditRecord{
			{ID: 1, UserID: 2, LoanAmount: 5000, Status: "closed"},
			{ID: 2, UserID: 2, LoanAmount: 10000, Status: "active"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	credits, err := client.UserCredits(context.Background(), testToken, 2)
	require.NoError(t, err)
	require.Len(t, credits, 2)
	assert.Equal(t, float64(10000), credits[1].LoanAmount)
}

func TestDeleteCredit(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "credit deleted"})
	}))
	defer srv.Close()

	client := New(srv.URL)
	require.NoError(t, client.DeleteCredit(context.Background(), testToken, 17))
	assert.Equal(t, "/api/admin/credits/17", gotPath)
}

func TestSampleCredit_FallbackDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sample_credit/1", r.URL.Path)
		// Sample omits the optional fields
		json.NewEncoder(w).Encode(map[string]any{
			"loan_amnt":     12000.0,
			"loan_int_rate": 11.2,
			"term_months":   36,
			"person_age":    27,
			"person_income": 54000.0,
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	sample, err := client.SampleCredit(context.Background(), testToken, 1)
	require.NoError(t, err)

	assert.Equal(t, float64(12000), sample.LoanAmount)
	assert.Equal(t, DefaultHomeOwnership, sample.PersonHomeOwnership)
	assert.Equal(t, DefaultEmpLength, sample.PersonEmpLength)
	assert.Equal(t, DefaultLoanIntent, sample.LoanIntent)
	assert.Equal(t, DefaultLoanGrade, sample.LoanGrade)
	assert.Equal(t, "N", sample.DefaultOnFile)
	assert.Equal(t, 1, sample.CreditHistoryLength)
}

func TestSampleCredit_ProvidedFieldsKept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"loan_amnt":                  8000.0,
			"loan_int_rate":              9.9,
			"person_home_ownership":      "MORTGAGE",
			"person_emp_length":          11,
			"loan_intent":                "VENTURE",
			"loan_grade":                 "C",
			"cb_person_default_on_file":  "Y",
			"cb_person_cred_hist_length": 8,
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	sample, err := client.SampleCredit(context.Background(), testToken, 0)
	require.NoError(t, err)

	assert.Equal(t, "MORTGAGE", sample.PersonHomeOwnership)
	assert.Equal(t, 11, sample.PersonEmpLength)
	assert.Equal(t, "VENTURE", sample.LoanIntent)
	assert.Equal(t, "C", sample.LoanGrade)
	assert.Equal(t, "Y", sample.DefaultOnFile)
	assert.Equal(t, 8, sample.CreditHistoryLength)
}
