// ABOUTME: Admin pages: user list, user detail, promotion, deletion, credit records
// ABOUTME: The backend enforces the admin role; these handlers only shape the screens

package web

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Timaska20/Nesie/internal/api"
)

// handleUsersPage renders the registered-user list. The list is fetched
// fresh on every request; re-rendering it is always safe.
func (h *Handler) handleUsersPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	r, csrfToken := h.ensureCSRFToken(w, r)

	data := usersPageData{
		Title:     "Users",
		Session:   sess,
		Error:     r.URL.Query().Get("error"),
		CSRFToken: csrfToken,
	}

	users, err := h.api.ListUsers(r.Context(), sess.Token)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		data.Error = h.errorMessage(err)
	} else {
		data.Users = users
	}

	h.render(w, "users.html", data)
}

// detailUserID extracts the user id from the detail page query. Both
// user_id and id are accepted; old bookmarks use either.
func detailUserID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}
	if raw == "" {
		return 0, fmt.Errorf("missing user id")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// handleUserDetail renders one user with their credit records and the
// add-credit form. The summary and credits fetches fail independently:
// either failure degrades its own section.
func (h *Handler) handleUserDetail(w http.ResponseWriter, r *http.Request) {
	userID, err := detailUserID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	r, csrfToken := h.ensureCSRFToken(w, r)
	h.renderUserDetail(w, r, userID, userDetailData{
		Notice:    r.URL.Query().Get("notice"),
		Error:     r.URL.Query().Get("error"),
		CSRFToken: csrfToken,
	})
}

// renderUserDetail fetches the user and their credits, then renders the
// detail page on top of any prefilled data the caller supplies.
func (h *Handler) renderUserDetail(w http.ResponseWriter, r *http.Request, userID int64, data userDetailData) {
	sess := sessionFromContext(r)
	data.Title = "User Detail"
	data.Session = sess

	user, err := h.api.FindUser(r.Context(), sess.Token, userID)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		data.UserError = h.errorMessage(err)
	} else {
		data.User = user
	}

	credits, err := h.api.UserCredits(r.Context(), sess.Token, userID)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		data.CreditsError = h.errorMessage(err)
	} else {
		data.Credits = credits
	}

	h.render(w, "user_detail.html", data)
}

// pathUserID extracts the {id} path segment
func pathUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// handlePromoteUser grants a user the admin role. Promoting an existing
// admin lands on the same terminal state and reports success.
func (h *Handler) handlePromoteUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	userID, err := pathUserID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, detailURL(userID), http.StatusSeeOther)
		return
	}

	if err := h.api.MakeAdmin(r.Context(), sess.Token, userID); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderUserDetail(w, r, userID, userDetailData{
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	h.logger.Info("user promoted to admin", "user_id", userID)
	http.Redirect(w, r, detailURL(userID)+"&notice=User+promoted", http.StatusSeeOther)
}

// handleDeleteUser removes a user and returns to the list
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	userID, err := pathUserID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteUser(r.Context(), sess.Token, userID); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderUserDetail(w, r, userID, userDetailData{
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	h.logger.Info("user deleted", "user_id", userID)
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// handleAddCredit coerces the add-credit form and stores the record.
// On a validation or backend failure the form values are echoed back.
func (h *Handler) handleAddCredit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	userID, err := pathUserID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, detailURL(userID), http.StatusSeeOther)
		return
	}

	credit, form, err := creditFromForm(r, userID)
	if err != nil {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderUserDetail(w, r, userID, userDetailData{
			Form:      form,
			Error:     err.Error(),
			CSRFToken: csrfToken,
		})
		return
	}

	if err := h.api.CreateCredit(r.Context(), sess.Token, *credit); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderUserDetail(w, r, userID, userDetailData{
			Form:      form,
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	http.Redirect(w, r, detailURL(userID)+"&notice=Credit+record+added", http.StatusSeeOther)
}

// handleSampleCredit prefills the add-credit form from a backend-generated
// example. The outcome label is picked uniformly so approved and rejected
// samples show up equally often.
func (h *Handler) handleSampleCredit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	userID, err := pathUserID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	r, csrfToken := h.ensureCSRFToken(w, r)

	label := rand.IntN(2)
	sample, err := h.api.SampleCredit(r.Context(), sess.Token, label)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		h.renderUserDetail(w, r, userID, userDetailData{
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	h.renderUserDetail(w, r, userID, userDetailData{
		Form:      sampleToForm(sample),
		Notice:    "Form filled from a sample record",
		CSRFToken: csrfToken,
	})
}

// handleDeleteCredit removes one credit record and returns to the
// owner's detail page (passed as a form field by the template).
func (h *Handler) handleDeleteCredit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	creditID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	back := "/admin/users"
	if userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64); err == nil {
		back = detailURL(userID)
	}

	if err := h.api.DeleteCredit(r.Context(), sess.Token, creditID); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		http.Redirect(w, r, appendQuery(back, "error", h.errorMessage(err)), http.StatusSeeOther)
		return
	}

	h.logger.Info("credit record deleted", "credit_id", creditID)
	http.Redirect(w, r, appendQuery(back, "notice", "Credit record deleted"), http.StatusSeeOther)
}

func detailURL(userID int64) string {
	return fmt.Sprintf("/admin/user?user_id=%d", userID)
}

// appendQuery adds one query parameter to a redirect target that may or
// may not already carry a query string.
func appendQuery(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + key + "=" + url.QueryEscape(value)
}

// creditFromForm coerces the add-credit form into a create request.
// Floats for money and rates, ints for terms and counters, checkbox for
// the default-on-file flag. The ratio is recomputed from amount and income.
func creditFromForm(r *http.Request, userID int64) (*api.CreditCreate, creditForm, error) {
	form := creditForm{
		LoanAmount:          r.FormValue("loan_amount"),
		InterestRate:        r.FormValue("interest_rate"),
		TermMonths:          r.FormValue("term_months"),
		Status:              r.FormValue("status"),
		PersonAge:           r.FormValue("person_age"),
		PersonIncome:        r.FormValue("person_income"),
		PersonHomeOwnership: r.FormValue("person_home_ownership"),
		PersonEmpLength:     r.FormValue("person_emp_length"),
		LoanIntent:          r.FormValue("loan_intent"),
		LoanGrade:           r.FormValue("loan_grade"),
		DefaultOnFile:       r.FormValue("cb_person_default_on_file") != "",
		CreditHistoryLength: r.FormValue("cb_person_cred_hist_length"),
	}

	amount, err := parseFloatField(r, "loan_amount")
	if err != nil {
		return nil, form, err
	}
	rate, err := parseFloatField(r, "interest_rate")
	if err != nil {
		return nil, form, err
	}
	term, err := parseIntField(r, "term_months")
	if err != nil {
		return nil, form, err
	}
	age, err := parseIntField(r, "person_age")
	if err != nil {
		return nil, form, err
	}
	income, err := parseFloatField(r, "person_income")
	if err != nil {
		return nil, form, err
	}
	empLength, err := parseIntField(r, "person_emp_length")
	if err != nil {
		return nil, form, err
	}
	histLength, err := parseIntField(r, "cb_person_cred_hist_length")
	if err != nil {
		return nil, form, err
	}

	credit := &api.CreditCreate{
		UserID:              userID,
		LoanAmount:          amount,
		InterestRate:        rate,
		TermMonths:          term,
		Status:              r.FormValue("status"),
		PersonAge:           age,
		PersonIncome:        income,
		PersonHomeOwnership: r.FormValue("person_home_ownership"),
		PersonEmpLength:     empLength,
		LoanIntent:          r.FormValue("loan_intent"),
		LoanGrade:           r.FormValue("loan_grade"),
		LoanPercentIncome:   api.LoanPercentIncome(amount, income),
		DefaultOnFile:       form.DefaultOnFile,
		CreditHistoryLength: histLength,
	}

	return credit, form, nil
}
