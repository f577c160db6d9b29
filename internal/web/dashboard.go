// ABOUTME: Dashboard, prediction, own-credits, and profile handlers
// ABOUTME: Pages degrade per section when a backend call fails; nothing crashes the render

package web

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Timaska20/Nesie/internal/api"
	"github.com/Timaska20/Nesie/internal/session"
)

// handleDashboard renders the landing page: identity, the scoring form,
// the caller's credit summary, and the currency-rates widget. A failure
// in either widget degrades that section with a note instead of failing
// the page.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	r, csrfToken := h.ensureCSRFToken(w, r)

	data := dashboardData{
		Title:     "Dashboard",
		Session:   sess,
		CSRFToken: csrfToken,
	}

	credits, err := h.api.MyCredits(r.Context(), sess.Token)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		data.CreditsError = "Your credit records are unavailable right now"
		h.logger.Warn("own credits fetch failed", "error", err)
	} else {
		data.Credits = credits
	}

	rates, err := h.api.CurrencyRates(r.Context())
	if err != nil {
		data.RatesError = "Exchange rates are unavailable right now"
		h.logger.Warn("currency rates fetch failed", "error", err)
	} else {
		data.Rates = rates
	}

	h.render(w, "dashboard.html", data)
}

// handlePredict coerces the scoring form into one applicant record, sends
// it through the batch contract, and renders the verdict.
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	record, err := applicantFromForm(r)
	if err != nil {
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderDashboardError(w, sess, err.Error(), csrfToken)
		return
	}

	pred, err := h.api.PredictOne(r.Context(), sess.Token, *record)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.renderDashboardError(w, sess, h.errorMessage(err), csrfToken)
		return
	}

	_, csrfToken := h.ensureCSRFToken(w, r)
	h.render(w, "predict_result.html", predictResultData{
		Title:     "Scoring Result",
		Session:   sess,
		Approved:  pred.Approved(),
		Score:     fmt.Sprintf("%.2f", pred.PredictionScore),
		CSRFToken: csrfToken,
	})
}

// renderDashboardError re-renders the dashboard with an error banner
func (h *Handler) renderDashboardError(w http.ResponseWriter, sess *session.Session, msg, csrfToken string) {
	h.render(w, "dashboard.html", dashboardData{
		Title:     "Dashboard",
		Session:   sess,
		Error:     msg,
		CSRFToken: csrfToken,
	})
}

// applicationHash fingerprints a credit application so the backend can
// reject accidental double submits of the same form.
func applicationHash(userID int64, app api.CreditApplication) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d|%g|%g|%d", userID, app.LoanAmount, app.InterestRate, app.TermMonths))
	return hex.EncodeToString(sum[:])
}

// applicantFromForm coerces the scoring form fields into a model record.
// The ratio is always recomputed server-side from amount and income.
func applicantFromForm(r *http.Request) (*api.ApplicantFeatures, error) {
	age, err := parseIntField(r, "person_age")
	if err != nil {
		return nil, err
	}
	income, err := parseFloatField(r, "person_income")
	if err != nil {
		return nil, err
	}
	empLength, err := parseFloatField(r, "person_emp_length")
	if err != nil {
		return nil, err
	}
	amount, err := parseFloatField(r, "loan_amnt")
	if err != nil {
		return nil, err
	}
	rate, err := parseFloatField(r, "loan_int_rate")
	if err != nil {
		return nil, err
	}
	histLength, err := parseIntField(r, "cb_person_cred_hist_length")
	if err != nil {
		return nil, err
	}

	defaultOnFile := "N"
	if r.FormValue("cb_person_default_on_file") != "" {
		defaultOnFile = "Y"
	}

	return &api.ApplicantFeatures{
		PersonAge:           age,
		PersonIncome:        income,
		PersonHomeOwnership: r.FormValue("person_home_ownership"),
		PersonEmpLength:     empLength,
		LoanIntent:          r.FormValue("loan_intent"),
		LoanGrade:           r.FormValue("loan_grade"),
		LoanAmount:          amount,
		InterestRate:        rate,
		LoanPercentIncome:   api.LoanPercentIncome(amount, income),
		DefaultOnFile:       defaultOnFile,
		CreditHistoryLength: histLength,
	}, nil
}

func parseIntField(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0, fmt.Errorf("field %s must be a whole number", name)
	}
	return v, nil
}

func parseFloatField(r *http.Request, name string) (float64, error) {
	v, err := strconv.ParseFloat(r.FormValue(name), 64)
	if err != nil {
		return 0, fmt.Errorf("field %s must be a number", name)
	}
	return v, nil
}

// handleCreditsPage lists the caller's own credit records
func (h *Handler) handleCreditsPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	r, csrfToken := h.ensureCSRFToken(w, r)

	data := creditsData{
		Title:     "My Credits",
		Session:   sess,
		Notice:    r.URL.Query().Get("notice"),
		CSRFToken: csrfToken,
	}

	credits, err := h.api.MyCredits(r.Context(), sess.Token)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		data.Error = h.errorMessage(err)
	} else {
		data.Credits = credits
	}

	h.render(w, "credits.html", data)
}

// handleApplyCredit submits a credit application for the caller
func (h *Handler) handleApplyCredit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/credits", http.StatusSeeOther)
		return
	}

	amount, errA := parseFloatField(r, "loan_amount")
	rate, errR := parseFloatField(r, "interest_rate")
	term, errT := parseIntField(r, "term_months")
	if errA != nil || errR != nil || errT != nil {
		http.Redirect(w, r, "/credits?notice=Invalid+form+values", http.StatusSeeOther)
		return
	}

	app := api.CreditApplication{
		LoanAmount:   amount,
		InterestRate: rate,
		TermMonths:   term,
		Status:       "pending",
	}
	app.Hash = applicationHash(sess.UserID, app)

	if err := h.api.ApplyCredit(r.Context(), sess.Token, app); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		if api.IsStatus(err, http.StatusConflict) {
			http.Redirect(w, r, "/credits?notice=This+application+was+already+submitted", http.StatusSeeOther)
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.render(w, "credits.html", creditsData{
			Title:     "My Credits",
			Session:   sess,
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	http.Redirect(w, r, "/credits?notice=Application+submitted", http.StatusSeeOther)
}

// handleProfilePage shows the stored applicant profile. A 404 from the
// backend means no profile exists yet and renders an empty form.
func (h *Handler) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	r, csrfToken := h.ensureCSRFToken(w, r)

	data := profileData{
		Title:     "Profile",
		Session:   sess,
		Notice:    r.URL.Query().Get("notice"),
		CSRFToken: csrfToken,
	}

	profile, err := h.api.PersonalData(r.Context(), sess.Token)
	switch {
	case err == nil:
		data.Profile = profile
	case api.IsStatus(err, http.StatusNotFound):
		// No profile saved yet
	default:
		if h.handleBackendError(w, r, err) {
			return
		}
		data.Error = h.errorMessage(err)
	}

	status, err := h.api.EmailStatus(r.Context(), sess.Token)
	if err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		data.EmailError = h.errorMessage(err)
	} else {
		data.Email = status
	}

	h.render(w, "profile.html", data)
}

// handleUpdateEmail sets a new email address. The backend resets the
// confirmed flag and mails a fresh confirmation link.
func (h *Handler) handleUpdateEmail(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	newEmail := r.FormValue("new_email")
	if newEmail == "" {
		http.Redirect(w, r, "/profile?notice=An+email+address+is+required", http.StatusSeeOther)
		return
	}

	if err := h.api.UpdateEmail(r.Context(), sess.Token, newEmail); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.render(w, "profile.html", profileData{
			Title:     "Profile",
			Session:   sess,
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	http.Redirect(w, r, "/profile?notice=Email+updated.+A+confirmation+link+is+on+its+way", http.StatusSeeOther)
}

// handleSendConfirmation re-sends the confirmation mail for the address
// already on file.
func (h *Handler) handleSendConfirmation(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	if err := h.api.SendConfirmation(r.Context(), sess.Token); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		if api.IsStatus(err, http.StatusNotFound) {
			http.Redirect(w, r, "/profile?notice=Set+an+email+address+first", http.StatusSeeOther)
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.render(w, "profile.html", profileData{
			Title:     "Profile",
			Session:   sess,
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	http.Redirect(w, r, "/profile?notice=Confirmation+mail+sent", http.StatusSeeOther)
}

// handleSaveProfile stores the applicant profile
func (h *Handler) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	age, errA := parseIntField(r, "person_age")
	income, errI := parseFloatField(r, "person_income")
	empLength, errE := parseIntField(r, "person_emp_length")
	if errA != nil || errI != nil || errE != nil {
		http.Redirect(w, r, "/profile?notice=Invalid+form+values", http.StatusSeeOther)
		return
	}

	data := api.PersonalData{
		PersonAge:           age,
		PersonIncome:        income,
		PersonHomeOwnership: r.FormValue("person_home_ownership"),
		PersonEmpLength:     empLength,
	}

	if err := h.api.SavePersonalData(r.Context(), sess.Token, data); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.render(w, "profile.html", profileData{
			Title:     "Profile",
			Session:   sess,
			Profile:   &data,
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	http.Redirect(w, r, "/profile?notice=Profile+saved", http.StatusSeeOther)
}

// handleUpdatePassword changes the account password, then ends the
// session so the browser re-authenticates with the new credentials.
func (h *Handler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	if err := r.ParseForm(); err != nil || !h.validateCSRF(r) {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	oldPassword := r.FormValue("old_password")
	newPassword := r.FormValue("new_password")
	if oldPassword == "" || newPassword == "" {
		http.Redirect(w, r, "/profile?notice=Both+passwords+are+required", http.StatusSeeOther)
		return
	}

	if err := h.api.UpdatePassword(r.Context(), sess.Token, oldPassword, newPassword); err != nil {
		if h.handleBackendError(w, r, err) {
			return
		}
		_, csrfToken := h.ensureCSRFToken(w, r)
		h.render(w, "profile.html", profileData{
			Title:     "Profile",
			Session:   sess,
			Error:     h.errorMessage(err),
			CSRFToken: csrfToken,
		})
		return
	}

	h.destroySession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
