// ABOUTME: Template rendering functions for the web UI
// ABOUTME: Loads templates from embedded filesystem and renders them

package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/Timaska20/Nesie/internal/api"
	"github.com/Timaska20/Nesie/internal/session"
)

// Template data types
type loginData struct {
	Title     string
	Session   *session.Session
	Error     string
	Notice    string
	CSRFToken string
}

type registerData struct {
	Title     string
	Session   *session.Session
	Error     string
	Username  string
	FullName  string
	CSRFToken string
}

type dashboardData struct {
	Title        string
	Session      *session.Session
	Rates        []api.CurrencyRate
	RatesError   string
	Credits      []api.CreditRecord
	CreditsError string
	Error        string
	CSRFToken    string
}

type predictResultData struct {
	Title     string
	Session   *session.Session
	Approved  bool
	Score     string
	CSRFToken string
}

type creditsData struct {
	Title     string
	Session   *session.Session
	Credits   []api.CreditRecord
	Error     string
	Notice    string
	CSRFToken string
}

type profileData struct {
	Title      string
	Session    *session.Session
	Profile    *api.PersonalData
	Email      *api.EmailStatus
	EmailError string
	Error      string
	Notice     string
	CSRFToken  string
}

type offersData struct {
	Title     string
	Session   *session.Session
	Filter    string
	Result    *api.FindCreditsResponse
	Offers    []offerRow
	Error     string
	Notice    string
	CSRFToken string
}

// offerRow is one matched offer formatted for display. Absent dataset
// values and failed per-offer scoring render as "n/a".
type offerRow struct {
	Amount    string
	AmountKZT string
	Rate      string
	Intent    string
	Grade     string
	Score     string
}

func offerRows(offers []api.CreditOffer) []offerRow {
	rows := make([]offerRow, 0, len(offers))
	for i := range offers {
		o := &offers[i]
		row := offerRow{
			Amount:    fmt.Sprintf("%.2f", o.LoanAmount),
			AmountKZT: "n/a",
			Rate:      "n/a",
			Intent:    o.LoanIntent,
			Grade:     o.LoanGrade,
			Score:     "n/a",
		}
		if o.LoanAmountKZT != nil {
			row.AmountKZT = fmt.Sprintf("%.2f", *o.LoanAmountKZT)
		}
		if o.InterestRate != nil {
			row.Rate = fmt.Sprintf("%.2f%%", *o.InterestRate)
		}
		if p := o.Prediction(); p != nil {
			row.Score = fmt.Sprintf("%.2f", p.PredictionScore)
		}
		rows = append(rows, row)
	}
	return rows
}

type usersPageData struct {
	Title     string
	Session   *session.Session
	Users     []api.UserSummary
	Error     string
	CSRFToken string
}

// creditForm carries add-credit form values, either empty, sampled from
// the backend, or echoed back after a failed submit.
type creditForm struct {
	LoanAmount          string
	InterestRate        string
	TermMonths          string
	Status              string
	PersonAge           string
	PersonIncome        string
	PersonHomeOwnership string
	PersonEmpLength     string
	LoanIntent          string
	LoanGrade           string
	DefaultOnFile       bool
	CreditHistoryLength string
}

type userDetailData struct {
	Title        string
	Session      *session.Session
	User         *api.UserSummary
	UserError    string
	Credits      []api.CreditRecord
	CreditsError string
	Form         creditForm
	Error        string
	Notice       string
	CSRFToken    string
}

func sampleToForm(s *api.SampleCredit) creditForm {
	return creditForm{
		LoanAmount:          fmt.Sprintf("%g", s.LoanAmount),
		InterestRate:        fmt.Sprintf("%g", s.InterestRate),
		TermMonths:          fmt.Sprintf("%d", s.TermMonths),
		Status:              "active",
		PersonAge:           fmt.Sprintf("%d", s.PersonAge),
		PersonIncome:        fmt.Sprintf("%g", s.PersonIncome),
		PersonHomeOwnership: s.PersonHomeOwnership,
		PersonEmpLength:     fmt.Sprintf("%d", s.PersonEmpLength),
		LoanIntent:          s.LoanIntent,
		LoanGrade:           s.LoanGrade,
		DefaultOnFile:       s.DefaultOnFile == "Y",
		CreditHistoryLength: fmt.Sprintf("%d", s.CreditHistoryLength),
	}
}

func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+page))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
	}
}

func (h *Handler) renderLoginPage(w http.ResponseWriter, errorMsg, csrfToken string) {
	h.render(w, "login.html", loginData{
		Title:     "Sign In",
		Error:     errorMsg,
		CSRFToken: csrfToken,
	})
}

func (h *Handler) renderRegisterPage(w http.ResponseWriter, data registerData) {
	data.Title = "Create Account"
	h.render(w, "register.html", data)
}
