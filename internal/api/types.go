// ABOUTME: Wire types for the Nesie backend REST API
// ABOUTME: All entities are backend-owned; these are transient display copies

package api

// TokenResponse is the payload of POST /api/token/ and /api/register/.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserInfo is the identity resolved from a bearer token.
type UserInfo struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserSummary is one row of the admin user list.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// CreditRecord is a stored credit as the backend returns it. The client
// displays, creates, or deletes whole records; it never patches one in place.
type CreditRecord struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	LoanAmount   float64 `json:"loan_amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
	Status       string  `json:"status"`

	PersonAge           int     `json:"person_age"`
	PersonIncome        float64 `json:"person_income"`
	PersonHomeOwnership string  `json:"person_home_ownership"`
	PersonEmpLength     int     `json:"person_emp_length"`
	LoanIntent          string  `json:"loan_intent"`
	LoanGrade           string  `json:"loan_grade"`
	LoanPercentIncome   float64 `json:"loan_percent_income"`
	DefaultOnFile       bool    `json:"cb_person_default_on_file"`
	CreditHistoryLength int     `json:"cb_person_cred_hist_length"`
}

// CreditCreate is the body of POST /api/admin/credits/. It mirrors
// CreditRecord minus the backend-assigned id.
type CreditCreate struct {
	UserID       int64   `json:"user_id"`
	LoanAmount   float64 `json:"loan_amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
	Status       string  `json:"status"`

	PersonAge           int     `json:"person_age"`
	PersonIncome        float64 `json:"person_income"`
	PersonHomeOwnership string  `json:"person_home_ownership"`
	PersonEmpLength     int     `json:"person_emp_length"`
	LoanIntent          string  `json:"loan_intent"`
	LoanGrade           string  `json:"loan_grade"`
	LoanPercentIncome   float64 `json:"loan_percent_income"`
	DefaultOnFile       bool    `json:"cb_person_default_on_file"`
	CreditHistoryLength int     `json:"cb_person_cred_hist_length"`
}

// SampleCredit is a backend-generated example record used to pre-fill the
// add-credit form. Optional fields may be absent; ApplyDefaults fills them.
type SampleCredit struct {
	LoanAmount          float64 `json:"loan_amnt"`
	InterestRate        float64 `json:"loan_int_rate"`
	TermMonths          int     `json:"term_months"`
	PersonAge           int     `json:"person_age"`
	PersonIncome        float64 `json:"person_income"`
	PersonHomeOwnership string  `json:"person_home_ownership"`
	PersonEmpLength     int     `json:"person_emp_length"`
	LoanIntent          string  `json:"loan_intent"`
	LoanGrade           string  `json:"loan_grade"`
	LoanPercentIncome   float64 `json:"loan_percent_income"`
	DefaultOnFile       string  `json:"cb_person_default_on_file"`
	CreditHistoryLength int     `json:"cb_person_cred_hist_length"`
}

// Sample defaults applied when the sampling endpoint omits optional fields.
const (
	DefaultHomeOwnership = "RENT"
	DefaultEmpLength     = 5
	DefaultLoanIntent    = "EDUCATION"
	DefaultLoanGrade     = "A"
)

// ApplyDefaults fills the optional fields the sampling endpoint may omit.
func (s *SampleCredit) ApplyDefaults() {
	if s.PersonHomeOwnership == "" {
		s.PersonHomeOwnership = DefaultHomeOwnership
	}
	if s.PersonEmpLength == 0 {
		s.PersonEmpLength = DefaultEmpLength
	}
	if s.LoanIntent == "" {
		s.LoanIntent = DefaultLoanIntent
	}
	if s.LoanGrade == "" {
		s.LoanGrade = DefaultLoanGrade
	}
	if s.DefaultOnFile == "" {
		s.DefaultOnFile = "N"
	}
	if s.CreditHistoryLength == 0 {
		s.CreditHistoryLength = 1
	}
}

// ApplicantFeatures is one record of the model service's batch contract.
// DefaultOnFile is "Y" or "N" on the wire, matching the training data.
type ApplicantFeatures struct {
	PersonAge           int     `json:"person_age"`
	PersonIncome        float64 `json:"person_income"`
	PersonHomeOwnership string  `json:"person_home_ownership"`
	PersonEmpLength     float64 `json:"person_emp_length"`
	LoanIntent          string  `json:"loan_intent"`
	LoanGrade           string  `json:"loan_grade"`
	LoanAmount          float64 `json:"loan_amnt"`
	InterestRate        float64 `json:"loan_int_rate"`
	LoanPercentIncome   float64 `json:"loan_percent_income"`
	DefaultOnFile       string  `json:"cb_person_default_on_file"`
	CreditHistoryLength int     `json:"cb_person_cred_hist_length"`
}

// Prediction is one scored record from the model service.
type Prediction struct {
	PersonAge       int     `json:"person_age"`
	PersonIncome    float64 `json:"person_income"`
	PredictionLabel int     `json:"prediction_label"`
	PredictionScore float64 `json:"prediction_score"`
}

// PredictResponse is the model service's batch response envelope.
type PredictResponse struct {
	Status      string       `json:"status"`
	Predictions []Prediction `json:"predictions"`
}

// PersonalData is the applicant profile stored per user.
type PersonalData struct {
	PersonAge           int     `json:"person_age"`
	PersonIncome        float64 `json:"person_income"`
	PersonHomeOwnership string  `json:"person_home_ownership"`
	PersonEmpLength     int     `json:"person_emp_length"`
}

// CurrencyRate is one exchange-rate row from the backend.
type CurrencyRate struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
	Date     string  `json:"date"`
}

// Message is the generic {"message": ...} success envelope.
type Message struct {
	Message string `json:"message"`
}
