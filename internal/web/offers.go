// ABOUTME: Offer search page: historical credits matched to the stored profile
// ABOUTME: The matching and per-offer scoring happen backend-side; this renders them

package web

import (
	"net/http"

	"github.com/Timaska20/Nesie/internal/api"
)

// handleOffersPage searches historical credits similar to the caller's
// stored applicant profile. Without a saved profile there is nothing to
// match against, so the page points at /profile instead.
func (h *Handler) handleOffersPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)
	r, csrfToken := h.ensureCSRFToken(w, r)

	filter := api.FilterAll
	if r.URL.Query().Get("filter") == api.FilterBest {
		filter = api.FilterBest
	}

	data := offersData{
		Title:     "Credit Offers",
		Session:   sess,
		Filter:    filter,
		CSRFToken: csrfToken,
	}

	profile, err := h.api.PersonalData(r.Context(), sess.Token)
	switch {
	case api.IsStatus(err, http.StatusNotFound):
		data.Notice = "Save your applicant profile first to search for offers"
	case err != nil:
		if h.handleBackendError(w, r, err) {
			return
		}
		data.Error = h.errorMessage(err)
	default:
		result, err := h.api.FindCredits(r.Context(), sess.Token, *profile, filter)
		if err != nil {
			if h.handleBackendError(w, r, err) {
				return
			}
			data.Error = h.errorMessage(err)
		} else {
			data.Result = result
			data.Offers = offerRows(result.Credits)
		}
	}

	h.render(w, "offers.html", data)
}
