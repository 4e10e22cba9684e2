package handlers

import (
	"net/http"

	"github.com/vitalabs/pulse/api/report"
)

// GetDAU returns distinct active users per day over the window.
func (h *Handler) GetDAU(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindDAU, opts)
}

// GetCheckinsPerDay returns check-in counts per day, optionally scoped
// to one partner.
func (h *Handler) GetCheckinsPerDay(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "partnerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindCheckinsPerDay, opts)
}

// GetReservationsPerDay returns booking counts per day, optionally
// scoped to one partner.
func (h *Handler) GetReservationsPerDay(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "partnerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindReservationsPerDay, opts)
}

// GetActiveUsers returns the rolling daily, weekly and monthly active
// user counts. The windows are fixed at 1/7/30 days, but a malformed
// days parameter is still rejected like everywhere else.
func (h *Handler) GetActiveUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := parseOptions(r, ""); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindActiveUsers, report.Options{})
}

// GetStreaks returns the distribution of distinct active days per user
// over the trailing week.
func (h *Handler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	h.serveMetric(w, r, report.KindStreaks, report.Options{})
}
