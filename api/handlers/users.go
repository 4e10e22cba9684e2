package handlers

import (
	"net/http"

	"github.com/vitalabs/pulse/api/report"
)

// GetUserActivityHistory returns one user's check-ins per day over the
// window, oldest first.
func (h *Handler) GetUserActivityHistory(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindUserActivityHistory, opts)
}

// GetUserGamificationSummary returns one user's rank points, stamps,
// active minutes and calories over the window.
func (h *Handler) GetUserGamificationSummary(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindUserGamificationSummary, opts)
}
