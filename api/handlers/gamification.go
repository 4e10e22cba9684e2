package handlers

import (
	"net/http"

	"github.com/vitalabs/pulse/api/report"
)

// GetMissionCompletion returns completion counts per mission over the
// window, most completed first. Missions with no completions still
// appear with zero.
func (h *Handler) GetMissionCompletion(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindMissionCompletion, opts)
}
