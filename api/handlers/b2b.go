package handlers

import (
	"net/http"

	"github.com/vitalabs/pulse/api/report"
)

// GetB2BEngagement returns collaborator adoption for one corporate
// client: eligible headcount, actives over the window and the adoption
// percentage.
func (h *Handler) GetB2BEngagement(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindB2BEngagement, opts)
}

// GetB2BCostPerActive returns the client's settled revenue and the
// plan price divided by active collaborators.
func (h *Handler) GetB2BCostPerActive(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindB2BCostPerActive, opts)
}

// GetB2BCampaigns returns participant counts per campaign for one
// corporate client, most joined first. Campaigns with no participants
// still appear with zero.
func (h *Handler) GetB2BCampaigns(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindB2BCampaigns, opts)
}

// GetB2BMEVDelta returns the average first and latest wellness scores
// of the client's collaborators inside the window, plus the delta.
func (h *Handler) GetB2BMEVDelta(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindB2BMEVDelta, opts)
}
