package handlers

import (
	"net/http"

	"github.com/vitalabs/pulse/api/report"
)

// GetPartnerStatus returns booking counts per status for one partner.
func (h *Handler) GetPartnerStatus(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "partnerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindPartnerStatus, opts)
}

// GetPartnerOccupancy returns booking counts per slot hour for one
// partner. Hours with no bookings do not appear.
func (h *Handler) GetPartnerOccupancy(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "partnerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindPartnerOccupancy, opts)
}

// GetPartnerKPIs returns the partner headline numbers: average NPS and
// the settled payout over the window.
func (h *Handler) GetPartnerKPIs(w http.ResponseWriter, r *http.Request) {
	opts, err := requireEntity(r, "partnerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindPartnerKPIs, opts)
}
