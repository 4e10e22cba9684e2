package handlers

import (
	"net/http"

	"github.com/vitalabs/pulse/api/report"
)

// GetRevenuePerDay returns settled revenue per day, optionally scoped
// to one partner. Only payments with status PAID count.
func (h *Handler) GetRevenuePerDay(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "partnerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindRevenuePerDay, opts)
}

// GetRevenueByRegion returns the top regions by settled revenue over
// the window.
func (h *Handler) GetRevenueByRegion(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindRevenueByRegion, opts)
}

// GetKPIOverview returns the headline totals: users, settled revenue
// and active partners.
func (h *Handler) GetKPIOverview(w http.ResponseWriter, r *http.Request) {
	h.serveMetric(w, r, report.KindKPIOverview, report.Options{})
}

// GetLTVCAC returns average lifetime value and customer acquisition
// cost over the window.
func (h *Handler) GetLTVCAC(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindLTVCAC, opts)
}

// GetMarketingSpend returns marketing cost per day over the window.
func (h *Handler) GetMarketingSpend(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindMarketingSpend, opts)
}
