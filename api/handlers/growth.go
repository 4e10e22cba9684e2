package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/vitalabs/pulse/api/report"
)

// GetNewUsers returns signups bucketed by day, month or hour.
func (h *Handler) GetNewUsers(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindNewUsers, opts)
}

// GetAcquisitionFunnel returns distinct sessions per signup funnel
// stage over the window.
func (h *Handler) GetAcquisitionFunnel(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serveMetric(w, r, report.KindAcquisitionFunnel, opts)
}

type retentionWindow struct {
	Total    int64   `json:"total"`
	Retained int64   `json:"retained"`
	Pct      float64 `json:"pct"`
}

type retentionResponse struct {
	D1  retentionWindow `json:"d1"`
	D7  retentionWindow `json:"d7"`
	D30 retentionWindow `json:"d30"`
}

// GetRetention returns day-1, day-7 and day-30 cohort retention. A
// cohort is everyone who signed up exactly N days ago; retained means
// any recorded activity today.
func (h *Handler) GetRetention(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	res, err := h.runMetric(ctx, report.KindRetention, report.Options{})
	if err != nil {
		if errors.Is(err, report.ErrInvalidParameter) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("metric query failed", "metric", report.KindRetention, "error", err)
		writeError(w, http.StatusInternalServerError, sanitizeError(err))
		return
	}

	sum, ok := res.(report.Summary)
	if !ok {
		h.log.Error("unexpected retention payload", "metric", report.KindRetention)
		writeError(w, http.StatusInternalServerError, "failed to compute metric")
		return
	}

	window := func(prefix string) retentionWindow {
		return retentionWindow{
			Total:    int64(sum[prefix+"_total"]),
			Retained: int64(sum[prefix+"_retained"]),
			Pct:      sum[prefix+"_pct"],
		}
	}
	writeJSON(w, http.StatusOK, retentionResponse{
		D1:  window("d1"),
		D7:  window("d7"),
		D30: window("d30"),
	})
}
