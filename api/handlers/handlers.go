package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalabs/pulse/api/metrics"
	"github.com/vitalabs/pulse/api/report"
)

const queryTimeout = 15 * time.Second

// Handler serves the reporting endpoints. It holds the database through
// the narrow report.Querier surface so tests can swap it freely.
type Handler struct {
	db  report.Querier
	log *slog.Logger
}

// New constructs a Handler backed by the given database.
func New(db report.Querier, log *slog.Logger) *Handler {
	return &Handler{db: db, log: log}
}

// serveMetric runs one metric end to end and writes its canonical JSON
// payload. Invalid parameters map to 400, storage failures to 500.
func (h *Handler) serveMetric(w http.ResponseWriter, r *http.Request, kind report.Kind, opts report.Options) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	res, err := h.runMetric(ctx, kind, opts)
	if err != nil {
		if errors.Is(err, report.ErrInvalidParameter) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("metric query failed", "metric", kind, "error", err)
		writeError(w, http.StatusInternalServerError, sanitizeError(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) runMetric(ctx context.Context, kind report.Kind, opts report.Options) (any, error) {
	start := time.Now()
	res, err := report.Execute(ctx, h.db, kind, opts)
	if !errors.Is(err, report.ErrInvalidParameter) {
		metrics.RecordQuery(time.Since(start), err)
	}
	return res, err
}
