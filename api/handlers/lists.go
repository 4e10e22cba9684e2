package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vitalabs/pulse/api/metrics"
)

// ListItem is one selectable entity for dashboard filter dropdowns.
type ListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListPartners returns the active partners, by name.
func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, `
		SELECT id, name
		FROM providers.partner
		WHERE active
		ORDER BY name ASC`)
}

// ListClients returns the corporate clients, by company name.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, `
		SELECT id, company_name
		FROM companies.companies_client
		ORDER BY company_name ASC`)
}

// ListUsers returns the active consumers, by name.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, `
		SELECT id, name
		FROM consumers."user"
		WHERE active
		ORDER BY name ASC`)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, sql string) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := h.db.Query(ctx, sql)
	metrics.RecordQuery(time.Since(start), err)
	if err != nil {
		h.log.Error("list query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}
	defer rows.Close()

	items := []ListItem{}
	for rows.Next() {
		var item ListItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			h.log.Error("list scan failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list entities")
			return
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		h.log.Error("list read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
