package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vitalabs/pulse/api/report"
)

// parseOptions reads the shared filter query parameters. entityParam
// names the id parameter this endpoint accepts ("partnerId",
// "clientId", "userId"); empty means the endpoint takes none.
// Whether the entity id is required for a given metric is enforced by
// the report layer, not here.
func parseOptions(r *http.Request, entityParam string) (report.Options, error) {
	opts := report.Options{}

	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("days must be an integer, got %q", raw)
		}
		if days <= 0 {
			return opts, fmt.Errorf("days must be a positive integer, got %d", days)
		}
		opts.Days = days
	}

	if entityParam != "" {
		if raw := r.URL.Query().Get(entityParam); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return opts, fmt.Errorf("%s must be an integer, got %q", entityParam, raw)
			}
			if id <= 0 {
				return opts, fmt.Errorf("%s must be a positive integer, got %d", entityParam, id)
			}
			opts.EntityID = id
		}
	}

	if raw := r.URL.Query().Get("groupBy"); raw != "" {
		switch report.Grouping(raw) {
		case report.GroupByDay, report.GroupByMonth, report.GroupByHour:
			opts.GroupBy = report.Grouping(raw)
		default:
			return opts, fmt.Errorf("groupBy must be one of day, month, hour, got %q", raw)
		}
	}

	return opts, nil
}

// requireEntity parses a mandatory id parameter for entity-scoped
// endpoints, failing fast with a parameter-specific message.
func requireEntity(r *http.Request, entityParam string) (report.Options, error) {
	opts, err := parseOptions(r, entityParam)
	if err != nil {
		return opts, err
	}
	if opts.EntityID == 0 {
		return opts, fmt.Errorf("%s is required", entityParam)
	}
	return opts, nil
}
