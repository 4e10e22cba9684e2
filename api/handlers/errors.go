package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends the uniform error envelope. The detail is already
// user-safe: validation messages name the offending parameter, storage
// failures pass through sanitizeError and are logged in full server-side.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// sanitizeError strips credentials and query strings out of an error
// message so the diagnostic can be returned to the caller.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()

	// Mask userinfo in anything that looks like a connection URL.
	if proto := strings.Index(msg, "://"); proto != -1 {
		if at := strings.Index(msg[proto:], "@"); at != -1 {
			msg = msg[:proto+3] + "***@" + msg[proto+at+1:]
		}
	}

	// Drop query parameters, which may echo SQL or DSN options.
	if q := strings.Index(msg, "?"); q != -1 {
		end := len(msg)
		for _, delim := range []string{" ", "'", `"`} {
			if i := strings.Index(msg[q:], delim); i != -1 && q+i < end {
				end = q + i
			}
		}
		msg = msg[:q] + "?..." + msg[end:]
	}

	return msg
}
