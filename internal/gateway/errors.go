package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jondoescoding/kryptt/internal/alpaca"
	"github.com/jondoescoding/kryptt/internal/keys"
	"github.com/jondoescoding/kryptt/internal/trading"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto a status code and a {"detail": ...}
// body. Unrecognized errors become 500s carrying the stringified cause.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, keys.ErrNotConfigured):
		writeDetail(w, http.StatusNotFound, "No API keys found. Please save your API keys first.")
	case errors.Is(err, alpaca.ErrPositionNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, trading.ErrInvalidParameter), errors.Is(err, trading.ErrNotCrypto):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
