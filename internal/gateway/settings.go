package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jondoescoding/kryptt/internal/keys"
)

func (s *Server) handleSaveKeys() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var k keys.APIKeys
		if err := json.NewDecoder(r.Body).Decode(&k); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s.keys.Save(k)
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "API keys saved successfully",
		})
	}
}

func (s *Server) handleGetKeys() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := s.keys.Get()
		if err != nil {
			if errors.Is(err, keys.ErrNotConfigured) {
				writeJSON(w, http.StatusOK, map[string]string{
					"message": "No API keys found",
				})
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, k)
	}
}
