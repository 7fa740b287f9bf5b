package gateway

import "net/http"

func (s *Server) handleAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.factory.Client()
		if err != nil {
			writeError(w, err)
			return
		}

		account, err := client.GetAccount(r.Context())
		if err != nil {
			s.logger.Error("account lookup failed", "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}
