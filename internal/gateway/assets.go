package gateway

import "net/http"

// cryptoAsset is the trimmed asset view the frontend consumes.
type cryptoAsset struct {
	ID             string `json:"id"`
	Class          string `json:"class"`
	Exchange       string `json:"exchange"`
	Symbol         string `json:"symbol"`
	Name           string `json:"name"`
	MinOrderSize   string `json:"min_order_size"`
	PriceIncrement string `json:"price_increment"`
}

func (s *Server) handleCryptoAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.factory.Client()
		if err != nil {
			writeError(w, err)
			return
		}

		assets, err := client.GetAssets(r.Context(), "active", "crypto")
		if err != nil {
			s.logger.Error("asset lookup failed", "error", err)
			writeError(w, err)
			return
		}

		out := make([]cryptoAsset, 0, len(assets))
		for _, a := range assets {
			out = append(out, cryptoAsset{
				ID:             a.ID,
				Class:          a.Class,
				Exchange:       a.Exchange,
				Symbol:         a.Symbol,
				Name:           a.Name,
				MinOrderSize:   a.MinOrderSize,
				PriceIncrement: a.PriceIncrement,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
