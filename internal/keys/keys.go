// Package keys holds the single in-memory slot for user-supplied API
// credentials and the masking helpers used before credentials reach logs.
package keys

import (
	"errors"
	"log/slog"
	"sync"
)

// DefaultAlpacaEndpoint is the paper-trading endpoint used when a saved
// credential set does not name one.
const DefaultAlpacaEndpoint = "https://paper-api.alpaca.markets/v2"

// ErrNotConfigured is returned when an operation needs credentials but
// none have been saved yet. Callers map it to a client-correctable response.
var ErrNotConfigured = errors.New("keys: api keys not configured")

// APIKeys is the credential set submitted by the user. It is never
// persisted; a process restart loses it.
type APIKeys struct {
	Groq            string `json:"groq"`
	AlpacaAPIKey    string `json:"alpaca_api_key"`
	AlpacaSecretKey string `json:"alpaca_secret_key"`
	AlpacaEndpoint  string `json:"alpaca_endpoint"`
}

// Store is a thread-safe single-slot holder for the most recently
// submitted credential set. Saving replaces the slot wholesale; there
// is no merging of individual fields.
type Store struct {
	mu      sync.RWMutex
	current *APIKeys
	logger  *slog.Logger
}

// NewStore creates an empty credential store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

// Save overwrites the slot with the given credential set. An empty
// endpoint falls back to the paper-trading default. Only the masked view
// of the set is logged.
func (s *Store) Save(k APIKeys) {
	if k.AlpacaEndpoint == "" {
		k.AlpacaEndpoint = DefaultAlpacaEndpoint
	}

	s.mu.Lock()
	s.current = &k
	s.mu.Unlock()

	s.logger.Info("api keys saved", "keys", MaskMap(k.asMap()))
}

// Get returns the current credential set, or ErrNotConfigured if none
// has been saved.
func (s *Store) Get() (APIKeys, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return APIKeys{}, ErrNotConfigured
	}
	return *s.current, nil
}

// Configured reports whether a credential set has been saved.
func (s *Store) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// asMap renders the set in its wire-format field names, for masking.
func (k APIKeys) asMap() map[string]any {
	return map[string]any{
		"groq":              k.Groq,
		"alpaca_api_key":    k.AlpacaAPIKey,
		"alpaca_secret_key": k.AlpacaSecretKey,
		"alpaca_endpoint":   k.AlpacaEndpoint,
	}
}
