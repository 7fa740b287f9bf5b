package alpaca

import "github.com/jondoescoding/kryptt/internal/keys"

// Factory builds clients from whatever credential set is currently saved.
// Every call site goes through the store-backed lookup, so an empty slot
// surfaces as keys.ErrNotConfigured instead of a nil client.
type Factory struct {
	keys *keys.Store
}

// NewFactory creates a Factory bound to the credential store.
func NewFactory(ks *keys.Store) *Factory {
	return &Factory{keys: ks}
}

// Client returns a client for the current credential set, or
// keys.ErrNotConfigured when none has been saved.
func (f *Factory) Client() (*Client, error) {
	k, err := f.keys.Get()
	if err != nil {
		return nil, err
	}
	return NewClient(k.AlpacaAPIKey, k.AlpacaSecretKey, k.AlpacaEndpoint), nil
}
