package trading

import "errors"

// Sentinel errors for trading operations. Both mark caller-correctable
// input, as opposed to upstream failures which pass through untouched.
var (
	// ErrInvalidParameter indicates caller-supplied order data failed validation.
	ErrInvalidParameter = errors.New("trading: invalid parameter")

	// ErrNotCrypto indicates an operation was attempted on a non-crypto asset.
	ErrNotCrypto = errors.New("trading: asset is not a cryptocurrency")
)
