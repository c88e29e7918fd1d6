package types

import "errors"

var (
	// ErrRateUnavailable wraps every exchange-rate fetch failure: network
	// errors, non-success HTTP status, or a response without a JPY entry.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrNoProvidersConfigured is returned by the combined report when no
	// provider has usable credentials.
	ErrNoProvidersConfigured = errors.New("no cost providers are configured. Set provider credentials first")

	// ErrNoProvidersAvailable is returned by the combined report when every
	// configured provider failed. A configured provider returning zero
	// entries is a valid empty result, not this error.
	ErrNoProvidersAvailable = errors.New("all cost providers failed, no data sources available")
)
