package repository

import "context"

// RateRepository resolves the USD to JPY exchange rate. Implementations cache
// the first successful fetch for the lifetime of the process.
type RateRepository interface {
	// FetchRate returns a positive USD→JPY multiplier, or an error wrapping
	// types.ErrRateUnavailable.
	FetchRate(ctx context.Context) (float64, error)
}
