package repository

import (
	"context"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

// CostProvider defines the interface every billing backend adapter satisfies.
// GetCosts returns entries filtered to strictly positive amounts, with
// uppercased currency codes, for the half-open range [start, end).
type CostProvider interface {
	// Name returns the display name used for service namespacing and logs
	// (e.g. "AWS", "OpenAI", "GCP").
	Name() string

	// IsConfigured reports whether the provider has usable credentials.
	// Combined reports skip unconfigured providers without error.
	IsConfigured(ctx context.Context) bool

	GetCosts(ctx context.Context, start, end entity.Day) ([]entity.CostEntry, error)
}
