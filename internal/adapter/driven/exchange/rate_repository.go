package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/repository"
	"github.com/mtamaki/cloud-cost-viewer/internal/shared/types"
)

// open.er-api.com is free and requires no API key.
const defaultEndpoint = "https://open.er-api.com/v6/latest/USD"

// RateRepositoryImpl fetches the USD→JPY rate and caches the first successful
// result for the lifetime of the process. The mutex keeps concurrent first
// fetches from racing to populate the cache.
type RateRepositoryImpl struct {
	endpoint   string
	httpClient *http.Client

	mu     sync.Mutex
	cached *float64
}

// NewRateRepository creates a rate repository against the public endpoint.
func NewRateRepository() repository.RateRepository {
	return &RateRepositoryImpl{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewRateRepositoryWithEndpoint points the repository at a custom endpoint.
// Used by tests with httptest servers.
func NewRateRepositoryWithEndpoint(endpoint string) *RateRepositoryImpl {
	return &RateRepositoryImpl{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type rateResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// FetchRate returns the cached rate, or fetches and caches it. All failures
// wrap types.ErrRateUnavailable.
func (r *RateRepositoryImpl) FetchRate(ctx context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return *r.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrRateUnavailable, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status %s", types.ErrRateUnavailable, resp.Status)
	}

	var payload rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: malformed response: %v", types.ErrRateUnavailable, err)
	}
	if payload.Result != "success" {
		return 0, fmt.Errorf("%w: API result %q", types.ErrRateUnavailable, payload.Result)
	}

	rate, ok := payload.Rates["JPY"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: JPY rate not found in response", types.ErrRateUnavailable)
	}

	r.cached = &rate
	return rate, nil
}

// Reset clears the cached rate for test isolation.
func (r *RateRepositoryImpl) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
}
