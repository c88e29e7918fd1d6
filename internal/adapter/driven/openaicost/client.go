package openaicost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client queries the OpenAI Admin API organization costs endpoint. The
// endpoint buckets costs per day and pages with an opaque cursor.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenAI cost client. The key must be an admin API key
// with the api.organization.read scope.
func NewClient(apiKey string) *Client {
	return NewClientWithURL(apiKey, defaultBaseURL)
}

// NewClientWithURL creates a client against a specific base URL. Used by
// tests with httptest servers.
func NewClientWithURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the provider display name.
func (c *Client) Name() string {
	return "OpenAI"
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured(ctx context.Context) bool {
	return c.apiKey != ""
}

type costAmount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type costResult struct {
	Amount   costAmount `json:"amount"`
	LineItem string     `json:"line_item"`
}

type costBucket struct {
	StartTime int64        `json:"start_time"`
	EndTime   int64        `json:"end_time"`
	Results   []costResult `json:"results"`
}

type costsResponse struct {
	Data     []costBucket `json:"data"`
	HasMore  bool         `json:"has_more"`
	NextPage string       `json:"next_page"`
}

// GetCosts fetches daily cost buckets for [start, end), following pagination
// cursors until the API reports no more pages.
func (c *Client) GetCosts(ctx context.Context, start, end entity.Day) ([]entity.CostEntry, error) {
	var entries []entity.CostEntry
	page := ""

	for {
		resp, err := c.fetchPage(ctx, start, end, page)
		if err != nil {
			return nil, err
		}
		entries = append(entries, parseBuckets(resp.Data)...)

		if !resp.HasMore || resp.NextPage == "" {
			break
		}
		page = resp.NextPage
	}

	return entries, nil
}

func (c *Client) fetchPage(ctx context.Context, start, end entity.Day, page string) (*costsResponse, error) {
	params := url.Values{}
	params.Set("start_time", strconv.FormatInt(start.Time().Unix(), 10))
	params.Set("end_time", strconv.FormatInt(end.Time().Unix(), 10))
	params.Set("bucket_width", "1d")
	if page != "" {
		params.Set("page", page)
	}

	endpoint := c.baseURL + "/organization/costs?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI API error: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload costsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode costs response: %w", err)
	}
	return &payload, nil
}

// parseBuckets flattens daily buckets into cost entries, dropping
// non-positive amounts. Bucket start times are unix seconds at UTC midnight.
func parseBuckets(buckets []costBucket) []entity.CostEntry {
	var entries []entity.CostEntry

	for _, bucket := range buckets {
		date := entity.DayOf(time.Unix(bucket.StartTime, 0))
		for _, result := range bucket.Results {
			if result.Amount.Value <= 0 {
				continue
			}
			entries = append(entries, entity.CostEntry{
				Date:     date,
				Service:  result.LineItem,
				Amount:   result.Amount.Value,
				Currency: strings.ToUpper(result.Amount.Currency),
			})
		}
	}

	return entries
}
