package gcpcost

import (
	"context"
	"fmt"
	"math"
	"sync"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

// billingQuery aggregates the standard GCP billing export table per day and
// service, folding credits back into the raw cost.
const billingQuery = `
SELECT
  FORMAT_DATE('%%Y-%%m-%%d', DATE(usage_start_time)) AS date,
  service.description AS service,
  SUM(cost) + SUM(IFNULL((SELECT SUM(c.amount) FROM UNNEST(credits) c), 0)) AS amount,
  currency
FROM ` + "`%s.%s.%s`" + `
WHERE usage_start_time >= TIMESTAMP(@start_date)
  AND usage_start_time < TIMESTAMP(@end_date)
GROUP BY date, service, currency
HAVING amount > 0
ORDER BY date, service`

// Provider queries the GCP billing export from BigQuery. The client is
// created lazily and reused.
type Provider struct {
	projectID string
	dataset   string
	table     string
	keyFile   string

	mu     sync.Mutex
	client *bigquery.Client
}

// NewProvider creates a GCP billing provider. keyFile may be empty to use
// application default credentials.
func NewProvider(projectID, dataset, table, keyFile string) *Provider {
	return &Provider{
		projectID: projectID,
		dataset:   dataset,
		table:     table,
		keyFile:   keyFile,
	}
}

// Name returns the provider display name.
func (p *Provider) Name() string {
	return "GCP"
}

// IsConfigured reports whether the billing export location is known.
func (p *Provider) IsConfigured(ctx context.Context) bool {
	return p.projectID != "" && p.dataset != "" && p.table != ""
}

func (p *Provider) getClient(ctx context.Context) (*bigquery.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	var opts []option.ClientOption
	if p.keyFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.keyFile))
	}

	client, err := bigquery.NewClient(ctx, p.projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	p.client = client
	return client, nil
}

type billingRow struct {
	Date     string  `bigquery:"date"`
	Service  string  `bigquery:"service"`
	Amount   float64 `bigquery:"amount"`
	Currency string  `bigquery:"currency"`
}

// GetCosts runs the billing export query for [start, end) and normalizes the
// rows into cost entries.
func (p *Provider) GetCosts(ctx context.Context, start, end entity.Day) ([]entity.CostEntry, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	query := client.Query(fmt.Sprintf(billingQuery, p.projectID, p.dataset, p.table))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "start_date", Value: start.String()},
		{Name: "end_date", Value: end.String()},
	}

	it, err := query.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("billing export query failed: %w", err)
	}

	var rows []billingRow
	for {
		var row billingRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read billing export row: %w", err)
		}
		rows = append(rows, row)
	}

	return entriesFromRows(rows)
}

// entriesFromRows converts billing export rows to cost entries, dropping
// non-positive and non-finite amounts. The export's account currency is JPY
// for Japanese billing accounts; an empty currency falls back to that.
func entriesFromRows(rows []billingRow) ([]entity.CostEntry, error) {
	var entries []entity.CostEntry

	for _, row := range rows {
		if row.Amount <= 0 || math.IsNaN(row.Amount) || math.IsInf(row.Amount, 0) {
			continue
		}

		date, err := entity.ParseDay(row.Date)
		if err != nil {
			return nil, fmt.Errorf("unexpected date in billing export row: %w", err)
		}

		service := row.Service
		if service == "" {
			service = "Unknown"
		}
		currency := row.Currency
		if currency == "" {
			currency = "JPY"
		}

		entries = append(entries, entity.CostEntry{
			Date:     date,
			Service:  service,
			Amount:   row.Amount,
			Currency: currency,
		})
	}

	return entries, nil
}
