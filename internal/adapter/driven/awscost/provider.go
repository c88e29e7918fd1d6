package awscost

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

// Cost Explorer is only served out of us-east-1.
const costExplorerRegion = "us-east-1"

// Provider queries the AWS Cost Explorer API, grouped by service. Clients are
// created lazily and cached for the process.
type Provider struct {
	profile     string
	granularity ceTypes.Granularity

	mu        sync.Mutex
	awsConfig *aws.Config
}

// NewProvider creates an AWS cost provider. granularity must be "DAILY" or
// "MONTHLY" (already validated by the CLI layer); profile may be empty to use
// the default credential chain.
func NewProvider(profile, granularity string) *Provider {
	g := ceTypes.GranularityDaily
	if strings.EqualFold(granularity, "MONTHLY") {
		g = ceTypes.GranularityMonthly
	}
	return &Provider{
		profile:     profile,
		granularity: g,
	}
}

// Name returns the provider display name.
func (p *Provider) Name() string {
	return "AWS"
}

// IsConfigured checks credentials by calling STS GetCallerIdentity.
func (p *Provider) IsConfigured(ctx context.Context) bool {
	cfg, err := p.getConfig(ctx)
	if err != nil {
		return false
	}
	stsClient := sts.NewFromConfig(*cfg)
	_, err = stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	return err == nil
}

func (p *Provider) getConfig(ctx context.Context) (*aws.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.awsConfig != nil {
		return p.awsConfig, nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(costExplorerRegion),
	}
	if p.profile != "" && p.profile != "default" {
		opts = append(opts, config.WithSharedConfigProfile(p.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", p.profile, err)
	}

	p.awsConfig = &cfg
	return p.awsConfig, nil
}

// GetCosts fetches per-service costs for [start, end) and normalizes them to
// cost entries with strictly positive amounts.
func (p *Provider) GetCosts(ctx context.Context, start, end entity.Day) ([]entity.CostEntry, error) {
	cfg, err := p.getConfig(ctx)
	if err != nil {
		return nil, err
	}
	client := costexplorer.NewFromConfig(*cfg)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.String()),
			End:   aws.String(end.String()),
		},
		Granularity: p.granularity,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	}

	var results []ceTypes.ResultByTime
	for {
		output, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("cost explorer query failed: %w", err)
		}
		results = append(results, output.ResultsByTime...)

		if output.NextPageToken == nil || *output.NextPageToken == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return parseResults(results)
}

// parseResults flattens Cost Explorer result buckets into cost entries.
// Groups with a non-positive amount are dropped.
func parseResults(results []ceTypes.ResultByTime) ([]entity.CostEntry, error) {
	var entries []entity.CostEntry

	for _, result := range results {
		if result.TimePeriod == nil || result.TimePeriod.Start == nil {
			continue
		}
		date, err := entity.ParseDay(*result.TimePeriod.Start)
		if err != nil {
			return nil, fmt.Errorf("unexpected period start in cost explorer response: %w", err)
		}

		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || metric.Amount == nil {
				continue
			}

			amount, err := strconv.ParseFloat(*metric.Amount, 64)
			if err != nil || amount <= 0 {
				continue
			}

			currency := "USD"
			if metric.Unit != nil && *metric.Unit != "" {
				currency = strings.ToUpper(*metric.Unit)
			}

			entries = append(entries, entity.CostEntry{
				Date:     date,
				Service:  group.Keys[0],
				Amount:   amount,
				Currency: currency,
			})
		}
	}

	return entries, nil
}
