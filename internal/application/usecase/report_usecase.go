package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
	"github.com/mtamaki/cloud-cost-viewer/internal/domain/repository"
	"github.com/mtamaki/cloud-cost-viewer/internal/shared/types"
)

// ReportUseCase runs the fetch → merge → fill → format pipeline for the
// report commands.
type ReportUseCase struct {
	rateRepo   repository.RateRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	rateRepo repository.RateRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		rateRepo:   rateRepo,
		exportRepo: exportRepo,
		console:    console,
	}
}

// ReportRequest describes one report invocation.
type ReportRequest struct {
	Title    string
	Start    entity.Day
	End      entity.Day
	Profile  string
	Mode     entity.DisplayMode
	FillGaps bool

	// Export settings; no export happens when ReportName is empty.
	ReportName string
	ReportType []string
	Dir        string
}

// RunSingleReport queries one provider and the exchange rate concurrently,
// then renders the report. JPY-only reports skip the rate fetch entirely so
// they cannot fail on an unavailable rate.
func (uc *ReportUseCase) RunSingleReport(ctx context.Context, provider repository.CostProvider, req ReportRequest) error {
	if !req.Mode.Valid() {
		return fmt.Errorf("invalid display mode %d", req.Mode)
	}

	var (
		entries []entity.CostEntry
		rate    float64
		wg      sync.WaitGroup
		errChan = make(chan error, 2)
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		result, err := provider.GetCosts(ctx, req.Start, req.End)
		if err != nil {
			errChan <- fmt.Errorf("failed to query %s costs: %w", provider.Name(), err)
			return
		}
		entries = result
	}()

	if req.Mode != entity.ModeJPY {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := uc.rateRepo.FetchRate(ctx)
			if err != nil {
				errChan <- err
				return
			}
			rate = r
		}()
	}

	wg.Wait()
	close(errChan)

	if len(errChan) > 0 {
		return <-errChan
	}

	if req.FillGaps {
		entries = FillZeroDays(entries, req.Start, req.End)
	}

	return uc.render(entries, req, rate)
}

// RunCombinedReport queries every configured provider and the exchange rate
// concurrently. A failed provider is logged and omitted from the merge; the
// report fails only when no provider survives.
func (uc *ReportUseCase) RunCombinedReport(ctx context.Context, providers []repository.CostProvider, req ReportRequest) error {
	if !req.Mode.Valid() {
		return fmt.Errorf("invalid display mode %d", req.Mode)
	}

	configured := make([]repository.CostProvider, 0, len(providers))
	for _, p := range providers {
		if !p.IsConfigured(ctx) {
			uc.console.LogInfo("[%s] Not configured, skipping", p.Name())
			continue
		}
		configured = append(configured, p)
	}
	if len(configured) == 0 {
		return types.ErrNoProvidersConfigured
	}

	status := uc.console.Status("Querying cost providers...")

	var (
		wg      sync.WaitGroup
		rate    float64
		rateErr error
		results = make([]entity.ProviderResult, len(configured))
		errs    = make([]error, len(configured))
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		rate, rateErr = uc.rateRepo.FetchRate(ctx)
	}()

	for i, p := range configured {
		wg.Add(1)
		go func(i int, p repository.CostProvider) {
			defer wg.Done()
			entries, err := p.GetCosts(ctx, req.Start, req.End)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = entity.ProviderResult{Name: p.Name(), Entries: entries}
		}(i, p)
	}

	wg.Wait()
	status.Stop()

	if rateErr != nil {
		return rateErr
	}

	succeeded := make([]entity.ProviderResult, 0, len(configured))
	for i, p := range configured {
		if errs[i] != nil {
			uc.console.LogWarning("[%s] Skipped: %s", p.Name(), errs[i])
			continue
		}
		succeeded = append(succeeded, results[i])
	}
	if len(succeeded) == 0 {
		return types.ErrNoProvidersAvailable
	}

	entries := MergeProviders(succeeded)
	if req.FillGaps {
		entries = FillZeroDays(entries, req.Start, req.End)
	}

	return uc.render(entries, req, rate)
}

func (uc *ReportUseCase) render(entries []entity.CostEntry, req ReportRequest, rate float64) error {
	opts := FormatOptions{
		Title:     req.Title,
		StartDate: req.Start.String(),
		EndDate:   req.End.String(),
		Profile:   req.Profile,
		Rate:      rate,
		Mode:      req.Mode,
	}
	uc.console.Println(FormatTable(entries, opts))

	if req.ReportName == "" {
		return nil
	}
	return uc.exportReport(entries, req, rate)
}

func (uc *ReportUseCase) exportReport(entries []entity.CostEntry, req ReportRequest, rate float64) error {
	totalUSD, totalJPY := Totals(entries, req.Mode, rate)
	report := entity.Report{
		Title:     req.Title,
		StartDate: req.Start.String(),
		EndDate:   req.End.String(),
		Profile:   req.Profile,
		Rate:      rate,
		Mode:      req.Mode,
		Entries:   entries,
		TotalUSD:  totalUSD,
		TotalJPY:  totalJPY,
	}

	for _, reportType := range req.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, req.ReportName, req.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, req.ReportName, req.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, req.ReportName, req.Dir)
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
			continue
		}
		if err != nil {
			uc.console.LogError("Failed to export report to %s: %s", reportType, err)
			continue
		}
		uc.console.LogSuccess("Successfully exported report to %s: %s", strings.ToUpper(reportType), path)
	}

	return nil
}
