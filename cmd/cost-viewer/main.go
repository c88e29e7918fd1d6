package main

import (
	"fmt"
	"os"

	"github.com/mtamaki/cloud-cost-viewer/internal/adapter/driven/awscost"
	"github.com/mtamaki/cloud-cost-viewer/internal/adapter/driven/config"
	"github.com/mtamaki/cloud-cost-viewer/internal/adapter/driven/exchange"
	"github.com/mtamaki/cloud-cost-viewer/internal/adapter/driven/export"
	"github.com/mtamaki/cloud-cost-viewer/internal/adapter/driven/gcpcost"
	"github.com/mtamaki/cloud-cost-viewer/internal/adapter/driven/openaicost"
	"github.com/mtamaki/cloud-cost-viewer/internal/adapter/driving/cli"
	"github.com/mtamaki/cloud-cost-viewer/internal/application/usecase"
	"github.com/mtamaki/cloud-cost-viewer/internal/domain/repository"
	"github.com/mtamaki/cloud-cost-viewer/pkg/console"
	"github.com/mtamaki/cloud-cost-viewer/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	rateRepo := exchange.NewRateRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	reportUseCase := usecase.NewReportUseCase(
		rateRepo,
		exportRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)
	app.SetConfigRepository(configRepo)
	app.SetProviderFactories(cli.ProviderFactories{
		AWS: func(profile, granularity string) repository.CostProvider {
			return awscost.NewProvider(profile, granularity)
		},
		OpenAI: func(apiKey string) repository.CostProvider {
			return openaicost.NewClient(apiKey)
		},
		GCP: func(projectID, dataset, table, keyFile string) repository.CostProvider {
			return gcpcost.NewProvider(projectID, dataset, table, keyFile)
		},
	})

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
