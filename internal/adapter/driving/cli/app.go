package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mtamaki/cloud-cost-viewer/internal/application/usecase"
	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
	"github.com/mtamaki/cloud-cost-viewer/internal/domain/repository"
	"github.com/mtamaki/cloud-cost-viewer/internal/shared/types"
	"github.com/mtamaki/cloud-cost-viewer/pkg/version"
)

// ProviderFactories builds the cost providers from resolved CLI settings.
// Injected from main so this package stays free of SDK imports.
type ProviderFactories struct {
	AWS    func(profile, granularity string) repository.CostProvider
	OpenAI func(apiKey string) repository.CostProvider
	GCP    func(projectID, dataset, table, keyFile string) repository.CostProvider
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	configRepo    repository.ConfigRepository
	factories     ProviderFactories
	version       string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "cost-viewer",
		Short:   "Cloud cost report CLI for AWS, OpenAI and GCP",
		Version: formattedVersion,
	}

	rootCmd.SetVersionTemplate(`{{printf "cost-viewer version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("start", "s", "", "Start date (YYYY-MM-DD, inclusive; default: first day of the current month)")
	rootCmd.PersistentFlags().StringP("end", "e", "", "End date (YYYY-MM-DD, exclusive; default: today)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")

	awsCmd := &cobra.Command{
		Use:   "aws",
		Short: "Show AWS costs grouped by service",
		RunE:  app.runAWSCommand,
	}
	awsCmd.Flags().StringP("profile", "p", "", "AWS profile to use (default: default credential chain)")
	awsCmd.Flags().StringP("granularity", "g", "DAILY", "Cost granularity: DAILY or MONTHLY")

	openaiCmd := &cobra.Command{
		Use:   "openai",
		Short: "Show OpenAI API costs grouped by line item",
		RunE:  app.runOpenAICommand,
	}
	openaiCmd.Flags().StringP("api-key", "k", "", "OpenAI admin API key (default: OPENAI_ADMIN_API_KEY)")

	gcpCmd := &cobra.Command{
		Use:   "gcp",
		Short: "Show GCP costs from a BigQuery billing export",
		RunE:  app.runGCPCommand,
	}
	gcpCmd.Flags().String("project", "", "GCP project ID (default: GCP_BILLING_PROJECT)")
	gcpCmd.Flags().String("dataset", "", "BigQuery billing export dataset (default: GCP_BILLING_DATASET)")
	gcpCmd.Flags().String("table", "", "BigQuery billing export table (default: GCP_BILLING_TABLE)")
	gcpCmd.Flags().String("key-file", "", "Path to a service account key file")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Show a combined report across every configured provider",
		RunE:  app.runAllCommand,
	}
	allCmd.Flags().StringP("profile", "p", "", "AWS profile to use")
	allCmd.Flags().StringP("api-key", "k", "", "OpenAI admin API key")
	allCmd.Flags().String("project", "", "GCP project ID")
	allCmd.Flags().String("dataset", "", "BigQuery billing export dataset")
	allCmd.Flags().String("table", "", "BigQuery billing export table")
	allCmd.Flags().String("key-file", "", "Path to a service account key file")

	rootCmd.AddCommand(awsCmd, openaiCmd, gcpCmd, allCmd)

	bindEnv()

	app.rootCmd = rootCmd
	return app
}

// bindEnv registers the environment variables used as flag fallbacks.
func bindEnv() {
	viper.AutomaticEnv()
	_ = viper.BindEnv("openai_api_key", "OPENAI_ADMIN_API_KEY")
	_ = viper.BindEnv("gcp_project", "GCP_BILLING_PROJECT")
	_ = viper.BindEnv("gcp_dataset", "GCP_BILLING_DATASET")
	_ = viper.BindEnv("gcp_table", "GCP_BILLING_TABLE")
	_ = viper.BindEnv("gcp_key_file", "GOOGLE_APPLICATION_CREDENTIALS")
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

// SetConfigRepository sets the config repository for the CLI app.
func (app *CLIApp) SetConfigRepository(configRepo repository.ConfigRepository) {
	app.configRepo = configRepo
}

// SetProviderFactories sets the provider constructors for the CLI app.
func (app *CLIApp) SetProviderFactories(factories ProviderFactories) {
	app.factories = factories
}

// parseArgs resolves flags, environment fallbacks and the optional config
// file into a CLIArgs struct. Precedence: flag > environment > config file.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	getString := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}

	args := &types.CLIArgs{
		ConfigFile:  getString("config-file"),
		Start:       getString("start"),
		End:         getString("end"),
		Granularity: getString("granularity"),
		Profile:     getString("profile"),
		APIKey:      getString("api-key"),
		ProjectID:   getString("project"),
		Dataset:     getString("dataset"),
		Table:       getString("table"),
		KeyFile:     getString("key-file"),
		ReportName:  getString("report-name"),
		Dir:         getString("dir"),
	}
	args.ReportType, _ = flags.GetStringSlice("report-type")
	args.Debug, _ = flags.GetBool("debug")

	if args.APIKey == "" {
		args.APIKey = viper.GetString("openai_api_key")
	}
	if args.ProjectID == "" {
		args.ProjectID = viper.GetString("gcp_project")
	}
	if args.Dataset == "" {
		args.Dataset = viper.GetString("gcp_dataset")
	}
	if args.Table == "" {
		args.Table = viper.GetString("gcp_table")
	}
	if args.KeyFile == "" {
		args.KeyFile = viper.GetString("gcp_key_file")
	}

	if args.ConfigFile != "" {
		if err := app.mergeConfigFile(args); err != nil {
			return nil, err
		}
	}

	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	args.Granularity = strings.ToUpper(args.Granularity)
	if args.Granularity != "" && args.Granularity != "DAILY" && args.Granularity != "MONTHLY" {
		return nil, fmt.Errorf("invalid granularity %q: must be DAILY or MONTHLY", args.Granularity)
	}

	return args, nil
}

// mergeConfigFile fills in args left empty by flags and environment.
func (app *CLIApp) mergeConfigFile(args *types.CLIArgs) error {
	cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if args.Profile == "" {
		args.Profile = cfg.Profile
	}
	if args.Granularity == "" || args.Granularity == "DAILY" {
		if cfg.Granularity != "" {
			args.Granularity = cfg.Granularity
		}
	}
	if args.APIKey == "" {
		args.APIKey = cfg.OpenAIKey
	}
	if args.ProjectID == "" {
		args.ProjectID = cfg.GCPProject
	}
	if args.Dataset == "" {
		args.Dataset = cfg.GCPDataset
	}
	if args.Table == "" {
		args.Table = cfg.GCPTable
	}
	if args.KeyFile == "" {
		args.KeyFile = cfg.GCPKeyFile
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if len(cfg.ReportType) > 0 && len(args.ReportType) == 1 && args.ReportType[0] == "csv" {
		args.ReportType = cfg.ReportType
	}
	if args.Dir == "" {
		args.Dir = cfg.Dir
	}

	return nil
}

// resolvePeriod turns the start/end flags into calendar days. The default
// period runs from the first day of the current month through today, with
// the end date exclusive.
func resolvePeriod(args *types.CLIArgs) (entity.Day, entity.Day, error) {
	now := time.Now().UTC()

	var start entity.Day
	if args.Start == "" {
		start = entity.DayOf(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	} else {
		var err error
		start, err = entity.ParseDay(args.Start)
		if err != nil {
			return entity.Day{}, entity.Day{}, fmt.Errorf("invalid start date: %w", err)
		}
	}

	var end entity.Day
	if args.End == "" {
		end = entity.DayOf(now)
	} else {
		var err error
		end, err = entity.ParseDay(args.End)
		if err != nil {
			return entity.Day{}, entity.Day{}, fmt.Errorf("invalid end date: %w", err)
		}
	}

	if !start.Before(end) {
		return entity.Day{}, entity.Day{}, fmt.Errorf("start date %s must be before end date %s", start, end)
	}

	return start, end, nil
}

func (app *CLIApp) baseRequest(args *types.CLIArgs) (usecase.ReportRequest, error) {
	start, end, err := resolvePeriod(args)
	if err != nil {
		return usecase.ReportRequest{}, err
	}
	if args.Debug {
		fmt.Printf("Period: %s to %s (end exclusive), output dir: %s\n", start, end, args.Dir)
	}
	return usecase.ReportRequest{
		Start:      start,
		End:        end,
		ReportName: args.ReportName,
		ReportType: args.ReportType,
		Dir:        args.Dir,
	}, nil
}

func (app *CLIApp) runAWSCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	args, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	req, err := app.baseRequest(args)
	if err != nil {
		return err
	}
	req.Title = "AWS Cost Report"
	req.Mode = entity.ModeUSD
	req.FillGaps = args.Granularity != "MONTHLY"
	req.Profile = args.Profile
	if req.Profile == "" {
		req.Profile = "default"
	}

	provider := app.factories.AWS(args.Profile, args.Granularity)
	return app.reportUseCase.RunSingleReport(cmd.Context(), provider, req)
}

func (app *CLIApp) runOpenAICommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	args, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}
	if args.APIKey == "" {
		return fmt.Errorf("no OpenAI API key: set --api-key or OPENAI_ADMIN_API_KEY")
	}

	req, err := app.baseRequest(args)
	if err != nil {
		return err
	}
	req.Title = "OpenAI Cost Report"
	req.Mode = entity.ModeUSD
	req.FillGaps = true

	provider := app.factories.OpenAI(args.APIKey)
	return app.reportUseCase.RunSingleReport(cmd.Context(), provider, req)
}

func (app *CLIApp) runGCPCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	args, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}
	if args.ProjectID == "" || args.Dataset == "" || args.Table == "" {
		return fmt.Errorf("incomplete GCP settings: need --project, --dataset and --table (or the GCP_BILLING_* environment variables)")
	}

	req, err := app.baseRequest(args)
	if err != nil {
		return err
	}
	req.Title = "GCP Cost Report"
	req.Mode = entity.ModeJPY
	req.FillGaps = true

	provider := app.factories.GCP(args.ProjectID, args.Dataset, args.Table, args.KeyFile)
	return app.reportUseCase.RunSingleReport(cmd.Context(), provider, req)
}

func (app *CLIApp) runAllCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	args, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	req, err := app.baseRequest(args)
	if err != nil {
		return err
	}
	req.Title = "Combined Cost Report"
	req.Mode = entity.ModeMixed
	req.FillGaps = true

	providers := []repository.CostProvider{
		app.factories.AWS(args.Profile, args.Granularity),
		app.factories.OpenAI(args.APIKey),
		app.factories.GCP(args.ProjectID, args.Dataset, args.Table, args.KeyFile),
	}
	return app.reportUseCase.RunCombinedReport(cmd.Context(), providers, req)
}
