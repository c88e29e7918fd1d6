package types

// CLIArgs represents the command-line arguments shared by the report
// commands after flag parsing and config-file merging.
type CLIArgs struct {
	ConfigFile  string
	Start       string
	End         string
	Granularity string
	Profile     string
	APIKey      string
	ProjectID   string
	Dataset     string
	Table       string
	KeyFile     string
	ReportName  string
	ReportType  []string
	Dir         string
	Debug       bool
}
