package types

// Config represents the application configuration that can be loaded from a
// TOML, YAML, or JSON file.
type Config struct {
	Profile     string   `json:"profile" yaml:"profile" toml:"profile"`
	Granularity string   `json:"granularity" yaml:"granularity" toml:"granularity"`
	OpenAIKey   string   `json:"openai_api_key" yaml:"openai_api_key" toml:"openai_api_key"`
	GCPProject  string   `json:"gcp_project" yaml:"gcp_project" toml:"gcp_project"`
	GCPDataset  string   `json:"gcp_dataset" yaml:"gcp_dataset" toml:"gcp_dataset"`
	GCPTable    string   `json:"gcp_table" yaml:"gcp_table" toml:"gcp_table"`
	GCPKeyFile  string   `json:"gcp_key_file" yaml:"gcp_key_file" toml:"gcp_key_file"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
}
