package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeTemp(t, "config.toml", `
profile = "billing"
granularity = "MONTHLY"
openai_api_key = "sk-admin-test"
gcp_project = "my-project"
gcp_dataset = "billing"
gcp_table = "gcp_billing_export_v1"
report_type = ["csv", "json"]
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Profile != "billing" || cfg.Granularity != "MONTHLY" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.OpenAIKey != "sk-admin-test" {
		t.Errorf("unexpected OpenAI key: %q", cfg.OpenAIKey)
	}
	if cfg.GCPProject != "my-project" || cfg.GCPDataset != "billing" || cfg.GCPTable != "gcp_billing_export_v1" {
		t.Errorf("unexpected GCP settings: %+v", cfg)
	}
	if len(cfg.ReportType) != 2 || cfg.ReportType[0] != "csv" {
		t.Errorf("unexpected report types: %v", cfg.ReportType)
	}
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
profile: billing
gcp_project: my-project
report_name: monthly
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile != "billing" || cfg.GCPProject != "my-project" || cfg.ReportName != "monthly" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeTemp(t, "config.json", `{"profile": "billing", "dir": "/tmp/reports"}`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile != "billing" || cfg.Dir != "/tmp/reports" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigFileUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "config.ini", "profile=billing")

	repo := NewConfigRepository()
	if _, err := repo.LoadConfigFile(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	repo := NewConfigRepository()
	if _, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigFileDirectory(t *testing.T) {
	repo := NewConfigRepository()
	if _, err := repo.LoadConfigFile(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := writeTemp(t, "config.json", `{"profile": `)

	repo := NewConfigRepository()
	if _, err := repo.LoadConfigFile(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
