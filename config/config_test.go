package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContentDefaults(t *testing.T) {
	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Serve.Port != 8080 {
		t.Fatalf("unexpected port: %d", cfg.Serve.Port)
	}
	if cfg.Data.WorkFile != "工数データ.csv" {
		t.Fatalf("unexpected work file: %q", cfg.Data.WorkFile)
	}
	if !strings.HasSuffix(cfg.WorkPath(), "工数データ.csv") {
		t.Fatalf("unexpected work path: %q", cfg.WorkPath())
	}
}

func TestValidateYAMLContentRejectsBadURL(t *testing.T) {
	content := `
portal:
  url: "not a url"
`
	if _, err := ValidateYAMLContent([]byte(content)); err == nil {
		t.Fatalf("expected validation error for malformed portal url")
	}
}

func TestRunDBPathDefault(t *testing.T) {
	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(cfg.RunDBPath(), "kousu-runs.db") {
		t.Fatalf("unexpected run db path: %q", cfg.RunDBPath())
	}

	cfg.Data.RunDB = "/tmp/custom.db"
	if cfg.RunDBPath() != "/tmp/custom.db" {
		t.Fatalf("override ignored: %q", cfg.RunDBPath())
	}
}
