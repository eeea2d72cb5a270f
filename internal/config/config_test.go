package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Store.Backend != "file" {
		t.Errorf("expected file backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Path != "./peopledesk.json" {
		t.Errorf("expected ./peopledesk.json, got %q", cfg.Store.Path)
	}
	if cfg.Store.Namespace != "hrms_" {
		t.Errorf("expected hrms_ namespace, got %q", cfg.Store.Namespace)
	}
	if cfg.Session.Timeout != 30*time.Minute {
		t.Errorf("expected 30m session timeout, got %s", cfg.Session.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
	if cfg.LateThreshold != "09:30" {
		t.Errorf("expected 09:30 late threshold, got %q", cfg.LateThreshold)
	}
}

func TestSetDefaults_SQLitePath(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Backend: "sqlite"}}
	cfg.SetDefaults()

	if cfg.Store.Path != "./peopledesk.db" {
		t.Errorf("expected ./peopledesk.db for sqlite, got %q", cfg.Store.Path)
	}
}

func TestSetDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{
		Store:   StoreConfig{Backend: "memory", Path: "/tmp/x.json", Namespace: "test_"},
		Session: SessionConfig{Timeout: 5 * time.Minute},
	}
	cfg.SetDefaults()

	if cfg.Store.Backend != "memory" || cfg.Store.Path != "/tmp/x.json" || cfg.Store.Namespace != "test_" {
		t.Errorf("expected explicit store values preserved, got %+v", cfg.Store)
	}
	if cfg.Session.Timeout != 5*time.Minute {
		t.Errorf("expected explicit timeout preserved, got %s", cfg.Session.Timeout)
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestValidate_AcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() returned unexpected error: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, "must be one of"},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }, "must be one of"},
		{"bad late threshold", func(c *Config) { c.LateThreshold = "25:99" }, "24-hour"},
		{"negative timeout", func(c *Config) { c.Session.Timeout = -time.Minute }, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// YAML rendering
// ---------------------------------------------------------------------------

func TestRenderYAML(t *testing.T) {
	out, err := validConfig().RenderYAML()
	if err != nil {
		t.Fatalf("RenderYAML: %v", err)
	}
	for _, want := range []string{"backend: file", "namespace: hrms_", "timeout: 30m0s", "late_threshold: \"09:30\""} {
		if !strings.Contains(string(out), want) {
			t.Errorf("rendered YAML missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFile_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peopledesk.yaml")

	if err := validConfig().WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if err := validConfig().WriteFile(path); err == nil {
		t.Error("expected error writing over an existing config file")
	}
}

func TestValidate_ClockFormat(t *testing.T) {
	for _, good := range []string{"00:00", "09:30", "23:59"} {
		cfg := validConfig()
		cfg.LateThreshold = good
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected %q to validate, got %v", good, err)
		}
	}
	for _, bad := range []string{"9:30:00", "noon", "24:00"} {
		cfg := validConfig()
		cfg.LateThreshold = bad
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected %q to fail validation", bad)
		}
	}
}
