package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8090)
	}
}

func TestConfig_DashboardDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Dashboard.SummaryRows != 10 {
		t.Errorf("SummaryRows = %d, want 10", cfg.Dashboard.SummaryRows)
	}
	if cfg.Dashboard.LabelLength != 12 {
		t.Errorf("LabelLength = %d, want 12", cfg.Dashboard.LabelLength)
	}
	if len(cfg.Dashboard.Palette) != len(DefaultPalette) {
		t.Errorf("Palette has %d colours, want %d", len(cfg.Dashboard.Palette), len(DefaultPalette))
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_BackendURLEnvOverrideTrimsSlash(t *testing.T) {
	t.Setenv("FOLIO_BACKEND_URL", "http://backend:8080/api/")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Backend.BaseURL != "http://backend:8080/api" {
		t.Errorf("Backend.BaseURL = %q, want trailing slash trimmed", cfg.Backend.BaseURL)
	}
}

func TestBackendConfig_GetTimeout(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"0s", 0},
		{"15s", 15 * time.Second},
		{"garbage", 0},
		{"-5s", 0},
	}
	for _, tt := range tests {
		c := BackendConfig{Timeout: tt.in}
		if got := c.GetTimeout(); got != tt.want {
			t.Errorf("GetTimeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := `
environment = "production"

[backend]
base_url = "http://api.example.com/api/"

[dashboard]
currency = "EUR"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path, filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("expected production environment, got %q", cfg.Environment)
	}
	if cfg.Backend.BaseURL != "http://api.example.com/api" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Dashboard.Currency != "EUR" {
		t.Errorf("Dashboard.Currency = %q, want EUR", cfg.Dashboard.Currency)
	}
	if cfg.Dashboard.SummaryRows != 10 {
		t.Errorf("SummaryRows = %d, want default 10 preserved", cfg.Dashboard.SummaryRows)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error for invalid TOML")
	}
}

func TestSessionConfig_Durations(t *testing.T) {
	c := SessionConfig{}
	if got := c.GetIdleTimeout(); got != 30*time.Minute {
		t.Errorf("GetIdleTimeout() default = %v, want 30m", got)
	}
	if got := c.GetSweepInterval(); got != 5*time.Minute {
		t.Errorf("GetSweepInterval() default = %v, want 5m", got)
	}

	c = SessionConfig{IdleTimeout: "2h", SweepInterval: "0s"}
	if got := c.GetIdleTimeout(); got != 2*time.Hour {
		t.Errorf("GetIdleTimeout() = %v, want 2h", got)
	}
	if got := c.GetSweepInterval(); got != 0 {
		t.Errorf("GetSweepInterval() = %v, want 0 (disabled)", got)
	}
}
