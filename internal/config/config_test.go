package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Server.Addr != ":8501" || cfg.DataSource.Provider != "yahoo" {
		t.Errorf("server = %q, provider = %q", cfg.Server.Addr, cfg.DataSource.Provider)
	}
	if len(cfg.Registry) != 4 || cfg.Registry[0].Symbol != "7453.T" {
		t.Errorf("registry = %+v", cfg.Registry)
	}
	b := cfg.Bounds()
	if b.MonthsMin != 1 || b.MonthsMax != 6 || b.MonthsDefault != 3 || b.PriceMax != 5000 || b.YMinDefault != 1000 || b.YMaxDefault != 4000 {
		t.Errorf("bounds = %+v", b)
	}
	if d, _ := cfg.FetchTimeout(); d != 30*time.Second {
		t.Errorf("timeout = %v", d)
	}
	if cfg.UI.GenericError == "" || cfg.Chart.Opacity != 0.8 {
		t.Errorf("ui/chart defaults missing: %+v %+v", cfg.UI, cfg.Chart)
	}
}

func TestLoad_RegistryFromFile(t *testing.T) {
	path := writeConfig(t, `
registry:
  - name: Apple
    symbol: AAPL
  - name: Microsoft
    symbol: MSFT
controls:
  price_max: 1000
  ymin_default: 100
  ymax_default: 500
ui:
  title: US stocks
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if names := cfg.Registry.Names(); len(names) != 2 || names[1] != "Microsoft" {
		t.Errorf("registry order = %v", names)
	}
	if cfg.Controls.PriceMax != 1000 || cfg.Controls.YMaxDefault != 500 {
		t.Errorf("controls = %+v", cfg.Controls)
	}
	if cfg.UI.Title != "US stocks" || cfg.UI.InvalidSelection == "" {
		t.Errorf("ui = %+v", cfg.UI)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRICEBOARD_ADDR", ":9000")
	t.Setenv("DATA_SOURCE", "rest")
	t.Setenv("REST_BASE_URL", "http://bars.local")
	t.Setenv("SQLITE_PATH", "/tmp/history.db")
	t.Setenv("WARM_ON_START", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9000" || cfg.DataSource.Provider != "rest" || cfg.DataSource.BaseURL != "http://bars.local" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Database.SQLitePath != "/tmp/history.db" || !cfg.Cache.WarmOnStart {
		t.Errorf("db/cache overrides not applied")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "registry: [unterminated")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown provider", "data_source:\n  provider: bloomberg\n", "provider"},
		{"rest without url", "data_source:\n  provider: rest\n", "base_url"},
		{"bad timeout", "data_source:\n  timeout: soon\n", "timeout"},
		{"duplicate names", "registry:\n  - {name: A, symbol: X}\n  - {name: A, symbol: Y}\n", "duplicate"},
		{"missing symbol", "registry:\n  - {name: A}\n", "symbol"},
		{"months default out of range", "controls:\n  months_default: 9\n", "months_default"},
		{"inverted default window", "controls:\n  ymin_default: 3000\n  ymax_default: 2000\n", "window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}
