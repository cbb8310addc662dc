package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"PriceBoard/internal/controls"
	"PriceBoard/internal/dashboard"
	"PriceBoard/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		Provider        string `yaml:"provider"` // yahoo, rest or mock
		BaseURL         string `yaml:"base_url"`
		APIKey          string `yaml:"api_key"`
		Timeout         string `yaml:"timeout"`
		TolerantPartial bool   `yaml:"tolerate_partial"`
	} `yaml:"data_source"`
	Registry model.Registry `yaml:"registry"`
	Controls struct {
		MonthsMin     int     `yaml:"months_min"`
		MonthsMax     int     `yaml:"months_max"`
		MonthsDefault int     `yaml:"months_default"`
		PriceMin      float64 `yaml:"price_min"`
		PriceMax      float64 `yaml:"price_max"`
		YMinDefault   float64 `yaml:"ymin_default"`
		YMaxDefault   float64 `yaml:"ymax_default"`
	} `yaml:"controls"`
	Cache struct {
		RefreshCron string `yaml:"refresh_cron"`
		WarmOnStart bool   `yaml:"warm_on_start"`
	} `yaml:"cache"`
	Chart struct {
		Width    int     `yaml:"width"`
		Height   int     `yaml:"height"`
		Opacity  float64 `yaml:"opacity"`
		FontPath string  `yaml:"font_path"`
	} `yaml:"chart"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	UI    dashboard.Text `yaml:"ui"`
	Proxy string         `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PRICEBOARD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("REST_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("REST_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CACHE_REFRESH_CRON"); v != "" {
		cfg.Cache.RefreshCron = v
	}
	if v := os.Getenv("CHART_FONT"); v != "" {
		cfg.Chart.FontPath = v
	}
	if v := os.Getenv("WARM_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.WarmOnStart = b
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.Timeout == "" {
		c.DataSource.Timeout = "30s"
	}
	if len(c.Registry) == 0 {
		c.Registry = model.DefaultRegistry()
	}
	b := controls.DefaultBounds()
	if c.Controls.MonthsMin == 0 {
		c.Controls.MonthsMin = b.MonthsMin
	}
	if c.Controls.MonthsMax == 0 {
		c.Controls.MonthsMax = b.MonthsMax
	}
	if c.Controls.MonthsDefault == 0 {
		c.Controls.MonthsDefault = b.MonthsDefault
	}
	if c.Controls.PriceMax == 0 {
		c.Controls.PriceMin = b.PriceMin
		c.Controls.PriceMax = b.PriceMax
	}
	if c.Controls.YMinDefault == 0 && c.Controls.YMaxDefault == 0 {
		c.Controls.YMinDefault = b.YMinDefault
		c.Controls.YMaxDefault = b.YMaxDefault
	}
	if c.Cache.RefreshCron == "" {
		c.Cache.RefreshCron = "0 0 16 * * 1-5"
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 960
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 480
	}
	if c.Chart.Opacity == 0 {
		c.Chart.Opacity = 0.8
	}
	c.UI = c.UI.WithDefaults()
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, mock", c.DataSource.Provider)
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}
	if len(c.Registry) == 0 {
		return fmt.Errorf("registry must not be empty")
	}
	seen := make(map[string]bool, len(c.Registry))
	for i, t := range c.Registry {
		if t.Name == "" || t.Symbol == "" {
			return fmt.Errorf("registry[%d]: name and symbol are required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("registry: duplicate company name %q", t.Name)
		}
		seen[t.Name] = true
	}
	ct := c.Controls
	if ct.MonthsMin < 1 || ct.MonthsMin > ct.MonthsMax {
		return fmt.Errorf("controls: months range [%d, %d] is invalid", ct.MonthsMin, ct.MonthsMax)
	}
	if ct.MonthsDefault < ct.MonthsMin || ct.MonthsDefault > ct.MonthsMax {
		return fmt.Errorf("controls.months_default %d is outside [%d, %d]", ct.MonthsDefault, ct.MonthsMin, ct.MonthsMax)
	}
	if ct.PriceMin < 0 || ct.PriceMin >= ct.PriceMax {
		return fmt.Errorf("controls: price range [%g, %g] is invalid", ct.PriceMin, ct.PriceMax)
	}
	if ct.YMinDefault < ct.PriceMin || ct.YMaxDefault > ct.PriceMax || ct.YMinDefault > ct.YMaxDefault {
		return fmt.Errorf("controls: default window [%g, %g] is outside [%g, %g]", ct.YMinDefault, ct.YMaxDefault, ct.PriceMin, ct.PriceMax)
	}
	if c.Chart.Opacity <= 0 || c.Chart.Opacity > 1 {
		return fmt.Errorf("chart.opacity must be in (0, 1]")
	}
	return nil
}

// FetchTimeout parses data_source.timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.DataSource.Timeout)
	if err != nil {
		return 0, fmt.Errorf("data_source.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("data_source.timeout must be positive")
	}
	return d, nil
}

// Bounds converts the controls section.
func (c *Config) Bounds() controls.Bounds {
	return controls.Bounds{
		MonthsMin:     c.Controls.MonthsMin,
		MonthsMax:     c.Controls.MonthsMax,
		MonthsDefault: c.Controls.MonthsDefault,
		PriceMin:      c.Controls.PriceMin,
		PriceMax:      c.Controls.PriceMax,
		YMinDefault:   c.Controls.YMinDefault,
		YMaxDefault:   c.Controls.YMaxDefault,
	}
}
