package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"PriceBoard/internal/cache"
	"PriceBoard/internal/chart"
	"PriceBoard/internal/collector"
	"PriceBoard/internal/config"
	"PriceBoard/internal/controls"
	"PriceBoard/internal/dashboard"
	"PriceBoard/internal/recorder"
)

var configPath = flag.String("config", "", "Path to the YAML config. Defaults to $CONFIG_PATH or configs/config.yaml.")

// app is the wired dashboard shared by every subcommand.
type app struct {
	cfg      *config.Config
	cache    *cache.PriceCache
	controls *controls.Controls
	pipeline *dashboard.Pipeline
	recorder recorder.Recorder
}

func loadConfig() (*config.Config, error) {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	if *configPath != "" {
		cfgPath = *configPath
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return nil, err
	}
	switch cfg.DataSource.Provider {
	case "rest":
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, timeout), nil
	case "mock":
		prices := make(map[string]float64, len(cfg.Registry))
		for i, t := range cfg.Registry {
			prices[t.Symbol] = 1500 + 700*float64(i%4)
		}
		return &collector.MockFetcher{Prices: prices}, nil
	default:
		return collector.NewYahooFetcher(cfg.Proxy, timeout), nil
	}
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func newRenderer(cfg *config.Config) *chart.PNGRenderer {
	r := chart.NewPNGRenderer(cfg.Chart.Width, cfg.Chart.Height)
	if cfg.Chart.FontPath != "" {
		font, err := chart.LoadFont(cfg.Chart.FontPath)
		if err != nil {
			log.Printf("[WARN] chart font: %v; using the default font", err)
		} else {
			r.Font = font
		}
	}
	return r
}

// newApp loads the config and wires fetcher, collector, cache and pipeline.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	rec := newRecorder(cfg)
	col := collector.NewCollector(fetcher, rec, cfg.DataSource.TolerantPartial)
	pc := cache.NewPriceCache(col)
	ctl := controls.New(cfg.Bounds(), cfg.Registry)
	p := dashboard.New(pc, newRenderer(cfg), ctl, rec, cfg.UI, cfg.Chart.Opacity)

	return &app{cfg: cfg, cache: pc, controls: ctl, pipeline: p, recorder: rec}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}

// selectionFlags are the dashboard inputs shared by snapshot and export.
type selectionFlags struct {
	months    string
	ymin      string
	ymax      string
	companies string
}

func (s *selectionFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.months, "months", "", "Lookback in months. Defaults to the configured default.")
	f.StringVar(&s.ymin, "ymin", "", "Lower bound of the price axis.")
	f.StringVar(&s.ymax, "ymax", "", "Upper bound of the price axis.")
	f.StringVar(&s.companies, "companies", "", "Comma separated company names. Defaults to every registered company.")
}

func (s *selectionFlags) input() controls.Input {
	q := url.Values{}
	q.Set("months", s.months)
	q.Set("ymin", s.ymin)
	q.Set("ymax", s.ymax)
	for _, name := range strings.Split(s.companies, ",") {
		if name = strings.TrimSpace(name); name != "" {
			q.Add("company", name)
		}
	}
	return controls.FromQuery(q)
}
