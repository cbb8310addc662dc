package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"PriceBoard/internal/model"
	"PriceBoard/internal/recorder"
)

// MockFetcher returns deterministic business-day bars for development and
// testing. Prices maps a symbol to its base price; Price is the fallback.
type MockFetcher struct {
	Price  float64
	Prices map[string]float64
	Bars   map[string][]model.OHLCV
	Err    map[string]error
	Now    func() time.Time

	mu    sync.Mutex
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, months int) ([]model.OHLCV, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if err, ok := m.Err[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	if months <= 0 {
		return nil, fmt.Errorf("mock: months must be positive, got %d", months)
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	base := m.Price
	if p, ok := m.Prices[symbol]; ok {
		base = p
	}
	if base == 0 {
		base = 1000
	}
	return generateMockBars(base, now(), months), nil
}

// MockTradingDays returns the business days covered by a months-long
// lookback ending at now, oldest first.
func MockTradingDays(now time.Time, months int) []time.Time {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -months, 0)
	var days []time.Time
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d)
	}
	return days
}

func generateMockBars(basePrice float64, now time.Time, months int) []model.OHLCV {
	days := MockTradingDays(now, months)
	count := len(days)
	bars := make([]model.OHLCV, count)
	for i, d := range days {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector assembles per-company closing prices into a WideTable.
type Collector struct {
	Fetcher  Fetcher
	Recorder recorder.Recorder
	// TolerantPartial omits companies whose fetch fails instead of
	// failing the whole table.
	TolerantPartial bool
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, rec recorder.Recorder, tolerantPartial bool) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{Fetcher: fetcher, Recorder: rec, TolerantPartial: tolerantPartial}
}

// FetchPrices queries every registry entry sequentially for the last
// months months of daily closes and returns them as one wide table with
// rows in registry order. Dates are the union over all companies; a
// company without a close on some date gets NaN there.
func (c *Collector) FetchPrices(ctx context.Context, months int, reg model.Registry) (tbl *model.WideTable, err error) {
	started := time.Now()
	defer func() {
		evt := &recorder.FetchEvent{
			Provider:    c.Fetcher.Name(),
			Months:      months,
			RegistryKey: reg.Key(),
			Duration:    time.Since(started),
		}
		if tbl != nil {
			evt.Companies = len(tbl.Rows)
			evt.Dates = len(tbl.Dates)
		}
		if err != nil {
			evt.Err = err.Error()
		}
		if rerr := c.Recorder.RecordFetch(evt); rerr != nil {
			log.Printf("[ERROR] record fetch: %v", rerr)
		}
	}()

	if months <= 0 {
		return nil, fmt.Errorf("%w: months must be positive, got %d", model.ErrPriceFetchFailed, months)
	}

	type series struct {
		name   string
		closes map[string]float64
	}
	var all []series
	days := make(map[string]time.Time)

	for _, t := range reg {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrPriceFetchFailed, err)
		}
		bars, ferr := c.Fetcher.FetchDailyBars(ctx, t.Symbol, months)
		if ferr == nil && len(bars) == 0 {
			ferr = fmt.Errorf("no data returned")
		}
		if ferr != nil {
			if c.TolerantPartial {
				log.Printf("[WARN] skipping %s (%s): %v", t.Name, t.Symbol, ferr)
				continue
			}
			return nil, fmt.Errorf("%w: %s (%s): %w", model.ErrPriceFetchFailed, t.Name, t.Symbol, ferr)
		}

		s := series{name: t.Name, closes: make(map[string]float64, len(bars))}
		for _, b := range bars {
			label := model.FormatDateLabel(b.Time)
			s.closes[label] = b.Close
			if _, ok := days[label]; !ok {
				days[label] = time.Date(b.Time.Year(), b.Time.Month(), b.Time.Day(), 0, 0, 0, 0, time.UTC)
			}
		}
		all = append(all, s)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no data for any of %d tickers", model.ErrPriceFetchFailed, len(reg))
	}

	labels := make([]string, 0, len(days))
	for l := range days {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return days[labels[i]].Before(days[labels[j]]) })

	tbl = &model.WideTable{Dates: labels, Rows: make([]model.Row, len(all))}
	for i, s := range all {
		prices := make([]float64, len(labels))
		for j, l := range labels {
			if p, ok := s.closes[l]; ok {
				prices[j] = p
			} else {
				prices[j] = math.NaN()
			}
		}
		tbl.Rows[i] = model.Row{Name: s.name, Prices: prices}
	}
	log.Printf("[INFO] fetched %d companies × %d dates from %s (%dmo)", len(tbl.Rows), len(labels), c.Fetcher.Name(), months)
	return tbl, nil
}
