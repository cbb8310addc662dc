package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"PriceBoard/internal/model"
)

// Cache is the part of cache.PriceCache the scheduler drives.
type Cache interface {
	FetchPrices(ctx context.Context, months int, reg model.Registry) (*model.WideTable, error)
	Invalidate()
}

// Scheduler refreshes the price cache on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Cache     Cache
	Registry  model.Registry
	MonthsMin int
	MonthsMax int
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler that warms every lookback in
// [monthsMin, monthsMax].
func NewScheduler(ctx context.Context, c Cache, reg model.Registry, monthsMin, monthsMax int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Cache:     c,
		Registry:  reg,
		MonthsMin: monthsMin,
		MonthsMax: monthsMax,
		Ctx:       ctx,
	}
}

// Register adds the refresh task. An empty spec disables it.
func (s *Scheduler) Register(refreshCron string) error {
	if refreshCron == "" {
		log.Println("[INFO] cache refresh disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (warm_on_start).
func (s *Scheduler) RunRefreshNow() error {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	if err := s.refresh(); err != nil {
		log.Printf("[ERROR] cache refresh: %v", err)
	}
}

// refresh drops stale tables and warms every lookback. It keeps going
// after a failure so one bad month does not leave the rest cold.
func (s *Scheduler) refresh() error {
	log.Println("[INFO] refreshing price cache")
	s.Cache.Invalidate()
	var firstErr error
	warmed := 0
	for m := s.MonthsMin; m <= s.MonthsMax; m++ {
		if err := s.Ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Cache.FetchPrices(s.Ctx, m, s.Registry); err != nil {
			log.Printf("[WARN] warm %dmo: %v", m, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("warm %dmo: %w", m, err)
			}
			continue
		}
		warmed++
	}
	log.Printf("[INFO] price cache warmed for %d/%d lookbacks", warmed, s.MonthsMax-s.MonthsMin+1)
	return firstErr
}
