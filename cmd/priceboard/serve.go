package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"PriceBoard/internal/scheduler"
	"PriceBoard/internal/web"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the stock price dashboard over HTTP" }
func (*serveCmd) Usage() string {
	return `priceboard serve [-addr <host:port>]

  Serves the dashboard page, the chart image and a JSON API, and refreshes
  the price cache on the configured schedule.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides server.addr.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.Println("[INFO] PriceBoard starting...")
	a, err := newApp()
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	addr := a.cfg.Server.Addr
	if c.addr != "" {
		addr = c.addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := a.controls.Bounds
	sched := scheduler.NewScheduler(ctx, a.cache, a.cfg.Registry, b.MonthsMin, b.MonthsMax)
	if err := sched.Register(a.cfg.Cache.RefreshCron); err != nil {
		log.Printf("[FATAL] register cache refresh: %v", err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	if a.cfg.Cache.WarmOnStart {
		log.Println("[INFO] warm_on_start enabled, filling the price cache")
		go func() {
			if err := sched.RunRefreshNow(); err != nil {
				log.Printf("[WARN] initial cache warm: %v", err)
			}
		}()
	}

	srv := web.NewServer(addr, a.pipeline, a.cache)
	if err := srv.Start(ctx); err != nil {
		log.Printf("[FATAL] http server: %v", err)
		return subcommands.ExitFailure
	}
	log.Println("[INFO] PriceBoard stopped")
	return subcommands.ExitSuccess
}
