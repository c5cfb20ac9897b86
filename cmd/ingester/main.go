package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/akarpo/showatlas/ingester/internal/database"
	"github.com/akarpo/showatlas/ingester/internal/ingest"
	"github.com/akarpo/showatlas/ingester/internal/migrations"
	"github.com/akarpo/showatlas/ingester/internal/ratelimit"
	"github.com/akarpo/showatlas/ingester/internal/reconcile"
	"github.com/akarpo/showatlas/ingester/internal/sources/tvmaze"
)

func main() {
	var (
		dsn        = flag.String("db", "showatlas.db", "path to the SQLite database")
		mode       = flag.String("mode", "schedule", "ingestion mode: catalog or schedule")
		pages      = flag.Int("pages", 1, "catalog mode: number of index pages to walk")
		days       = flag.Int("days", 7, "schedule mode: number of calendar days to walk")
		country    = flag.String("country", "US", "schedule mode: country code")
		episodes   = flag.Bool("episodes", false, "catalog mode: import episode lists for new shows")
		rateLimits = flag.String("ratelimits", "", "optional yaml file with per-source rate limits")
		debug      = flag.Bool("debug", false, "log every query")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(*dsn, *debug)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := migrations.RunMigrations(ctx, db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	limiterCfg := ratelimit.DefaultConfig()
	if *rateLimits != "" {
		data, err := os.ReadFile(*rateLimits)
		if err != nil {
			log.Fatalf("read rate limits: %v", err)
		}
		cfgs, err := ratelimit.LoadSourceConfigs(data)
		if err != nil {
			log.Fatalf("parse rate limits: %v", err)
		}
		if cfg, err := cfgs.Get("tvmaze"); err == nil {
			limiterCfg = cfg
		}
	}

	client := tvmaze.NewClient(ratelimit.NewLimiter(limiterCfg), "")
	runner := ingest.NewRunner(client, reconcile.NewEngine(db), db)

	summary, err := runner.Run(ctx, ingest.Options{
		Mode:           ingest.Mode(*mode),
		PageCount:      *pages,
		DaySpan:        *days,
		ImportEpisodes: *episodes,
		Country:        *country,
	})
	if err != nil {
		log.Printf("run stopped early: %v", err)
	}
	log.Printf("ingestion complete: %s", summary.Message)
}
