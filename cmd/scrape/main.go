package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"eua-price-lab/internal/config"
	"eua-price-lab/internal/extract"
	"eua-price-lab/internal/fetch"
	"eua-price-lab/internal/observability"
	"eua-price-lab/internal/pipeline"
	"eua-price-lab/internal/storage"
	chstore "eua-price-lab/internal/storage/clickhouse"
	"eua-price-lab/internal/storage/csvstore"
	"eua-price-lab/internal/storage/migrations"
	pgstore "eua-price-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration")
	daemon := flag.Bool("daemon", false, "Run on the configured cron schedule instead of once")
	csvPath := flag.String("csv", "", "Override the canonical CSV store path")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (overrides config, empty keeps config)")
	flag.Parse()

	logger := log.New(os.Stdout, "[scrape] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}
	if *csvPath != "" {
		cfg.Store.CSVPath = *csvPath
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", cfg.Metrics.Addr)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	runner, closeStores, err := buildRunner(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Setup: %v", err)
	}
	defer closeStores()

	if !*daemon {
		if _, err := runner.Run(ctx); err != nil {
			logger.Fatalf("Run failed: %v", err)
		}
		return
	}

	logger.Printf("Daemon mode, schedule %q", cfg.Schedule.Cron)
	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule.Cron, func() {
		if _, err := runner.Run(ctx); err != nil {
			logger.Printf("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("Invalid cron expression %q: %v", cfg.Schedule.Cron, err)
	}
	c.Start()

	<-ctx.Done()
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Println("Running job did not finish within 30s, exiting anyway")
	}
}

// buildRunner wires sources, stores and the pipeline from configuration.
// The returned closer releases database connections.
func buildRunner(ctx context.Context, cfg *config.Config, logger *log.Logger) (*pipeline.Runner, func(), error) {
	var sources []fetch.Source
	if cfg.Sources.Browser.Enabled {
		sources = append(sources, fetch.NewBrowserSource(fetch.BrowserOptions{
			Name:     "browser",
			PageURL:  cfg.Sources.Browser.PageURL,
			Headless: *cfg.Sources.Browser.Headless,
			Settle:   cfg.BrowserSettle(),
			Logger:   logger,
		}))
	}
	if cfg.Sources.HTTP.Enabled {
		sources = append(sources, fetch.NewHTTPSource("api", cfg.Sources.HTTP.Endpoint, cfg.Proxy))
	}
	if cfg.Sources.Stream.Enabled {
		sources = append(sources, fetch.NewStreamSource(fetch.StreamOptions{
			Name:        "stream",
			Endpoint:    cfg.Sources.Stream.Endpoint,
			ReadWindow:  cfg.StreamReadWindow(),
			MaxMessages: cfg.Sources.Stream.MaxMessages,
		}))
	}
	if len(sources) == 0 {
		logger.Println("No sources enabled; runs will extract nothing and leave the store untouched (use cmd/repair to rewrite it in place)")
	}

	store := csvstore.New(cfg.Store.CSVPath, logger)

	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	var runStore storage.RunStore
	if dsn := cfg.Database.PostgresDSN; dsn != "" {
		pool, err := pgstore.NewPool(ctx, dsn)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			closeAll()
			return nil, nil, err
		}
		runStore = pgstore.NewRunStore(pool)
	}

	var archive storage.ObservationArchive
	if dsn := cfg.Database.ClickhouseDSN; dsn != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, dsn)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { conn.Close() })
		archive = chstore.NewObservationStore(conn)
	}

	aliases := extract.Aliases{
		Date:       cfg.Aliases.Date,
		Price:      cfg.Aliases.Price,
		Containers: cfg.Aliases.Containers,
	}

	runner := pipeline.NewRunner(pipeline.Options{
		Collector: fetch.NewCollector(sources, cfg.Sources.Spans, logger),
		Extractor: extract.New(aliases),
		Store:     store,
		Archive:   archive,
		Runs:      runStore,
		Metrics:   observability.DefaultMetrics,
		Logger:    logger,
	})
	return runner, closeAll, nil
}
