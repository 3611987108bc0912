package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ChartForge/internal/config"
	"ChartForge/internal/fetcher"
	"ChartForge/internal/model"
	"ChartForge/internal/pipeline"
	"ChartForge/internal/recorder"
	"ChartForge/internal/scheduler"
	"ChartForge/internal/sink"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}

	var (
		flagConfig = flag.String("config", cfgPath, "path to YAML config")
		flagSymbol = flag.String("symbol", "", "ticker symbol (default from config, AAPL)")
		flagPeriod = flag.String("period", "", "candle period: daily, weekly or monthly")
		flagOut    = flag.String("out", "", "output file path (default <output dir>/<SYMBOL>.<ext>)")
		flagWatch  = flag.String("watch", "", "cron spec for watch mode (with seconds field)")
	)
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	// CLI flags override config values.
	if *flagSymbol != "" {
		cfg.DataSource.Symbol = *flagSymbol
	}
	if *flagPeriod != "" {
		cfg.Chart.Period = *flagPeriod
	}
	if *flagWatch != "" {
		cfg.Watch.Cron = *flagWatch
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	period, err := model.ParsePeriod(cfg.Chart.Period)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	// Init fetcher
	var f fetcher.Fetcher
	switch cfg.DataSource.Provider {
	case "finnhub":
		f = fetcher.NewFinnhubFetcher(cfg.DataSource.APIKey, cfg.Proxy)
	case "mock":
		f = &fetcher.MockFetcher{BasePrice: 100}
	default:
		f = fetcher.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", f.Name())

	// Init sink
	s := sink.NewSink(cfg.Chart.Format)
	if s == nil {
		log.Fatalf("[FATAL] unsupported output format %q", cfg.Chart.Format)
	}

	outPath := *flagOut
	if outPath == "" {
		outPath = filepath.Join(cfg.Output.Dir, fmt.Sprintf("%s.%s", cfg.DataSource.Symbol, s.Extension()))
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	p := pipeline.New(f, s, rec, pipeline.Options{
		Width:        cfg.Chart.Width,
		Height:       cfg.Chart.Height,
		Margin:       cfg.Chart.Margin,
		SMAPeriods:   cfg.Chart.SMAPeriods,
		LookbackDays: cfg.DataSource.LookbackDays,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Run(ctx, cfg.DataSource.Symbol, period, outPath); err != nil {
		log.Fatalf("[FATAL] render %s: %v", cfg.DataSource.Symbol, err)
	}

	if cfg.Watch.Cron == "" {
		return
	}

	// Watch mode: re-render on schedule until interrupted.
	sched := scheduler.NewScheduler()
	err = sched.Register(cfg.Watch.Cron, func() {
		if err := p.Run(ctx, cfg.DataSource.Symbol, period, outPath); err != nil {
			log.Printf("[ERROR] scheduled render %s: %v", cfg.DataSource.Symbol, err)
		}
	})
	if err != nil {
		log.Fatalf("[FATAL] register watch job: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Printf("[INFO] watch mode active (%s). Press Ctrl+C to stop.", cfg.Watch.Cron)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
}
