package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"gps-backfill/internal/config"
	"gps-backfill/internal/dispatcher"
	"gps-backfill/internal/geocode"
	"gps-backfill/internal/observability"
	"gps-backfill/internal/store"
)

func main() {
	cfg := config.Load()

	apply := pflag.Bool("apply", false, "write changes to the database (default is dry-run)")
	noGeocode := pflag.Bool("no-geocode", false, "skip reverse geocoding (no network access needed)")
	dbPath := pflag.String("db", cfg.DBPath, "path to MacDive.sqlite")
	redisAddr := pflag.String("redis", cfg.RedisAddr, "redis address for the geocode cache (empty disables)")
	metricsPort := pflag.String("metrics-port", cfg.MetricsPort, "port for /metrics (empty disables)")
	workers := pflag.Int("workers", cfg.Workers, "parallel decode workers")
	pflag.Parse()

	logger := observability.NewLogger()
	logger.Info("Starting gps-backfill...", "db", *dbPath, "dry_run", !*apply)

	if *redisAddr != "" {
		if err := store.InitRedis(*redisAddr, 0); err != nil {
			logger.Warn("Redis init failed, geocode cache disabled", "error", err)
		}
	}

	if *metricsPort != "" {
		go observability.StartMetricsServer(*metricsPort)
	}

	if *apply {
		backup, err := store.Backup(*dbPath)
		if err != nil {
			logger.Error("backup failed, refusing to write", "error", err)
			os.Exit(1)
		}
		logger.Info("backup saved", "path", backup)
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("open database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var geo *geocode.Client
	if !*noGeocode {
		geo = geocode.New(cfg.NominatimURL)
	}

	d := &dispatcher.Dispatcher{
		DB:      db,
		Geo:     geo,
		Log:     logger,
		DryRun:  !*apply,
		Workers: *workers,
	}

	sum, err := d.Run(context.Background())
	if err != nil {
		logger.Error("backfill run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("done",
		"updated", sum.Updated, "skipped", sum.Skipped, "failed", sum.Failed,
		"dry_run", !*apply)
	if !*apply && sum.Updated > 0 {
		logger.Info("re-run with --apply to write changes")
	}
}
