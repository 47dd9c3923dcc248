package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/huynhanx03/chillibowl/pkg/database/redis"
	"github.com/huynhanx03/chillibowl/pkg/logger"
	"github.com/huynhanx03/chillibowl/pkg/metrics"
	"github.com/huynhanx03/chillibowl/pkg/restaurant"
	"github.com/huynhanx03/chillibowl/pkg/settings"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flag.Parse()

	if err := run(*configPath, *metricsAddr); err != nil {
		fmt.Fprintln(os.Stderr, "chillibowl:", err)
		os.Exit(1)
	}
}

func run(configPath, metricsAddr string) error {
	cfg, err := settings.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	queueMetrics, err := metrics.NewQueueMetrics(reg)
	if err != nil {
		return err
	}

	opts := []restaurant.Option{
		restaurant.WithLogger(log),
		restaurant.WithObserver(queueMetrics),
		restaurant.WithSnowflake(cfg.Snowflake),
	}

	if cfg.Redis.Host != "" {
		store, err := redis.NewConnection(&cfg.Redis)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, restaurant.WithSink(store))
		log.Info("recording receipts in redis", zap.String("host", cfg.Redis.Host), zap.String("prefix", cfg.Redis.KeyPrefix))
	}

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	r, err := restaurant.New(cfg.Kitchen, opts...)
	if err != nil {
		return err
	}

	report, err := r.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("all orders served",
		zap.Int("served", report.Served),
		zap.Int("expected", report.Expected),
		zap.Any("by_cook", report.ByCook),
		zap.Any("by_item", report.ByItem),
		zap.Duration("elapsed", report.Elapsed),
	)
	return nil
}
