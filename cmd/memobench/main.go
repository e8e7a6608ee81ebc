package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/PascalMinder/memobench"
)

const name = "memobench"

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	mode := flag.String("mode", "all", "workload to run: fib, rangesum or all")
	trials := flag.Int("trials", 0, "calls per n (overrides config)")
	cacheSize := flag.Int("cache-size", 0, "LRU cache capacity (overrides config)")
	chartPath := flag.String("chart", "", "PNG chart output path (overrides config)")
	arrowPath := flag.String("arrow", "", "Arrow IPC results path (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "address to serve /metrics on (overrides config)")
	seed := flag.Uint64("seed", 0, "range-sum workload seed (overrides config)")
	flag.Parse()

	config, err := memobench.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *trials > 0 {
		config.Trials = *trials
	}
	if *cacheSize > 0 {
		config.CacheSize = *cacheSize
	}
	if *chartPath != "" {
		config.ChartPath = *chartPath
	}
	if *arrowPath != "" {
		config.ArrowPath = *arrowPath
	}
	if *metricsAddr != "" {
		config.MetricsAddress = *metricsAddr
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	runFib, runRangeSum := *mode == "fib" || *mode == "all", *mode == "rangesum" || *mode == "all"
	if !runFib && !runRangeSum {
		log.Fatalf("Unknown mode %q", *mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	bench, err := memobench.New(ctx, config, name, reg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	var srv *http.Server
	if config.MetricsAddress != "" {
		srv = &http.Server{
			Addr:              config.MetricsAddress,
			Handler:           memobench.MetricsHandler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		if srv != nil {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		if runFib {
			if _, err := bench.RunFibonacci(gctx, os.Stdout); err != nil {
				return err
			}
		}
		if runRangeSum {
			if _, err := bench.RunRangeSum(gctx, os.Stdout); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
