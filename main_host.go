//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sensorwatch/app"
	"sensorwatch/hal"
	"sensorwatch/internal/feed"
	"sensorwatch/sparkos/tasks/companion"
	"sensorwatch/sparkos/tasks/watchface"
)

func main() {
	var (
		headless hal.HeadlessConfig
		host     hal.HostConfig
		cfg      = app.DefaultConfig()

		feedURL     = flag.String("feed-url", "", "Sensor feed URL, e.g. http://localhost:8080/last (empty = built-in sample readings).")
		feedUIDs    = flag.String("feed-uids", "1,2,6,8,10", "Comma separated sensor UIDs to request from the feed.")
		feedTimeout = flag.Duration("feed-timeout", companion.DefaultTimeout, "Timeout for one feed request.")
		metricsAddr = flag.String("metrics-addr", "", "Serve prometheus metrics on this address (empty = disabled).")
		scale       = flag.Int("scale", 3, "Window scale factor.")
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Uint64Var(&headless.TapEvery, "tap-every", 0, "Inject a tap every N ticks in headless mode (0 = never).")
	flag.Float64Var(&host.TimeScale, "time-scale", 1, "Wall clock speed-up; 60 turns minutes into seconds.")
	flag.BoolVar(&cfg.Color, "color", true, "Colour watch: blue background and banded temperatures.")
	flag.IntVar(&cfg.Slots, "slots", cfg.Slots, "Number of sensor labels on the face (1-4).")
	flag.BoolVar(&cfg.Use24h, "24h", cfg.Use24h, "Show a 24 hour clock.")
	flag.Parse()

	if cfg.Slots < 1 || cfg.Slots > watchface.MaxSlots {
		fmt.Fprintf(os.Stderr, "-slots must be between 1 and %d\n", watchface.MaxSlots)
		os.Exit(2)
	}

	if *feedURL != "" {
		uids, err := feed.ParseUIDs(*feedUIDs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg.Fetcher = &companion.HTTPFetcher{
			URL:    *feedURL,
			UIDs:   uids,
			Client: &http.Client{Timeout: *feedTimeout},
		}
	}
	cfg.FetchTimeout = *feedTimeout

	if *metricsAddr != "" {
		cfg.Metrics = companion.NewMetrics(prometheus.DefaultRegisterer)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			srv := &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			log.Println(srv.ListenAndServe())
		}()
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	if headless.Enabled {
		headless.Host = host
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, headless); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{Scale: *scale, Host: host}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
