// Command distribute runs one weekly profit distribution against the
// configured database without going through the HTTP API. It is meant for
// cron hosts and for previewing a week with -dry-run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"profitflow/internal/config"
	"profitflow/internal/database"
	"profitflow/internal/logger"
	"profitflow/internal/realtime"
	"profitflow/internal/roi"
	"profitflow/internal/server"
	"profitflow/internal/services"
)

type options struct {
	mode        string
	week        string
	dryRun      bool
	performance string
	output      io.Writer
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	opts := options{output: os.Stdout}
	flag.StringVar(&opts.mode, "mode", "baseline", "distribution mode: baseline or stream")
	flag.StringVar(&opts.week, "week", "", "week ending date (YYYY-MM-DD or RFC3339); defaults to the last Sunday")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "compute payouts without writing")
	flag.StringVar(&opts.performance, "performance", "", `stream returns as JSON ({"trading":40}) or a list (trading=40,ads_tasks=10)`)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		logger.Get().Fatalf("Distribution failed: %v", err)
	}
}

func run(ctx context.Context, opts options) error {
	req, err := buildRequest(opts, time.Now())
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	table := roi.DefaultTable()
	if cfg.AllocationsFile != "" {
		if table, err = roi.LoadTable(cfg.AllocationsFile); err != nil {
			return fmt.Errorf("failed to load allocation table: %w", err)
		}
	}
	calc, err := roi.NewCalculator(table, cfg.UnknownPlanPolicy == config.PlanPolicyStrict)
	if err != nil {
		return err
	}

	// Live events only reach subscribers of this process, so none are
	// delivered from the CLI; notifications are still stored.
	broker := realtime.NewMemoryBroker()
	defer broker.Close()

	svc := server.NewServices(dbManager.DB(), cfg, calc, broker)
	result, err := svc.Distribution.Run(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(opts.output)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// buildRequest turns the flags into a distribution request.
func buildRequest(opts options, now time.Time) (services.DistributionRequest, error) {
	var req services.DistributionRequest

	mode, err := services.ParseDistributionMode(opts.mode)
	if err != nil {
		return req, err
	}
	req.Mode = mode
	req.DryRun = opts.dryRun

	if opts.week == "" {
		req.WeekEnding = services.LastWeekEnding(now)
	} else if req.WeekEnding, err = services.ParseWeekEnding(opts.week); err != nil {
		return req, err
	}

	if opts.performance != "" {
		raw, err := parsePerformance(opts.performance)
		if err != nil {
			return req, err
		}
		if req.Performance, err = roi.ParseStreams(raw); err != nil {
			return req, err
		}
	}
	return req, nil
}

// parsePerformance accepts a JSON object or a comma separated stream=pct list.
func parsePerformance(raw string) (map[string]decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	out := make(map[string]decimal.Decimal)
	if strings.HasPrefix(raw, "{") {
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("invalid performance JSON: %w", err)
		}
		return out, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid performance entry %q, want stream=pct", part)
		}
		pct, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid percentage for %s: %w", name, err)
		}
		out[strings.TrimSpace(name)] = pct
	}
	return out, nil
}
