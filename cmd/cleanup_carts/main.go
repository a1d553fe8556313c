package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// Config for the abandoned cart cleanup job
type Config struct {
	SpannerDB     string
	RetentionDays int
	BatchSize     int
	DryRun        bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&config.RetentionDays, "retention", 30, "Delete carts untouched for this many days")
	flag.IntVar(&config.BatchSize, "batch", 500, "Carts deleted per commit")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if config.SpannerDB == "" {
		logger.Error("-database flag or SPANNER_DATABASE is required")
		os.Exit(2)
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		logger.Error("failed to create spanner client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	clk := clock.NewRealClock()
	cartRepo := repo.NewCartRepo(client, clk)
	comm := committer.NewCommitter(client)

	deleted, err := cleanupCarts(ctx, cartRepo, comm, clk.Now(), config, logger)
	if err != nil {
		logger.Error("cleanup failed", "error", err, "deleted", deleted)
		os.Exit(1)
	}
	logger.Info("cleanup completed", "deleted", deleted, "dry_run", config.DryRun)
}

// applier commits a plan; satisfied by *committer.Committer.
type applier interface {
	Apply(ctx context.Context, plan *committer.CommitPlan) error
}

// cleanupCarts deletes carts not updated within the retention period in
// batches and returns how many were deleted (or would be, on a dry run).
func cleanupCarts(ctx context.Context, carts contracts.CartRepository, comm applier, now time.Time, config Config, logger *slog.Logger) (int, error) {
	if config.BatchSize <= 0 {
		config.BatchSize = 500
	}
	cutoff := now.AddDate(0, 0, -config.RetentionDays)
	logger.Info("starting cart cleanup",
		"cutoff", cutoff.Format(time.RFC3339),
		"retention_days", config.RetentionDays,
		"dry_run", config.DryRun,
	)

	total := 0
	for {
		ids, err := carts.ListStale(ctx, cutoff, config.BatchSize)
		if err != nil {
			return total, err
		}
		if len(ids) == 0 {
			return total, nil
		}

		if config.DryRun {
			count, err := carts.CountStale(ctx, cutoff)
			if err != nil {
				return total, err
			}
			for _, id := range ids {
				logger.Info("would delete cart", "cart_id", id)
			}
			logger.Info("dry run", "would_delete", count, "listed", len(ids))
			return int(count), nil
		}

		plan := committer.NewPlan()
		for _, id := range ids {
			plan.Add(carts.DeleteMut(id))
		}
		if err := comm.Apply(ctx, plan); err != nil {
			return total, fmt.Errorf("failed to delete batch: %w", err)
		}
		total += len(ids)
		logger.Info("deleted stale carts", "count", len(ids), "total", total)

		if len(ids) < config.BatchSize {
			return total, nil
		}
	}
}
