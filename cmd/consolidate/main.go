// Command consolidate merges each user's routes recorded within the session
// gap into the latest record. It prints the report as JSON.
package main

import (
	"Balgil/internal/api/config"
	"Balgil/internal/pkg/database"
	"Balgil/internal/pkg/logger"
	"Balgil/internal/repository"
	"Balgil/internal/service"
	"context"
	"flag"
	"fmt"
	log "log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"
)

func main() {
	userID := flag.String("user", "", "only consolidate this user's routes")
	dryRun := flag.Bool("dry-run", false, "report what would be deleted without deleting")
	gap := flag.Duration("gap", 0, "session gap, defaults to route.session_gap_seconds")
	flag.Parse()

	if err := run(*userID, *dryRun, *gap); err != nil {
		fmt.Fprintln(os.Stderr, "consolidate:", err)
		os.Exit(1)
	}
}

func run(userID string, dryRun bool, gap time.Duration) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.InitLoggerWithWriter(cfg.Log, os.Stderr)

	db, err := database.NewGormDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if gap <= 0 {
		gap = time.Duration(cfg.Route.SessionGapSeconds) * time.Second
	}
	svc := service.NewRouteService(repository.NewRouteRepo(db), gap)

	ctx := logger.WithTraceID(context.Background(), "cli-consolidate")
	log.InfoContext(ctx, "consolidating route sessions", "user", userID, "dry_run", dryRun, "gap", gap)
	report, err := svc.ConsolidateSessions(ctx, userID, dryRun)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
