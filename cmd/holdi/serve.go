package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/holdi/holdi/internal/api"
	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/logging"
	"github.com/holdi/holdi/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP projection service",
	Long: `Serve the catalog, allocation and projection endpoints and the saved
plans over HTTP. Plans are kept in memory unless --redis-addr is set.

Examples:
  holdi serve --addr :8080
  holdi serve --redis-addr localhost:6379 --rate-limit 5`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("log-level") {
		_ = cmd.Flags().Set("log-level", "info")
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := loadCatalog(cmd.Context(), cmd, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plans, closeStore, err := openPlanStore(ctx, cmd, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := api.DefaultConfig()
	cfg.Addr, _ = cmd.Flags().GetString("addr")
	cfg.RateLimit, _ = cmd.Flags().GetFloat64("rate-limit")
	cfg.RateBurst, _ = cmd.Flags().GetInt("rate-burst")

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger.With("component", "engine"))

	return api.NewServer(cfg, engine, plans, cat, logger).Start(ctx)
}

// openPlanStore picks Redis when an address is given, memory otherwise
func openPlanStore(ctx context.Context, cmd *cobra.Command, logger *logging.ZapLogger) (store.PlanStore, func(), error) {
	addr, _ := cmd.Flags().GetString("redis-addr")
	if addr == "" {
		logger.Info("using in-memory plan store")
		return store.NewMemoryPlanStore(), func() {}, nil
	}

	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	ttl, _ := cmd.Flags().GetDuration("plan-ttl")
	rs := store.NewRedisPlanStore(store.RedisOptions{
		Addr:     addr,
		Password: password,
		DB:       db,
		TTL:      ttl,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		rs.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	logger.Info("using redis plan store", "addr", addr, "db", db)
	return rs, func() {
		if err := rs.Close(); err != nil {
			logger.Warn("failed to close redis client", "error", err)
		}
	}, nil
}

func init() {
	defaults := api.DefaultConfig()
	serveCmd.Flags().String("addr", defaults.Addr, "Listen address")
	serveCmd.Flags().Float64("rate-limit", defaults.RateLimit, "Requests per second allowed per client IP (0 disables)")
	serveCmd.Flags().Int("rate-burst", defaults.RateBurst, "Burst size of the per-client rate limit")
	serveCmd.Flags().String("catalog", "", "Asset catalog file (.csv, .yaml, .db)")
	serveCmd.Flags().String("redis-addr", "", "Redis address for saved plans (default: in memory)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("plan-ttl", 0, "Expire saved plans after this long without a save (0 keeps them)")

	rootCmd.AddCommand(serveCmd)
}
