package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/naver"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/quote"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/scheduler"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/version"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLog := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(appLog)

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal().Err(err).Msg("Server failed")
	}
}

func run(cfg *config.Config, appLog zerolog.Logger) error {
	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	appLog.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	timeout := time.Duration(cfg.Quote.TimeoutSeconds) * time.Second
	secondary := naver.NewClient(
		naver.WithBaseURL(cfg.Quote.NaverBaseURL),
		naver.WithTimeout(timeout),
		naver.WithRateLimit(cfg.Quote.NaverRateLimit),
		naver.WithCacheTTL(time.Duration(cfg.Quote.CacheTTLSeconds)*time.Second),
		naver.WithLogger(appLog),
	)
	resolver := quote.NewResolver(newPrimaryProvider(cfg, appLog), secondary, appLog, cfg.Quote.FallbackConcurrency)

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	stockRepo := repository.NewStockRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	dashboardService := service.NewDashboardService(portfolioRepo, groupRepo, stockRepo, transactionRepo, resolver, appLog)
	snapshotService := service.NewSnapshotService(snapshotRepo, portfolioRepo, dashboardService, appLog)

	router := api.NewRouter(api.Services{
		System:      service.NewSystemService(db, map[string]bool{"snapshots": cfg.Scheduler.Enabled}),
		Portfolio:   service.NewPortfolioService(portfolioRepo),
		Group:       service.NewGroupService(groupRepo, portfolioRepo),
		Stock:       service.NewStockService(stockRepo, groupRepo, portfolioRepo),
		Transaction: service.NewTransactionService(transactionRepo, stockRepo),
		Dashboard:   dashboardService,
		Snapshot:    snapshotService,
		Price:       service.NewPriceService(resolver),
	}, cfg, appLog)

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(appLog)
		if err := sched.AddJob(cfg.Scheduler.SnapshotSchedule, scheduler.NewSnapshotJob(snapshotService, scheduler.DefaultSnapshotTimeout, appLog)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info().
			Str("addr", cfg.Server.Addr).
			Str("version", version.Version).
			Str("quote_provider", cfg.Quote.Provider).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	appLog.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	appLog.Info().Msg("Server exited")
	return nil
}

// newPrimaryProvider returns the quote provider selected by cfg.Quote.Provider.
func newPrimaryProvider(cfg *config.Config, appLog zerolog.Logger) quote.PrimaryProvider {
	if cfg.Quote.Provider == "yfinance" {
		return yahoo.NewNativeClient(appLog)
	}
	return yahoo.NewFinanceClient(
		yahoo.WithBaseURL(cfg.Quote.YahooBaseURL),
		yahoo.WithTimeout(time.Duration(cfg.Quote.TimeoutSeconds)*time.Second),
		yahoo.WithLogger(appLog),
	)
}
