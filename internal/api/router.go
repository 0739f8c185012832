package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
)

// Services holds the services the HTTP API delegates to.
type Services struct {
	System      *service.SystemService
	Portfolio   *service.PortfolioService
	Group       *service.GroupService
	Stock       *service.StockService
	Transaction *service.TransactionService
	Dashboard   *service.DashboardService
	Snapshot    *service.SnapshotService
	Price       *service.PriceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svc.System)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio, svc.Dashboard, svc.Snapshot)
	groupHandler := handlers.NewGroupHandler(svc.Group)
	stockHandler := handlers.NewStockHandler(svc.Stock)
	transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
	priceHandler := handlers.NewPriceHandler(svc.Price)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Get("/default", portfolioHandler.DefaultPortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.Portfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/dashboard", portfolioHandler.Dashboard)
				r.Get("/history", portfolioHandler.History)
				r.Get("/groups", groupHandler.GroupsPerPortfolio)
				r.Post("/groups", groupHandler.CreateGroup)
				r.Get("/stocks", stockHandler.StocksPerPortfolio)
				r.Post("/stocks", stockHandler.CreateStock)
			})
		})

		r.Route("/group/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Delete("/", groupHandler.DeleteGroup)
		})

		r.Route("/stock/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", stockHandler.GetStock)
			r.Put("/", stockHandler.UpdateStock)
			r.Delete("/", stockHandler.DeleteStock)
			r.Get("/transactions", transactionHandler.TransactionsPerStock)
			r.Post("/transactions", transactionHandler.CreateTransaction)
		})

		r.Route("/transaction/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", transactionHandler.GetTransaction)
			r.Put("/", transactionHandler.UpdateTransaction)
			r.Delete("/", transactionHandler.DeleteTransaction)
		})

		r.Get("/price", priceHandler.Prices)
	})

	return r
}
