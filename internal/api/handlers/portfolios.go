package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolio endpoints, including the
// valued dashboard and the snapshot history of a portfolio.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	dashboardService *service.DashboardService
	snapshotService  *service.SnapshotService
	now              func() time.Time
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(
	portfolioService *service.PortfolioService,
	dashboardService *service.DashboardService,
	snapshotService *service.SnapshotService,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		dashboardService: dashboardService,
		snapshotService:  snapshotService,
		now:              time.Now,
	}
}

// Portfolios handles GET requests to list all portfolios, oldest first.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of model.Portfolio
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetPortfolios(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// DefaultPortfolio returns the first portfolio, creating one when none exists.
//
// Endpoint: GET /api/portfolio/default
// Response: 200 OK with model.Portfolio
func (h *PortfolioHandler) DefaultPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetDefaultPortfolio(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// Portfolio handles GET requests for a single portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with model.Portfolio
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolio.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio handles POST requests to create a portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (name, description)
// Response: 201 Created with model.Portfolio
// Error: 400 Bad Request if the body is invalid
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondValidationError(w, err)
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio handles PUT requests changing the fields present in the body.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Request Body: UpdatePortfolioRequest (all fields optional)
// Response: 200 OK with the updated model.Portfolio
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		respondValidationError(w, err)
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update portfolio")
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio removes a portfolio together with its groups, stocks and transactions.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete portfolio")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Dashboard handles GET requests for the valued view of a portfolio.
// The optional search parameter narrows the stock lists by name or symbol.
//
// Endpoint: GET /api/portfolio/{uuid}/dashboard?search=
// Response: 200 OK with model.Dashboard
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if the datastore fails
func (h *PortfolioHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.GetDashboard(r.Context(), chi.URLParam(r, "uuid"), r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetDashboard.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}

// History handles GET requests for the daily snapshots of a portfolio.
// Without start_date the range starts 30 days before end_date; end_date defaults to today.
//
// Endpoint: GET /api/portfolio/{uuid}/history?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
// Response: 200 OK with array of model.PortfolioSnapshot
// Error: 400 Bad Request if a date is malformed or the range is inverted
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startDate, endDate, err := validation.ValidateDateRange(query.Get("start_date"), query.Get("end_date"), h.now().UTC())
	if err != nil {
		if errors.Is(err, validation.ErrInvalidDateRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
			return
		}
		respondValidationError(w, err)
		return
	}

	history, err := h.snapshotService.GetHistory(r.Context(), chi.URLParam(r, "uuid"), startDate, endDate)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioHistory.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}
