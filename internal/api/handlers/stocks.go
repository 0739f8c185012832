package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/validation"
)

// StockHandler handles HTTP requests for stock endpoints.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// StocksPerPortfolio handles GET requests for the stocks of a portfolio, without metrics.
//
// Endpoint: GET /api/portfolio/{uuid}/stocks
// Response: 200 OK with array of model.Stock
// Error: 404 Not Found if the portfolio does not exist
func (h *StockHandler) StocksPerPortfolio(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.stockService.GetStocks(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveStocks.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// GetStock handles GET requests for a single stock.
//
// Endpoint: GET /api/stock/{uuid}
// Response: 200 OK with model.Stock
// Error: 404 Not Found if the stock does not exist
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.stockService.GetStock(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveStock.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// CreateStock handles POST requests adding a stock to a portfolio.
// The symbol is stored trimmed and upper-cased.
//
// Endpoint: POST /api/portfolio/{uuid}/stocks
// Request Body: StockRequest (name, symbol, manualPrice, groupId)
// Response: 201 Created with model.Stock
// Error: 400 Bad Request if validation fails or the group belongs to another portfolio
// Error: 404 Not Found if the portfolio or group does not exist
func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.StockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateStock(req); err != nil {
		respondValidationError(w, err)
		return
	}

	stock, err := h.stockService.CreateStock(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to create stock")
		return
	}

	response.RespondJSON(w, http.StatusCreated, stock)
}

// UpdateStock handles PUT requests replacing every editable field of a stock.
// Omitted optional fields are cleared.
//
// Endpoint: PUT /api/stock/{uuid}
// Request Body: StockRequest
// Response: 200 OK with the updated model.Stock
func (h *StockHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.StockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateStock(req); err != nil {
		respondValidationError(w, err)
		return
	}

	stock, err := h.stockService.UpdateStock(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update stock")
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// DeleteStock removes a stock and its transactions.
//
// Endpoint: DELETE /api/stock/{uuid}
// Response: 204 No Content
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	if err := h.stockService.DeleteStock(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete stock")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
