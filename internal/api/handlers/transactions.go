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

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionsPerStock handles GET requests for the transactions of a stock, oldest first.
//
// Endpoint: GET /api/stock/{uuid}/transactions
// Response: 200 OK with array of model.Transaction
// Error: 404 Not Found if the stock does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) TransactionsPerStock(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with model.Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactionService.GetTransaction(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransaction.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests recording a buy or sell of a stock.
//
// Endpoint: POST /api/stock/{uuid}/transactions
// Request Body: TransactionRequest (type, quantity, price, transactionDate)
// Response: 201 Created with model.Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the stock does not exist
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateTransaction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to create transaction")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests replacing type, quantity, price and date of a transaction.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: TransactionRequest
// Response: 200 OK with updated model.Transaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateTransaction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if transaction not found
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteTransaction(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete transaction")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
