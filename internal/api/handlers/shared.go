package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var notFoundErrors = []error{
	apperrors.ErrPortfolioNotFound,
	apperrors.ErrGroupNotFound,
	apperrors.ErrStockNotFound,
	apperrors.ErrTransactionNotFound,
}

// parseJSON decodes the request body into a T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// respondValidationError answers 400 with the offending fields as details.
func respondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

// respondServiceError maps a service error to 404 for missing entities, 400 for
// rule violations and 500 with message for everything else.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			response.RespondError(w, http.StatusNotFound, target.Error(), err.Error())
			return
		}
	}
	if errors.Is(err, apperrors.ErrGroupPortfolioMismatch) {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrGroupPortfolioMismatch.Error(), err.Error())
		return
	}
	response.RespondError(w, http.StatusInternalServerError, message, err.Error())
}
