package handlers

import (
	"net/http"
	"strings"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
)

// PriceHandler exposes live price lookups.
type PriceHandler struct {
	priceService *service.PriceService
}

func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// Prices resolves a comma separated list of symbols. Symbols no provider could
// price are listed under unresolved; that is not an error.
//
// Endpoint: GET /api/price?symbols=AAPL,005930.KS
// Response: 200 OK with model.PriceLookup
// Error: 400 Bad Request if no symbol is given
func (h *PriceHandler) Prices(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	for _, s := range strings.Split(r.URL.Query().Get("symbols"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidSymbols.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, h.priceService.GetPrices(r.Context(), symbols))
}
