package service

import (
	"context"
	"sort"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

// PriceService exposes the quote resolver to the API.
type PriceService struct {
	resolver PriceResolver
}

// NewPriceService creates a new PriceService with the given resolver.
func NewPriceService(resolver PriceResolver) *PriceService {
	return &PriceService{resolver: resolver}
}

// GetPrices resolves the given symbols (normalized like stored symbols) and lists the ones
// that could not be priced.
func (s *PriceService) GetPrices(ctx context.Context, symbols []string) model.PriceLookup {
	normalized := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		sym := NormalizeSymbol(&symbol)
		if sym == nil {
			continue
		}
		if _, ok := seen[*sym]; ok {
			continue
		}
		seen[*sym] = struct{}{}
		normalized = append(normalized, *sym)
	}

	prices := s.resolver.Resolve(ctx, normalized)

	unresolved := []string{}
	for _, symbol := range normalized {
		if _, ok := prices[symbol]; !ok {
			unresolved = append(unresolved, symbol)
		}
	}
	sort.Strings(unresolved)

	return model.PriceLookup{Prices: prices, Unresolved: unresolved}
}
