// Package quote resolves current market prices for a set of symbols across providers.
package quote

import (
	"context"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/yahoo"
)

// DefaultConcurrency is the number of per-symbol fallback lookups run at once.
const DefaultConcurrency = 4

var domesticCode = regexp.MustCompile(`^\d{6}$`)

// PrimaryProvider answers bulk and single-symbol quote requests.
type PrimaryProvider interface {
	QueryQuotes(ctx context.Context, symbols []string) ([]yahoo.Quote, error)
	QueryQuote(ctx context.Context, symbol string) (yahoo.Quote, error)
}

// SecondaryProvider answers single-symbol requests for domestic codes.
type SecondaryProvider interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

// Resolver looks up prices in one bulk primary request and falls back per symbol.
type Resolver struct {
	primary     PrimaryProvider
	secondary   SecondaryProvider
	log         zerolog.Logger
	concurrency int
}

// NewResolver creates a Resolver. A concurrency below 1 uses DefaultConcurrency.
func NewResolver(primary PrimaryProvider, secondary SecondaryProvider, log zerolog.Logger, concurrency int) *Resolver {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Resolver{
		primary:     primary,
		secondary:   secondary,
		log:         log.With().Str("component", "quote_resolver").Logger(),
		concurrency: concurrency,
	}
}

// IsDomesticCandidate reports whether symbol is a bare 6-digit code or carries a .KS/.KQ suffix.
func IsDomesticCandidate(symbol string) bool {
	return domesticCode.MatchString(symbol) ||
		strings.HasSuffix(symbol, ".KS") ||
		strings.HasSuffix(symbol, ".KQ")
}

// Resolve returns a positive price for every symbol it could resolve.
// Unresolved symbols are absent from the result. Provider failures are logged and never returned.
func (r *Resolver) Resolve(ctx context.Context, symbols []string) map[string]float64 {
	requested := uniqueSymbols(symbols)
	prices := make(map[string]float64, len(requested))
	if len(requested) == 0 {
		return prices
	}

	wanted := make(map[string]struct{}, len(requested))
	for _, s := range requested {
		wanted[s] = struct{}{}
	}

	quotes, err := r.primary.QueryQuotes(ctx, requested)
	if err != nil {
		r.log.Warn().Err(err).Int("symbols", len(requested)).Msg("Bulk quote request failed")
	}
	for _, q := range quotes {
		if _, ok := wanted[q.Symbol]; ok && q.Valid() {
			prices[q.Symbol] = q.Price
		}
	}

	var missing []string
	for _, s := range requested {
		if _, ok := prices[s]; !ok {
			missing = append(missing, s)
		}
	}
	if len(missing) == 0 {
		return prices
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, symbol := range missing {
		g.Go(func() error {
			price, ok := r.resolveOne(gctx, symbol)
			if ok {
				mu.Lock()
				prices[symbol] = price
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	r.log.Debug().
		Int("requested", len(requested)).
		Int("resolved", len(prices)).
		Msg("Resolved prices")

	return prices
}

func (r *Resolver) resolveOne(ctx context.Context, symbol string) (float64, bool) {
	if IsDomesticCandidate(symbol) {
		if r.secondary == nil {
			return 0, false
		}
		price, err := r.secondary.Price(ctx, symbol)
		if err != nil {
			r.log.Debug().Err(err).Str("symbol", symbol).Msg("Secondary provider could not resolve symbol")
			return 0, false
		}
		return price, validPrice(price)
	}

	q, err := r.primary.QueryQuote(ctx, symbol)
	if err != nil {
		r.log.Debug().Err(err).Str("symbol", symbol).Msg("Primary provider could not resolve symbol")
		return 0, false
	}
	return q.Price, validPrice(q.Price)
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

// uniqueSymbols trims, drops blanks and collapses duplicates while keeping first-seen order.
func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
