package testutil

import (
	"context"
	"sync"
)

// FakeResolver returns fixed prices and records the symbols it was asked for.
type FakeResolver struct {
	mu     sync.Mutex
	Prices map[string]float64
	Calls  [][]string
}

// NewFakeResolver creates a FakeResolver that knows the given prices.
func NewFakeResolver(prices map[string]float64) *FakeResolver {
	if prices == nil {
		prices = map[string]float64{}
	}
	return &FakeResolver{Prices: prices}
}

// Resolve returns the known prices of the requested symbols.
func (f *FakeResolver) Resolve(_ context.Context, symbols []string) map[string]float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, append([]string(nil), symbols...))

	out := make(map[string]float64)
	for _, s := range symbols {
		if p, ok := f.Prices[s]; ok {
			out[s] = p
		}
	}
	return out
}
