package model

// PriceLookup is the result of resolving a set of symbols.
// Symbols that could not be priced are listed in Unresolved.
type PriceLookup struct {
	Prices     map[string]float64 `json:"prices"`
	Unresolved []string           `json:"unresolved"`
}
