package quote

import (
	"time"
)

// Quote is a single price observation for one instrument at a point in time.
type Quote struct {
	Currency string    `json:"currency"`
	AsOf     time.Time `json:"date"`
	Price    float64   `json:"price"`
}

// Catalog maps an instrument symbol to its single freshest Quote.
// A Catalog is never mutated in place; it is rebuilt wholesale by Reduce
// on every fetch cycle.
type Catalog map[string]Quote

// Reduce folds a raw quote sequence into a Catalog, keeping per symbol the
// quote with the latest AsOf. Ties keep the first-seen entry. The raw slice
// may contain duplicates and stale entries; Reduce never modifies it.
func Reduce(raw []Quote) Catalog {
	catalog := make(Catalog, len(raw))
	for _, q := range raw {
		current, seen := catalog[q.Currency]
		if !seen || q.AsOf.After(current.AsOf) {
			catalog[q.Currency] = q
		}
	}
	return catalog
}

// Resolve returns the freshest quote for a symbol, if the catalog has one.
func (c Catalog) Resolve(symbol string) (Quote, bool) {
	q, ok := c[symbol]
	return q, ok
}

// Symbols returns the distinct instrument symbols in the catalog.
func (c Catalog) Symbols() []string {
	symbols := make([]string, 0, len(c))
	for s := range c {
		symbols = append(symbols, s)
	}
	return symbols
}
