package market

import (
	"sort"
	"strings"
)

// DefaultSymbols is the ticker list offered when no configuration overrides it.
var DefaultSymbols = []string{"EBAY", "ECL", "EIX", "EW", "EA"}

// Universe is the set of tickers a user may analyze.
type Universe struct {
	symbols []string
	index   map[string]struct{}
}

// NewUniverse normalises symbols to upper case and drops blanks and duplicates,
// keeping the original order.
func NewUniverse(symbols []string) Universe {
	u := Universe{index: make(map[string]struct{}, len(symbols))}
	for _, s := range symbols {
		s = NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, ok := u.index[s]; ok {
			continue
		}
		u.index[s] = struct{}{}
		u.symbols = append(u.symbols, s)
	}
	return u
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Contains reports whether symbol is in the universe, ignoring case.
func (u Universe) Contains(symbol string) bool {
	_, ok := u.index[NormalizeSymbol(symbol)]
	return ok
}

// Symbols returns the tickers in configured order.
func (u Universe) Symbols() []string {
	out := make([]string, len(u.symbols))
	copy(out, u.symbols)
	return out
}

// Sorted returns the tickers alphabetically.
func (u Universe) Sorted() []string {
	out := u.Symbols()
	sort.Strings(out)
	return out
}

// Len returns the number of tickers.
func (u Universe) Len() int { return len(u.symbols) }
