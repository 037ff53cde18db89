package usecase

import (
	"sort"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// AvailableAirlines returns the distinct airline display names, sorted ascending.
func AvailableAirlines(flights []domain.Flight) []string {
	seen := make(map[string]struct{}, len(flights))
	names := make([]string, 0)
	for _, f := range flights {
		if _, ok := seen[f.Airline]; ok {
			continue
		}
		seen[f.Airline] = struct{}{}
		names = append(names, f.Airline)
	}
	sort.Strings(names)
	return names
}

// PriceBounds returns the lowest and highest price. An empty set yields the
// default filter-panel bounds.
func PriceBounds(flights []domain.Flight) domain.PriceBounds {
	if len(flights) == 0 {
		return domain.PriceBounds{Min: domain.DefaultMinPrice, Max: domain.DefaultMaxPrice}
	}
	lo, hi := priceSpan(flights)
	return domain.PriceBounds{Min: lo, Max: hi}
}

// priceSpan returns the min and max price of a non-empty slice.
func priceSpan(flights []domain.Flight) (lo, hi float64) {
	lo, hi = flights[0].Price, flights[0].Price
	for _, f := range flights[1:] {
		if f.Price < lo {
			lo = f.Price
		}
		if f.Price > hi {
			hi = f.Price
		}
	}
	return lo, hi
}
