package usecase

import (
	"sort"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// sortInPlace orders flights ascending by sortBy. An empty or unknown
// option sorts by price. Ties keep their input order.
func sortInPlace(flights []domain.Flight, sortBy domain.SortOption) {
	if len(flights) < 2 {
		return
	}

	switch domain.ParseSortOption(string(sortBy)) {
	case domain.SortByDuration:
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].DurationMinutes < flights[j].DurationMinutes
		})
	default:
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].Price < flights[j].Price
		})
	}
}
