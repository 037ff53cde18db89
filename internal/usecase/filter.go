package usecase

import (
	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// Apply filters flights by filters and sorts the survivors by sortBy.
// It always returns a new slice and never mutates flights.
//
// Behavior:
//   - Filters are applied in sequence (price -> stops -> airlines)
//   - The price range is inclusive at both ends
//   - Empty stop and airline sets place no restriction
//   - Stops value 2 matches any flight with two or more stops
//   - Sorting is stable, ascending by price or by durationMinutes
//
// Example usage:
//
//	filters := domain.DefaultFilterState()
//	filters.Stops = []int{0}
//	view := Apply(flights, filters, domain.SortByPrice)
func Apply(flights []domain.Flight, filters domain.FilterState, sortBy domain.SortOption) []domain.Flight {
	result := FilterByPriceRange(flights, filters.PriceRange)
	result = FilterByStops(result, filters.Stops)
	result = FilterByAirlines(result, filters.Airlines)

	sortInPlace(result, sortBy)
	return result
}

// buildAirlineSet creates a lookup set of airline display names.
// It returns nil for an empty list, meaning no restriction.
func buildAirlineSet(airlines []string) map[string]struct{} {
	if len(airlines) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(airlines))
	for _, name := range airlines {
		set[name] = struct{}{}
	}
	return set
}

// isAirlineInSet checks if an airline display name is in the allowed set.
func isAirlineInSet(name string, set map[string]struct{}) bool {
	_, exists := set[name]
	return exists
}

// FilterByPriceRange keeps flights priced within r, inclusive.
func FilterByPriceRange(flights []domain.Flight, r domain.PriceRange) []domain.Flight {
	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if r.Contains(f.Price) {
			result = append(result, f)
		}
	}
	return result
}

// FilterByStops keeps flights whose stop count is selected.
// An empty selection keeps every flight; 2 matches two or more stops.
func FilterByStops(flights []domain.Flight, stops []int) []domain.Flight {
	selection := domain.FilterState{Stops: stops}

	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if selection.MatchesStops(f.Stops) {
			result = append(result, f)
		}
	}
	return result
}

// FilterByAirlines keeps flights whose airline display name is listed.
// An empty list keeps every flight.
func FilterByAirlines(flights []domain.Flight, airlines []string) []domain.Flight {
	airlineSet := buildAirlineSet(airlines)

	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if airlineSet == nil || isAirlineInSet(f.Airline, airlineSet) {
			result = append(result, f)
		}
	}
	return result
}
