package domain

import (
	"fmt"
	"math"
)

// SortOption defines the available sorting options for flight results.
type SortOption string

// Available sort options.
const (
	// SortByPrice sorts by price ascending (cheapest first, default)
	SortByPrice SortOption = "price"

	// SortByDuration sorts by elapsed minutes ascending (shortest first)
	SortByDuration SortOption = "duration"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByPrice, SortByDuration:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByPrice if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(s)
	if option.IsValid() {
		return option
	}
	return SortByPrice
}

// StopsTwoOrMore is the stops-filter sentinel meaning "2 or more stops".
const StopsTwoOrMore = 2

// Default filter-panel bounds used before any results are known.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 5000
)

// PriceRange is an inclusive price interval. Max may be +Inf for an unbounded range.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within [Min, Max].
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// IsUnbounded reports whether the range places no upper limit on price.
func (r PriceRange) IsUnbounded() bool {
	return math.IsInf(r.Max, 1)
}

// FilterState is the transient filter selection of one result view.
type FilterState struct {
	// PriceRange keeps flights priced within the inclusive range
	PriceRange PriceRange

	// Stops keeps flights whose stop count is listed; StopsTwoOrMore matches 2 or more.
	// Empty means no stops restriction.
	Stops []int

	// Airlines keeps flights whose airline display name is listed.
	// Empty means no airline restriction.
	Airlines []string
}

// DefaultFilterState returns the filter selection a new view starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		PriceRange: PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		Stops:      []int{0, 1, StopsTwoOrMore},
		Airlines:   []string{},
	}
}

// UnrestrictedFilterState returns a filter selection that keeps every flight.
func UnrestrictedFilterState() FilterState {
	return FilterState{
		PriceRange: PriceRange{Min: 0, Max: math.Inf(1)},
	}
}

// Validate checks the filter selection for internally inconsistent values.
func (f FilterState) Validate() error {
	if math.IsNaN(f.PriceRange.Min) || math.IsNaN(f.PriceRange.Max) {
		return fmt.Errorf("%w: price range must be numeric", ErrInvalidRequest)
	}
	if f.PriceRange.Min < 0 {
		return fmt.Errorf("%w: minimum price must not be negative", ErrInvalidRequest)
	}
	if f.PriceRange.Min > f.PriceRange.Max {
		return fmt.Errorf("%w: minimum price %.2f exceeds maximum price %.2f",
			ErrInvalidRequest, f.PriceRange.Min, f.PriceRange.Max)
	}
	for _, s := range f.Stops {
		if s < 0 || s > StopsTwoOrMore {
			return fmt.Errorf("%w: stops values must be 0, 1 or 2, got %d", ErrInvalidRequest, s)
		}
	}
	return nil
}

// MatchesStops reports whether a stop count passes the stops selection.
func (f FilterState) MatchesStops(stops int) bool {
	if len(f.Stops) == 0 {
		return true
	}
	for _, s := range f.Stops {
		if s == stops || (s == StopsTwoOrMore && stops >= StopsTwoOrMore) {
			return true
		}
	}
	return false
}

// MatchesFlight checks if a flight passes all filter criteria.
func (f FilterState) MatchesFlight(flight Flight) bool {
	if !f.PriceRange.Contains(flight.Price) {
		return false
	}
	if !f.MatchesStops(flight.Stops) {
		return false
	}
	if len(f.Airlines) > 0 {
		found := false
		for _, name := range f.Airlines {
			if name == flight.Airline {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
