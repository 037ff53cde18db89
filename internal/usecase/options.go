// Package usecase contains the business logic for flight search operations:
// running an upstream search, deriving filtered and sorted views, and
// aggregating prices into a histogram.
package usecase

import "github.com/flight-search/flight-offer-explorer/internal/domain"

// SearchOptions contains the view parameters applied to a result set.
type SearchOptions struct {
	// Filters is the filter selection applied to the result set
	Filters domain.FilterState

	// SortBy specifies how to sort the results (default: price)
	SortBy domain.SortOption
}

// DefaultSearchOptions returns options that keep every flight, cheapest first.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Filters: domain.UnrestrictedFilterState(),
		SortBy:  domain.SortByPrice,
	}
}
