package http

import (
	"strings"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// ToDomainCriteria converts a SearchFlightsRequest to domain.SearchCriteria.
func ToDomainCriteria(req *SearchFlightsRequest) domain.SearchCriteria {
	passengers := req.Passengers
	if passengers < domain.MinPassengers {
		passengers = domain.MinPassengers
	}

	return domain.SearchCriteria{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    passengers,
	}
}

// ToFilterState converts a FilterDTO to domain.FilterState.
// Missing bounds leave the price range open; nil keeps every flight.
func ToFilterState(dto *FilterDTO) domain.FilterState {
	state := domain.UnrestrictedFilterState()
	if dto == nil {
		return state
	}

	if dto.MinPrice != nil {
		state.PriceRange.Min = *dto.MinPrice
	}
	if dto.MaxPrice != nil {
		state.PriceRange.Max = *dto.MaxPrice
	}
	if len(dto.Stops) > 0 {
		state.Stops = append([]int(nil), dto.Stops...)
	}
	if len(dto.Airlines) > 0 {
		state.Airlines = append([]string(nil), dto.Airlines...)
	}
	return state
}

// ToDomainSortOption converts a sort string to domain.SortOption.
func ToDomainSortOption(sortBy string) domain.SortOption {
	return domain.ParseSortOption(strings.ToLower(sortBy))
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchFlightsRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToFilterState(req.Filters),
		SortBy:  ToDomainSortOption(req.SortBy),
	}
}

// ToSearchOptions converts the view query to usecase.SearchOptions.
func (q *ViewQuery) ToSearchOptions() usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToFilterState(&q.Filters),
		SortBy:  ToDomainSortOption(q.SortBy),
	}
}
