package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/test/testutil"
)

func filterTestFlights() []domain.Flight {
	return []domain.Flight{
		testutil.NewFlight("1", "BRITISH AIRWAYS", 120, 0, 425),
		testutil.NewFlight("2", "AMERICAN AIRLINES", 340, 1, 540),
		testutil.NewFlight("3", "DELTA AIR LINES", 999, 2, 720),
	}
}

func unrestricted() domain.FilterState {
	return domain.UnrestrictedFilterState()
}

// TestApply_Unrestricted tests that an unrestricted filter keeps every flight.
func TestApply_Unrestricted(t *testing.T) {
	flights := filterTestFlights()

	result := Apply(flights, unrestricted(), domain.SortByPrice)

	assert.Equal(t, []string{"1", "2", "3"}, testutil.IDs(result))
}

// TestApply_EmptyFlightList tests filtering an empty list.
func TestApply_EmptyFlightList(t *testing.T) {
	result := Apply([]domain.Flight{}, domain.DefaultFilterState(), domain.SortByPrice)

	assert.Empty(t, result)
	assert.NotNil(t, result)
}

// TestApply_NilFlightList tests that nil input yields an empty, non-nil slice.
func TestApply_NilFlightList(t *testing.T) {
	result := Apply(nil, unrestricted(), domain.SortByDuration)

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

// TestApply_DoesNotMutateOriginal tests that the original slice is not modified.
func TestApply_DoesNotMutateOriginal(t *testing.T) {
	flights := []domain.Flight{
		testutil.NewFlight("expensive", "BRITISH AIRWAYS", 900, 0, 400),
		testutil.NewFlight("cheap", "BRITISH AIRWAYS", 100, 0, 500),
	}
	original := append([]domain.Flight(nil), flights...)

	result := Apply(flights, unrestricted(), domain.SortByPrice)

	assert.Equal(t, original, flights)
	assert.Equal(t, []string{"cheap", "expensive"}, testutil.IDs(result))
}

// TestApply_PriceRange tests the inclusive price range.
func TestApply_PriceRange(t *testing.T) {
	flights := filterTestFlights()

	tests := []struct {
		name     string
		min, max float64
		expected []string
	}{
		{"full range", 0, 5000, []string{"1", "2", "3"}},
		{"cap at 500", 0, 500, []string{"1", "2"}},
		{"exact lower bound", 340, 5000, []string{"2", "3"}},
		{"exact upper bound", 0, 340, []string{"1", "2"}},
		{"single point", 340, 340, []string{"2"}},
		{"nothing in range", 400, 900, []string{}},
		{"unbounded", 500, math.Inf(1), []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := unrestricted()
			filters.PriceRange = domain.PriceRange{Min: tt.min, Max: tt.max}

			result := Apply(flights, filters, domain.SortByPrice)

			assert.Equal(t, tt.expected, testutil.IDs(result))
		})
	}
}

// TestApply_Stops tests the stops selection, including the two-or-more sentinel.
func TestApply_Stops(t *testing.T) {
	flights := []domain.Flight{
		testutil.NewFlight("direct", "BRITISH AIRWAYS", 100, 0, 400),
		testutil.NewFlight("one", "BRITISH AIRWAYS", 200, 1, 500),
		testutil.NewFlight("two", "BRITISH AIRWAYS", 300, 2, 600),
		testutil.NewFlight("three", "BRITISH AIRWAYS", 400, 3, 700),
	}

	tests := []struct {
		name     string
		stops    []int
		expected []string
	}{
		{"empty selection keeps all", nil, []string{"direct", "one", "two", "three"}},
		{"non-stop only", []int{0}, []string{"direct"}},
		{"one stop only", []int{1}, []string{"one"}},
		{"two or more", []int{2}, []string{"two", "three"}},
		{"non-stop and two or more", []int{0, 2}, []string{"direct", "two", "three"}},
		{"all values", []int{0, 1, 2}, []string{"direct", "one", "two", "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := unrestricted()
			filters.Stops = tt.stops

			result := Apply(flights, filters, domain.SortByPrice)

			assert.Equal(t, tt.expected, testutil.IDs(result))
		})
	}
}

// TestApply_Airlines tests airline display name matching.
func TestApply_Airlines(t *testing.T) {
	flights := filterTestFlights()

	tests := []struct {
		name     string
		airlines []string
		expected []string
	}{
		{"empty list keeps all", []string{}, []string{"1", "2", "3"}},
		{"single airline", []string{"DELTA AIR LINES"}, []string{"3"}},
		{"multiple airlines", []string{"BRITISH AIRWAYS", "DELTA AIR LINES"}, []string{"1", "3"}},
		{"unknown airline", []string{"AIR FRANCE"}, []string{}},
		{"match is exact", []string{"british airways"}, []string{}},
		{"code does not match", []string{"BA"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := unrestricted()
			filters.Airlines = tt.airlines

			result := Apply(flights, filters, domain.SortByPrice)

			assert.Equal(t, tt.expected, testutil.IDs(result))
		})
	}
}

// TestApply_CombinedFilters tests multiple filters applied together.
func TestApply_CombinedFilters(t *testing.T) {
	flights := []domain.Flight{
		testutil.NewFlight("1", "BRITISH AIRWAYS", 300, 0, 420), // passes all
		testutil.NewFlight("2", "BRITISH AIRWAYS", 800, 0, 420), // fails price
		testutil.NewFlight("3", "BRITISH AIRWAYS", 250, 2, 600), // fails stops
		testutil.NewFlight("4", "DELTA AIR LINES", 200, 0, 430), // fails airline
		testutil.NewFlight("5", "BRITISH AIRWAYS", 150, 1, 500), // passes all
	}

	filters := domain.FilterState{
		PriceRange: domain.PriceRange{Min: 0, Max: 500},
		Stops:      []int{0, 1},
		Airlines:   []string{"BRITISH AIRWAYS"},
	}

	result := Apply(flights, filters, domain.SortByPrice)

	require.Len(t, result, 2)
	assert.Equal(t, []string{"5", "1"}, testutil.IDs(result))
}

// TestApply_DefaultFilterState tests the initial filter panel selection.
func TestApply_DefaultFilterState(t *testing.T) {
	flights := append(filterTestFlights(), testutil.NewFlight("4", "KLM", 6000, 0, 400))

	result := Apply(flights, domain.DefaultFilterState(), domain.SortByPrice)

	assert.Equal(t, []string{"1", "2", "3"}, testutil.IDs(result))
}

// TestApply_SortsResult tests that the filtered view is sorted.
func TestApply_SortsResult(t *testing.T) {
	flights := []domain.Flight{
		testutil.NewFlight("a", "BRITISH AIRWAYS", 500, 0, 300),
		testutil.NewFlight("b", "BRITISH AIRWAYS", 100, 1, 900),
		testutil.NewFlight("c", "BRITISH AIRWAYS", 300, 0, 600),
	}

	assert.Equal(t, []string{"b", "c", "a"}, testutil.IDs(Apply(flights, unrestricted(), domain.SortByPrice)))
	assert.Equal(t, []string{"a", "c", "b"}, testutil.IDs(Apply(flights, unrestricted(), domain.SortByDuration)))
}

// TestApply_Idempotent tests that applying the same state twice is a no-op.
func TestApply_Idempotent(t *testing.T) {
	flights := filterTestFlights()
	filters := domain.FilterState{
		PriceRange: domain.PriceRange{Min: 100, Max: 1000},
		Stops:      []int{0, 2},
	}

	once := Apply(flights, filters, domain.SortByDuration)
	twice := Apply(once, filters, domain.SortByDuration)

	assert.Equal(t, once, twice)
}

// TestApply_ResultIsSubset tests that every kept flight passes every predicate.
func TestApply_ResultIsSubset(t *testing.T) {
	flights := []domain.Flight{
		testutil.NewFlight("1", "BRITISH AIRWAYS", 50, 0, 400),
		testutil.NewFlight("2", "DELTA AIR LINES", 450, 1, 500),
		testutil.NewFlight("3", "BRITISH AIRWAYS", 700, 2, 600),
		testutil.NewFlight("4", "KLM", 260, 4, 900),
		testutil.NewFlight("5", "DELTA AIR LINES", 1200, 0, 380),
	}
	filters := domain.FilterState{
		PriceRange: domain.PriceRange{Min: 100, Max: 800},
		Stops:      []int{2},
		Airlines:   []string{"BRITISH AIRWAYS", "KLM"},
	}

	result := Apply(flights, filters, domain.SortByPrice)

	require.Len(t, result, 2)
	for _, f := range result {
		assert.True(t, filters.MatchesFlight(f), "flight %s should match", f.ID)
	}
	assert.Equal(t, []string{"4", "3"}, testutil.IDs(result))
}

// TestApply_EndToEndScenario tests the 120/340/999 scenario from price cap to sort.
func TestApply_EndToEndScenario(t *testing.T) {
	flights := filterTestFlights()

	capped := domain.FilterState{PriceRange: domain.PriceRange{Min: 0, Max: 500}}
	result := Apply(flights, capped, domain.SortByPrice)
	assert.Equal(t, []float64{120, 340}, testutil.Prices(result))

	nonStop := domain.FilterState{PriceRange: domain.PriceRange{Min: 0, Max: 5000}, Stops: []int{0}}
	result = Apply(flights, nonStop, domain.SortByPrice)
	assert.Equal(t, []string{"1"}, testutil.IDs(result))

	multiStop := domain.FilterState{PriceRange: domain.PriceRange{Min: 0, Max: 5000}, Stops: []int{2}}
	result = Apply(flights, multiStop, domain.SortByPrice)
	assert.Equal(t, []string{"3"}, testutil.IDs(result))
}

// TestFilterByPriceRange tests the standalone price filter.
func TestFilterByPriceRange(t *testing.T) {
	result := FilterByPriceRange(filterTestFlights(), domain.PriceRange{Min: 120, Max: 340})

	assert.Equal(t, []string{"1", "2"}, testutil.IDs(result))
}

// TestFilterByStops tests the standalone stops filter.
func TestFilterByStops(t *testing.T) {
	flights := filterTestFlights()

	assert.Len(t, FilterByStops(flights, nil), 3)
	assert.Equal(t, []string{"2", "3"}, testutil.IDs(FilterByStops(flights, []int{1, 2})))
}

// TestFilterByAirlines tests the standalone airline filter.
func TestFilterByAirlines(t *testing.T) {
	flights := filterTestFlights()

	assert.Len(t, FilterByAirlines(flights, nil), 3)
	assert.Equal(t, []string{"2"}, testutil.IDs(FilterByAirlines(flights, []string{"AMERICAN AIRLINES"})))
}
