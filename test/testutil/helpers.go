// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// OffersFixture is the recorded flight-offers payload shared by adapter and integration tests.
// It holds five offers: three valid ones priced 120, 340 and 999 with 0, 1 and 2 stops,
// one without itineraries, and one priced only by "total" with an unknown carrier.
const OffersFixture = "flight_offers.json"

// LoadTestJSON loads a JSON file from the test/testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	data, err := os.ReadFile(filepath.Join(projectRoot, "test", "testdata", filename))
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// NewFlight builds a normalized flight with the fields the filter, sort and
// histogram logic look at. The remaining fields get plausible values.
func NewFlight(id, airline string, price float64, stops, minutes int) domain.Flight {
	code := airline
	if len(code) > 2 {
		code = code[:2]
	}
	return domain.Flight{
		ID:              id,
		Airline:         airline,
		AirlineCode:     code,
		Origin:          "JFK",
		Destination:     "LHR",
		DepartureTime:   "08:00",
		ArrivalTime:     "20:00",
		Duration:        domain.FormatMinutes(minutes),
		DurationMinutes: minutes,
		Stops:           stops,
		Price:           price,
	}
}

// IDs returns the flight IDs in order.
func IDs(flights []domain.Flight) []string {
	ids := make([]string, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}
	return ids
}

// Prices returns the flight prices in order.
func Prices(flights []domain.Flight) []float64 {
	prices := make([]float64, len(flights))
	for i, f := range flights {
		prices[i] = f.Price
	}
	return prices
}

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}

// StringSlice returns its arguments as a slice.
func StringSlice(s ...string) []string {
	return s
}
