// Package mock provides test doubles for the flight offer explorer.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, route-specific responses).
package mock

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// Provider is a configurable implementation of domain.FlightProvider.
// Responses can be set per route ("JFK-LHR") or as a default, and calls can be
// held open to exercise supersede and timeout behavior.
type Provider struct {
	name string

	mu           sync.Mutex
	flights      []domain.Flight
	routes       map[string][]domain.Flight
	err          error
	delay        time.Duration
	ignoreCancel bool
	callCount    int
	calls        []domain.SearchCriteria
	started      chan domain.SearchCriteria
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name:    name,
		routes:  make(map[string][]domain.Flight),
		started: make(chan domain.SearchCriteria, 64),
	}
}

// WithFlights configures the flights returned for any route without its own response.
func (p *Provider) WithFlights(flights []domain.Flight) *Provider {
	p.mu.Lock()
	p.flights = flights
	p.mu.Unlock()
	return p
}

// WithRoute configures the flights returned for origin-destination.
func (p *Provider) WithRoute(origin, destination string, flights []domain.Flight) *Provider {
	p.mu.Lock()
	p.routes[origin+"-"+destination] = flights
	p.mu.Unlock()
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.mu.Lock()
	p.delay = d
	p.mu.Unlock()
	return p
}

// IgnoringCancellation makes the provider finish its delay and return results
// even after its context is cancelled, simulating a late upstream response.
func (p *Provider) IgnoringCancellation() *Provider {
	p.mu.Lock()
	p.ignoreCancel = true
	p.mu.Unlock()
	return p
}

// Name returns the provider's identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.FlightProvider.Search.
func (p *Provider) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	p.mu.Lock()
	p.callCount++
	p.calls = append(p.calls, criteria)
	delay, ignoreCancel, err := p.delay, p.ignoreCancel, p.err
	flights, ok := p.routes[criteria.Origin+"-"+criteria.Destination]
	if !ok {
		flights = p.flights
	}
	p.mu.Unlock()

	select {
	case p.started <- criteria:
	default:
	}

	if delay > 0 {
		if ignoreCancel {
			time.Sleep(delay)
		} else {
			select {
			case <-ctx.Done():
				return nil, domain.NewCancelledError(ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	if !ignoreCancel && ctx.Err() != nil {
		return nil, domain.NewCancelledError(ctx.Err())
	}
	if err != nil {
		return nil, err
	}

	result := make([]domain.Flight, len(flights))
	copy(result, flights)
	return result, nil
}

// Started delivers the criteria of each call as it begins.
func (p *Provider) Started() <-chan domain.SearchCriteria {
	return p.started
}

// CallCount returns the number of times Search was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Calls returns the criteria of every call so far.
func (p *Provider) Calls() []domain.SearchCriteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.SearchCriteria, len(p.calls))
	copy(out, p.calls)
	return out
}

// Reset resets the call history.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
	p.calls = nil
}

// Ensure Provider implements domain.FlightProvider at compile time.
var _ domain.FlightProvider = (*Provider)(nil)

var sampleAirlines = []struct{ code, name string }{
	{"BA", "BRITISH AIRWAYS"},
	{"AA", "AMERICAN AIRLINES"},
	{"DL", "DELTA AIR LINES"},
	{"VS", "VIRGIN ATLANTIC"},
}

// SampleFlights returns count flights from origin to destination with
// rotating airlines, stops cycling 0..2 and prices rising from 150 in steps of 75.
func SampleFlights(origin, destination string, count int) []domain.Flight {
	flights := make([]domain.Flight, count)

	for i := 0; i < count; i++ {
		airline := sampleAirlines[i%len(sampleAirlines)]
		stops := i % 3
		minutes := 420 + stops*150 + (i%4)*10
		depart := time.Date(2025, 12, 15, 6, 0, 0, 0, time.UTC).Add(time.Duration(i) * 45 * time.Minute)
		arrive := depart.Add(time.Duration(minutes) * time.Minute)

		flights[i] = domain.Flight{
			ID:              strconv.Itoa(i + 1),
			Airline:         airline.name,
			AirlineCode:     airline.code,
			Origin:          origin,
			Destination:     destination,
			DepartureTime:   depart.Format("15:04"),
			ArrivalTime:     arrive.Format("15:04"),
			Duration:        domain.FormatMinutes(minutes),
			DurationMinutes: minutes,
			Stops:           stops,
			Price:           150 + float64(i*75),
		}
	}

	return flights
}
