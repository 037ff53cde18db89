package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// FlightProvider searches an upstream flight-offers source and returns normalized flights.
type FlightProvider interface {
	// Name returns the provider's identifier, used in logs.
	Name() string

	// Search performs one upstream search. Implementations must return a
	// *CancelledError once ctx is done and must not deliver results after that.
	Search(ctx context.Context, criteria SearchCriteria) ([]Flight, error)
}
