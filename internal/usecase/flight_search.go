package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
)

// DefaultGlobalTimeout bounds one search including token acquisition and retries.
const DefaultGlobalTimeout = 15 * time.Second

// FlightSearchUseCase defines the interface for one-shot flight search operations.
type FlightSearchUseCase interface {
	// Search queries the upstream and returns the filtered, sorted and aggregated view.
	Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error)
}

// flightSearchUseCase runs a search against a single provider under a global timeout.
type flightSearchUseCase struct {
	provider      domain.FlightProvider
	globalTimeout time.Duration
}

// Config contains configuration options for the use case.
type Config struct {
	GlobalTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{GlobalTimeout: DefaultGlobalTimeout}
}

// NewFlightSearchUseCase creates a FlightSearchUseCase for provider.
// If config is nil, default timeout values are used.
func NewFlightSearchUseCase(provider domain.FlightProvider, config *Config) FlightSearchUseCase {
	cfg := DefaultConfig()
	if config != nil && config.GlobalTimeout > 0 {
		cfg.GlobalTimeout = config.GlobalTimeout
	}

	return &flightSearchUseCase{
		provider:      provider,
		globalTimeout: cfg.GlobalTimeout,
	}
}

// Search implements FlightSearchUseCase.Search.
func (uc *flightSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error) {
	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, uc.globalTimeout)
	defer cancel()

	flights, err := queryProvider(ctx, uc.provider, criteria)
	if err != nil {
		return nil, err
	}

	response := BuildResponse(criteria, flights, opts, time.Since(startTime))
	return &response, nil
}

// BuildResponse derives the filtered, sorted view, its histogram and the facets
// of the full result set.
func BuildResponse(criteria domain.SearchCriteria, flights []domain.Flight, opts SearchOptions, elapsed time.Duration) domain.SearchResponse {
	view := Apply(flights, opts.Filters, opts.SortBy)

	return domain.NewSearchResponse(criteria, view, Histogram(view), domain.SearchMetadata{
		TotalResults:      len(flights),
		SearchTimeMs:      elapsed.Milliseconds(),
		AvailableAirlines: AvailableAirlines(flights),
		PriceBounds:       PriceBounds(flights),
	})
}

// queryProvider calls the provider with panic recovery. A context that ends
// while the provider is running always yields a *domain.CancelledError.
func queryProvider(ctx context.Context, provider domain.FlightProvider, criteria domain.SearchCriteria) (flights []domain.Flight, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error().
				Str("provider", provider.Name()).
				Interface("panic", r).
				Msg("Provider panicked")
			flights, err = nil, domain.NewQueryError(0, fmt.Errorf("provider panic: %v", r))
		}
	}()

	flights, err = provider.Search(ctx, criteria)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if err == nil || !domain.IsCancelled(err) {
			return nil, domain.NewCancelledError(ctxErr)
		}
	}
	if err != nil {
		return nil, err
	}
	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}

// Ensure flightSearchUseCase implements FlightSearchUseCase at compile time.
var _ FlightSearchUseCase = (*flightSearchUseCase)(nil)
