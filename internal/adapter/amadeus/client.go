// Package amadeus implements the flight-offers upstream: the client-credentials
// token cache, the offer search client and the offer normalizer.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/retry"
)

// ProviderName is the identifier of the upstream in logs.
const ProviderName = "amadeus"

// Fixed query parameters.
const (
	CurrencyCode = "USD"
	MaxResults   = 50
)

// DefaultSearchTimeout bounds a single offers query attempt.
const DefaultSearchTimeout = 10 * time.Second

// maxResponseBody caps the decoded offers payload.
const maxResponseBody = 16 << 20

// Client queries the flight-offers endpoint and normalizes the result.
type Client struct {
	httpClient *http.Client
	searchURL  string
	tokens     TokenSource
	location   *time.Location
	timeout    time.Duration
	retry      retry.Config
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for queries.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLocation sets the display location for clock times and offset-less instants.
func WithLocation(loc *time.Location) ClientOption {
	return func(cl *Client) {
		if loc != nil {
			cl.location = loc
		}
	}
}

// WithSearchTimeout sets the per-attempt timeout of the offers query.
func WithSearchTimeout(d time.Duration) ClientOption {
	return func(cl *Client) { cl.timeout = d }
}

// WithRetry sets the retry policy for transient query failures.
func WithRetry(cfg retry.Config) ClientOption {
	return func(cl *Client) { cl.retry = cfg }
}

// NewClient creates a search client for searchURL (e.g., "https://test.api.amadeus.com/v2/shopping/flight-offers").
func NewClient(searchURL string, tokens TokenSource, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		searchURL:  searchURL,
		tokens:     tokens,
		location:   time.UTC,
		timeout:    DefaultSearchTimeout,
		retry:      retry.UpstreamConfig,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the upstream identifier.
func (c *Client) Name() string {
	return ProviderName
}

// Search acquires a token, queries the offers endpoint and returns the
// normalized flights in upstream order. Malformed offers are skipped.
// Once ctx is done the call fails with *domain.CancelledError and never
// returns flights.
func (c *Client) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	log := logger.FromContext(ctx).WithUpstream(ProviderName)
	start := time.Now()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, c.cancelledOr(ctx, err)
	}

	cfg := c.retry.WithOnRetry(func(attempt int, err error) {
		log.Warn().Int("attempt", attempt).Err(err).Msg("Offers query failed, retrying")
	})

	envelope, err := retry.DoWithResult(ctx, cfg, func(ctx context.Context, _ int) (*searchEnvelope, error) {
		return c.query(ctx, token, criteria)
	})
	if err != nil {
		return nil, c.cancelledOr(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewCancelledError(err)
	}

	flights, skipped := normalizeAll(envelope.Data, envelope.Dictionaries.Carriers, c.location, log)

	log.Info().
		Str("origin", criteria.Origin).
		Str("destination", criteria.Destination).
		Int("offers", len(envelope.Data)).
		Int("flights", len(flights)).
		Int("skipped", skipped).
		Dur("elapsed", time.Since(start)).
		Msg("Flight offers fetched")

	return flights, nil
}

// query performs one offers request. Failures that must not be retried are
// wrapped in retry.Permanent.
func (c *Client) query(ctx context.Context, token string, criteria domain.SearchCriteria) (*searchEnvelope, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint, err := c.buildURL(criteria)
	if err != nil {
		return nil, retry.NewPermanent(domain.NewQueryError(0, err))
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.NewPermanent(domain.NewQueryError(0, fmt.Errorf("build request: %w", err)))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.NewPermanent(domain.NewCancelledError(ctx.Err()))
		}
		return nil, domain.NewQueryError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		queryErr := domain.NewQueryError(resp.StatusCode, errorBody(resp.Body))
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		if isTransientStatus(resp.StatusCode) {
			return nil, queryErr
		}
		return nil, retry.NewPermanent(queryErr)
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&envelope); err != nil {
		if ctx.Err() != nil {
			return nil, retry.NewPermanent(domain.NewCancelledError(ctx.Err()))
		}
		return nil, retry.NewPermanent(domain.NewQueryError(resp.StatusCode, fmt.Errorf("decode offers response: %w", err)))
	}

	return &envelope, nil
}

func (c *Client) buildURL(criteria domain.SearchCriteria) (string, error) {
	u, err := url.Parse(c.searchURL)
	if err != nil {
		return "", fmt.Errorf("parse search url: %w", err)
	}

	adults := criteria.Passengers
	if adults <= 0 {
		adults = domain.MinPassengers
	}

	q := u.Query()
	q.Set("originLocationCode", criteria.Origin)
	q.Set("destinationLocationCode", criteria.Destination)
	q.Set("departureDate", criteria.DepartureDate)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("currencyCode", CurrencyCode)
	q.Set("max", strconv.Itoa(MaxResults))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// cancelledOr reports a cancellation when the caller's context has ended,
// otherwise err unchanged.
func (c *Client) cancelledOr(ctx context.Context, err error) error {
	if domain.IsCancelled(err) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.NewCancelledError(ctxErr)
	}
	return err
}

// Ensure Client implements domain.FlightProvider at compile time.
var _ domain.FlightProvider = (*Client)(nil)
