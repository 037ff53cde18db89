package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/retry"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

// TokenSafetyMargin is subtracted from the upstream expires_in when caching a token.
const TokenSafetyMargin = 60 * time.Second

// DefaultAuthTimeout bounds a single token exchange attempt.
const DefaultAuthTimeout = 5 * time.Second

// tokenPath is appended to the auth base URL.
const tokenPath = "/security/oauth2/token"

// maxErrorBody limits how much of an error response is read into messages.
const maxErrorBody = 512

// Token is a bearer credential and the instant after which it must not be reused.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// ValidAt reports whether the token can be used at now.
func (t Token) ValidAt(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// TokenSource supplies bearer tokens to the search client.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// TokenCache exchanges client credentials for a bearer token and reuses it
// until it expires. Concurrent refreshes share one upstream exchange.
type TokenCache struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	clock        timeutil.Clock
	timeout      time.Duration
	retry        retry.Config

	mu    sync.RWMutex
	token Token

	group singleflight.Group
}

// TokenCacheOption configures a TokenCache.
type TokenCacheOption func(*TokenCache)

// WithTokenHTTPClient sets the HTTP client used for the exchange.
func WithTokenHTTPClient(c *http.Client) TokenCacheOption {
	return func(tc *TokenCache) { tc.httpClient = c }
}

// WithTokenClock sets the clock used for expiry decisions.
func WithTokenClock(c timeutil.Clock) TokenCacheOption {
	return func(tc *TokenCache) { tc.clock = c }
}

// WithAuthTimeout sets the per-attempt timeout of the exchange.
func WithAuthTimeout(d time.Duration) TokenCacheOption {
	return func(tc *TokenCache) { tc.timeout = d }
}

// WithTokenRetry sets the retry policy for transient exchange failures.
func WithTokenRetry(cfg retry.Config) TokenCacheOption {
	return func(tc *TokenCache) { tc.retry = cfg }
}

// NewTokenCache creates a TokenCache for the given auth base URL (e.g., "https://test.api.amadeus.com/v1").
func NewTokenCache(authBaseURL, clientID, clientSecret string, opts ...TokenCacheOption) *TokenCache {
	tc := &TokenCache{
		httpClient:   http.DefaultClient,
		tokenURL:     strings.TrimRight(authBaseURL, "/") + tokenPath,
		clientID:     clientID,
		clientSecret: clientSecret,
		clock:        timeutil.NewRealClock(),
		timeout:      DefaultAuthTimeout,
		retry:        retry.UpstreamConfig,
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// Token returns a valid bearer token, exchanging credentials when the cached
// one is missing or expired. If ctx ends first the caller gets a
// *domain.CancelledError; a shared exchange already under way still completes
// and fills the cache.
func (tc *TokenCache) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewCancelledError(err)
	}
	if tok, ok := tc.cached(); ok {
		return tok.Value, nil
	}

	ch := tc.group.DoChan("token", func() (interface{}, error) {
		if tok, ok := tc.cached(); ok {
			return tok, nil
		}
		tok, err := tc.refresh(context.WithoutCancel(ctx))
		if err != nil {
			return Token{}, err
		}
		tc.mu.Lock()
		tc.token = tok
		tc.mu.Unlock()
		return tok, nil
	})

	select {
	case <-ctx.Done():
		return "", domain.NewCancelledError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(Token).Value, nil
	}
}

// Invalidate drops the cached token so the next call re-authenticates.
func (tc *TokenCache) Invalidate() {
	tc.mu.Lock()
	tc.token = Token{}
	tc.mu.Unlock()
}

// Cached returns the current token if it is still valid.
func (tc *TokenCache) Cached() (Token, bool) {
	return tc.cached()
}

func (tc *TokenCache) cached() (Token, bool) {
	tc.mu.RLock()
	tok := tc.token
	tc.mu.RUnlock()
	return tok, tok.ValidAt(tc.clock.Now())
}

func (tc *TokenCache) refresh(ctx context.Context) (Token, error) {
	log := logger.FromContext(ctx).WithUpstream(ProviderName)

	cfg := tc.retry.WithOnRetry(func(attempt int, err error) {
		log.Warn().Int("attempt", attempt).Err(err).Msg("Token exchange failed, retrying")
	})

	tok, err := retry.DoWithResult(ctx, cfg, func(ctx context.Context, _ int) (Token, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, tc.timeout)
		defer cancel()
		return tc.exchange(attemptCtx)
	})
	if err != nil {
		log.Error().Err(err).Msg("Token exchange failed")
		return Token{}, err
	}

	log.Debug().Time("expires_at", tok.ExpiresAt).Msg("Access token refreshed")
	return tok, nil
}

// exchange performs one client-credentials request. Failures that must not be
// retried are wrapped in retry.Permanent.
func (tc *TokenCache) exchange(ctx context.Context) (Token, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {tc.clientID},
		"client_secret": {tc.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, retry.NewPermanent(domain.NewAuthError(0, fmt.Errorf("build request: %w", err)))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return Token{}, domain.NewAuthError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		authErr := domain.NewAuthError(resp.StatusCode, errorBody(resp.Body))
		if isTransientStatus(resp.StatusCode) {
			return Token{}, authErr
		}
		return Token{}, retry.NewPermanent(authErr)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Token{}, retry.NewPermanent(domain.NewAuthError(resp.StatusCode, fmt.Errorf("decode token response: %w", err)))
	}
	if body.AccessToken == "" {
		return Token{}, retry.NewPermanent(domain.NewAuthError(resp.StatusCode, errors.New("token response has no access_token")))
	}
	if body.ExpiresIn <= 0 {
		return Token{}, retry.NewPermanent(domain.NewAuthError(resp.StatusCode, fmt.Errorf("token response has invalid expires_in %d", body.ExpiresIn)))
	}

	lifetime := time.Duration(body.ExpiresIn)*time.Second - TokenSafetyMargin
	return Token{
		Value:     body.AccessToken,
		ExpiresAt: tc.clock.Now().Add(lifetime),
	}, nil
}

// isTransientStatus reports whether an upstream status is worth one retry.
func isTransientStatus(code int) bool {
	return code >= 500
}

// errorBody reads a bounded prefix of an error response for diagnostics.
func errorBody(r io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		msg = "empty response body"
	}
	return errors.New(msg)
}
