package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/cache"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// SessionConfig configures a SessionManager.
type SessionConfig struct {
	// TTL is the idle lifetime of a session
	TTL time.Duration

	// GlobalTimeout bounds each search run by a session
	GlobalTimeout time.Duration

	// Clock drives session expiry; nil uses the wall clock
	Clock timeutil.Clock
}

// SessionManager keeps in-memory search sessions. A session stands for one
// client view: it owns at most one in-flight search and the latest result set.
type SessionManager struct {
	provider domain.FlightProvider
	sessions *cache.Cache[*Session]
	ttl      time.Duration
	timeout  time.Duration
	clock    timeutil.Clock
}

// NewSessionManager creates a SessionManager searching provider.
func NewSessionManager(provider domain.FlightProvider, cfg SessionConfig) *SessionManager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.GlobalTimeout <= 0 {
		cfg.GlobalTimeout = DefaultGlobalTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}

	return &SessionManager{
		provider: provider,
		sessions: cache.New[*Session](cfg.Clock),
		ttl:      cfg.TTL,
		timeout:  cfg.GlobalTimeout,
		clock:    cfg.Clock,
	}
}

// Create registers a new empty session.
func (m *SessionManager) Create() *Session {
	s := &Session{
		id:        uuid.NewString(),
		provider:  m.provider,
		timeout:   m.timeout,
		clock:     m.clock,
		createdAt: m.clock.Now(),
	}
	m.sessions.Set(s.id, s, m.ttl)
	return s
}

// Get returns a live session and extends its lifetime.
func (m *SessionManager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	m.sessions.Touch(id, m.ttl)
	return s, nil
}

// Close discards a session and aborts its in-flight search.
func (m *SessionManager) Close(id string) error {
	s, ok := m.sessions.Delete(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.abort()
	return nil
}

// Sweep removes expired sessions, aborting their searches, and returns how many were removed.
func (m *SessionManager) Sweep() int {
	expired := m.sessions.DeleteExpired()
	for _, s := range expired {
		s.abort()
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.FromContext(ctx).Debug().Int("expired", n).Msg("Swept search sessions")
			}
		}
	}
}

// Len returns the number of stored sessions.
func (m *SessionManager) Len() int {
	return m.sessions.Len()
}

// Session is one client view's search state. A new search supersedes the
// one in flight: the old search is cancelled and its result, whenever it
// arrives, is discarded.
type Session struct {
	id        string
	provider  domain.FlightProvider
	timeout   time.Duration
	clock     timeutil.Clock
	createdAt time.Time

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	criteria   *domain.SearchCriteria
	flights    []domain.Flight
	lastErr    error
	elapsed    time.Duration
	searchedAt time.Time
}

// SessionState is a snapshot of a session.
type SessionState struct {
	ID         string
	Generation uint64
	Searching  bool
	Criteria   *domain.SearchCriteria
	Results    int
	LastError  error
	CreatedAt  time.Time
	SearchedAt time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Search runs a search for criteria, superseding any search in flight.
// A superseded call returns a *domain.CancelledError and leaves the newer
// search's state untouched. A search cancelled by its caller leaves the
// stored result set as it was. Any other failure clears it.
func (s *Session) Search(ctx context.Context, criteria domain.SearchCriteria, opts SearchOptions) (*domain.SearchResponse, error) {
	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.mu.Unlock()

	log := logger.FromContext(ctx).
		WithSession(s.id).
		WithSearch(criteria.Origin, criteria.Destination, gen)
	searchCtx = log.Attach(searchCtx)

	start := s.clock.Now()
	flights, err := queryProvider(searchCtx, s.provider, criteria)
	elapsed := s.clock.Now().Sub(start)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Debug().Msg("Discarding superseded search result")
		return nil, domain.NewCancelledError(context.Canceled)
	}
	s.cancel = nil

	// A caller that went away keeps the previous result set.
	if domain.IsCancelled(err) && !domain.IsDeadline(err) {
		log.Debug().Msg("Search cancelled by caller")
		return nil, err
	}

	stored := criteria
	s.criteria = &stored
	s.elapsed = elapsed
	s.searchedAt = s.clock.Now()

	if err != nil {
		s.flights = nil
		s.lastErr = err
		return nil, err
	}

	s.flights = flights
	s.lastErr = nil

	response := BuildResponse(criteria, flights, opts, elapsed)
	return &response, nil
}

// View derives a filtered, sorted view of the latest result set without
// re-fetching. It returns the latest search's error if that search failed.
// Before any search completes, the view is empty.
func (s *Session) View(opts SearchOptions) (*domain.SearchResponse, error) {
	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	flights := s.flights
	lastErr := s.lastErr
	elapsed := s.elapsed
	var criteria domain.SearchCriteria
	if s.criteria != nil {
		criteria = *s.criteria
	}
	s.mu.Unlock()

	if lastErr != nil {
		return nil, lastErr
	}

	response := BuildResponse(criteria, flights, opts, elapsed)
	return &response, nil
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var criteria *domain.SearchCriteria
	if s.criteria != nil {
		c := *s.criteria
		criteria = &c
	}
	return SessionState{
		ID:         s.id,
		Generation: s.generation,
		Searching:  s.cancel != nil,
		Criteria:   criteria,
		Results:    len(s.flights),
		LastError:  s.lastErr,
		CreatedAt:  s.createdAt,
		SearchedAt: s.searchedAt,
	}
}

// abort cancels the in-flight search, if any, and invalidates its result.
func (s *Session) abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
}
