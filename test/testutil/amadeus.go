package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
)

// Paths served by FakeAmadeus, mirroring the real API layout.
const (
	FakeAuthBasePath = "/v1"
	FakeTokenPath    = "/v1/security/oauth2/token"
	FakeSearchPath   = "/v2/shopping/flight-offers"
)

// FakeAmadeus is an httptest server speaking the token and flight-offers
// endpoints. Responses are configurable per test; every request is counted.
type FakeAmadeus struct {
	Server *httptest.Server

	tokenCalls  atomic.Int32
	searchCalls atomic.Int32

	mu           sync.Mutex
	tokenStatus  []int
	tokenBody    string
	searchStatus []int
	searchBody   string
	searchGate   chan struct{}
	lastQuery    url.Values
	lastAuth     string
	lastForm     url.Values
	tokenSeq     int
}

// NewFakeAmadeus starts a fake upstream that issues 1799-second tokens and
// serves searchBody for every search. The server is closed on test cleanup.
func NewFakeAmadeus(t *testing.T, searchBody []byte) *FakeAmadeus {
	t.Helper()

	f := &FakeAmadeus{searchBody: string(searchBody)}
	mux := http.NewServeMux()
	mux.HandleFunc(FakeTokenPath, f.handleToken)
	mux.HandleFunc(FakeSearchPath, f.handleSearch)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// AuthBaseURL returns the base URL for the token cache.
func (f *FakeAmadeus) AuthBaseURL() string { return f.Server.URL + FakeAuthBasePath }

// SearchURL returns the flight-offers URL for the search client.
func (f *FakeAmadeus) SearchURL() string { return f.Server.URL + FakeSearchPath }

// TokenCalls returns how many token exchanges were received.
func (f *FakeAmadeus) TokenCalls() int { return int(f.tokenCalls.Load()) }

// SearchCalls returns how many offer queries were received.
func (f *FakeAmadeus) SearchCalls() int { return int(f.searchCalls.Load()) }

// SetTokenResponse overrides the token response body. An empty body restores the default.
func (f *FakeAmadeus) SetTokenResponse(body string) {
	f.mu.Lock()
	f.tokenBody = body
	f.mu.Unlock()
}

// SetTokenStatuses queues statuses for successive token calls; once drained, 200 is used.
func (f *FakeAmadeus) SetTokenStatuses(codes ...int) {
	f.mu.Lock()
	f.tokenStatus = codes
	f.mu.Unlock()
}

// SetSearchStatuses queues statuses for successive search calls; once drained, 200 is used.
func (f *FakeAmadeus) SetSearchStatuses(codes ...int) {
	f.mu.Lock()
	f.searchStatus = codes
	f.mu.Unlock()
}

// SetSearchBody replaces the search response body.
func (f *FakeAmadeus) SetSearchBody(body []byte) {
	f.mu.Lock()
	f.searchBody = string(body)
	f.mu.Unlock()
}

// BlockSearches makes every search wait until the returned release func is
// called or the request is cancelled by the client.
func (f *FakeAmadeus) BlockSearches() (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.searchGate = gate
	f.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// LastQuery returns the query string of the most recent search.
func (f *FakeAmadeus) LastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

// LastAuthorization returns the Authorization header of the most recent search.
func (f *FakeAmadeus) LastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

// LastTokenForm returns the form of the most recent token exchange.
func (f *FakeAmadeus) LastTokenForm() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastForm
}

func (f *FakeAmadeus) handleToken(w http.ResponseWriter, r *http.Request) {
	f.tokenCalls.Add(1)
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_ = r.ParseForm()

	f.mu.Lock()
	f.lastForm = r.PostForm
	status := pop(&f.tokenStatus)
	body := f.tokenBody
	f.tokenSeq++
	seq := f.tokenSeq
	f.mu.Unlock()

	if status != http.StatusOK {
		writeJSON(w, status, `{"error":"invalid_client","error_description":"Client credentials are invalid"}`)
		return
	}
	if body == "" {
		body = fmt.Sprintf(`{"type":"amadeusOAuth2Token","token_type":"Bearer","access_token":"token-%d","expires_in":1799,"state":"approved"}`, seq)
	}
	writeJSON(w, http.StatusOK, body)
}

func (f *FakeAmadeus) handleSearch(w http.ResponseWriter, r *http.Request) {
	f.searchCalls.Add(1)

	f.mu.Lock()
	f.lastQuery = r.URL.Query()
	f.lastAuth = r.Header.Get("Authorization")
	status := pop(&f.searchStatus)
	body := f.searchBody
	gate := f.searchGate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if status != http.StatusOK {
		writeJSON(w, status, `{"errors":[{"status":`+fmt.Sprint(status)+`,"title":"upstream error"}]}`)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func pop(queue *[]int) int {
	if len(*queue) == 0 {
		return http.StatusOK
	}
	code := (*queue)[0]
	*queue = (*queue)[1:]
	return code
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/vnd.amadeus+json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
