package deezer

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// recordingLogger captures warnings and debug lines.
type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
	debug    []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warnings...)
}

// capturedRequest is what the fake API saw.
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
}

// fakeAPI serves body for every request and records each one.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	return newFakeAPIFunc(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("failed to write response body: %v", err)
		}
	})
}

func newFakeAPIFunc(t *testing.T, handler http.HandlerFunc) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.requests = append(api.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
		})
		api.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) Requests() []capturedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]capturedRequest(nil), a.requests...)
}

func (a *fakeAPI) Last(t *testing.T) capturedRequest {
	t.Helper()
	reqs := a.Requests()
	if len(reqs) == 0 {
		t.Fatal("expected a request, got none")
	}
	return reqs[len(reqs)-1]
}

func newTestClient(t *testing.T, cfg Config) (*Client, *recordingLogger) {
	t.Helper()
	logger := &recordingLogger{}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, logger
}
