// Package callback receives the browser redirect at the end of the Deezer
// authorization flow, so the user does not have to paste the URL back.
package callback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/rs/zerolog"
)

const (
	successPage = "<html><body><h1>dzr is authorized</h1><p>You can close this window.</p></body></html>"
	deniedPage  = "<html><body><h1>Authorization denied</h1><p>%s</p></body></html>"
)

// ErrBusy is returned by Code while another Code call is waiting.
var ErrBusy = errors.New("callback server is already waiting for a redirect")

type result struct {
	code string
	err  error
}

// Server listens on the host and path of the redirect URL and implements
// deezer.CodePrompter.
type Server struct {
	redirect *url.URL
	out      io.Writer
	logger   zerolog.Logger

	results chan result
	ready   chan struct{}

	mu      sync.Mutex
	addr    string
	serving bool
}

// New creates a server for redirectURL, which must be an http URL such as
// "http://localhost:8080/callback". The authorization URL is printed to out.
func New(redirectURL string, out io.Writer, logger zerolog.Logger) (*Server, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URL: %w", err)
	}
	if u.Scheme != "http" || u.Host == "" {
		return nil, fmt.Errorf("redirect URL %q must be an http:// URL with a host", redirectURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	return &Server{
		redirect: u,
		out:      out,
		logger:   logger,
		results:  make(chan result, 1),
		ready:    make(chan struct{}),
	}, nil
}

// Handler returns the router serving the redirect path.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(s.redirect.Path, s.handleRedirect)
	return r
}

func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if reason := query.Get("error_reason"); reason != "" {
		s.logger.Warn().Str("reason", reason).Msg("Authorization denied")
		s.deliver(result{err: fmt.Errorf("%w: authorization denied: %s", deezer.ErrNoAuthCode, reason)})
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprintf(w, deniedPage, reason)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	s.logger.Debug().Msg("Received authorization code")
	s.deliver(result{code: code})
	_, _ = io.WriteString(w, successPage)
}

// deliver keeps the first outcome; later redirects are ignored.
func (s *Server) deliver(res result) {
	select {
	case s.results <- res:
	default:
	}
}

// Wait blocks until a redirect arrives or ctx is done.
func (s *Server) Wait(ctx context.Context) (string, error) {
	select {
	case res := <-s.results:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Addr returns the address the server listens on once Code has started it.
func (s *Server) Addr() string {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()

	<-ready
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Code implements deezer.CodePrompter: it prints authURL, serves the
// redirect and returns the code it carries.
//
// A Server may run Code again once the previous call has returned, e.g. when
// an expired token is re-acquired. Overlapping calls are rejected.
func (s *Server) Code(ctx context.Context, authURL string) (string, error) {
	s.mu.Lock()
	if s.serving {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.serving = true
	s.mu.Unlock()
	defer s.reset()

	// Drop a redirect that arrived after the previous call returned
	select {
	case <-s.results:
	default:
	}

	host := s.redirect.Host
	if s.redirect.Port() == "" {
		host = net.JoinHostPort(s.redirect.Hostname(), "80")
	}

	ln, err := net.Listen("tcp", host)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", host, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	close(s.ready)
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Callback server failed")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(s.out, "Please navigate here: %s\n", authURL)
	fmt.Fprintf(s.out, "Waiting for the redirect on http://%s%s ...\n", ln.Addr(), s.redirect.Path)

	return s.Wait(ctx)
}

// reset prepares the server for another Code call.
func (s *Server) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serving = false
	s.addr = ""
	s.ready = make(chan struct{})
}
