package deezer

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds client configuration.
type Config struct {
	AccessToken string             // Optional: static token, used as-is and never refreshed
	Credentials CredentialProvider // Optional: token provider consulted when AccessToken is empty
	HTTPClient  *http.Client       // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL     string             // Optional: Base URL for API (defaults to Deezer API, used for testing)
	UserAgent   string             // Optional: User-Agent header
	Logger      Logger             // Optional: Logger for debug output and warnings
}

// Logger receives debug messages and warnings from the client.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
	// Warnf logs a non-fatal warning such as an identifier type mismatch.
	Warnf(format string, args ...interface{})
}

// Client is the main entry point for Deezer API operations.
//
// A Client holds no mutable state after construction and can be shared.
type Client struct {
	accessToken string
	credentials CredentialProvider
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	logger      Logger
}

const (
	// DefaultBaseURL is the default Deezer API endpoint.
	DefaultBaseURL = "https://api.deezer.com/"

	defaultUserAgent = "dzr/1.0"
)

// NewClient creates a new Deezer API client.
//
// Returns an error if BaseURL is set but is not an http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !isAbsolute(baseURL) {
		return nil, fmt.Errorf("%w: base URL %q must start with http:// or https://", ErrInvalidConfig, baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger()
	}

	return &Client{
		accessToken: cfg.AccessToken,
		credentials: cfg.Credentials,
		httpClient:  httpClient,
		baseURL:     baseURL,
		userAgent:   userAgent,
		logger:      logger,
	}, nil
}

// BaseURL returns the base URL relative paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Anonymous reports whether calls are made without an access token.
func (c *Client) Anonymous() bool {
	return c.accessToken == "" && c.credentials == nil
}

func (c *Client) logDebugf(format string, args ...interface{}) {
	c.logger.Debugf(format, args...)
}

func (c *Client) logWarnf(format string, args ...interface{}) {
	c.logger.Warnf(format, args...)
}

// NewZerologLogger adapts a zerolog.Logger to the Logger interface.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{l: l}
}

type zerologLogger struct {
	l zerolog.Logger
}

func (z zerologLogger) Debugf(format string, args ...interface{}) {
	z.l.Debug().Msgf(format, args...)
}

func (z zerologLogger) Warnf(format string, args ...interface{}) {
	z.l.Warn().Msgf(format, args...)
}

// defaultLogger writes warnings to stderr and drops debug output.
func defaultLogger() Logger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(zerolog.WarnLevel)
	return NewZerologLogger(l)
}
