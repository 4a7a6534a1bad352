package deezer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Environment variables read when CredentialsConfig leaves a field empty.
const (
	EnvClientID    = "DEEZER_CLIENT_ID"
	EnvSecret      = "DEEZER_SECRET_ID"
	EnvRedirectURL = "DEEZER_REDIRECT_URL"
)

const (
	// DefaultAuthBaseURL is the Deezer OAuth endpoint.
	DefaultAuthBaseURL = "https://connect.deezer.com/oauth/"
)

// CodePrompter obtains an authorization code once the user has been sent to
// authURL.
type CodePrompter interface {
	Code(ctx context.Context, authURL string) (string, error)
}

// CredentialsConfig holds the application registration and the hooks used
// during the interactive authorization.
type CredentialsConfig struct {
	AppID       string       // Defaults to $DEEZER_CLIENT_ID
	Secret      string       // Defaults to $DEEZER_SECRET_ID
	RedirectURL string       // Defaults to $DEEZER_REDIRECT_URL
	Perms       string       // Comma separated permissions, e.g. "basic_access,email"
	AuthBaseURL string       // Defaults to DefaultAuthBaseURL
	HTTPClient  *http.Client // Defaults to http.DefaultClient
	Prompter    CodePrompter // Required to acquire a token interactively

	// OpenBrowser, when set, is given the authorization URL before the
	// prompter runs. A failure is logged and the prompter runs anyway.
	OpenBrowser func(url string) error

	// OnToken is called after every successful acquisition.
	OnToken func(*oauth2.Token)

	Logger Logger
}

// Credentials implements the Deezer authorization-code flow and holds the
// resulting token. It is a CredentialProvider.
//
// The token is the only mutable state. Acquisitions are serialized, so
// concurrent callers that all find no token perform the exchange once.
type Credentials struct {
	appID       string
	secret      string
	redirectURL string
	perms       string
	authBaseURL string
	httpClient  *http.Client
	prompter    CodePrompter
	openBrowser func(string) error
	onToken     func(*oauth2.Token)
	logger      Logger
	now         func() time.Time

	acquireMu sync.Mutex
	mu        sync.Mutex
	token     *oauth2.Token
}

// NewCredentials creates credentials, filling empty fields from the
// environment.
func NewCredentials(cfg CredentialsConfig) *Credentials {
	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger()
	}

	if cfg.AppID == "" {
		cfg.AppID = os.Getenv(EnvClientID)
	}
	if cfg.Secret == "" {
		cfg.Secret = os.Getenv(EnvSecret)
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = os.Getenv(EnvRedirectURL)
	}
	if cfg.Perms == "" {
		logger.Warnf("You need to provide what permissions your application needs.")
	}

	authBaseURL := cfg.AuthBaseURL
	if authBaseURL == "" {
		authBaseURL = DefaultAuthBaseURL
	}
	if !strings.HasSuffix(authBaseURL, "/") {
		authBaseURL += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Credentials{
		appID:       cfg.AppID,
		secret:      cfg.Secret,
		redirectURL: cfg.RedirectURL,
		perms:       cfg.Perms,
		authBaseURL: authBaseURL,
		httpClient:  httpClient,
		prompter:    cfg.Prompter,
		openBrowser: cfg.OpenBrowser,
		onToken:     cfg.OnToken,
		logger:      logger,
		now:         time.Now,
	}
}

// AppID returns the application id.
func (c *Credentials) AppID() string {
	return c.appID
}

// RedirectURL returns the registered redirect URL.
func (c *Credentials) RedirectURL() string {
	return c.redirectURL
}

// CurrentToken returns the held access token without checking its expiry.
func (c *Credentials) CurrentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil {
		return ""
	}
	return c.token.AccessToken
}

// Token returns a copy of the held token, or nil.
func (c *Credentials) Token() *oauth2.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil {
		return nil
	}
	tok := *c.token
	return &tok
}

// SetToken replaces the held token, e.g. with one restored from disk.
func (c *Credentials) SetToken(tok *oauth2.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = tok
}

// IsTokenExpired reports whether there is no token or its expiry has passed.
// A token with a zero expiry never expires.
func (c *Credentials) IsTokenExpired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiredLocked()
}

func (c *Credentials) expiredLocked() bool {
	if c.token == nil || c.token.AccessToken == "" {
		return true
	}
	if c.token.Expiry.IsZero() {
		return false
	}
	return c.now().After(c.token.Expiry)
}

// AccessToken returns the held token while it is valid, and otherwise runs
// the interactive authorization to acquire a new one.
func (c *Credentials) AccessToken(ctx context.Context) (string, error) {
	c.acquireMu.Lock()
	defer c.acquireMu.Unlock()

	c.mu.Lock()
	if !c.expiredLocked() {
		token := c.token.AccessToken
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	tok, err := c.retrieve(ctx)
	if err != nil {
		return "", err
	}

	c.SetToken(tok)
	if c.onToken != nil {
		c.onToken(c.Token())
	}
	return tok.AccessToken, nil
}

// AuthURL returns the page where the user grants the application access.
func (c *Credentials) AuthURL() string {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("redirect_uri", c.redirectURL)
	params.Set("perms", c.perms)
	return c.authBaseURL + "auth.php?" + params.Encode()
}

func (c *Credentials) retrieve(ctx context.Context) (*oauth2.Token, error) {
	if c.prompter == nil {
		return nil, ErrNoPrompter
	}

	authURL := c.AuthURL()
	if c.openBrowser != nil {
		if err := c.openBrowser(authURL); err != nil {
			c.logger.Debugf("deezer: failed to open browser: %v", err)
		}
	}

	code, err := c.prompter.Code(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain authorization code: %w", err)
	}

	return c.Exchange(ctx, code)
}

// Exchange trades an authorization code for an access token.
//
// Deezer answers with a form-encoded body, "access_token=<token>&expires=<seconds>".
// An expires of 0 means the token does not expire.
func (c *Credentials) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("secret", c.secret)
	params.Set("code", code)
	target := c.authBaseURL + "access_token.php?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "request", URL: c.authBaseURL + "access_token.php", Err: err}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, &TransportError{Op: "read", URL: c.authBaseURL + "access_token.php", StatusCode: resp.StatusCode, Err: err}
	}

	tok, err := parseTokenResponse(string(body), c.now())
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("deezer: acquired access token (expires %v)", tok.Expiry)
	return tok, nil
}

func parseTokenResponse(body string, now time.Time) (*oauth2.Token, error) {
	body = strings.TrimSpace(body)
	vals, err := url.ParseQuery(body)
	if err != nil || vals.Get("access_token") == "" {
		return nil, fmt.Errorf("deezer: token exchange failed: %q", body)
	}

	tok := &oauth2.Token{
		AccessToken: vals.Get("access_token"),
		TokenType:   "Bearer",
	}
	if e := vals.Get("expires"); e != "" {
		seconds, err := strconv.Atoi(e)
		if err != nil {
			return nil, fmt.Errorf("deezer: invalid expires value %q: %w", e, err)
		}
		if seconds > 0 {
			tok.Expiry = now.Add(time.Duration(seconds) * time.Second)
		}
	}
	return tok.WithExtra(vals), nil
}

// ParseCode extracts the "code" parameter from the URL the browser was
// redirected to. A value that is not a URL is taken to be the code itself.
func ParseCode(redirected string) (string, error) {
	redirected = strings.TrimSpace(redirected)
	if redirected == "" {
		return "", ErrNoAuthCode
	}
	if !strings.ContainsAny(redirected, "?=/") {
		return redirected, nil
	}

	u, err := url.Parse(redirected)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoAuthCode, err)
	}
	query := u.Query()
	if reason := query.Get("error_reason"); reason != "" {
		return "", fmt.Errorf("%w: authorization denied: %s", ErrNoAuthCode, reason)
	}
	code := query.Get("code")
	if code == "" {
		return "", ErrNoAuthCode
	}
	return code, nil
}

// ConsolePrompter prints the authorization URL and reads the redirected URL
// (or the bare code) from In.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer
}

// Code implements CodePrompter.
func (p ConsolePrompter) Code(ctx context.Context, authURL string) (string, error) {
	fmt.Fprintf(p.Out, "Please navigate here: %s\n", authURL)
	fmt.Fprint(p.Out, "Enter the URL you were redirected to: ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read redirect URL: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return ParseCode(line)
}
