// Package account builds a Deezer client from the saved configuration and
// keeps the configuration in step with tokens acquired at runtime.
package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jfmyers9/dzr/internal/config"
	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Mode is the way requests are authenticated.
type Mode int

const (
	// ModeAnonymous sends no token; only public catalog reads work.
	ModeAnonymous Mode = iota
	// ModeStatic sends a fixed token and never refreshes it.
	ModeStatic
	// ModeCredentials uses the app registration and acquires tokens interactively.
	ModeCredentials
)

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static token"
	case ModeCredentials:
		return "app credentials"
	default:
		return "anonymous"
	}
}

// Options tune how the client is built.
type Options struct {
	// Token, when set, overrides everything else (the --token flag).
	Token string

	// Interactive allows credentials mode without a saved token, in which
	// case the first request runs the authorization flow.
	Interactive bool

	Prompter    deezer.CodePrompter
	OpenBrowser func(string) error
	AuthBaseURL string
	HTTPClient  *http.Client
	Logger      zerolog.Logger
}

// Account wraps the Deezer client together with the configuration it was
// built from.
type Account struct {
	cfg    *config.Config
	client *deezer.Client
	creds  *deezer.Credentials
	mode   Mode
	logger zerolog.Logger
}

// New creates the client for cfg.
func New(cfg *config.Config, opts Options) (*Account, error) {
	a := &Account{cfg: cfg, logger: opts.Logger}
	sdkLogger := deezer.NewZerologLogger(opts.Logger)

	clientCfg := deezer.Config{
		HTTPClient: opts.HTTPClient,
		BaseURL:    cfg.Deezer.BaseURL,
		Logger:     sdkLogger,
	}

	switch {
	case opts.Token != "":
		a.mode = ModeStatic
		clientCfg.AccessToken = opts.Token

	case cfg.Deezer.AppID != "" && (cfg.Deezer.AccessToken != "" || opts.Interactive):
		a.mode = ModeCredentials
		a.creds = deezer.NewCredentials(deezer.CredentialsConfig{
			AppID:       cfg.Deezer.AppID,
			Secret:      cfg.Deezer.Secret,
			RedirectURL: cfg.Deezer.RedirectURL,
			Perms:       cfg.Deezer.Perms,
			AuthBaseURL: opts.AuthBaseURL,
			HTTPClient:  opts.HTTPClient,
			Prompter:    opts.Prompter,
			OpenBrowser: opts.OpenBrowser,
			OnToken:     a.saveToken,
			Logger:      sdkLogger,
		})
		if cfg.Deezer.AccessToken != "" {
			a.creds.SetToken(&oauth2.Token{
				AccessToken: cfg.Deezer.AccessToken,
				TokenType:   "Bearer",
				Expiry:      cfg.Deezer.TokenExpiry,
			})
			if a.creds.IsTokenExpired() {
				a.logger.Warn().
					Time("expiry", cfg.Deezer.TokenExpiry).
					Msg("Saved Deezer token has expired, run 'dzr auth' to renew it")
			}
		}
		clientCfg.Credentials = a.creds

	case cfg.Deezer.AccessToken != "":
		a.mode = ModeStatic
		clientCfg.AccessToken = cfg.Deezer.AccessToken
	}

	client, err := deezer.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create deezer client: %w", err)
	}
	a.client = client

	a.logger.Debug().Str("mode", a.mode.String()).Str("base_url", client.BaseURL()).Msg("Deezer client ready")
	return a, nil
}

// Client returns the Deezer client.
func (a *Account) Client() *deezer.Client {
	return a.client
}

// Mode returns how requests are authenticated.
func (a *Account) Mode() Mode {
	return a.mode
}

// Credentials returns the credential provider, or nil outside credentials mode.
func (a *Account) Credentials() *deezer.Credentials {
	return a.creds
}

// IsAuthenticated reports whether requests carry a token.
func (a *Account) IsAuthenticated() bool {
	return !a.client.Anonymous()
}

// Login makes sure a valid token is held, running the authorization flow
// when the saved one is missing or expired. Returns the token.
func (a *Account) Login(ctx context.Context) (string, error) {
	if a.creds == nil {
		return "", fmt.Errorf("no Deezer app configured: set deezer.app_id or %s", deezer.EnvClientID)
	}
	token, err := a.creds.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate: %w", err)
	}
	return token, nil
}

// saveToken persists a newly acquired token.
func (a *Account) saveToken(tok *oauth2.Token) {
	a.cfg.Deezer.AccessToken = tok.AccessToken
	a.cfg.Deezer.TokenExpiry = tok.Expiry

	if err := a.cfg.Save(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to save Deezer token")
		return
	}
	a.logger.Info().Time("expiry", tok.Expiry).Msg("Saved Deezer token")
}
