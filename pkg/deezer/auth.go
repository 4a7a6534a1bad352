package deezer

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
)

// CredentialProvider supplies OAuth access tokens.
type CredentialProvider interface {
	// CurrentToken returns the token held right now, or "" if none has been
	// acquired yet. It must not block or perform I/O.
	CurrentToken() string

	// AccessToken acquires a token, stores it and returns it.
	AccessToken(ctx context.Context) (string, error)
}

const accessTokenParam = "access_token"

// authParams selects the access token for a request.
//
// Precedence:
//  1. the static Config.AccessToken
//  2. a token the provider already holds, reused without checking expiry
//  3. a token acquired from the provider on demand
//
// With neither a static token nor a provider the result is empty and the
// request is anonymous. The selection is made afresh for every call.
func (c *Client) authParams(ctx context.Context) (url.Values, error) {
	if c.accessToken != "" {
		return url.Values{accessTokenParam: {c.accessToken}}, nil
	}
	if c.credentials == nil {
		return nil, nil
	}

	// Expiry is the provider's concern when it acquires; a held token is used as-is.
	if token := c.credentials.CurrentToken(); token != "" {
		return url.Values{accessTokenParam: {token}}, nil
	}

	token, err := c.credentials.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("deezer: failed to acquire access token: %w", err)
	}
	if token == "" {
		return nil, nil
	}
	return url.Values{accessTokenParam: {token}}, nil
}

// TokenSourceProvider adapts an oauth2.TokenSource, such as
// oauth2.StaticTokenSource or oauth2.ReuseTokenSource, to CredentialProvider.
func TokenSourceProvider(ts oauth2.TokenSource) CredentialProvider {
	return &tokenSourceProvider{ts: ts}
}

type tokenSourceProvider struct {
	ts    oauth2.TokenSource
	token *oauth2.Token
}

func (p *tokenSourceProvider) CurrentToken() string {
	if p.token == nil {
		return ""
	}
	return p.token.AccessToken
}

func (p *tokenSourceProvider) AccessToken(ctx context.Context) (string, error) {
	tok, err := p.ts.Token()
	if err != nil {
		return "", err
	}
	p.token = tok
	return tok.AccessToken, nil
}
