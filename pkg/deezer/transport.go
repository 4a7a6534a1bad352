package deezer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Do performs req and classifies the outcome.
//
// It returns:
//   - a *Response when the body decodes and has no "error" key
//   - an *Error when the body carries the API's error envelope
//   - a *TransportError when the request cannot be built or fails, the body
//     cannot be read or decoded, or a non-2xx status arrives without an
//     error envelope
//
// Auth and req.Param are sent as query parameters whatever the method,
// which is how the Deezer API accepts them.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	authParams, err := c.authParams(ctx)
	if err != nil {
		return nil, err
	}

	target, err := c.composeURL(req, authParams)
	if err != nil {
		return nil, &TransportError{Op: "request", URL: redact(c.resolveURL(req.Path)), Err: err}
	}

	c.logDebugf("deezer: %s %s", req.Method, redact(target))

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, nil)
	if err != nil {
		return nil, &TransportError{Op: "request", URL: redact(target), Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "request", URL: redact(target), Err: err}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, &TransportError{Op: "read", URL: redact(target), StatusCode: resp.StatusCode, Err: err}
	}

	result, err := NewResponse(redact(target), body)
	if err != nil {
		return nil, &TransportError{Op: "decode", URL: redact(target), StatusCode: resp.StatusCode, Err: err}
	}

	if apiErr := result.apiError(); apiErr != nil {
		c.logDebugf("deezer: %s %s failed: %v", req.Method, redact(target), apiErr)
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Op:         "status",
			URL:        redact(target),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	return result, nil
}

// composeURL resolves req.Path and merges auth, req.Query and req.Param into
// its query string. Parameters already present on an absolute URL are kept
// unless overridden.
func (c *Client) composeURL(req Request, authParams url.Values) (string, error) {
	raw := c.resolveURL(req.Path)
	if len(authParams) == 0 && len(req.Query) == 0 && req.Param == nil {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}

	query := u.Query()
	for k, vs := range req.Query {
		query[k] = vs
	}
	if req.Param != nil && req.Param.Name != "" {
		query.Set(req.Param.Name, req.Param.Value)
	}
	for k, vs := range authParams {
		query[k] = vs
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

func (c *Client) get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, getRequest(path))
}

func (c *Client) post(ctx context.Context, path string, param Param) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, path, &param))
}

func (c *Client) delete(ctx context.Context, path string, param *Param) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodDelete, path, param))
}

// redact hides the access token in URLs that end up in logs and errors.
func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	query := u.Query()
	if query.Get(accessTokenParam) == "" {
		return target
	}
	query.Set(accessTokenParam, "REDACTED")
	u.RawQuery = query.Encode()
	return u.String()
}
