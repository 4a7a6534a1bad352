package deezer

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Response is a successfully decoded API payload. The payload is usually a
// JSON object, but list endpoints may return an array and mutating calls
// often return a bare true.
type Response struct {
	url   string
	raw   []byte
	value any
}

// NewResponse decodes body as a response fetched from url. It does not
// inspect the body for an error envelope.
func NewResponse(url string, body []byte) (*Response, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("deezer: invalid JSON body: %w", err)
	}
	return &Response{url: url, raw: body, value: v}, nil
}

// URL returns the URL the response was fetched from.
func (r *Response) URL() string {
	return r.url
}

// Raw returns the undecoded body.
func (r *Response) Raw() []byte {
	return r.raw
}

// Value returns the decoded body: map[string]any, []any, or a scalar.
func (r *Response) Value() any {
	return r.value
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.raw, v)
}

// Get returns the value at a gjson path, e.g. "title" or "artist.name".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// Next returns the continuation URL of a paginated response.
func (r *Response) Next() (string, bool) {
	next := r.Get("next")
	if !next.Exists() || next.String() == "" {
		return "", false
	}
	return next.String(), true
}

// Data returns the items of a collection response.
func (r *Response) Data() []gjson.Result {
	return r.Get("data").Array()
}

// Total returns the "total" count of a collection response, or -1 when the
// response carries none.
func (r *Response) Total() int {
	total := r.Get("total")
	if !total.Exists() {
		return -1
	}
	return int(total.Int())
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// apiError returns the *Error carried by the body, or nil if the body is
// not an object with an "error" key.
func (r *Response) apiError() *Error {
	m, ok := r.value.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := m["error"]
	if !ok {
		return nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(r.raw, &env); err != nil {
		return &Error{Message: fmt.Sprint(raw)}
	}
	return &Error{
		Type:    env.Error.Type,
		Message: env.Error.Message,
		Code:    env.Error.Code,
	}
}
