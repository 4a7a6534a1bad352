package deezer

import (
	"net/http"
	"net/url"
	"strings"
)

// Param is a single request parameter. Mutating calls use it to name the
// target sub-resource, e.g. Param{Name: "track_id", Value: "12345"}.
type Param struct {
	Name  string
	Value string
}

// Request describes one outbound call.
type Request struct {
	Method string     // GET, POST or DELETE
	Path   string     // Relative to the base URL, or absolute
	Param  *Param     // Optional
	Query  url.Values // Optional extra parameters
}

// NewRequest returns a request for path with an optional parameter.
func NewRequest(method, path string, param *Param) Request {
	return Request{
		Method: method,
		Path:   path,
		Param:  param,
	}
}

// BuildPath composes "<resource>/<id>/<sub>" from the non-empty parts.
//
// An empty id or sub-method is omitted entirely, so
// BuildPath(ResourceTrack, "653689002", "") is "track/653689002".
func BuildPath(resource ResourceType, id, sub string) string {
	segments := make([]string, 0, 3)
	for _, s := range []string{string(resource), id, sub} {
		s = strings.Trim(s, "/")
		if s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, "/")
}

// resolveURL prefixes relative paths with the base URL. Absolute URLs, such
// as a "next" link returned by the API, pass through unchanged.
func (c *Client) resolveURL(path string) string {
	if isAbsolute(path) {
		return path
	}
	return c.baseURL + strings.TrimLeft(path, "/")
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func getRequest(path string) Request {
	return NewRequest(http.MethodGet, path, nil)
}
