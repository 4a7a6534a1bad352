package deezer

import (
	"fmt"
	"strings"
)

// ResourceType names a Deezer catalog category. It selects the endpoint
// namespace and is used to validate identifiers given as URLs.
type ResourceType string

// Resource types that identify a single object.
const (
	ResourceAlbum    ResourceType = "album"
	ResourceArtist   ResourceType = "artist"
	ResourceTrack    ResourceType = "track"
	ResourcePlaylist ResourceType = "playlist"
	ResourcePodcast  ResourceType = "podcast"
	ResourceShow     ResourceType = "show"
	ResourceEpisode  ResourceType = "episode"
	ResourceUser     ResourceType = "user"
	ResourceComment  ResourceType = "comment"
	ResourceFolder   ResourceType = "folder"
	ResourceProfile  ResourceType = "profile"
)

// Endpoint namespaces without identifier validation.
const (
	ResourceGenre     ResourceType = "genre"
	ResourceChart     ResourceType = "chart"
	ResourceEditorial ResourceType = "editorial"
	ResourceRadio     ResourceType = "radio"
	ResourceSearch    ResourceType = "search"
	ResourceInfos     ResourceType = "infos"
	ResourceOptions   ResourceType = "options"
)

// String returns the canonical name.
func (r ResourceType) String() string {
	return string(r)
}

// Matches reports whether token, the type segment of a URL, names r.
//
// deezer.com serves podcasts under /show/ and users under /profile/, so
// those spellings are accepted as aliases.
func (r ResourceType) Matches(token string) bool {
	if string(r) == token {
		return true
	}
	switch r {
	case ResourcePodcast, ResourceShow:
		return token == string(ResourcePodcast) || token == string(ResourceShow)
	case ResourceUser, ResourceProfile:
		return token == string(ResourceUser) || token == string(ResourceProfile)
	}
	return false
}

// ParseID extracts the identifier from raw, which is either a bare id
// ("7112591") or a URL ending in ".../<type>/<id>".
//
// A raw value with fewer than three slash-separated segments is returned
// unchanged. Otherwise the last segment is the id. If the segment before it
// does not name expected, warning describes the mismatch; the id is returned
// regardless.
func ParseID(expected ResourceType, raw string) (id string, warning string) {
	fields := strings.Split(raw, "/")
	if len(fields) < 3 {
		return raw, ""
	}

	// A trailing slash or query string must not leave an empty id.
	fields = strings.Split(strings.TrimRight(stripQuery(raw), "/"), "/")
	if len(fields) < 2 {
		return raw, ""
	}

	id = fields[len(fields)-1]
	token := fields[len(fields)-2]
	if id == "" {
		return raw, ""
	}

	if !expected.Matches(token) {
		warning = fmt.Sprintf("Expecting '%s', found '%s' instead.", expected, token)
	}
	return id, warning
}

// ResolveID is ParseID with the warning written to the client's logger.
func (c *Client) ResolveID(expected ResourceType, raw string) string {
	id, warning := ParseID(expected, raw)
	if warning != "" {
		c.logWarnf("%s", warning)
	}
	return id
}

func stripQuery(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}
