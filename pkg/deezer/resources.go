package deezer

import (
	"context"
	"slices"
	"sort"
)

// subMethods lists the sub-methods each resource accepts.
var subMethods = map[ResourceType][]string{
	ResourceAlbum:     {"comments", "fans", "tracks"},
	ResourceArtist:    {"albums", "comments", "fans", "playlists", "radio", "related", "top"},
	ResourceTrack:     nil,
	ResourcePlaylist:  {"comments", "fans", "radio", "tracks"},
	ResourcePodcast:   {"episodes"},
	ResourceEpisode:   nil,
	ResourceComment:   nil,
	ResourceFolder:    {"items"},
	ResourceGenre:     {"artists", "podcasts", "radios"},
	ResourceRadio:     {"tracks"},
	ResourceChart:     {"albums", "artists", "playlists", "podcasts", "tracks"},
	ResourceEditorial: {"charts", "releases", "selection"},
	ResourceSearch: {
		"album", "artist", "history", "playlist", "podcast", "radio", "track", "user",
	},
	ResourceUser: {
		"albums", "artists", "charts", "charts/albums", "charts/artists", "charts/playlists",
		"charts/tracks", "flow", "folders", "followers", "followings", "history",
		"notifications", "options", "permissions", "personal_songs", "playlists",
		"podcasts", "radios", "recommendations", "recommendations/albums",
		"recommendations/artists", "recommendations/playlists", "recommendations/radios",
		"recommendations/releases", "recommendations/tracks", "tracks",
	},
}

// Resources returns every resource type in the sub-method table, sorted.
func Resources() []ResourceType {
	out := make([]ResourceType, 0, len(subMethods))
	for rt := range subMethods {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SubMethods returns the sub-methods rt accepts.
func SubMethods(rt ResourceType) []string {
	return slices.Clone(subMethods[canonical(rt)])
}

// ValidSubMethod reports whether sub is empty or listed for rt.
func ValidSubMethod(rt ResourceType, sub string) bool {
	if sub == "" {
		return true
	}
	return slices.Contains(subMethods[canonical(rt)], sub)
}

// canonical maps URL aliases to the endpoint namespace.
func canonical(rt ResourceType) ResourceType {
	switch rt {
	case ResourceShow:
		return ResourcePodcast
	case ResourceProfile:
		return ResourceUser
	}
	return rt
}

// resourcePath resolves rawID against rt and composes the endpoint path.
// An unknown sub-method is reported as a warning and sent anyway.
func (c *Client) resourcePath(rt ResourceType, rawID, sub string) string {
	if !ValidSubMethod(rt, sub) {
		c.logWarnf("Unknown method '%s' for '%s', sending it anyway.", sub, rt)
	}
	id := rawID
	if rawID != "" {
		id = c.ResolveID(rt, rawID)
	}
	return BuildPath(canonical(rt), id, sub)
}

// Get fetches a resource, optionally narrowed by a sub-method:
//
//	client.Get(ctx, deezer.ResourceAlbum, "302127", "tracks") // GET album/302127/tracks
//
// rawID may be a bare id or a deezer.com URL.
func (c *Client) Get(ctx context.Context, rt ResourceType, rawID, sub string) (*Response, error) {
	return c.get(ctx, c.resourcePath(rt, rawID, sub))
}

// Post sends a mutating request with one parameter naming its target.
func (c *Client) Post(ctx context.Context, rt ResourceType, rawID, sub string, param Param) (*Response, error) {
	return c.post(ctx, c.resourcePath(rt, rawID, sub), param)
}

// Delete sends a DELETE request. param may be nil when the path alone
// identifies the object.
func (c *Client) Delete(ctx context.Context, rt ResourceType, rawID, sub string, param *Param) (*Response, error) {
	return c.delete(ctx, c.resourcePath(rt, rawID, sub), param)
}
