package deezer

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Album returns an album, or one of its "comments", "fans" or "tracks".
func (c *Client) Album(ctx context.Context, albumID, sub string) (*Response, error) {
	return c.Get(ctx, ResourceAlbum, albumID, sub)
}

// Artist returns an artist, or one of its "albums", "comments", "fans",
// "playlists", "radio", "related" or "top".
func (c *Client) Artist(ctx context.Context, artistID, sub string) (*Response, error) {
	return c.Get(ctx, ResourceArtist, artistID, sub)
}

// Track returns a track.
func (c *Client) Track(ctx context.Context, trackID string) (*Response, error) {
	return c.Get(ctx, ResourceTrack, trackID, "")
}

// Playlist returns a playlist, or its "comments", "fans", "radio" or "tracks".
func (c *Client) Playlist(ctx context.Context, playlistID, sub string) (*Response, error) {
	return c.Get(ctx, ResourcePlaylist, playlistID, sub)
}

// Podcast returns a podcast, or its "episodes".
func (c *Client) Podcast(ctx context.Context, podcastID, sub string) (*Response, error) {
	return c.Get(ctx, ResourcePodcast, podcastID, sub)
}

// Episode returns a podcast episode.
func (c *Client) Episode(ctx context.Context, episodeID string) (*Response, error) {
	return c.Get(ctx, ResourceEpisode, episodeID, "")
}

// User returns a user, or one of the user sub-methods.
func (c *Client) User(ctx context.Context, userID, sub string) (*Response, error) {
	return c.Get(ctx, ResourceUser, userID, sub)
}

// Comment returns a comment.
func (c *Client) Comment(ctx context.Context, commentID string) (*Response, error) {
	return c.Get(ctx, ResourceComment, commentID, "")
}

// Folder returns a folder, or its "items".
func (c *Client) Folder(ctx context.Context, folderID, sub string) (*Response, error) {
	return c.Get(ctx, ResourceFolder, folderID, sub)
}

// Radio returns a radio, or its "tracks". An empty id lists all radios.
func (c *Client) Radio(ctx context.Context, radioID, sub string) (*Response, error) {
	return c.Get(ctx, ResourceRadio, radioID, sub)
}

// Me returns the authenticated user, or one of the user sub-methods such as
// "playlists" or "charts/tracks". Requires an access token.
func (c *Client) Me(ctx context.Context, sub string) (*Response, error) {
	return c.Get(ctx, ResourceUser, "me", sub)
}

// MeTop returns the authenticated user's top "albums", "artists",
// "playlists" or "tracks".
func (c *Client) MeTop(ctx context.Context, kind string) (*Response, error) {
	return c.Me(ctx, "charts/"+kind)
}

// Chart returns the top items of kind ("tracks", "albums", "artists",
// "playlists" or "podcasts"), or every chart when kind is empty.
func (c *Client) Chart(ctx context.Context, kind string) (*Response, error) {
	return c.Get(ctx, ResourceChart, "0", kind)
}

// Editorial returns the editorial index, or its "selection", "charts" or
// "releases".
func (c *Client) Editorial(ctx context.Context, sub string) (*Response, error) {
	if sub == "" {
		return c.Get(ctx, ResourceEditorial, "", "")
	}
	return c.Get(ctx, ResourceEditorial, "0", sub)
}

// Genres lists every genre.
func (c *Client) Genres(ctx context.Context) (*Response, error) {
	return c.Get(ctx, ResourceGenre, "", "")
}

// Genre returns a genre, or its "artists", "podcasts" or "radios".
func (c *Client) Genre(ctx context.Context, genreID, sub string) (*Response, error) {
	return c.Get(ctx, ResourceGenre, genreID, sub)
}

// Infos returns information about the API in the current country.
func (c *Client) Infos(ctx context.Context) (*Response, error) {
	return c.Get(ctx, ResourceInfos, "", "")
}

// Options returns the authenticated user's options.
func (c *Client) Options(ctx context.Context) (*Response, error) {
	return c.Get(ctx, ResourceOptions, "", "")
}

// Search looks up keyword, optionally narrowed to kind ("album", "artist",
// "history", "playlist", "podcast", "radio", "track" or "user").
func (c *Client) Search(ctx context.Context, keyword, kind string) (*Response, error) {
	path := c.resourcePath(ResourceSearch, "", kind)
	return c.Do(ctx, NewRequest(http.MethodGet, path, &Param{Name: "q", Value: keyword}))
}

// advancedSearchFields are the fields Deezer accepts in an advanced query.
var advancedSearchFields = map[string]bool{
	"artist":  false,
	"album":   false,
	"track":   false,
	"label":   false,
	"dur_min": true,
	"dur_max": true,
	"bpm_min": true,
	"bpm_max": true,
}

// AdvancedSearch runs a fielded search, e.g.
//
//	client.AdvancedSearch(ctx, map[string]string{"artist": "aloe blacc", "track": "i need a dollar"})
//
// Empty params or an unknown field produce a warning and no result: both
// return values are nil.
func (c *Client) AdvancedSearch(ctx context.Context, params map[string]string) (*Response, error) {
	query, ok := advancedQuery(params)
	if !ok {
		c.logWarnf("Please revise your search parameters. Accepted fields: %s.", strings.Join(AdvancedSearchFields(), ", "))
		return nil, nil
	}
	return c.Do(ctx, NewRequest(http.MethodGet, string(ResourceSearch), &Param{Name: "q", Value: query}))
}

// AdvancedSearchFields returns the accepted advanced search fields, sorted.
func AdvancedSearchFields() []string {
	fields := make([]string, 0, len(advancedSearchFields))
	for f := range advancedSearchFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// advancedQuery renders params as `artist:"x" dur_min:300`, keys sorted.
func advancedQuery(params map[string]string) (string, bool) {
	if len(params) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if _, known := advancedSearchFields[k]; !known {
			return "", false
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if advancedSearchFields[k] {
			parts = append(parts, fmt.Sprintf("%s:%s", k, params[k]))
		} else {
			parts = append(parts, fmt.Sprintf("%s:%q", k, params[k]))
		}
	}
	return strings.Join(parts, " "), true
}
