package deezer

import (
	"context"
	"strings"
)

// Library mutations. All of them require an access token carrying the
// manage_library (or delete_library) permission.

// FollowPlaylist adds a playlist to the user's favorites.
func (c *Client) FollowPlaylist(ctx context.Context, userID, playlistID string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "playlists",
		Param{Name: "playlist_id", Value: c.ResolveID(ResourcePlaylist, playlistID)})
}

// FollowPodcast adds a podcast to the user's favorites.
func (c *Client) FollowPodcast(ctx context.Context, userID, podcastID string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "podcasts",
		Param{Name: "podcast_id", Value: c.ResolveID(ResourceShow, podcastID)})
}

// FollowAlbum adds an album to the user's library.
func (c *Client) FollowAlbum(ctx context.Context, userID, albumID string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "albums",
		Param{Name: "album_id", Value: c.ResolveID(ResourceAlbum, albumID)})
}

// FollowArtist adds an artist to the user's favorites.
func (c *Client) FollowArtist(ctx context.Context, userID, artistID string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "artists",
		Param{Name: "artist_id", Value: c.ResolveID(ResourceArtist, artistID)})
}

// FollowUser makes userID follow another user.
func (c *Client) FollowUser(ctx context.Context, userID, followID string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "followings",
		Param{Name: "user_id", Value: c.ResolveID(ResourceUser, followID)})
}

// PostNotification posts message to the user's feed.
func (c *Client) PostNotification(ctx context.Context, userID, message string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "notifications", Param{Name: "message", Value: message})
}

// CreateFolder creates a folder. The response holds the new folder's id.
func (c *Client) CreateFolder(ctx context.Context, userID, title string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "folders", Param{Name: "title", Value: title})
}

// CreatePlaylist creates a playlist. The response holds the new playlist's id.
func (c *Client) CreatePlaylist(ctx context.Context, userID, title string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "playlists", Param{Name: "title", Value: title})
}

// AddFavoriteTrack adds a track to the user's favorites.
func (c *Client) AddFavoriteTrack(ctx context.Context, userID, trackID string) (*Response, error) {
	return c.Post(ctx, ResourceUser, userID, "tracks",
		Param{Name: "track_id", Value: c.ResolveID(ResourceTrack, trackID)})
}

// DeletePlaylist deletes one of the authenticated user's playlists.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID string) (*Response, error) {
	return c.Delete(ctx, ResourceUser, "me", "playlists",
		&Param{Name: "playlist_id", Value: c.ResolveID(ResourcePlaylist, playlistID)})
}

// DeleteTracksFromPlaylist removes tracks from a playlist. Each track may be
// an id or a URL.
func (c *Client) DeleteTracksFromPlaylist(ctx context.Context, playlistID string, trackIDs []string) (*Response, error) {
	ids := make([]string, 0, len(trackIDs))
	for _, t := range trackIDs {
		ids = append(ids, c.ResolveID(ResourceTrack, t))
	}
	return c.Delete(ctx, ResourcePlaylist, playlistID, "tracks",
		&Param{Name: "songs", Value: strings.Join(ids, ",")})
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) (*Response, error) {
	return c.Delete(ctx, ResourceComment, commentID, "", nil)
}

// DeleteAlbum removes an album from the authenticated user's library.
func (c *Client) DeleteAlbum(ctx context.Context, albumID string) (*Response, error) {
	return c.Delete(ctx, ResourceUser, "me", "albums",
		&Param{Name: "album_id", Value: c.ResolveID(ResourceAlbum, albumID)})
}

// DeleteArtist removes an artist from the authenticated user's favorites.
func (c *Client) DeleteArtist(ctx context.Context, artistID string) (*Response, error) {
	return c.Delete(ctx, ResourceUser, "me", "artists",
		&Param{Name: "artist_id", Value: c.ResolveID(ResourceArtist, artistID)})
}

// UnfollowUser stops following a user.
func (c *Client) UnfollowUser(ctx context.Context, userID string) (*Response, error) {
	return c.Delete(ctx, ResourceUser, "me", "followings",
		&Param{Name: "user_id", Value: c.ResolveID(ResourceProfile, userID)})
}

// DeletePodcast removes a podcast from the authenticated user's favorites.
func (c *Client) DeletePodcast(ctx context.Context, podcastID string) (*Response, error) {
	return c.Delete(ctx, ResourceUser, "me", "podcasts",
		&Param{Name: "podcast_id", Value: c.ResolveID(ResourceShow, podcastID)})
}

// DeleteFavoriteTrack removes a track from the authenticated user's favorites.
func (c *Client) DeleteFavoriteTrack(ctx context.Context, trackID string) (*Response, error) {
	return c.Delete(ctx, ResourceUser, "me", "tracks",
		&Param{Name: "track_id", Value: c.ResolveID(ResourceTrack, trackID)})
}

// DeleteFolder deletes a folder.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) (*Response, error) {
	return c.Delete(ctx, ResourceFolder, folderID, "", nil)
}

// DeletePlaylistFromFolder removes a playlist from a folder.
func (c *Client) DeletePlaylistFromFolder(ctx context.Context, folderID, playlistID string) (*Response, error) {
	return c.Delete(ctx, ResourceFolder, folderID, "items",
		&Param{Name: "playlist_id", Value: c.ResolveID(ResourcePlaylist, playlistID)})
}

// DeleteAlbumFromFolder removes an album from a folder.
func (c *Client) DeleteAlbumFromFolder(ctx context.Context, folderID, albumID string) (*Response, error) {
	return c.Delete(ctx, ResourceFolder, folderID, "items",
		&Param{Name: "album_id", Value: c.ResolveID(ResourceAlbum, albumID)})
}
