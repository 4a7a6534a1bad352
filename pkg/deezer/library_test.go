package deezer

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestClient_LibraryMutations(t *testing.T) {
	tests := []struct {
		name      string
		call      func(ctx context.Context, c *Client) (*Response, error)
		method    string
		path      string
		param     string
		wantValue string
	}{
		{
			name:   "follow playlist",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.FollowPlaylist(ctx, "me", "908622995") },
			method: http.MethodPost, path: "/user/me/playlists", param: "playlist_id", wantValue: "908622995",
		},
		{
			name: "follow podcast from show url",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.FollowPodcast(ctx, "me", "https://www.deezer.com/fr/show/1234")
			},
			method: http.MethodPost, path: "/user/me/podcasts", param: "podcast_id", wantValue: "1234",
		},
		{
			name:   "follow album",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.FollowAlbum(ctx, "me", "302127") },
			method: http.MethodPost, path: "/user/me/albums", param: "album_id", wantValue: "302127",
		},
		{
			name:   "follow artist",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.FollowArtist(ctx, "2529", "27") },
			method: http.MethodPost, path: "/user/2529/artists", param: "artist_id", wantValue: "27",
		},
		{
			name:   "follow user",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.FollowUser(ctx, "me", "2529") },
			method: http.MethodPost, path: "/user/me/followings", param: "user_id", wantValue: "2529",
		},
		{
			name:   "notification",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.PostNotification(ctx, "me", "hello there") },
			method: http.MethodPost, path: "/user/me/notifications", param: "message", wantValue: "hello there",
		},
		{
			name:   "create folder",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.CreateFolder(ctx, "me", "Road trip") },
			method: http.MethodPost, path: "/user/me/folders", param: "title", wantValue: "Road trip",
		},
		{
			name:   "create playlist",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.CreatePlaylist(ctx, "me", "Mixtape") },
			method: http.MethodPost, path: "/user/me/playlists", param: "title", wantValue: "Mixtape",
		},
		{
			name:   "favorite track",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.AddFavoriteTrack(ctx, "me", "3135556") },
			method: http.MethodPost, path: "/user/me/tracks", param: "track_id", wantValue: "3135556",
		},
		{
			name:   "delete playlist",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeletePlaylist(ctx, "908622995") },
			method: http.MethodDelete, path: "/user/me/playlists", param: "playlist_id", wantValue: "908622995",
		},
		{
			name: "delete tracks from playlist",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.DeleteTracksFromPlaylist(ctx, "908622995", []string{"1", "https://www.deezer.com/track/2", "3"})
			},
			method: http.MethodDelete, path: "/playlist/908622995/tracks", param: "songs", wantValue: "1,2,3",
		},
		{
			name:   "delete comment",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeleteComment(ctx, "2772704") },
			method: http.MethodDelete, path: "/comment/2772704",
		},
		{
			name:   "delete album",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeleteAlbum(ctx, "302127") },
			method: http.MethodDelete, path: "/user/me/albums", param: "album_id", wantValue: "302127",
		},
		{
			name:   "delete artist",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeleteArtist(ctx, "27") },
			method: http.MethodDelete, path: "/user/me/artists", param: "artist_id", wantValue: "27",
		},
		{
			name: "unfollow user from profile url",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.UnfollowUser(ctx, "https://www.deezer.com/us/profile/2529")
			},
			method: http.MethodDelete, path: "/user/me/followings", param: "user_id", wantValue: "2529",
		},
		{
			name:   "delete podcast",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeletePodcast(ctx, "1234") },
			method: http.MethodDelete, path: "/user/me/podcasts", param: "podcast_id", wantValue: "1234",
		},
		{
			name:   "delete favorite track",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeleteFavoriteTrack(ctx, "3135556") },
			method: http.MethodDelete, path: "/user/me/tracks", param: "track_id", wantValue: "3135556",
		},
		{
			name:   "delete folder",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeleteFolder(ctx, "42") },
			method: http.MethodDelete, path: "/folder/42",
		},
		{
			name:   "delete playlist from folder",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeletePlaylistFromFolder(ctx, "42", "908622995") },
			method: http.MethodDelete, path: "/folder/42/items", param: "playlist_id", wantValue: "908622995",
		},
		{
			name:   "delete album from folder",
			call:   func(ctx context.Context, c *Client) (*Response, error) { return c.DeleteAlbumFromFolder(ctx, "42", "302127") },
			method: http.MethodDelete, path: "/folder/42/items", param: "album_id", wantValue: "302127",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, `true`)
			client, logger := newTestClient(t, Config{BaseURL: api.URL, AccessToken: "T1"})

			resp, err := tt.call(context.Background(), client)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Value() != true {
				t.Errorf("expected true, got %#v", resp.Value())
			}

			req := api.Last(t)
			if req.Method != tt.method {
				t.Errorf("expected %s, got %s", tt.method, req.Method)
			}
			if req.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, req.Path)
			}
			if tt.param != "" {
				if got := req.Query.Get(tt.param); got != tt.wantValue {
					t.Errorf("expected %s=%q, got %q", tt.param, tt.wantValue, got)
				}
			}
			if got := req.Query.Get("access_token"); got != "T1" {
				t.Errorf("expected access_token T1, got %q", got)
			}
			if w := logger.Warnings(); len(w) != 0 {
				t.Errorf("expected no warnings, got %v", w)
			}
		})
	}
}

func TestClient_Mutation_PermissionError(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"error": {"type": "OAuthException", "message": "An active access token must be used", "code": 200}}`)
	client, _ := newTestClient(t, Config{BaseURL: api.URL})

	_, err := client.FollowAlbum(context.Background(), "me", "302127")
	if !IsAPIError(err) {
		t.Fatalf("expected API error, got %v", err)
	}
	if !errors.Is(err, &Error{Code: ErrCodePermission}) {
		t.Errorf("expected permission error, got %v", err)
	}
}
