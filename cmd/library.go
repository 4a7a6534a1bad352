package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/spf13/cobra"
)

var libraryUser string

// libraryCall has the shape of a *deezer.Client method expression.
type libraryCall func(c *deezer.Client, ctx context.Context, target string) (*deezer.Response, error)

// followActions add an object to the user's library, keyed by kind.
var followActions = map[string]libraryCall{
	"album": func(c *deezer.Client, ctx context.Context, id string) (*deezer.Response, error) {
		return c.FollowAlbum(ctx, libraryUser, id)
	},
	"artist": func(c *deezer.Client, ctx context.Context, id string) (*deezer.Response, error) {
		return c.FollowArtist(ctx, libraryUser, id)
	},
	"playlist": func(c *deezer.Client, ctx context.Context, id string) (*deezer.Response, error) {
		return c.FollowPlaylist(ctx, libraryUser, id)
	},
	"podcast": func(c *deezer.Client, ctx context.Context, id string) (*deezer.Response, error) {
		return c.FollowPodcast(ctx, libraryUser, id)
	},
	"track": func(c *deezer.Client, ctx context.Context, id string) (*deezer.Response, error) {
		return c.AddFavoriteTrack(ctx, libraryUser, id)
	},
	"user": func(c *deezer.Client, ctx context.Context, id string) (*deezer.Response, error) {
		return c.FollowUser(ctx, libraryUser, id)
	},
}

// unfollowActions remove an object from the authenticated user's library.
var unfollowActions = map[string]libraryCall{
	"album":    (*deezer.Client).DeleteAlbum,
	"artist":   (*deezer.Client).DeleteArtist,
	"playlist": (*deezer.Client).DeletePlaylist,
	"podcast":  (*deezer.Client).DeletePodcast,
	"track":    (*deezer.Client).DeleteFavoriteTrack,
	"user":     (*deezer.Client).UnfollowUser,
}

var createActions = map[string]libraryCall{
	"folder": func(c *deezer.Client, ctx context.Context, title string) (*deezer.Response, error) {
		return c.CreateFolder(ctx, libraryUser, title)
	},
	"playlist": func(c *deezer.Client, ctx context.Context, title string) (*deezer.Response, error) {
		return c.CreatePlaylist(ctx, libraryUser, title)
	},
}

var deleteActions = map[string]libraryCall{
	"comment": (*deezer.Client).DeleteComment,
	"folder":  (*deezer.Client).DeleteFolder,
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your Deezer library",
	Long: `Add to and remove from your Deezer library.

These commands need a token with the manage_library permission (and
delete_library for removals). Run 'dzr auth' first.`,
}

var followCmd = &cobra.Command{
	Use:       "follow <" + kinds(followActions) + "> <id|url>",
	Short:     "Add an album, artist, playlist, podcast or track to your favorites, or follow a user",
	Args:      cobra.ExactArgs(2),
	ValidArgs: keys(followActions),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibrary(cmd, followActions, args[0], args[1])
	},
}

var unfollowCmd = &cobra.Command{
	Use:       "unfollow <" + kinds(unfollowActions) + "> <id|url>",
	Short:     "Remove an object from your favorites, or stop following a user",
	Args:      cobra.ExactArgs(2),
	ValidArgs: keys(unfollowActions),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibrary(cmd, unfollowActions, args[0], args[1])
	},
}

var createCmd = &cobra.Command{
	Use:       "create <" + kinds(createActions) + "> <title...>",
	Short:     "Create a playlist or a folder",
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: keys(createActions),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibrary(cmd, createActions, args[0], strings.Join(args[1:], " "))
	},
}

var deleteCmd = &cobra.Command{
	Use:       "delete <" + kinds(deleteActions) + "> <id>",
	Short:     "Delete one of your comments or folders",
	Args:      cobra.ExactArgs(2),
	ValidArgs: keys(deleteActions),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLibrary(cmd, deleteActions, args[0], args[1])
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify <message...>",
	Short: "Post a message to your feed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		return runCall(cmd, true, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			return c.PostNotification(ctx, libraryUser, message)
		})
	},
}

var removeTracksCmd = &cobra.Command{
	Use:   "remove-tracks <playlist> <track>...",
	Short: "Remove tracks from a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCall(cmd, true, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			return c.DeleteTracksFromPlaylist(ctx, args[0], args[1:])
		})
	},
}

var unfileCmd = &cobra.Command{
	Use:       "unfile <folder> <playlist|album> <id|url>",
	Short:     "Remove a playlist or an album from a folder",
	Args:      cobra.ExactArgs(3),
	ValidArgs: []string{"playlist", "album"},
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, kind, id := args[0], args[1], args[2]
		return runCall(cmd, true, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			switch kind {
			case "playlist":
				return c.DeletePlaylistFromFolder(ctx, folder, id)
			case "album":
				return c.DeleteAlbumFromFolder(ctx, folder, id)
			}
			return nil, fmt.Errorf("unknown kind %q: expected playlist or album", kind)
		})
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(followCmd, unfollowCmd, createCmd, deleteCmd, notifyCmd, removeTracksCmd, unfileCmd)

	libraryCmd.PersistentFlags().StringVarP(&libraryUser, "user", "u", "me", "User whose library is changed by follow, create and notify")
}

func runLibrary(cmd *cobra.Command, actions map[string]libraryCall, kind, target string) error {
	action, ok := actions[kind]
	if !ok {
		return fmt.Errorf("unknown kind %q: expected one of %s", kind, kinds(actions))
	}
	return runCall(cmd, true, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
		return action(c, ctx, target)
	})
}

func keys(actions map[string]libraryCall) []string {
	out := make([]string, 0, len(actions))
	for k := range actions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func kinds(actions map[string]libraryCall) string {
	return strings.Join(keys(actions), "|")
}
