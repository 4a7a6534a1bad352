package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/spf13/cobra"
)

// catalogCommands are generated from the sub-method table: one command per
// resource, taking an id (or link) and an optional sub-method.
var catalogCommands = []struct {
	resource   deezer.ResourceType
	short      string
	idOptional bool
}{
	{deezer.ResourceAlbum, "Show an album", false},
	{deezer.ResourceArtist, "Show an artist", false},
	{deezer.ResourceTrack, "Show a track", false},
	{deezer.ResourcePlaylist, "Show a playlist", false},
	{deezer.ResourcePodcast, "Show a podcast", false},
	{deezer.ResourceEpisode, "Show a podcast episode", false},
	{deezer.ResourceUser, "Show a user", false},
	{deezer.ResourceComment, "Show a comment", false},
	{deezer.ResourceFolder, "Show a folder", false},
	{deezer.ResourceGenre, "List genres, or show one", true},
	{deezer.ResourceRadio, "List radios, or show one", true},
}

var getCmd = &cobra.Command{
	Use:   "get <resource> [id] [sub-method]",
	Short: "Fetch any API resource",
	Long: `Fetch any resource of the Deezer API by name.

The id may be a bare id or a deezer.com link. Unknown sub-methods are
reported as a warning and sent anyway.

Examples:
  dzr get album 302127 tracks
  dzr get chart 0 playlists
  dzr get user me flow`,
	Args:      cobra.RangeArgs(1, 3),
	ValidArgs: resourceNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := deezer.ResourceType(args[0])
		id, sub := argAt(args, 1), argAt(args, 2)
		return runGet(cmd, rt, id, sub)
	},
}

var chartCmd = &cobra.Command{
	Use:       "chart [albums|artists|playlists|podcasts|tracks]",
	Short:     "Show the top charts",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: deezer.SubMethods(deezer.ResourceChart),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := argAt(args, 0)
		return runCall(cmd, false, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			return c.Chart(ctx, kind)
		})
	},
}

var editorialCmd = &cobra.Command{
	Use:       "editorial [selection|charts|releases]",
	Short:     "Show editorial content",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: deezer.SubMethods(deezer.ResourceEditorial),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := argAt(args, 0)
		return runCall(cmd, false, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			return c.Editorial(ctx, sub)
		})
	},
}

var infosCmd = &cobra.Command{
	Use:   "infos",
	Short: "Show API information for your country",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCall(cmd, false, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			return c.Infos(ctx)
		})
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show your account options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCall(cmd, true, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			return c.Options(ctx)
		})
	},
}

var meCmd = &cobra.Command{
	Use:   "me [sub-method]",
	Short: "Show your profile, or one of your collections",
	Long: `Show the authenticated user, or one of their collections.

Examples:
  dzr me
  dzr me playlists
  dzr me flow
  dzr me charts/tracks`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: deezer.SubMethods(deezer.ResourceUser),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := argAt(args, 0)
		return runCall(cmd, true, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			return c.Me(ctx, sub)
		})
	},
}

func init() {
	rootCmd.AddCommand(getCmd, chartCmd, editorialCmd, infosCmd, optionsCmd, meCmd)

	for _, cc := range catalogCommands {
		rootCmd.AddCommand(newCatalogCommand(cc.resource, cc.short, cc.idOptional))
	}
}

func newCatalogCommand(rt deezer.ResourceType, short string, idOptional bool) *cobra.Command {
	use := fmt.Sprintf("%s <id|url>", rt)
	positional := cobra.RangeArgs(1, 2)
	if idOptional {
		use = fmt.Sprintf("%s [id]", rt)
		positional = cobra.RangeArgs(0, 2)
	}

	subs := deezer.SubMethods(rt)
	long := short + "."
	if len(subs) > 0 {
		use += " [sub-method]"
		long += "\n\nSub-methods: " + strings.Join(subs, ", ")
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, rt, argAt(args, 0), argAt(args, 1))
		},
	}
}

func runGet(cmd *cobra.Command, rt deezer.ResourceType, id, sub string) error {
	needsAuth := id == "me"
	return runCall(cmd, needsAuth, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
		return c.Get(ctx, rt, id, sub)
	})
}

// runCall builds the client and prints the result of call.
func runCall(cmd *cobra.Command, interactive bool, call func(context.Context, *deezer.Client) (*deezer.Response, error)) error {
	a, err := newApp(cmd, interactive)
	if err != nil {
		return err
	}
	return a.run(cmd.Context(), call)
}

func resourceNames() []string {
	var names []string
	for _, rt := range deezer.Resources() {
		names = append(names, rt.String())
	}
	return names
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
