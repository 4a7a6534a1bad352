package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jfmyers9/dzr/internal/archive"
	"github.com/jfmyers9/dzr/internal/render"
	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/spf13/cobra"
)

var (
	exportPages int
	showLimit   int
)

var exportCmd = &cobra.Command{
	Use:   "export <resource> [id] [sub-method]",
	Short: "Export a collection to the local archive",
	Long: `Fetch every page of a collection and store it in the local SQLite archive.

Exporting the same collection again replaces the stored copy.

Examples:
  dzr export playlist 908622995 tracks
  dzr export user me albums
  dzr export chart 0 tracks --limit-pages 2
  dzr export list
  dzr export show playlist/908622995/tracks`,
	Args:      cobra.RangeArgs(1, 3),
	ValidArgs: resourceNames(),
	RunE:      runExport,
}

var exportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ctx context.Context, arc *archive.Archive) error {
			collections, err := arc.Collections(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(collections) == 0 {
				fmt.Fprintln(out, "No exported collections")
				return nil
			}
			for _, c := range collections {
				total := "?"
				if c.Total >= 0 {
					total = strconv.Itoa(c.Total)
				}
				fmt.Fprintf(out, "%s  %d of %s items, %d pages, %s\n",
					c.Name, c.Items, total, c.Pages, c.ExportedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var exportShowCmd = &cobra.Command{
	Use:   "show <collection>",
	Short: "Show the items of an exported collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ctx context.Context, arc *archive.Archive) error {
			items, err := arc.Items(ctx, args[0], showLimit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("collection %q is not in the archive", args[0])
			}

			rows := make([]render.Row, 0, len(items))
			for _, it := range items {
				rows = append(rows, render.Row{ID: it.ID, Type: it.Type, Title: it.Title, Artist: it.Artist})
			}
			return render.WriteRows(cmd.OutOrStdout(), rows, outputWidth)
		})
	},
}

var exportPruneCmd = &cobra.Command{
	Use:   "prune <collection>",
	Short: "Remove an exported collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ctx context.Context, arc *archive.Archive) error {
			deleted, err := arc.Prune(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d items from %s\n", deleted, args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportListCmd, exportShowCmd, exportPruneCmd)

	exportCmd.Flags().IntVar(&exportPages, "limit-pages", 0, "Stop after this many pages (0 = all)")
	exportShowCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show at most this many items (0 = all)")
}

func runExport(cmd *cobra.Command, args []string) error {
	rt := deezer.ResourceType(args[0])
	rawID, sub := argAt(args, 1), argAt(args, 2)

	a, err := newApp(cmd, rawID == "me")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	first, err := a.client.Get(ctx, rt, rawID, sub)
	if err != nil {
		return explain(err)
	}

	arc, err := archive.Open(a.cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer arc.Close()

	collection := collectionName(rt, rawID, sub)
	res, err := arc.Export(ctx, a.client, collection, first, exportPages)
	if err != nil {
		return explain(err)
	}

	logger.Info().
		Str("collection", collection).
		Int("pages", res.Pages).
		Int("items", res.Items).
		Msg("Exported collection")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exported %d items in %d pages to %s\n", res.Items, res.Pages, collection)
	if res.Truncated {
		fmt.Fprintf(out, "Stopped after %d pages, more are available (raise --limit-pages)\n", res.Pages)
	}
	return nil
}

// collectionName is the archive key of a request: its path relative to the
// API root, with links reduced to their id.
func collectionName(rt deezer.ResourceType, rawID, sub string) string {
	id := rawID
	if rawID != "" {
		id, _ = deezer.ParseID(rt, rawID)
	}
	return deezer.BuildPath(rt, id, sub)
}

func withArchive(cmd *cobra.Command, fn func(context.Context, *archive.Archive) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	arc, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer arc.Close()
	return fn(cmd.Context(), arc)
}
