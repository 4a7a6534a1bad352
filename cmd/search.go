package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/spf13/cobra"
)

var (
	searchType     string
	searchAdvanced []string
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search the catalog",
	Long: `Search the Deezer catalog.

Narrow the results with --type, or run a fielded search with --advanced:

  dzr search daft punk --type album
  dzr search --advanced artist="aloe blacc" --advanced track="i need a dollar"
  dzr search --advanced label="ed banger" --advanced dur_min=300

Accepted advanced fields: ` + strings.Join(deezer.AdvancedSearchFields(), ", "),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchType, "type", "t", "",
		"Result type: "+strings.Join(deezer.SubMethods(deezer.ResourceSearch), ", "))
	searchCmd.Flags().StringArrayVarP(&searchAdvanced, "advanced", "a", nil,
		"Advanced search field as key=value (repeatable)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(searchAdvanced) > 0 {
		params, err := parseAdvanced(searchAdvanced)
		if err != nil {
			return err
		}
		return runCall(cmd, false, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
			resp, err := c.AdvancedSearch(ctx, params)
			if err == nil && resp == nil {
				return nil, fmt.Errorf("invalid advanced search, accepted fields: %s",
					strings.Join(deezer.AdvancedSearchFields(), ", "))
			}
			return resp, err
		})
	}

	keyword := strings.Join(args, " ")
	if strings.TrimSpace(keyword) == "" {
		return fmt.Errorf("nothing to search for: give keywords or --advanced fields")
	}
	return runCall(cmd, false, func(ctx context.Context, c *deezer.Client) (*deezer.Response, error) {
		return c.Search(ctx, keyword, searchType)
	})
}

// parseAdvanced turns key=value pairs into search fields. Surrounding
// quotes on the value are dropped.
func parseAdvanced(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --advanced %q: expected key=value", pair)
		}
		params[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return params, nil
}
