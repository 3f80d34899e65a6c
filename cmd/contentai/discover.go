// ABOUTME: CLI command for browsing the trending content catalog.
// ABOUTME: Runs the filter, search, and sort pipeline and prints a table or JSON.
package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/catalog"
	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/similar"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse trending content",
	Long: `Search and filter the trending content catalog.

Sort with field[:asc|desc] where field is one of performanceScore,
engagementRate, publishedAt, likes, comments, shares.

--trending N shows the N highest-scoring items. --semantic ranks the
filtered items by similarity to --query instead of substring matching.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

// Flags
var (
	discoverQuery      string
	discoverPlatforms  []string
	discoverCategories []string
	discoverMinScore   int
	discoverMaxScore   int
	discoverSort       string
	discoverLimit      int
	discoverJSON       bool
	discoverTrending   int
	discoverSemantic   bool
)

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVarP(&discoverQuery, "query", "q", "", "Text to search for")
	discoverCmd.Flags().StringSliceVar(&discoverPlatforms, "platform", nil, "Only include these platforms (repeatable or comma-separated)")
	discoverCmd.Flags().StringSliceVar(&discoverCategories, "category", nil, "Only include these categories")
	discoverCmd.Flags().IntVar(&discoverMinScore, "min-score", 0, "Minimum performance score")
	discoverCmd.Flags().IntVar(&discoverMaxScore, "max-score", 100, "Maximum performance score")
	discoverCmd.Flags().StringVar(&discoverSort, "sort", "", "Sort as field[:asc|desc]")
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 0, "Maximum number of items to show (0 = all)")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "Print JSON instead of a table")
	discoverCmd.Flags().IntVar(&discoverTrending, "trending", 0, "Show only the N highest-scoring items")
	discoverCmd.Flags().BoolVar(&discoverSemantic, "semantic", false, "Rank by similarity to --query")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	params := catalog.Params{
		Text:       discoverQuery,
		Platforms:  discoverPlatforms,
		Categories: discoverCategories,
		Sort:       discoverSort,
	}
	if cmd.Flags().Changed("min-score") {
		params.MinScore = &discoverMinScore
	}
	if cmd.Flags().Changed("max-score") {
		params.MaxScore = &discoverMaxScore
	}

	var items []models.ContentItem
	switch {
	case cmd.Flags().Changed("trending"):
		if discoverSemantic {
			return &models.ValidationError{Errors: []string{"--trending cannot be combined with --semantic"}}
		}
		trending, err := trendingItems(globalCatalog, discoverTrending, params)
		if err != nil {
			return err
		}
		items = trending
	case discoverSemantic:
		results, err := semanticSearch(globalCatalog, params)
		if err != nil {
			return err
		}
		if discoverJSON {
			if discoverLimit > 0 && len(results) > discoverLimit {
				results = results[:discoverLimit]
			}
			return printJSON(cmd.OutOrStdout(), results)
		}
		for _, r := range results {
			items = append(items, r.Item)
		}
	default:
		found, err := globalCatalog.Search(params)
		if err != nil {
			return err
		}
		items = found
	}
	total := len(items)
	if discoverLimit > 0 && len(items) > discoverLimit {
		items = items[:discoverLimit]
	}

	out := cmd.OutOrStdout()
	if discoverJSON {
		return printJSON(out, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No content matches your filters.")
		return nil
	}

	t := contentTable(cmd, items)
	footer := fmt.Sprintf("%d of %d", len(items), total)
	if params.Text != "" {
		footer += fmt.Sprintf(" matching %q", params.Text)
	}
	t.AppendFooter(table.Row{"", footer})
	t.Render()
	return nil
}

func contentTable(cmd *cobra.Command, items []models.ContentItem) table.Writer {
	t := newTable(cmd.OutOrStdout(), "ID", "Title", "Platform", "Category", "Score", "Likes", "Saved")
	for _, it := range items {
		saved := ""
		if globalSaved != nil && globalSaved.IsSaved(it.ID) {
			saved = "★"
		}
		t.AppendRow(table.Row{
			it.ID,
			truncate(it.Title, 48),
			models.PlatformTitle(it.Platform),
			strings.ToLower(it.Category),
			scoreText(it.PerformanceScore),
			compactNumber(it.Engagement.Likes),
			saved,
		})
	}
	return t
}

// trendingItems returns the n highest-scoring items. It refuses any other
// search parameter since the ranking is fixed.
func trendingItems(cat *catalog.Catalog, n int, p catalog.Params) ([]models.ContentItem, error) {
	var errs []string
	if p.Text != "" || len(p.Platforms) > 0 || len(p.Categories) > 0 || p.MinScore != nil || p.MaxScore != nil || p.Sort != "" {
		errs = append(errs, "--trending cannot be combined with search, filter, or sort flags")
	}
	if n <= 0 {
		errs = append(errs, "--trending must be greater than 0")
	}
	if len(errs) > 0 {
		return nil, &models.ValidationError{Errors: errs}
	}
	return cat.Trending(n), nil
}

// semanticSearch applies every filter in p except the text, then ranks what is left
// by similarity to the text. Items with no similarity are dropped.
func semanticSearch(cat *catalog.Catalog, p catalog.Params) ([]similar.Result, error) {
	query := strings.TrimSpace(p.Text)
	if query == "" {
		return nil, &models.ValidationError{Errors: []string{"--semantic needs a --query"}}
	}
	p.Text = ""
	filtered, err := cat.Search(p)
	if err != nil {
		return nil, err
	}
	return similar.Rank(similar.NewHashEmbedder(0), filtered, query, len(filtered))
}
