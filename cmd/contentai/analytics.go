// ABOUTME: CLI command printing catalog-wide performance analytics.
// ABOUTME: Renders totals, breakdowns, the monthly series, and top performers.
package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/analytics"
	"github.com/2389-research/contentai/internal/models"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show performance analytics for the catalog",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

var analyticsJSON bool

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Print JSON")
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	data := analytics.Compute(globalCatalog.All())
	out := cmd.OutOrStdout()
	if analyticsJSON {
		return printJSON(out, data)
	}

	fmt.Fprintln(out, headingStyle.Render("Overview"))
	t := newTable(out, "Content", "Likes", "Comments", "Shares", "Views", "Avg score", "Avg engagement")
	t.AppendRow(table.Row{
		data.TotalContent,
		compactNumber(data.TotalLikes),
		compactNumber(data.TotalComments),
		compactNumber(data.TotalShares),
		compactNumber(data.TotalViews),
		fmt.Sprintf("%.1f", data.AveragePerformance),
		fmt.Sprintf("%.1f%%", data.AverageEngagementRate),
	})
	t.Render()

	fmt.Fprintln(out, headingStyle.Render("By platform"))
	pt := newTable(out, "Platform", "Items", "Likes", "Avg score")
	for _, p := range data.Platforms {
		pt.AppendRow(table.Row{models.PlatformTitle(p.Platform), p.Count, compactNumber(p.Likes), fmt.Sprintf("%.1f", p.AverageScore)})
	}
	pt.Render()

	fmt.Fprintln(out, headingStyle.Render("By category"))
	ct := newTable(out, "Category", "Items", "Avg score")
	for _, c := range data.Categories {
		ct.AppendRow(table.Row{c.Category, c.Count, fmt.Sprintf("%.1f", c.AverageScore)})
	}
	ct.Render()

	fmt.Fprintln(out, headingStyle.Render("Monthly"))
	mt := newTable(out, "Month", "Items", "Likes", "Comments", "Shares", "Views")
	for _, m := range data.Monthly {
		mt.AppendRow(table.Row{m.Month, m.Items, compactNumber(m.Likes), compactNumber(m.Comments), compactNumber(m.Shares), compactNumber(m.Views)})
	}
	mt.Render()

	fmt.Fprintln(out, headingStyle.Render("Top performers"))
	tt := newTable(out, "ID", "Title", "Platform", "Score")
	for _, it := range data.TopPerformers {
		tt.AppendRow(table.Row{it.ID, truncate(it.Title, 48), models.PlatformTitle(it.Platform), scoreText(it.PerformanceScore)})
	}
	tt.Render()
	return nil
}
