// ABOUTME: CLI command showing one catalog item in detail.
// ABOUTME: Lists related items ranked by term-vector similarity.
package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/similar"
)

var contentCmd = &cobra.Command{
	Use:   "content <id>",
	Short: "Show a content item and related content",
	Args:  cobra.ExactArgs(1),
	RunE:  runContent,
}

var (
	contentRelated int
	contentJSON    bool
)

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.Flags().IntVar(&contentRelated, "related", 3, "Number of related items to show")
	contentCmd.Flags().BoolVar(&contentJSON, "json", false, "Print JSON")
}

func runContent(cmd *cobra.Command, args []string) error {
	item, err := globalCatalog.Get(args[0])
	if err != nil {
		return err
	}

	var related []similar.Result
	if contentRelated > 0 {
		related, err = similar.Related(similar.NewHashEmbedder(0), globalCatalog.All(), item, contentRelated)
		if err != nil {
			logging.Log(cmd.Context()).Layer("cli").Op("content").Content(item.ID).Err(err).Warn("related content unavailable")
		}
	}

	out := cmd.OutOrStdout()
	if contentJSON {
		return printJSON(out, map[string]any{
			"item":    item,
			"saved":   globalSaved.IsSaved(item.ID),
			"related": related,
		})
	}

	fmt.Fprintln(out, headingStyle.Render(item.Title))
	fmt.Fprintf(out, "%s · %s · by %s\n", models.PlatformTitle(item.Platform), orDash(item.Category), item.Author.Name)
	if globalSaved.IsSaved(item.ID) {
		fmt.Fprintln(out, noticeStyle.Render("★ Saved"))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, item.Description)
	fmt.Fprintln(out)

	t := newTable(out, "Score", "Likes", "Comments", "Shares", "Views", "Engagement")
	views := "-"
	if item.Engagement.Views != nil {
		views = compactNumber(*item.Engagement.Views)
	}
	rate := "-"
	if item.Engagement.EngagementRate != nil {
		rate = fmt.Sprintf("%.1f%%", *item.Engagement.EngagementRate)
	}
	t.AppendRow(table.Row{
		scoreText(item.PerformanceScore),
		compactNumber(item.Engagement.Likes),
		compactNumber(item.Engagement.Comments),
		compactNumber(item.Engagement.Shares),
		views,
		rate,
	})
	t.Render()

	if len(item.Tags) > 0 {
		muted(out, "Tags: #%s", strings.Join(item.Tags, " #"))
	}
	if item.PublishedAt != "" {
		muted(out, "Published: %s", item.PublishedTime().Format("Jan 2, 2006"))
	}
	if item.Link != "" {
		muted(out, "Link: %s", item.Link)
	}

	if len(related) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headingStyle.Render("Related content"))
		rt := newTable(out, "ID", "Title", "Platform", "Similarity")
		for _, r := range related {
			rt.AppendRow(table.Row{r.Item.ID, truncate(r.Item.Title, 48), models.PlatformTitle(r.Item.Platform), fmt.Sprintf("%.2f", r.Score)})
		}
		rt.Render()
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
