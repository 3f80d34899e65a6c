// ABOUTME: CLI commands for the generation history.
// ABOUTME: Provides list, show, remove, and clear subcommands.
package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage generated drafts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent drafts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one draft in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove one draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every draft",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyJSON bool

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	items := globalHistory.List()
	out := cmd.OutOrStdout()
	if historyJSON {
		return printJSON(out, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No generated content yet. Try 'contentai generate text --prompt \"...\"'.")
		return nil
	}

	t := newTable(out, "ID", "Kind", "Platform", "Created", "Preview")
	for _, d := range items {
		t.AppendRow(table.Row{
			d.ID,
			d.Kind,
			models.PlatformTitle(d.Platform),
			d.CreatedAt.Local().Format("Jan 2 15:04"),
			truncate(d.Content, 50),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d of %d kept", len(items), storage.MaxHistory)})
	t.Render()
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	d, ok := globalHistory.Get(args[0])
	if !ok {
		return fmt.Errorf("no draft with id %s", args[0])
	}
	printDraft(cmd.OutOrStdout(), d)
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	if _, ok := globalHistory.Get(args[0]); !ok {
		return fmt.Errorf("no draft with id %s", args[0])
	}
	if err := globalHistory.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to remove draft: %w", err)
	}
	success(cmd.OutOrStdout(), "Removed draft %s", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if err := globalHistory.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	success(cmd.OutOrStdout(), "History cleared")
	return nil
}
