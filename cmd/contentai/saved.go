// ABOUTME: CLI commands for the saved-content collection.
// ABOUTME: Provides list and toggle subcommands backed by the local saved store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/storage"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved content",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved content in the order it was saved",
	Args:  cobra.NoArgs,
	RunE:  runSavedList,
}

var savedToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Save a content item, or remove it if already saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedToggle,
}

var savedJSON bool

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedToggleCmd)

	savedListCmd.Flags().BoolVar(&savedJSON, "json", false, "Print JSON")
}

func runSavedList(cmd *cobra.Command, args []string) error {
	items := globalSaved.List()
	out := cmd.OutOrStdout()
	if savedJSON {
		return printJSON(out, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No saved content yet. Use 'contentai saved toggle <id>' to save something.")
		return nil
	}
	contentTable(cmd, items).Render()
	return nil
}

func runSavedToggle(cmd *cobra.Command, args []string) error {
	item, err := globalCatalog.Get(args[0])
	if err != nil {
		return err
	}
	result, err := globalSaved.Toggle(item)
	if err != nil {
		return fmt.Errorf("failed to update saved content: %w", err)
	}
	if result == storage.Removed {
		success(cmd.OutOrStdout(), "Removed %q from saved content", item.Title)
	} else {
		success(cmd.OutOrStdout(), "Saved %q", item.Title)
	}
	return nil
}
