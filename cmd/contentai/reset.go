// ABOUTME: CLI command that deletes all locally stored contentai data.
// ABOUTME: Clears saved content, generation history, sync history, and the first-run marker.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/models"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved content, drafts, and sync history from this machine",
	Long: `Delete every locally stored document. The config file and anything
already pushed to GitHub are left alone.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deletion")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return &models.ValidationError{Errors: []string{fmt.Sprintf("this deletes all local data in %s - pass --yes to confirm", globalLocal.Dir())}}
	}
	removed, err := globalLocal.Reset()
	if err != nil {
		return fmt.Errorf("failed to reset local data: %w", err)
	}
	if len(removed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to delete.")
		return nil
	}
	success(cmd.OutOrStdout(), "Deleted %s", strings.Join(removed, ", "))
	return nil
}
