// ABOUTME: CLI commands for backing up local data to GitHub and restoring it.
// ABOUTME: Provides push, pull, history, and a long-running scheduled auto-sync.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/config"
	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync saved content and drafts with GitHub",
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload saved content and history to the repository",
	Args:  cobra.NoArgs,
	RunE:  runSyncPush,
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local saved content and history with the repository copy",
	Args:  cobra.NoArgs,
	RunE:  runSyncPull,
}

var syncHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync attempts",
	Args:  cobra.NoArgs,
	RunE:  runSyncHistory,
}

var syncAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Push on the configured schedule until interrupted",
	Long: `Run scheduled pushes using github.sync_frequency from the config file:
hourly, daily, weekly, or a cron expression. Failed pushes are retried.`,
	Args: cobra.NoArgs,
	RunE: runSyncAuto,
}

var (
	syncHistoryLimit int
	syncAutoForce    bool
)

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncPushCmd, syncPullCmd, syncHistoryCmd, syncAutoCmd)

	syncHistoryCmd.Flags().IntVar(&syncHistoryLimit, "limit", 10, "Maximum number of records to show")
	syncAutoCmd.Flags().BoolVar(&syncAutoForce, "force", false, "Run even if github.auto_sync is off")
}

func runSyncPush(cmd *cobra.Command, args []string) error {
	sy, err := newSyncer()
	if err != nil {
		return err
	}
	rec, err := sy.Push(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync push failed: %w", err)
	}
	success(cmd.OutOrStdout(), "Pushed %d items to %s@%s (%s)", rec.Items, rec.Repo, rec.Branch, shortSHA(rec.CommitSHA))
	return nil
}

func runSyncPull(cmd *cobra.Command, args []string) error {
	sy, err := newSyncer()
	if err != nil {
		return err
	}
	rec, err := sy.Pull(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync pull failed: %w", err)
	}
	success(cmd.OutOrStdout(), "Pulled %d items from %s@%s", rec.Items, rec.Repo, rec.Branch)
	return nil
}

func runSyncHistory(cmd *cobra.Command, args []string) error {
	records := globalSyncHistory.List()
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No sync history yet.")
		return nil
	}
	if syncHistoryLimit > 0 && len(records) > syncHistoryLimit {
		records = records[:syncHistoryLimit]
	}

	t := newTable(out, "When", "Direction", "Status", "Repository", "Items", "Detail")
	for _, r := range records {
		detail := shortSHA(r.CommitSHA)
		status := successStyle.Render(r.Status)
		if r.Status == models.SyncFailed {
			detail = truncate(r.Error, 40)
			status = errorStyle.Render(r.Status)
		}
		t.AppendRow(table.Row{
			r.At.Local().Format("Jan 2 15:04"),
			r.Direction,
			status,
			r.Repo + "@" + r.Branch,
			r.Items,
			detail,
		})
	}
	t.Render()
	return nil
}

func runSyncAuto(cmd *cobra.Command, args []string) error {
	if !globalConfig.GitHub.AutoSync && !syncAutoForce {
		path, _ := config.GetConfigPath()
		return &models.ValidationError{Errors: []string{fmt.Sprintf("auto-sync is off - set github.auto_sync: true in %s or pass --force", path)}}
	}
	scheduler, err := newScheduler()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	success(cmd.OutOrStdout(), "Auto-sync running (%s). Press Ctrl+C to stop.", scheduler.Spec())
	return scheduler.Run(ctx)
}

// newScheduler wires scheduled pushes for the configured target.
func newScheduler() (*syncer.Scheduler, error) {
	sy, err := newSyncer()
	if err != nil {
		return nil, err
	}
	push := syncer.PusherFunc(func(ctx context.Context) error {
		_, err := sy.Push(ctx)
		return err
	})
	return syncer.NewScheduler(globalConfig.GetSyncFrequency(), push, syncer.DefaultRetryConfig())
}
