// ABOUTME: Root Cobra command and global flags for the contentai CLI.
// ABOUTME: Sets up lifecycle hooks for config loading, logging, and store initialization.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/catalog"
	"github.com/2389-research/contentai/internal/config"
	"github.com/2389-research/contentai/internal/github"
	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/storage"
	"github.com/2389-research/contentai/internal/syncer"
)

var globalConfig *config.Config
var globalLocal *storage.LocalStore
var globalSaved storage.SavedStore
var globalHistory storage.HistoryStore
var globalSyncHistory storage.SyncHistoryStore
var globalCatalog *catalog.Catalog
var globalGitHub *github.Client

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "contentai",
	Short: "Discover trending content and draft your own",
	Long: `
 ██████╗ ██████╗ ███╗   ██╗████████╗███████╗███╗   ██╗████████╗ █████╗ ██╗
██╔════╝██╔═══██╗████╗  ██║╚══██╔══╝██╔════╝████╗  ██║╚══██╔══╝██╔══██╗██║
██║     ██║   ██║██╔██╗ ██║   ██║   █████╗  ██╔██╗ ██║   ██║   ███████║██║
██║     ██║   ██║██║╚██╗██║   ██║   ██╔══╝  ██║╚██╗██║   ██║   ██╔══██║██║
╚██████╗╚██████╔╝██║ ╚████║   ██║   ███████╗██║ ╚████║   ██║   ██║  ██║██║
 ╚═════╝ ╚═════╝ ╚═╝  ╚═══╝   ╚═╝   ╚══════╝╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝╚═╝

Discover trending social content, save favorites, generate drafts,
and back everything up to a GitHub repository.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger := logging.NewLogger(os.Stderr, logging.Options{Level: level, Format: cfg.Log.Format})
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logging.NewContextWithLogger(ctx, logger))

		dataDir, err := cfg.GetDataDir()
		if err != nil {
			return fmt.Errorf("failed to resolve data dir: %w", err)
		}
		local, err := storage.NewLocalStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open data dir: %w", err)
		}
		globalLocal = local

		if globalSaved, err = storage.NewSavedStore(local); err != nil {
			return fmt.Errorf("failed to open saved content: %w", err)
		}
		if globalHistory, err = storage.NewHistoryStore(local); err != nil {
			return fmt.Errorf("failed to open generation history: %w", err)
		}
		if globalSyncHistory, err = storage.NewSyncHistoryStore(local); err != nil {
			return fmt.Errorf("failed to open sync history: %w", err)
		}

		if globalCatalog, err = catalog.Default(); err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		if cfg.HasGitHub() {
			globalGitHub = github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Token)
		}

		// The MCP server owns stdout, so the welcome notice waits for an interactive command.
		if cmd.Name() != "mcp" {
			first, err := local.MarkVisited()
			if err != nil {
				logging.With(nil).Layer("cli").Op("MarkVisited").Err(err).Warn("failed to record first visit")
			} else if first {
				fmt.Fprintln(os.Stderr, noticeStyle.Render("Welcome to ContentAI! Run `contentai discover` to browse trending content, or `contentai setup` to connect GitHub."))
			}
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		globalSaved = nil
		globalHistory = nil
		globalSyncHistory = nil
		globalLocal = nil
		globalGitHub = nil
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// requireGitHub returns the configured client or a validation error pointing at setup.
func requireGitHub() (*github.Client, error) {
	if globalGitHub == nil {
		return nil, &models.ValidationError{Errors: []string{"GitHub is not configured - run 'contentai setup' first"}}
	}
	return globalGitHub, nil
}

// requireRepo returns the configured repository or a validation error.
func requireRepo() (string, error) {
	if globalConfig == nil || globalConfig.GitHub.Repo == "" {
		return "", &models.ValidationError{Errors: []string{"no GitHub repository configured - run 'contentai setup' first"}}
	}
	return globalConfig.GitHub.Repo, nil
}

// newSyncer builds a syncer for the configured target.
func newSyncer() (*syncer.Syncer, error) {
	client, err := requireGitHub()
	if err != nil {
		return nil, err
	}
	repo, err := requireRepo()
	if err != nil {
		return nil, err
	}
	target := syncer.Target{Repo: repo, Branch: globalConfig.GetBranch(), Path: globalConfig.GitHub.Path}
	return syncer.New(client, target, globalSaved, globalHistory, globalSyncHistory), nil
}
