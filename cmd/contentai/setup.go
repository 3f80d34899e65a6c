// ABOUTME: Cobra command for interactive GitHub sync setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect and validate the token, repository, and branch.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/config"
	"github.com/2389-research/contentai/internal/github"
	"github.com/2389-research/contentai/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Connect a GitHub repository for sync",
	Long:  "Interactive wizard to configure the GitHub personal access token, repository, and branch used for sync.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	// The wizard edits the file itself, so environment overrides stay out of it.
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	apiURL := cfg.GitHub.APIURL
	if apiURL == "" {
		apiURL = github.DefaultBaseURL
	}
	model := tui.NewSetupModel(
		cfg.GitHub.Token,
		cfg.GitHub.Repo,
		cfg.GitHub.Branch,
	).WithValidator(tui.NewValidator(apiURL))

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	token, repo, branch := final.Result()
	cfg.GitHub.Token = token
	cfg.GitHub.Repo = repo
	cfg.GitHub.Branch = branch

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		success(cmd.OutOrStdout(), "Config saved successfully.")
	} else {
		success(cmd.OutOrStdout(), "Config saved to %s", configPath)
	}
	muted(cmd.OutOrStdout(), "Run 'contentai sync push' to back up your saved content.")
	return nil
}
