// ABOUTME: CLI commands for inspecting and operating on the configured GitHub repository.
// ABOUTME: Covers status, branches, workflows, runs, contributors, activity, branch and PR creation.
package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/config"
	"github.com/2389-research/contentai/internal/github"
	"github.com/2389-research/contentai/internal/models"
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Work with the connected GitHub repository",
}

var githubStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Validate the token and show the sync configuration",
	Args:  cobra.NoArgs,
	RunE:  runGitHubStatus,
}

var githubBranchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List branches",
	Args:  cobra.NoArgs,
	RunE:  runGitHubBranches,
}

var githubWorkflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List Actions workflows",
	Args:  cobra.NoArgs,
	RunE:  runGitHubWorkflows,
}

var githubRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent workflow runs",
	Args:  cobra.NoArgs,
	RunE:  runGitHubRuns,
}

var githubContributorsCmd = &cobra.Command{
	Use:   "contributors",
	Short: "List contributors by commit count",
	Args:  cobra.NoArgs,
	RunE:  runGitHubContributors,
}

var githubActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show weekly commit activity",
	Args:  cobra.NoArgs,
	RunE:  runGitHubActivity,
}

var githubBranchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Manage branches",
}

var githubBranchCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a branch from another branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runGitHubBranchCreate,
}

var githubPRCmd = &cobra.Command{
	Use:   "pr",
	Short: "Manage pull requests",
}

var githubPRCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a pull request",
	Args:  cobra.NoArgs,
	RunE:  runGitHubPRCreate,
}

// Flags
var (
	ghLimit      int
	ghWorkflowID int64
	ghWeeks      int
	ghFrom       string
	ghPRHead     string
	ghPRBase     string
	ghPRTitle    string
	ghPRBody     string
)

func init() {
	rootCmd.AddCommand(githubCmd)
	githubCmd.AddCommand(githubStatusCmd, githubBranchesCmd, githubWorkflowsCmd, githubRunsCmd,
		githubContributorsCmd, githubActivityCmd, githubBranchCmd, githubPRCmd)
	githubBranchCmd.AddCommand(githubBranchCreateCmd)
	githubPRCmd.AddCommand(githubPRCreateCmd)

	for _, c := range []*cobra.Command{githubBranchesCmd, githubWorkflowsCmd, githubRunsCmd, githubContributorsCmd} {
		c.Flags().IntVar(&ghLimit, "limit", 10, "Maximum number of results")
	}
	githubRunsCmd.Flags().Int64Var(&ghWorkflowID, "workflow", 0, "Only runs of this workflow ID")
	githubActivityCmd.Flags().IntVar(&ghWeeks, "weeks", 12, "Number of recent weeks to show")
	githubBranchCreateCmd.Flags().StringVar(&ghFrom, "from", "", "Source branch (default: configured branch)")

	githubPRCreateCmd.Flags().StringVar(&ghPRHead, "head", "", "Branch with the changes")
	githubPRCreateCmd.Flags().StringVar(&ghPRBase, "base", "", "Branch to merge into (default: configured branch)")
	githubPRCreateCmd.Flags().StringVar(&ghPRTitle, "title", "", "Pull request title")
	githubPRCreateCmd.Flags().StringVar(&ghPRBody, "body", "", "Pull request description")
	_ = githubPRCreateCmd.MarkFlagRequired("head")
	_ = githubPRCreateCmd.MarkFlagRequired("title")
}

func githubRepo() (*github.Client, string, error) {
	client, err := requireGitHub()
	if err != nil {
		return nil, "", err
	}
	repo, err := requireRepo()
	if err != nil {
		return nil, "", err
	}
	return client, repo, nil
}

func runGitHubStatus(cmd *cobra.Command, args []string) error {
	client, err := requireGitHub()
	if err != nil {
		return err
	}
	user, err := client.ValidateToken(cmd.Context())
	if err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	success(out, "Connected as @%s", user.Login)
	gh := globalConfig.GitHub
	t := newTable(out, "Setting", "Value")
	t.AppendRows([]table.Row{
		{"Token", config.MaskToken(gh.Token)},
		{"Repository", orDash(gh.Repo)},
		{"Branch", globalConfig.GetBranch()},
		{"Auto-sync", fmt.Sprintf("%v (%s)", gh.AutoSync, globalConfig.GetSyncFrequency())},
	})
	t.Render()

	if records := globalSyncHistory.List(); len(records) > 0 {
		last := records[0]
		muted(out, "Last sync: %s %s at %s", last.Direction, last.Status, last.At.Local().Format("Jan 2 15:04"))
	}
	return nil
}

func runGitHubBranches(cmd *cobra.Command, args []string) error {
	client, repo, err := githubRepo()
	if err != nil {
		return err
	}
	branches, err := client.ListBranches(cmd.Context(), repo, ghLimit)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	t := newTable(cmd.OutOrStdout(), "Branch", "Protected", "Head")
	for _, b := range branches {
		name := b.Name
		if b.Name == globalConfig.GetBranch() {
			name += " (sync)"
		}
		t.AppendRow(table.Row{name, b.Protected, shortSHA(b.Commit.SHA)})
	}
	t.Render()
	return nil
}

func runGitHubWorkflows(cmd *cobra.Command, args []string) error {
	client, repo, err := githubRepo()
	if err != nil {
		return err
	}
	workflows, err := client.ListWorkflows(cmd.Context(), repo, ghLimit)
	if err != nil {
		return fmt.Errorf("failed to list workflows: %w", err)
	}
	if len(workflows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No workflows found.")
		return nil
	}

	t := newTable(cmd.OutOrStdout(), "ID", "Name", "State", "Path")
	for _, w := range workflows {
		t.AppendRow(table.Row{w.ID, w.Name, w.State, w.Path})
	}
	t.Render()
	return nil
}

func runGitHubRuns(cmd *cobra.Command, args []string) error {
	client, repo, err := githubRepo()
	if err != nil {
		return err
	}
	runs, err := client.ListWorkflowRuns(cmd.Context(), repo, ghWorkflowID, ghLimit)
	if err != nil {
		return fmt.Errorf("failed to list workflow runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No workflow runs found.")
		return nil
	}

	t := newTable(cmd.OutOrStdout(), "ID", "Workflow", "Branch", "Event", "Status", "Started")
	for _, r := range runs {
		status := r.Status
		if r.Conclusion != "" {
			status = r.Conclusion
		}
		t.AppendRow(table.Row{r.ID, r.Name, r.HeadBranch, r.Event, status, r.CreatedAt.Local().Format("Jan 2 15:04")})
	}
	t.Render()
	return nil
}

func runGitHubContributors(cmd *cobra.Command, args []string) error {
	client, repo, err := githubRepo()
	if err != nil {
		return err
	}
	contributors, err := client.Contributors(cmd.Context(), repo, ghLimit)
	if err != nil {
		return fmt.Errorf("failed to list contributors: %w", err)
	}
	if len(contributors) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No contributor statistics yet. GitHub may still be computing them; try again shortly.")
		return nil
	}

	t := newTable(cmd.OutOrStdout(), "#", "Login", "Commits")
	for i, c := range contributors {
		t.AppendRow(table.Row{i + 1, c.Author.Login, c.Total})
	}
	t.Render()
	return nil
}

func runGitHubActivity(cmd *cobra.Command, args []string) error {
	client, repo, err := githubRepo()
	if err != nil {
		return err
	}
	weeks, err := client.CommitActivity(cmd.Context(), repo)
	if err != nil {
		return fmt.Errorf("failed to load commit activity: %w", err)
	}
	if len(weeks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No commit activity yet. GitHub may still be computing it; try again shortly.")
		return nil
	}
	if ghWeeks > 0 && len(weeks) > ghWeeks {
		weeks = weeks[len(weeks)-ghWeeks:]
	}

	peak := 0
	for _, w := range weeks {
		peak = max(peak, w.Total)
	}
	t := newTable(cmd.OutOrStdout(), "Week of", "Commits", "")
	for _, w := range weeks {
		t.AppendRow(table.Row{w.Start().Format("2006-01-02"), w.Total, bar(w.Total, peak, 30)})
	}
	t.Render()
	return nil
}

func runGitHubBranchCreate(cmd *cobra.Command, args []string) error {
	client, repo, err := githubRepo()
	if err != nil {
		return err
	}
	from := ghFrom
	if from == "" {
		from = globalConfig.GetBranch()
	}
	sha, err := client.CreateBranch(cmd.Context(), repo, from, args[0])
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	success(cmd.OutOrStdout(), "Created branch %s from %s at %s", args[0], from, shortSHA(sha))
	return nil
}

func runGitHubPRCreate(cmd *cobra.Command, args []string) error {
	client, repo, err := githubRepo()
	if err != nil {
		return err
	}
	base := ghPRBase
	if base == "" {
		base = globalConfig.GetBranch()
	}
	if err := models.Validate(
		func() string { return models.RequireNonEmpty("title", ghPRTitle) },
		func() string { return models.RequireNonEmpty("head", ghPRHead) },
		func() string {
			if ghPRHead == base {
				return "head and base must be different branches"
			}
			return ""
		},
	); err != nil {
		return err
	}

	pr, err := client.CreatePullRequest(cmd.Context(), repo, github.PullRequestInput{
		Title: ghPRTitle,
		Head:  ghPRHead,
		Base:  base,
		Body:  ghPRBody,
	})
	if err != nil {
		return fmt.Errorf("failed to create pull request: %w", err)
	}
	success(cmd.OutOrStdout(), "Opened pull request #%d: %s", pr.Number, pr.HTMLURL)
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func bar(value, peak, width int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := value * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
