// ABOUTME: GitHub Actions workflows and repository statistics endpoints.
// ABOUTME: Lists are cut to the caller's limit; statistics may be empty while GitHub computes them.
package github

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"
)

// Workflow is a configured Actions workflow.
type Workflow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
}

// WorkflowRun is one execution of a workflow.
type WorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	HeadBranch string    `json:"head_branch"`
	Event      string    `json:"event"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	HTMLURL    string    `json:"html_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListWorkflows returns at most limit workflows.
func (c *Client) ListWorkflows(ctx context.Context, repo string, limit int) ([]Workflow, error) {
	p, err := repoPath(repo, "actions/workflows")
	if err != nil {
		return nil, err
	}
	var resp struct {
		Workflows []Workflow `json:"workflows"`
	}
	if _, err := c.do(ctx, http.MethodGet, p, perPage(limit), nil, &resp); err != nil {
		return nil, err
	}
	return limitSlice(resp.Workflows, limit), nil
}

// ListWorkflowRuns returns at most limit recent runs. workflowID 0 lists runs of every workflow.
func (c *Client) ListWorkflowRuns(ctx context.Context, repo string, workflowID int64, limit int) ([]WorkflowRun, error) {
	p, err := repoPath(repo, "actions/runs")
	if workflowID != 0 {
		p, err = repoPath(repo, "actions/workflows", strconv.FormatInt(workflowID, 10), "runs")
	}
	if err != nil {
		return nil, err
	}
	var resp struct {
		WorkflowRuns []WorkflowRun `json:"workflow_runs"`
	}
	if _, err := c.do(ctx, http.MethodGet, p, perPage(limit), nil, &resp); err != nil {
		return nil, err
	}
	return limitSlice(resp.WorkflowRuns, limit), nil
}

// WeekActivity is one week of commit counts, Sunday first.
type WeekActivity struct {
	Week  int64 `json:"week"`
	Total int   `json:"total"`
	Days  []int `json:"days"`
}

// Start returns the week start as a time.
func (w WeekActivity) Start() time.Time {
	return time.Unix(w.Week, 0).UTC()
}

// CommitActivity returns the last year of weekly commit counts.
// The result is empty while GitHub is still computing statistics.
func (c *Client) CommitActivity(ctx context.Context, repo string) ([]WeekActivity, error) {
	p, err := repoPath(repo, "stats/commit_activity")
	if err != nil {
		return nil, err
	}
	var weeks []WeekActivity
	if _, err := c.do(ctx, http.MethodGet, p, nil, nil, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// Contributor is a commit author with their total commit count.
type Contributor struct {
	Total  int `json:"total"`
	Author struct {
		Login   string `json:"login"`
		HTMLURL string `json:"html_url"`
	} `json:"author"`
}

// Contributors returns at most limit contributors ordered by commit count, highest first.
func (c *Client) Contributors(ctx context.Context, repo string, limit int) ([]Contributor, error) {
	p, err := repoPath(repo, "stats/contributors")
	if err != nil {
		return nil, err
	}
	var contributors []Contributor
	if _, err := c.do(ctx, http.MethodGet, p, nil, nil, &contributors); err != nil {
		return nil, err
	}
	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].Total > contributors[j].Total
	})
	return limitSlice(contributors, limit), nil
}
