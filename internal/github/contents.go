// ABOUTME: Repository contents, git refs, branches, and pull request endpoints.
// ABOUTME: File bodies travel base64 encoded as the contents API requires.
package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// FileContent is a decoded file from the contents API.
type FileContent struct {
	Path    string
	SHA     string
	Content []byte
}

type contentResponse struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetFile fetches and decodes a file. An empty ref reads the default branch.
func (c *Client) GetFile(ctx context.Context, repo, path, ref string) (*FileContent, error) {
	p, err := repoPath(repo, "contents", escapePath(path))
	if err != nil {
		return nil, err
	}
	var query url.Values
	if ref != "" {
		query = url.Values{"ref": {ref}}
	}

	var resp contentResponse
	if _, err := c.do(ctx, http.MethodGet, p, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Type != "" && resp.Type != "file" {
		return nil, fmt.Errorf("%s is a %s, not a file", path, resp.Type)
	}
	if resp.Encoding != "" && resp.Encoding != "base64" {
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Encoding)
	}
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode file content: %w", err)
	}
	return &FileContent{Path: resp.Path, SHA: resp.SHA, Content: data}, nil
}

// PutFileRequest describes a create-or-update of one file.
type PutFileRequest struct {
	Message string
	Content []byte
	Branch  string
	// SHA of the blob being replaced. Required by GitHub when the file exists.
	SHA string
}

// PutFileResult carries the SHAs GitHub assigned.
type PutFileResult struct {
	ContentSHA string
	CommitSHA  string
}

type putFilePayload struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type putFileResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// PutFile creates or replaces a file.
func (c *Client) PutFile(ctx context.Context, repo, path string, req PutFileRequest) (*PutFileResult, error) {
	p, err := repoPath(repo, "contents", escapePath(path))
	if err != nil {
		return nil, err
	}
	payload := putFilePayload{
		Message: req.Message,
		Content: base64.StdEncoding.EncodeToString(req.Content),
		Branch:  req.Branch,
		SHA:     req.SHA,
	}
	var resp putFileResponse
	if _, err := c.do(ctx, http.MethodPut, p, nil, payload, &resp); err != nil {
		return nil, err
	}
	return &PutFileResult{ContentSHA: resp.Content.SHA, CommitSHA: resp.Commit.SHA}, nil
}

// UpsertFile writes a file, looking up the current blob SHA first so updates are accepted.
func (c *Client) UpsertFile(ctx context.Context, repo, path string, req PutFileRequest) (*PutFileResult, error) {
	if req.SHA == "" {
		existing, err := c.GetFile(ctx, repo, path, req.Branch)
		switch {
		case err == nil:
			req.SHA = existing.SHA
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}
	return c.PutFile(ctx, repo, path, req)
}

type refResponse struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

// GetBranchSHA returns the commit SHA at the head of branch.
func (c *Client) GetBranchSHA(ctx context.Context, repo, branch string) (string, error) {
	p, err := repoPath(repo, "git/refs/heads", escapePath(branch))
	if err != nil {
		return "", err
	}
	var resp refResponse
	if _, err := c.do(ctx, http.MethodGet, p, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Object.SHA, nil
}

// CreateBranch creates name pointing at the current head of from.
func (c *Client) CreateBranch(ctx context.Context, repo, from, name string) (string, error) {
	sha, err := c.GetBranchSHA(ctx, repo, from)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", from, err)
	}
	p, err := repoPath(repo, "git/refs")
	if err != nil {
		return "", err
	}
	payload := map[string]string{"ref": "refs/heads/" + name, "sha": sha}
	var resp refResponse
	if _, err := c.do(ctx, http.MethodPost, p, nil, payload, &resp); err != nil {
		return "", err
	}
	return resp.Object.SHA, nil
}

// Branch is one entry from the branches listing.
type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
	Commit    struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// ListBranches returns at most limit branches from the first page.
func (c *Client) ListBranches(ctx context.Context, repo string, limit int) ([]Branch, error) {
	p, err := repoPath(repo, "branches")
	if err != nil {
		return nil, err
	}
	var branches []Branch
	if _, err := c.do(ctx, http.MethodGet, p, perPage(limit), nil, &branches); err != nil {
		return nil, err
	}
	return limitSlice(branches, limit), nil
}

// PullRequestInput is the body of a new pull request.
type PullRequestInput struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body,omitempty"`
}

// PullRequest is the subset of a pull request contentai reports.
type PullRequest struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}

// CreatePullRequest opens a pull request.
func (c *Client) CreatePullRequest(ctx context.Context, repo string, in PullRequestInput) (*PullRequest, error) {
	p, err := repoPath(repo, "pulls")
	if err != nil {
		return nil, err
	}
	var pr PullRequest
	if _, err := c.do(ctx, http.MethodPost, p, nil, in, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

func perPage(limit int) url.Values {
	if limit <= 0 || limit > 100 {
		return nil
	}
	return url.Values{"per_page": {strconv.Itoa(limit)}}
}
