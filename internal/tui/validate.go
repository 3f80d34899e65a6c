// ABOUTME: GitHub credential validation for the setup wizard.
// ABOUTME: Checks the token with GET /user and, when a repo is given, that it is reachable.
package tui

import (
	"context"
	"fmt"

	"github.com/2389-research/contentai/internal/github"
)

// NewValidator returns a ValidateFn that talks to the GitHub API at apiURL.
// The returned login names the account the token belongs to.
func NewValidator(apiURL string) ValidateFn {
	return func(ctx context.Context, token, repo string) (string, error) {
		client := github.NewClient(apiURL, token)

		user, err := client.ValidateToken(ctx)
		if err != nil {
			return "", fmt.Errorf("token rejected: %w", err)
		}
		if repo == "" {
			return user.Login, nil
		}
		if _, err := client.ListBranches(ctx, repo, 1); err != nil {
			return user.Login, fmt.Errorf("cannot access %s: %w", repo, err)
		}
		return user.Login, nil
	}
}
