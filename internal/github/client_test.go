// ABOUTME: Tests for the GitHub REST client using an httptest server.
// ABOUTME: Covers auth headers, base64 file transfer, refs, pulls, listings, and error mapping.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", "test-pat")
}

func TestValidateTokenSendsAuthHeader(t *testing.T) {
	var gotAuth, gotAccept, gotUA string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("expected /user, got %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"login":"octocat","id":1,"name":"The Octocat"}`))
	})

	user, err := client.ValidateToken(context.Background())
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if user.Login != "octocat" {
		t.Errorf("expected octocat, got %q", user.Login)
	}
	if gotAuth != "token test-pat" {
		t.Errorf("expected 'token test-pat', got %q", gotAuth)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Errorf("unexpected Accept %q", gotAccept)
	}
	if gotUA == "" {
		t.Error("expected a User-Agent")
	}
}

func TestNon2xxReturnsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	})

	_, err := client.ValidateToken(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Bad credentials" {
		t.Errorf("expected message, got %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should mention the status: %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("401 must not match ErrNotFound")
	}
}

func TestGetFileDecodesBase64(t *testing.T) {
	body := []byte(`{"hello":"world"}`)
	encoded := base64.StdEncoding.EncodeToString(body)
	wrapped := encoded[:4] + "\n" + encoded[4:]

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/repo/contents/contentai/data.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "main" {
			t.Errorf("expected ref=main, got %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"type": "file", "path": "contentai/data.json", "sha": "abc123",
			"content": wrapped, "encoding": "base64",
		})
	})

	file, err := client.GetFile(context.Background(), "octo/repo", "contentai/data.json", "main")
	if err != nil {
		t.Fatalf("GetFile error: %v", err)
	}
	if string(file.Content) != string(body) {
		t.Errorf("got %q, want %q", file.Content, body)
	}
	if file.SHA != "abc123" {
		t.Errorf("expected sha abc123, got %q", file.SHA)
	}
}

func TestGetFileNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})
	_, err := client.GetFile(context.Background(), "octo/repo", "missing.json", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPutFileEncodesContent(t *testing.T) {
	var payload putFilePayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type")
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &payload)
		_, _ = w.Write([]byte(`{"content":{"sha":"blob1"},"commit":{"sha":"commit1"}}`))
	})

	res, err := client.PutFile(context.Background(), "octo/repo", "a.json", PutFileRequest{
		Message: "sync", Content: []byte("data"), Branch: "main", SHA: "old",
	})
	if err != nil {
		t.Fatalf("PutFile error: %v", err)
	}
	if res.CommitSHA != "commit1" || res.ContentSHA != "blob1" {
		t.Errorf("unexpected result %+v", res)
	}
	decoded, _ := base64.StdEncoding.DecodeString(payload.Content)
	if string(decoded) != "data" || payload.SHA != "old" || payload.Branch != "main" || payload.Message != "sync" {
		t.Errorf("unexpected payload %+v", payload)
	}
}

func TestUpsertFileUsesExistingSHA(t *testing.T) {
	var putSHA string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"type":"file","sha":"current","content":"","encoding":"base64"}`))
		case http.MethodPut:
			var p putFilePayload
			_ = json.NewDecoder(r.Body).Decode(&p)
			putSHA = p.SHA
			_, _ = w.Write([]byte(`{"content":{"sha":"new"},"commit":{"sha":"c"}}`))
		}
	})

	if _, err := client.UpsertFile(context.Background(), "octo/repo", "a.json", PutFileRequest{Message: "m", Content: []byte("x"), Branch: "main"}); err != nil {
		t.Fatalf("UpsertFile error: %v", err)
	}
	if putSHA != "current" {
		t.Errorf("expected existing sha to be sent, got %q", putSHA)
	}
}

func TestUpsertFileCreatesWhenMissing(t *testing.T) {
	var putSHA = "unset"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			var p putFilePayload
			_ = json.NewDecoder(r.Body).Decode(&p)
			putSHA = p.SHA
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"content":{"sha":"new"},"commit":{"sha":"c"}}`))
		}
	})

	if _, err := client.UpsertFile(context.Background(), "octo/repo", "a.json", PutFileRequest{Message: "m", Content: []byte("x")}); err != nil {
		t.Fatalf("UpsertFile error: %v", err)
	}
	if putSHA != "" {
		t.Errorf("expected no sha on create, got %q", putSHA)
	}
}

func TestCreateBranchReadsRefThenCreates(t *testing.T) {
	var created map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/octo/repo/git/refs/heads/main":
			_, _ = w.Write([]byte(`{"ref":"refs/heads/main","object":{"sha":"base-sha"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/repos/octo/repo/git/refs":
			_ = json.NewDecoder(r.Body).Decode(&created)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ref":"refs/heads/feature","object":{"sha":"base-sha"}}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	})

	sha, err := client.CreateBranch(context.Background(), "octo/repo", "main", "feature")
	if err != nil {
		t.Fatalf("CreateBranch error: %v", err)
	}
	if sha != "base-sha" {
		t.Errorf("expected base-sha, got %q", sha)
	}
	if created["ref"] != "refs/heads/feature" || created["sha"] != "base-sha" {
		t.Errorf("unexpected create payload %v", created)
	}
}

func TestCreatePullRequest(t *testing.T) {
	var in PullRequestInput
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number":7,"state":"open","title":"Sync","html_url":"https://github.com/octo/repo/pull/7"}`))
	})

	pr, err := client.CreatePullRequest(context.Background(), "octo/repo", PullRequestInput{Title: "Sync", Head: "feature", Base: "main"})
	if err != nil {
		t.Fatalf("CreatePullRequest error: %v", err)
	}
	if pr.Number != 7 || in.Head != "feature" || in.Base != "main" {
		t.Errorf("unexpected pr %+v input %+v", pr, in)
	}
}

func TestListingsAreHardSliced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/repo/branches":
			_, _ = w.Write([]byte(`[{"name":"a"},{"name":"b"},{"name":"c"}]`))
		case "/repos/octo/repo/actions/workflows":
			_, _ = w.Write([]byte(`{"workflows":[{"id":1,"name":"CI"},{"id":2,"name":"Release"}]}`))
		case "/repos/octo/repo/actions/runs", "/repos/octo/repo/actions/workflows/1/runs":
			_, _ = w.Write([]byte(`{"workflow_runs":[{"id":10,"status":"completed"},{"id":11},{"id":12}]}`))
		case "/repos/octo/repo/stats/contributors":
			_, _ = w.Write([]byte(`[{"total":1,"author":{"login":"low"}},{"total":9,"author":{"login":"high"}}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	branches, err := client.ListBranches(ctx, "octo/repo", 2)
	if err != nil || len(branches) != 2 {
		t.Errorf("ListBranches = %v, %v", branches, err)
	}
	workflows, err := client.ListWorkflows(ctx, "octo/repo", 1)
	if err != nil || len(workflows) != 1 || workflows[0].Name != "CI" {
		t.Errorf("ListWorkflows = %v, %v", workflows, err)
	}
	runs, err := client.ListWorkflowRuns(ctx, "octo/repo", 0, 2)
	if err != nil || len(runs) != 2 {
		t.Errorf("ListWorkflowRuns = %v, %v", runs, err)
	}
	runs, err = client.ListWorkflowRuns(ctx, "octo/repo", 1, 0)
	if err != nil || len(runs) != 3 {
		t.Errorf("ListWorkflowRuns(1) = %v, %v", runs, err)
	}
	contributors, err := client.Contributors(ctx, "octo/repo", 5)
	if err != nil || len(contributors) != 2 || contributors[0].Author.Login != "high" {
		t.Errorf("Contributors = %v, %v", contributors, err)
	}
}

func TestCommitActivityAcceptedIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	weeks, err := client.CommitActivity(context.Background(), "octo/repo")
	if err != nil {
		t.Fatalf("CommitActivity error: %v", err)
	}
	if len(weeks) != 0 {
		t.Errorf("expected no weeks, got %v", weeks)
	}
}

func TestCommitActivityDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"week":1700000000,"total":5,"days":[0,1,1,1,1,1,0]}]`))
	})
	weeks, err := client.CommitActivity(context.Background(), "octo/repo")
	if err != nil {
		t.Fatalf("CommitActivity error: %v", err)
	}
	if len(weeks) != 1 || weeks[0].Total != 5 || weeks[0].Start().Unix() != 1700000000 {
		t.Errorf("unexpected weeks %v", weeks)
	}
}

func TestInvalidRepoRejectedBeforeRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	for _, repo := range []string{"", "noslash", "/name", "owner/", "a/b/c"} {
		if _, err := client.ListBranches(context.Background(), repo, 1); err == nil {
			t.Errorf("expected error for repo %q", repo)
		}
	}
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.ValidateToken(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
