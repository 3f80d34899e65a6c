// ABOUTME: Unit tests for the GitHub setup wizard bubbletea model.
// ABOUTME: Uses synthetic tea.Msg values to test state machine transitions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func okValidator(_ context.Context, _, _ string) (string, error) { return "octocat", nil }

func enter(t *testing.T, m SetupModel) (SetupModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(SetupModel), cmd
}

func TestNewSetupModel_DefaultValues(t *testing.T) {
	m := NewSetupModel("", "", "")
	if m.step != StepToken {
		t.Errorf("expected initial step StepToken, got %d", m.step)
	}
	if m.inputs[0].Value() != "" {
		t.Error("expected empty token input for new config")
	}
	if m.validateFn == nil {
		t.Error("expected a default validator")
	}
}

func TestNewSetupModel_ExistingConfig(t *testing.T) {
	m := NewSetupModel("ghp_abc", "acme/content", "drafts")
	if m.inputs[0].Value() != "ghp_abc" {
		t.Errorf("expected pre-filled token, got %q", m.inputs[0].Value())
	}
	if m.inputs[1].Value() != "acme/content" {
		t.Errorf("expected pre-filled repo, got %q", m.inputs[1].Value())
	}
	if m.inputs[2].Value() != "drafts" {
		t.Errorf("expected pre-filled branch, got %q", m.inputs[2].Value())
	}
}

func TestSetupModel_StepTransitions(t *testing.T) {
	m := NewSetupModel("", "", "")

	m.inputs[0].SetValue("ghp_token")
	m, _ = enter(t, m)
	if m.step != StepRepo {
		t.Errorf("expected StepRepo after Enter on token, got %d", m.step)
	}

	m.inputs[1].SetValue("acme/content")
	m, _ = enter(t, m)
	if m.step != StepBranch {
		t.Errorf("expected StepBranch after Enter on repo, got %d", m.step)
	}

	m.inputs[2].SetValue("main")
	m, cmd := enter(t, m)
	if m.step != StepValidating {
		t.Errorf("expected StepValidating after Enter on branch, got %d", m.step)
	}
	if cmd == nil {
		t.Error("expected non-nil cmd (validation + spinner tick) when entering validation")
	}
}

func TestSetupModel_EmptyTokenBlocked(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.inputs[0].SetValue("   ")
	m, _ = enter(t, m)
	if m.step != StepToken {
		t.Errorf("expected to stay on StepToken with empty input, got %d", m.step)
	}
}

func TestSetupModel_RepoInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantStep Step
		wantRepo string
		wantErr  bool
	}{
		{name: "valid", input: "acme/content", wantStep: StepBranch, wantRepo: "acme/content"},
		{name: "github url", input: "https://github.com/acme/content/", wantStep: StepBranch, wantRepo: "acme/content"},
		{name: "empty", input: "", wantStep: StepRepo},
		{name: "missing owner", input: "content", wantStep: StepRepo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSetupModel("ghp_token", "", "")
			m.step = StepRepo
			m.inputs[1].SetValue(tt.input)
			m, _ = enter(t, m)
			if m.step != tt.wantStep {
				t.Fatalf("expected step %d, got %d", tt.wantStep, m.step)
			}
			if tt.wantRepo != "" && m.inputs[1].Value() != tt.wantRepo {
				t.Errorf("expected repo %q, got %q", tt.wantRepo, m.inputs[1].Value())
			}
			if (m.inputErr != "") != tt.wantErr {
				t.Errorf("inputErr = %q, wantErr %v", m.inputErr, tt.wantErr)
			}
		})
	}
}

func TestSetupModel_DefaultBranch(t *testing.T) {
	m := NewSetupModel("ghp_token", "acme/content", "").WithValidator(okValidator)
	m.step = StepBranch
	m, _ = enter(t, m)
	if m.inputs[2].Value() != DefaultBranch {
		t.Errorf("expected default branch %q, got %q", DefaultBranch, m.inputs[2].Value())
	}
	if m.step != StepValidating {
		t.Errorf("expected StepValidating, got %d", m.step)
	}
}

func TestSetupModel_ValidationSuccess(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.step = StepValidating

	updated, _ := m.Update(validationResultMsg{login: "octocat"})
	m = updated.(SetupModel)
	if m.step != StepDone {
		t.Errorf("expected StepDone after successful validation, got %d", m.step)
	}
	if m.Login() != "octocat" {
		t.Errorf("expected login octocat, got %q", m.Login())
	}
	if !strings.Contains(m.View(), "@octocat") {
		t.Error("expected view to show the connected login")
	}
}

func TestSetupModel_ValidationFailure(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.step = StepValidating

	updated, _ := m.Update(validationResultMsg{err: fmt.Errorf("bad credentials")})
	m = updated.(SetupModel)
	if m.step != StepFailed {
		t.Errorf("expected StepFailed after validation error, got %d", m.step)
	}
	if m.validationErr == nil {
		t.Error("expected validationErr to be set")
	}
	view := m.View()
	if !strings.Contains(view, "bad credentials") || !strings.Contains(view, "[r]etry") {
		t.Errorf("expected failure view with options, got %q", view)
	}
}

func TestSetupModel_FailedKeys(t *testing.T) {
	tests := []struct {
		key      rune
		wantStep Step
		wantSave bool
		wantCmd  bool
		wantQuit bool
	}{
		{key: 'r', wantStep: StepValidating, wantCmd: true},
		{key: 's', wantStep: StepDone, wantSave: true, wantCmd: true},
		{key: 'q', wantStep: StepFailed, wantCmd: true, wantQuit: true},
		{key: 'x', wantStep: StepFailed},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := NewSetupModel("ghp_token", "acme/content", "main").WithValidator(okValidator)
			m.step = StepFailed
			m.validationErr = fmt.Errorf("some error")

			updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
			m = updated.(SetupModel)
			if m.step != tt.wantStep {
				t.Errorf("expected step %d, got %d", tt.wantStep, m.step)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd = %v, wantCmd %v", cmd != nil, tt.wantCmd)
			}
			if m.quitting != tt.wantQuit {
				t.Errorf("quitting = %v, want %v", m.quitting, tt.wantQuit)
			}
			if m.ShouldSave() != tt.wantSave {
				t.Errorf("ShouldSave = %v, want %v", m.ShouldSave(), tt.wantSave)
			}
		})
	}
}

func TestSetupModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEscape} {
		m := NewSetupModel("", "", "")
		updated, cmd := m.Update(tea.KeyMsg{Type: key})
		m = updated.(SetupModel)
		if !m.quitting {
			t.Errorf("expected quitting after key %v", key)
		}
		if cmd == nil {
			t.Errorf("expected quit cmd after key %v", key)
		}
		if m.ShouldSave() {
			t.Error("cancelled wizard should not save")
		}
	}
}

func TestSetupModel_Result(t *testing.T) {
	m := NewSetupModel("ghp_abc", "acme/content", "drafts")
	token, repo, branch := m.Result()
	if token != "ghp_abc" || repo != "acme/content" || branch != "drafts" {
		t.Errorf("unexpected result %q %q %q", token, repo, branch)
	}
}

func TestSetupModel_ViewMasksToken(t *testing.T) {
	m := NewSetupModel("ghp_secret", "", "")
	m.step = StepRepo
	view := m.View()
	if strings.Contains(view, "ghp_secret") {
		t.Error("token should be masked in the view")
	}
	if !strings.Contains(view, "Step 2 of 3") {
		t.Errorf("expected step header, got %q", view)
	}
	if !strings.Contains(view, "CONTENTAI") {
		t.Error("expected brand header")
	}
}

func TestSetupModel_ViewFailedNilError(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.step = StepFailed
	view := m.View()
	if strings.Contains(view, "<nil>") {
		t.Error("expected nil error to be rendered gracefully, not as <nil>")
	}
	if !strings.Contains(view, "unknown error") {
		t.Error("expected nil error to show 'unknown error' fallback")
	}
}

func TestSetupModel_ValidationPassesCorrectArgs(t *testing.T) {
	var gotToken, gotRepo string
	m := NewSetupModel("ghp_abc", "acme/content", "main").WithValidator(func(_ context.Context, token, repo string) (string, error) {
		gotToken = token
		gotRepo = repo
		return "octocat", nil
	})
	m.step = StepBranch

	_, batchCmd := enter(t, m)
	batchMsg := batchCmd().(tea.BatchMsg)
	msg := batchMsg[0]()

	if gotToken != "ghp_abc" || gotRepo != "acme/content" {
		t.Errorf("unexpected validator args %q %q", gotToken, gotRepo)
	}
	if res, ok := msg.(validationResultMsg); !ok || res.login != "octocat" {
		t.Errorf("unexpected validation msg %+v", msg)
	}
}

func TestSetupModel_CtrlCDuringValidation(t *testing.T) {
	cancelled := false
	m := NewSetupModel("ghp_abc", "acme/content", "main").WithValidator(func(ctx context.Context, _, _ string) (string, error) {
		<-ctx.Done()
		cancelled = true
		return "", ctx.Err()
	})
	m.step = StepBranch

	m, batchCmd := enter(t, m)
	if m.step != StepValidating {
		t.Fatalf("expected StepValidating, got %d", m.step)
	}

	batchMsg := batchCmd().(tea.BatchMsg)
	done := make(chan tea.Msg)
	go func() {
		done <- batchMsg[0]()
	}()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(SetupModel)
	if !m.quitting {
		t.Error("expected quitting to be true after Ctrl+C during validation")
	}

	<-done
	if !cancelled {
		t.Error("expected validation context to be cancelled")
	}
}

func TestSetupModel_FullFlowWithTeaProgram(t *testing.T) {
	m := NewSetupModel("ghp_abc", "acme/content", "main").WithValidator(func(_ context.Context, _, _ string) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "octocat", nil
	})

	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithoutRenderer())

	go func() {
		p.Send(tea.KeyMsg{Type: tea.KeyEnter}) // token
		p.Send(tea.KeyMsg{Type: tea.KeyEnter}) // repo
		p.Send(tea.KeyMsg{Type: tea.KeyEnter}) // branch -> validates -> done -> quit
	}()

	result, err := p.Run()
	if err != nil {
		t.Fatalf("tea.Program error: %v", err)
	}

	final := result.(SetupModel)
	if !final.ShouldSave() {
		t.Errorf("expected ShouldSave=true after successful validation (step=%d, quitting=%v)", final.step, final.quitting)
	}
	if final.Login() != "octocat" {
		t.Errorf("expected login octocat, got %q", final.Login())
	}
}
