// ABOUTME: Interactive TUI wizard for connecting a GitHub account for sync.
// ABOUTME: 3-step bubbletea model collecting the access token, repository, and branch.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/contentai/internal/github"
)

// DefaultBranch is used when the branch step is left empty.
const DefaultBranch = "main"

// Step represents the current wizard step.
type Step int

const (
	StepToken Step = iota
	StepRepo
	StepBranch
	StepValidating
	StepDone
	StepFailed
)

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	login string
	err   error
}

// ValidateFn checks a token and repository, returning the account login.
type ValidateFn func(ctx context.Context, token, repo string) (string, error)

// cancelHolder shares a cancel function across bubbletea model copies.
// It must stay a pointer field so value-receiver methods all see the same cancel func.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step          Step
	inputs        [3]textinput.Model
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	inputErr      string
	login         string
	validationErr error
	quitting      bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
func NewSetupModel(token, repo, branch string) SetupModel {
	tokenInput := textinput.New()
	tokenInput.Placeholder = "ghp_..."
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.Focus()
	tokenInput.Width = 50
	if token != "" {
		tokenInput.SetValue(token)
	}

	repoInput := textinput.New()
	repoInput.Placeholder = "owner/repository"
	repoInput.Width = 50
	if repo != "" {
		repoInput.SetValue(repo)
	}

	branchInput := textinput.New()
	branchInput.Placeholder = DefaultBranch
	branchInput.Width = 50
	if branch != "" {
		branchInput.SetValue(branch)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		step:       StepToken,
		inputs:     [3]textinput.Model{tokenInput, repoInput, branchInput},
		spinner:    s,
		validateFn: NewValidator(github.DefaultBaseURL),
		cancelCtx:  &cancelHolder{},
	}
}

// WithValidator replaces the validation function.
func (m SetupModel) WithValidator(fn ValidateFn) SetupModel {
	m.validateFn = fn
	return m
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepToken, StepRepo, StepBranch:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		m.login = msg.login
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		idx := int(m.step)
		m.inputErr = ""

		switch m.step {
		case StepToken:
			val := strings.TrimSpace(m.inputs[0].Value())
			if val == "" {
				return m, nil
			}
			m.inputs[0].SetValue(val)
		case StepRepo:
			val := strings.Trim(strings.TrimSpace(m.inputs[1].Value()), "/")
			val = strings.TrimPrefix(val, "https://github.com/")
			if val == "" {
				return m, nil
			}
			if err := github.ValidateRepo(val); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.inputs[1].SetValue(val)
		case StepBranch:
			if strings.TrimSpace(m.inputs[2].Value()) == "" {
				m.inputs[2].SetValue(DefaultBranch)
			}
		}

		m.inputs[idx].Blur()

		switch m.step {
		case StepToken:
			m.step = StepRepo
			m.inputs[1].Focus()
			return m, textinput.Blink
		case StepRepo:
			m.step = StepBranch
			m.inputs[2].Focus()
			return m, textinput.Blink
		case StepBranch:
			m.step = StepValidating
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		}
	}

	// Forward to the active input
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = StepDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	token := m.inputs[0].Value()
	repo := m.inputs[1].Value()
	fn := m.validateFn
	return func() tea.Msg {
		login, err := fn(ctx, token, repo)
		return validationResultMsg{login: login, err: err}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   CONTENTAI"))
	b.WriteString(titleStyle.Render(" - GitHub Sync Setup"))
	b.WriteString("\n\n")
	b.WriteString("Connect a GitHub repository to back up saved content and drafts.\n\n")

	masked := strings.Repeat("*", len(m.inputs[0].Value()))

	switch m.step {
	case StepToken:
		b.WriteString(stepStyle.Render("Step 1 of 3: Personal access token"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(needs repo scope)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepRepo:
		b.WriteString(fmt.Sprintf("  Token: %s\n\n", masked))
		b.WriteString(stepStyle.Render("Step 2 of 3: Repository"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")
		if m.inputErr != "" {
			b.WriteString(errorStyle.Render(m.inputErr))
			b.WriteString("\n")
		}

	case StepBranch:
		b.WriteString(fmt.Sprintf("  Token: %s\n", masked))
		b.WriteString(fmt.Sprintf("  Repo:  %s\n\n", m.inputs[1].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: Branch"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for main)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  Token:  %s\n", masked))
		b.WriteString(fmt.Sprintf("  Repo:   %s\n", m.inputs[1].Value()))
		b.WriteString(fmt.Sprintf("  Branch: %s\n\n", m.inputs[2].Value()))
		b.WriteString(m.spinner.View())
		b.WriteString(" Validating with GitHub...")
		b.WriteString("\n")

	case StepDone:
		if m.login != "" {
			b.WriteString(successStyle.Render(fmt.Sprintf("✓ Connected as @%s", m.login)))
		} else {
			b.WriteString(successStyle.Render("✓ Connected!"))
		}
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Validation failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (token, repo, branch string) {
	return m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value()
}

// Login returns the GitHub login reported during validation, if any.
func (m SetupModel) Login() string {
	return m.login
}

// ShouldSave returns true if the wizard completed (via validation success or
// "save anyway") and the user did not cancel with Ctrl+C, Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
