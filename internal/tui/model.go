package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"nft-recon/internal/domain"
	"nft-recon/internal/report"
	"nft-recon/internal/service"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Reconciler runs one reconciliation and returns its report.
type Reconciler interface {
	Run(ctx context.Context, req service.Request) (*domain.Report, error)
}

type state int

const (
	stateForm state = iota
	stateRunning
	stateDone
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var prompts = [fieldCount]struct {
	label       string
	placeholder string
}{
	fieldChain:    {"Chain", "1, 137, 8453, ethereum, matic or base"},
	fieldContract: {"Contract address", "0x..."},
	fieldToken:    {"Token ID", "1234"},
	fieldStart:    {"Start time (UTC)", "YYYY-MM-DD HH:MM:SS, blank for no bound"},
	fieldEnd:      {"End time (UTC)", "YYYY-MM-DD HH:MM:SS, blank for no bound"},
}

type reportMsg struct {
	report *domain.Report
	err    error
}

// Model prompts for a token and time window, runs the reconciliation and shows
// the rendered report in a scrollable view.
type Model struct {
	ctx        context.Context
	reconciler Reconciler

	inputs  []textinput.Model
	focus   int
	state   state
	spinner spinner.Model
	view    viewport.Model

	warnings []string
	err      error
	report   *domain.Report

	width  int
	height int
}

func NewModel(ctx context.Context, reconciler Reconciler) *Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = prompts[i].label + ": "
		ti.Placeholder = prompts[i].placeholder
		ti.CharLimit = 100
		ti.Width = 50
		inputs[i] = ti
	}
	inputs[fieldChain].Focus()
	inputs[fieldChain].PromptStyle = focusedStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusedStyle

	return &Model{
		ctx:        ctx,
		reconciler: reconciler,
		inputs:     inputs,
		spinner:    sp,
		view:       viewport.New(80, 20),
		width:      80,
		height:     24,
	}
}

// SetSize sizes the report view to the terminal.
func (m *Model) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.view.Width = width
	m.view.Height = max(height-3, 1)
}

// Report is the last completed report, or nil.
func (m *Model) Report() *domain.Report {
	return m.report
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case reportMsg:
		return m.finish(msg)
	case spinner.TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case stateForm:
		return m.updateForm(msg)
	case stateDone:
		return m.updateDone(msg)
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter":
			if m.focus < fieldCount-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc":
			return m, tea.Quit
		case "n":
			m.state = stateForm
			m.err = nil
			m.warnings = nil
			return m, m.setFocus(fieldChain)
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	i = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.inputs[m.focus].PromptStyle = blurredStyle
	m.focus = i
	m.inputs[i].PromptStyle = focusedStyle
	return m.inputs[i].Focus()
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	req, warnings, err := BuildRequest(
		m.inputs[fieldChain].Value(),
		m.inputs[fieldContract].Value(),
		m.inputs[fieldToken].Value(),
		m.inputs[fieldStart].Value(),
		m.inputs[fieldEnd].Value(),
	)
	m.warnings = warnings
	m.err = err
	if err != nil {
		return m, nil
	}

	m.state = stateRunning
	return m, tea.Batch(m.spinner.Tick, m.run(req))
}

func (m *Model) run(req service.Request) tea.Cmd {
	ctx, reconciler := m.ctx, m.reconciler
	return func() tea.Msg {
		rep, err := reconciler.Run(ctx, req)
		return reportMsg{report: rep, err: err}
	}
}

func (m *Model) finish(msg reportMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateForm
		m.err = msg.err
		return m, nil
	}
	m.report = msg.report
	m.state = stateDone

	var buf bytes.Buffer
	if err := report.Render(&buf, msg.report); err != nil {
		m.err = err
	}
	m.view.SetContent(buf.String())
	m.view.GotoTop()
	return m, nil
}

func (m *Model) View() string {
	switch m.state {
	case stateRunning:
		return fmt.Sprintf("\n %s Reconciling Lootex and OpenSea activity...\n\n%s", m.spinner.View(), m.messages())
	case stateDone:
		return m.view.View() + "\n" + helpStyle.Render("up/down scroll  n new run  q quit")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("NFT marketplace reconciliation"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.messages())
	b.WriteString(helpStyle.Render("tab/enter next field  shift+tab previous  enter on last field runs  esc quit"))
	return b.String()
}

func (m *Model) messages() string {
	var b strings.Builder
	for _, w := range m.warnings {
		b.WriteString(warnStyle.Render("Warning: " + w))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}
