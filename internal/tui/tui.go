// Package tui provides a Bubble Tea TUI for browsing session summaries.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ce-dot-net/acetrail/internal/summary"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	stepMcpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	stepShellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	stepEditStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabOverview tabID = iota
	tabSteps
	tabTools
	tabFiles
	tabCommands
	tabGit
	tabCount
)

var tabNames = [tabCount]string{
	"Overview", "Steps", "Tools", "Files", "Commands", "Git",
}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the summary viewer.
type Model struct {
	summary   *summary.Summary
	title     string
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
}

// New creates a viewer model for the given summary. title names the source
// (a file path, or the workspace for live summaries).
func New(s *summary.Summary, title string) Model {
	return Model{summary: s, title: title}
}

// Run starts the viewer and blocks until the user quits.
func Run(s *summary.Summary, title string) error {
	p := tea.NewProgram(New(s, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3", "4", "5", "6":
			m.activeTab = tabID(msg.String()[0] - '1')
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  acetrail  " + m.title)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-6 jump  q quit"
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *Model) renderTab(t tabID) string {
	switch t {
	case tabOverview:
		return m.renderOverview()
	case tabSteps:
		return m.renderSteps()
	case tabTools:
		return m.renderTools()
	case tabFiles:
		return m.renderFiles()
	case tabCommands:
		return m.renderCommands()
	case tabGit:
		return m.renderGit()
	}
	return ""
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func bullet(text string) string {
	return bulletStyle.Render("  •") + "  " + text + "\n"
}

func kv(label, value string) string {
	return "  " + labelStyle.Render(label+":") + " " + value + "\n"
}

func empty(text string) string {
	return dimStyle.Render("  " + text + "\n")
}

func (m *Model) renderOverview() string {
	s := m.summary
	var sb strings.Builder
	sb.WriteString(heading("Session"))
	sb.WriteString(kv("Digest", s.Digest))
	sb.WriteString(kv("MCP calls", fmt.Sprint(s.McpCount)))
	sb.WriteString(kv("Shell commands", fmt.Sprint(s.ShellCount)))
	sb.WriteString(kv("File edits", fmt.Sprint(s.EditCount)))
	sb.WriteString(kv("Responses", fmt.Sprint(s.ResponseCount)))
	if len(s.PlaybookUsed) > 0 {
		sb.WriteString(heading("Patterns Consulted"))
		for _, id := range s.PlaybookUsed {
			sb.WriteString(bullet(id))
		}
	}
	return sb.String()
}

func (m *Model) renderSteps() string {
	var sb strings.Builder
	sb.WriteString(heading("Steps"))
	if len(m.summary.Steps) == 0 {
		return sb.String() + empty("No steps recorded.")
	}
	for i, step := range m.summary.Steps {
		style := stepEditStyle
		switch {
		case strings.HasPrefix(step, "Called tool:"):
			style = stepMcpStyle
		case strings.HasPrefix(step, "Ran command:"):
			style = stepShellStyle
		}
		fmt.Fprintf(&sb, "  %s %s\n", style.Render(fmt.Sprintf("%3d.", i+1)), step)
	}
	return sb.String()
}

func (m *Model) renderTools() string {
	var sb strings.Builder
	sb.WriteString(heading("Tool Calls"))
	if len(m.summary.ToolCalls) == 0 {
		return sb.String() + empty("No tool calls recorded.")
	}
	names := make([]string, 0, len(m.summary.ToolCalls))
	for name := range m.summary.ToolCalls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(bullet(fmt.Sprintf("%s %s", name,
			dimStyle.Render(fmt.Sprintf("(%d)", m.summary.ToolCalls[name])))))
	}
	return sb.String()
}

func (m *Model) renderFiles() string {
	var sb strings.Builder
	sb.WriteString(heading("Edited Files"))
	if len(m.summary.EditedFiles) == 0 {
		return sb.String() + empty("No files edited.")
	}
	for _, f := range m.summary.EditedFiles {
		sb.WriteString(bullet(f))
	}
	return sb.String()
}

func (m *Model) renderCommands() string {
	var sb strings.Builder
	sb.WriteString(heading("Shell Commands"))
	if len(m.summary.ShellCommands) == 0 {
		return sb.String() + empty("No shell commands recorded.")
	}
	for i, c := range m.summary.ShellCommands {
		fmt.Fprintf(&sb, "  %s `%s`\n", dimStyle.Render(fmt.Sprintf("%3d.", i+1)), c)
	}
	return sb.String()
}

func (m *Model) renderGit() string {
	s := m.summary
	var sb strings.Builder
	sb.WriteString(heading("Git"))
	if s.Git == nil || !s.Git.IsRepo {
		return sb.String() + empty("Not a git repository or git data unavailable.")
	}
	sb.WriteString(kv("Branch", s.Git.Branch))
	sb.WriteString(kv("Commit", s.Git.Hash))
	if len(s.Git.SessionCommits) > 0 {
		sb.WriteString(heading("Commits This Session"))
		for _, c := range s.Git.SessionCommits {
			sb.WriteString(bullet(c))
		}
	}
	return sb.String()
}
