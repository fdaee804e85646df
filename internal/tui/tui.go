// Package tui implements the interactive session picker: a directory
// list, and per directory a split view of sessions and a preview of
// what each session would restore.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/strrl/session-resume/internal/sessions"
	"github.com/strrl/session-resume/pkg/models"
)

type viewMode int

const (
	directoryView viewMode = iota
	sessionView
)

type model struct {
	svc      *sessions.Service
	executor *sessions.Executor

	directories     []models.Directory
	currentMode     viewMode
	dirCursor       int
	sessionCursor   int
	selectedDir     *models.Directory
	selectedSession *models.Session

	viewport      viewport.Model
	leftViewport  viewport.Model // For sessions list in split view
	rightViewport viewport.Model // For preview in split view

	previews       map[string][]string // session name -> preview lines
	loadingPreview map[string]bool
	pendingRequest string // in-flight preview request, cancelled on cursor move
	spinner        *Spinner

	ready  bool
	err    error
	width  int
	height int
}

func initialModel(svc *sessions.Service, executor *sessions.Executor, directories []models.Directory) model {
	return model{
		svc:            svc,
		executor:       executor,
		directories:    directories,
		currentMode:    directoryView,
		previews:       make(map[string][]string),
		loadingPreview: make(map[string]bool),
		spinner:        NewSpinner(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		leftWidth := msg.Width/2 - 1
		rightWidth := msg.Width - leftWidth - 1
		viewHeight := msg.Height - 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewHeight)
			m.leftViewport = viewport.New(leftWidth, viewHeight)
			m.rightViewport = viewport.New(rightWidth, viewHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewHeight
			m.leftViewport.Width = leftWidth
			m.leftViewport.Height = viewHeight
			m.rightViewport.Width = rightWidth
			m.rightViewport.Height = viewHeight
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.executor.CancelAll()
			return m, tea.Quit

		case "up", "k":
			if m.currentMode == directoryView {
				if m.dirCursor > 0 {
					m.dirCursor--
					m.updateViewport()
				}
			} else {
				if m.sessionCursor > 0 {
					m.sessionCursor--
					cmds = append(cmds, m.ensurePreviewLoaded()...)
					m.updateViewport()
				}
			}

		case "down", "j":
			if m.currentMode == directoryView {
				if m.dirCursor < len(m.directories)-1 {
					m.dirCursor++
					m.updateViewport()
				}
			} else {
				if m.selectedDir != nil && m.sessionCursor < len(m.selectedDir.Sessions)-1 {
					m.sessionCursor++
					cmds = append(cmds, m.ensurePreviewLoaded()...)
					m.updateViewport()
				}
			}

		case "enter":
			if m.currentMode == directoryView {
				if m.dirCursor < len(m.directories) {
					dir := m.directories[m.dirCursor]
					dirSessions, err := m.svc.SessionsForDirectory(dir.Path)
					if err != nil {
						m.err = err
						return m, nil
					}
					dir.Sessions = dirSessions
					m.selectedDir = &dir
					m.currentMode = sessionView
					m.sessionCursor = 0
					cmds = append(cmds, m.ensurePreviewLoaded()...)
					m.updateViewport()
				}
			} else {
				if m.selectedDir != nil && m.sessionCursor < len(m.selectedDir.Sessions) {
					m.selectedSession = &m.selectedDir.Sessions[m.sessionCursor]
					m.executor.CancelAll()
					return m, tea.Quit
				}
			}

		case "esc", "backspace":
			if m.currentMode == sessionView {
				m.currentMode = directoryView
				m.selectedDir = nil
				m.sessionCursor = 0
				m.updateViewport()
			}

		case "r":
			// The store may have changed behind us; rebuild once.
			cmds = append(cmds, refreshCmd(m.svc))
		}

	case PreviewLoadedMsg:
		delete(m.loadingPreview, msg.Name)
		if msg.Error != nil {
			m.previews[msg.Name] = []string{fmt.Sprintf("Error loading preview: %v", msg.Error)}
		} else {
			m.previews[msg.Name] = msg.Lines
		}
		m.updateViewport()

	case RefreshedMsg:
		if msg.Error != nil {
			m.err = msg.Error
			return m, nil
		}
		m.directories = msg.Directories
		m.previews = make(map[string][]string)
		m.currentMode = directoryView
		m.selectedDir = nil
		m.dirCursor = 0
		m.sessionCursor = 0
		m.updateViewport()

	case SpinnerTickMsg:
		if len(m.loadingPreview) > 0 {
			m.spinner.Next()
			m.updateViewport()
			cmds = append(cmds, spinnerTickCmd())
		}
	}

	// Handle viewport updates
	if m.currentMode == directoryView {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var leftCmd, rightCmd tea.Cmd
		m.leftViewport, leftCmd = m.leftViewport.Update(msg)
		m.rightViewport, rightCmd = m.rightViewport.Update(msg)
		cmds = append(cmds, leftCmd, rightCmd)
	}

	return m, tea.Batch(cmds...)
}

// ensurePreviewLoaded kicks off a preview load for the session under
// the cursor, cancelling any load still in flight for another session.
func (m *model) ensurePreviewLoaded() []tea.Cmd {
	if m.selectedDir == nil || m.sessionCursor >= len(m.selectedDir.Sessions) {
		return nil
	}
	session := m.selectedDir.Sessions[m.sessionCursor]
	if _, ok := m.previews[session.Name]; ok {
		return nil
	}
	if m.loadingPreview[session.Name] {
		return nil
	}

	if m.pendingRequest != "" {
		m.executor.Cancel(m.pendingRequest)
	}

	requestID, cmd := loadPreviewCmd(m.executor, session.Name)
	m.pendingRequest = requestID
	m.loadingPreview[session.Name] = true
	return []tea.Cmd{cmd, spinnerTickCmd()}
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	if m.currentMode == directoryView {
		m.viewport.SetContent(m.renderDirectories())
	} else {
		m.leftViewport.SetContent(m.renderSessionsList())
		m.rightViewport.SetContent(m.renderPreview())
	}
}

func (m model) renderDirectories() string {
	var s strings.Builder

	for i, dir := range m.directories {
		cursor := "  "
		if i == m.dirCursor {
			cursor = "> "
		}

		style := lipgloss.NewStyle()
		if i == m.dirCursor {
			style = style.Foreground(lipgloss.Color("212")).Bold(true)
		}

		line := fmt.Sprintf("%s%s (%d sessions) - %s",
			cursor,
			dir.Name,
			dir.SessionCount,
			dir.LastSaved.Format("2006-01-02 15:04"))

		s.WriteString(style.Render(line) + "\n")
	}

	return s.String()
}

func (m model) renderSessionsList() string {
	if m.selectedDir == nil {
		return "No directory selected"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Sessions") + "\n")
	s.WriteString(strings.Repeat("─", max(m.leftViewport.Width-2, 10)) + "\n\n")

	for i, session := range m.selectedDir.Sessions {
		cursor := "  "
		if i == m.sessionCursor {
			cursor = "> "
		}

		nameStyle := lipgloss.NewStyle()
		if i == m.sessionCursor {
			nameStyle = nameStyle.Foreground(lipgloss.Color("212")).Bold(true)
		} else {
			nameStyle = nameStyle.Foreground(lipgloss.Color("252"))
		}

		s.WriteString(nameStyle.Render(fmt.Sprintf("%s%s", cursor, session.Name)) + "\n")

		detailStyle := lipgloss.NewStyle()
		if i == m.sessionCursor {
			detailStyle = detailStyle.Foreground(lipgloss.Color("245"))
		} else {
			detailStyle = detailStyle.Foreground(lipgloss.Color("238"))
		}
		s.WriteString(detailStyle.Render(fmt.Sprintf("  %s", session.SavedAt.Format("01-02 15:04"))) + "\n")

		if i < len(m.selectedDir.Sessions)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) renderPreview() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	s.WriteString(headerStyle.Render("Session Preview") + "\n")
	dividerWidth := max(m.rightViewport.Width-2, 10)
	s.WriteString(strings.Repeat("─", dividerWidth) + "\n\n")

	if m.selectedDir == nil || m.sessionCursor >= len(m.selectedDir.Sessions) {
		return s.String()
	}
	session := m.selectedDir.Sessions[m.sessionCursor]

	if m.loadingPreview[session.Name] {
		s.WriteString(fmt.Sprintf("%s Loading preview...", m.spinner.View()))
		return s.String()
	}

	lines, ok := m.previews[session.Name]
	if !ok || len(lines) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No preview available"))
		return s.String()
	}

	lineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	wrapWidth := max(m.rightViewport.Width-5, 20)
	for _, line := range lines {
		for j, wrapped := range wrapText(line, wrapWidth) {
			if j > 0 {
				s.WriteString("   ") // Indent continuation lines
			}
			s.WriteString(lineStyle.Render(wrapped) + "\n")
		}
	}

	return s.String()
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.err)
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	if m.currentMode == directoryView {
		return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
	}
	return fmt.Sprintf("%s\n%s\n%s", header, m.renderSplitView(), footer)
}

func (m model) renderSplitView() string {
	leftStyle := lipgloss.NewStyle().
		Width(m.leftViewport.Width).
		Height(m.leftViewport.Height)

	rightStyle := lipgloss.NewStyle().
		Width(m.rightViewport.Width).
		Height(m.rightViewport.Height)

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(m.leftViewport.Height)

	divider := strings.Builder{}
	for i := 0; i < m.leftViewport.Height; i++ {
		divider.WriteString("│")
		if i < m.leftViewport.Height-1 {
			divider.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.leftViewport.View()),
		dividerStyle.Render(divider.String()),
		rightStyle.Render(m.rightViewport.View()),
	)
}

func (m model) renderHeader() string {
	title := "Session Resume - Directories"
	if m.currentMode == sessionView && m.selectedDir != nil {
		title = fmt.Sprintf("Session Resume - %s", m.selectedDir.Name)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: select • r: refresh"
	if m.currentMode == sessionView {
		info += " • esc: back"
	}
	info += " • q: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ShowTUI displays the picker and returns the selected session, or nil
// when the user quit without choosing.
func ShowTUI(svc *sessions.Service, directories []models.Directory) (*models.Session, error) {
	executor := sessions.NewExecutor()
	defer executor.Close()

	p := tea.NewProgram(
		initialModel(svc, executor, directories),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(model)
	return m.selectedSession, nil
}
