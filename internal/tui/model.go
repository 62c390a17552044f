package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"camdir/internal/app"
	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
)

// Phase represents what the screen is doing right now.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhasePicker
)

type button int

const (
	buttonReload button = iota
	buttonPicker
)

// ListedMsg carries the session state after a refresh or a folder listing.
type ListedMsg struct {
	State app.State
	Err   error
}

type Config struct {
	// PickerStart is the directory the folder picker opens in.
	PickerStart string
}

type Model struct {
	ctx     context.Context
	session *app.Session
	config  Config

	Phase    Phase
	State    app.State
	focus    button
	spinner  spinner.Model
	viewport viewport.Model
	picker   filepicker.Model
	Quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, session *app.Session, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.AutoHeight = true
	// Select is only consulted on an Open key, so s has to open as well.
	fp.KeyMap.Open = key.NewBinding(key.WithKeys("l", "right", "enter", "s"), key.WithHelp("l", "open"))
	fp.KeyMap.Select = key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter/s", "select"))
	fp.CurrentDirectory = cfg.PickerStart
	if fp.CurrentDirectory == "" {
		if home, err := os.UserHomeDir(); err == nil {
			fp.CurrentDirectory = home
		}
	}

	return Model{
		ctx:      ctx,
		session:  session,
		config:   cfg,
		Phase:    PhaseLoading,
		spinner:  s,
		viewport: viewport.New(80, 18),
		picker:   fp,
		width:    80,
		height:   24,
	}
}

// Init starts discovery as soon as the screen appears.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

func (m Model) refreshCmd() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		state, err := session.Refresh(ctx)
		return ListedMsg{State: state, Err: err}
	}
}

func (m Model) openCmd(dir domain.DirectoryURL) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		state, err := session.OpenFolder(ctx, dir)
		return ListedMsg{State: state, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Phase == PhasePicker {
			return m.updatePicker(msg)
		}
		return m.updateReady(msg)

	case ListedMsg:
		if appErrors.Is(msg.Err, appErrors.Busy) {
			return m, nil
		}
		m.State = msg.State
		m.Phase = PhaseReady
		m.viewport.SetContent(renderFiles(m.State.Files))
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.Phase == PhasePicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateReady(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.Quitting = true
		return m, tea.Quit
	case "r":
		if m.Phase == PhaseLoading {
			return m, nil
		}
		return m.reload()
	}

	if m.Phase != PhaseReady {
		return m, nil
	}

	switch m.State.View() {
	case app.ViewEmpty:
		switch msg.String() {
		case "tab", "right", "l", "left", "h", "shift+tab":
			if m.focus == buttonReload {
				m.focus = buttonPicker
			} else {
				m.focus = buttonReload
			}
		case "p":
			return m.openPicker()
		case "enter", " ":
			if m.focus == buttonPicker {
				return m.openPicker()
			}
			return m.reload()
		}
	case app.ViewFiles:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.Phase = PhaseReady
		m.session.SetPickerVisible(false)
		m.State = m.session.State()
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.Phase = PhaseLoading
		return m, tea.Batch(m.spinner.Tick, m.openCmd(domain.FileURL(path)))
	}
	return m, cmd
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.Phase = PhaseLoading
	return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	m.Phase = PhasePicker
	m.session.SetPickerVisible(true)
	m.State = m.session.State()
	return m, m.picker.Init()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseLoading:
		b.WriteString(fmt.Sprintf("%s Looking for devices...", m.spinner.View()))
	case PhasePicker:
		b.WriteString(m.renderPicker())
	case PhaseReady:
		switch m.State.View() {
		case app.ViewError:
			b.WriteString(errorStyle.Render(fmt.Sprintf("%s %s", iconError, appErrors.Message(m.State.Err))))
		case app.ViewFiles:
			b.WriteString(m.viewport.View())
		default:
			b.WriteString(m.renderEmpty())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("camdir")
	if m.State.Dir.IsZero() || m.State.View() == app.ViewError {
		return title
	}
	source := fmt.Sprintf("%s %s", iconFolder, m.State.Dir.LocalPath())
	if m.State.Device.MountPoint != "" {
		source = fmt.Sprintf("%s  %s", source, m.State.Device.DisplayName())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitleStyle.Render(source))
}

func (m Model) renderEmpty() string {
	reload, picker := buttonStyle, buttonStyle
	if m.focus == buttonReload {
		reload = focusedButtonStyle
	} else {
		picker = focusedButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		reload.Render("Reload"), "  ", picker.Render("Document Picker"))

	parts := []string{"No files", "", buttons}
	if m.State.Notice != "" {
		parts = append(parts, "", dimStyle.Render(m.State.Notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderPicker() string {
	header := subtitleStyle.Render("Choose a folder: " + m.picker.CurrentDirectory)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.picker.View())
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseLoading:
		help = "Please wait • ctrl+c to quit"
	case PhasePicker:
		help = "↑/↓ move • → open • enter/s select • ← back • esc cancel"
	default:
		switch m.State.View() {
		case app.ViewFiles:
			help = "↑/↓ scroll • r reload • q quit"
		case app.ViewError:
			help = "r retry • q quit"
		default:
			help = "tab switch • enter press • r reload • p picker • q quit"
		}
	}
	return helpStyle.Render(help)
}

func renderFiles(files domain.FileList) string {
	lines := make([]string, 0, len(files))
	for _, name := range files {
		lines = append(lines, fileNameStyle.Render(name))
	}
	return strings.Join(lines, "\n")
}
