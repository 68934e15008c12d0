package bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mfm"
	mfmlipgloss "github.com/fwojciec/mfm/lipgloss"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the biography preview.
type Model struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	runs    []mfm.Run
	theme   mfm.Theme
	styles  Styles
	animate bool

	frame int
	ready bool
}

// New creates a preview of runs. Motion is animated only when runs contain
// an effect and reducedMotion is false.
func New(runs []mfm.Run, theme mfm.Theme, reducedMotion bool) Model {
	return Model{
		runs:    runs,
		theme:   theme,
		styles:  NewStyles(theme),
		animate: !reducedMotion && mfmlipgloss.Animated(runs),
	}
}

// Frame returns the current animation frame.
func (m Model) Frame() int { return m.frame }

// Animating reports whether the preview advances frames.
func (m Model) Animating() bool { return m.animate }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.animate {
		return tick()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}

	case TickMsg:
		if !m.animate {
			return m, nil
		}
		m.frame++
		if m.ready {
			m.Viewport.SetContent(m.renderContent())
		}
		return m, tick()
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	statusHeight := 1
	vpHeight := msg.Height - statusHeight - 1

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	// Content is rewrapped to the new width.
	m.Viewport.SetContent(m.renderContent())
	return m
}

func (m Model) renderContent() string {
	return mfmlipgloss.Render(m.runs, m.Viewport.Width, m.theme, m.frame)
}

func (m Model) statusLine() string {
	if m.animate {
		return m.styles.Muted.Render("↑/↓ to scroll, q to quit") + " " + m.styles.Accent.Render("●")
	}
	return m.styles.Muted.Render("↑/↓ to scroll, q to quit")
}
