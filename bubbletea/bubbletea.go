// Package bubbletea provides a Bubble Tea TUI that previews a rendered
// biography, animating motion effects.
package bubbletea

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the delay between animation frames.
const FrameInterval = 150 * time.Millisecond

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. When ctx is cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TickMsg advances the animation by one frame.
type TickMsg struct {
	Time time.Time
}

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
