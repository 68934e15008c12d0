// Package lipgloss renders MFM-lite runs to ANSI-styled terminal output
// using lipgloss for styling.
package lipgloss

import "github.com/fwojciec/mfm"

// Render returns ANSI-styled terminal output for runs. Paragraphs are
// word-wrapped to width and centered blocks are aligned within it. Frame
// selects the animation phase of motion effects; frame 0 is the resting
// state used for static output, and negative frames are treated as 0.
func Render(runs []mfm.Run, width int, theme mfm.Theme, frame int) string {
	if len(runs) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	if frame < 0 {
		frame = 0
	}
	r := newRenderer(theme, frame)
	return r.render(runs, width)
}

// Animated reports whether runs contain an effect whose output changes from
// frame to frame.
func Animated(runs []mfm.Run) bool {
	for _, run := range runs {
		switch v := run.(type) {
		case mfm.SpanRun:
			if v.Style.IsEffect() || Animated(v.Runs) {
				return true
			}
		case mfm.LinkRun:
			if Animated(v.Runs) {
				return true
			}
		case mfm.BlockRun:
			if Animated(v.Runs) {
				return true
			}
		}
	}
	return false
}
